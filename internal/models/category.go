package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups transactions. Categories may be deleted while transactions
// still reference them; those transactions then resolve to the
// "Uncategorized" bucket at read time.
type Category struct {
	DefaultModel
	UserID string `json:"userId" gorm:"index"` // Opaque ID of the owning user
	Name   string `json:"name" example:"Groceries"`
}

// BeforeSave trims whitespace from the name.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
