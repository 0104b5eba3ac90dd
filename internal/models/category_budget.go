package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/types"
)

// CategoryBudget is a spend ceiling for one category in one month.
//
// There is at most one CategoryBudget per user, category and month, enforced
// by the upsert logic when setting the limit.
type CategoryBudget struct {
	DefaultModel
	UserID     string          `json:"userId" gorm:"index"` // Opaque ID of the owning user
	CategoryID uuid.UUID       `json:"categoryId"`
	Category   Category        `json:"-"`
	Month      types.Month     `json:"month" example:"2025-06-01T00:00:00Z"`
	MaxAmount  decimal.Decimal `json:"maxAmount" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"200"`
}

// BeforeSave verifies that the limit is positive.
func (c *CategoryBudget) BeforeSave(_ *gorm.DB) error {
	if !c.MaxAmount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// BeforeCreate verifies that the referenced category exists.
func (c *CategoryBudget) BeforeCreate(tx *gorm.DB) error {
	err := c.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	return tx.First(&Category{}, "id = ? AND user_id = ?", c.CategoryID, c.UserID).Error
}
