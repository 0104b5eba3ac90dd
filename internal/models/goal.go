package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target. It only carries CRUD state, the progress
// percentage is computed at read time.
type Goal struct {
	DefaultModel
	UserID       string              `json:"userId" gorm:"index"` // Opaque ID of the owning user
	Title        string              `json:"title" example:"Vacation"`
	TargetAmount decimal.Decimal     `json:"targetAmount" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"1500"`
	CurrentSaved decimal.NullDecimal `json:"currentSaved" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"320"`
	Deadline     time.Time           `json:"deadline"`
}

// Progress returns how much of the target has been saved, in percent.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	saved := decimal.Zero
	if g.CurrentSaved.Valid {
		saved = g.CurrentSaved.Decimal
	}

	return saved.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
}

// BeforeSave trims the title and verifies that the target is positive.
func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Title = strings.TrimSpace(g.Title)

	if !g.TargetAmount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
