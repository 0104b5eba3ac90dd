package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/types"
)

// Budget is the planned total spend of a user for one month.
//
// There is at most one Budget per user and month. This is enforced by the
// upsert logic when setting a budget, not by a database constraint.
type Budget struct {
	DefaultModel
	UserID        string          `json:"userId" gorm:"index"` // Opaque ID of the owning user
	Month         types.Month     `json:"month" example:"2025-06-01T00:00:00Z"`
	PlannedAmount decimal.Decimal `json:"plannedAmount" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"500"`
}

// BeforeSave verifies that the planned amount is not negative.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.PlannedAmount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}
