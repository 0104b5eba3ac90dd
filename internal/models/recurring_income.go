package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringIncome is a template for periodic income. It is materialized into
// concrete transactions in 30-day periods by the recurring income poster.
type RecurringIncome struct {
	DefaultModel
	UserID            string          `json:"userId" gorm:"index"` // Opaque ID of the owning user
	WalletID          uuid.UUID       `json:"walletId"`
	Wallet            Wallet          `json:"-"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"200"`
	StartDate         time.Time       `json:"startDate"`
	LastProcessedDate *time.Time      `json:"lastProcessedDate"` // Nil until the first posting run
	Description       string          `json:"description" example:"Side gig"`
}

// BeforeSave
//   - trims whitespace from the description
//   - enforces UTC dates
//   - verifies that the amount is positive and the start date is set
func (r *RecurringIncome) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)

	if r.StartDate.IsZero() {
		return ErrStartDateNotSet
	}
	r.StartDate = r.StartDate.In(time.UTC)

	if r.LastProcessedDate != nil {
		date := r.LastProcessedDate.In(time.UTC)
		r.LastProcessedDate = &date
	}

	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
