package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Expense TransactionType = "EXPENSE"
	Income  TransactionType = "INCOME"
)

// Valid reports whether the type is one of the two allowed values.
func (t TransactionType) Valid() bool {
	return t == Expense || t == Income
}

// Transaction is a single dated monetary movement against a wallet.
type Transaction struct {
	DefaultModel
	WalletID    uuid.UUID       `json:"walletId"`
	Wallet      Wallet          `json:"-"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Category    Category        `json:"-"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"14.27"`
	Type        TransactionType `json:"type" example:"EXPENSE"`
}

// Signed returns the effect of the transaction on a wallet balance:
// positive for income, negative for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}

	return t.Amount.Neg()
}

// AfterFind enforces UTC for the transaction date.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	if t.Date != nil {
		date := t.Date.In(time.UTC)
		t.Date = &date
	}

	return nil
}

// BeforeSave
//   - trims whitespace from the description
//   - sets the timezone for the date to UTC
//   - defaults the type to Expense
//   - verifies that the amount is positive and the type is valid
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.Date != nil {
		date := t.Date.In(time.UTC)
		t.Date = &date
	}

	// Ensure that the category ID is nil and not a pointer to a nil UUID
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.Type == "" {
		t.Type = Expense
	}

	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
