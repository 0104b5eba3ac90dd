package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is a user's single monetary account. Its balance reflects the net
// effect of all transactions and posted recurring incomes for the wallet.
type Wallet struct {
	DefaultModel
	UserID  string              `json:"userId" gorm:"uniqueIndex" example:"a6c34f31"` // Opaque ID of the owning user
	Balance decimal.NullDecimal `json:"balance" gorm:"type:DECIMAL(20,8)" swaggertype:"number" example:"271.32"`
}

// CurrentBalance returns the balance, treating an unset balance as zero.
func (w Wallet) CurrentBalance() decimal.Decimal {
	if !w.Balance.Valid {
		return decimal.Zero
	}

	return w.Balance.Decimal
}

// AddToBalance adjusts the balance by delta. An unset balance is initialized
// to zero before the adjustment.
func (w *Wallet) AddToBalance(delta decimal.Decimal) {
	w.Balance = decimal.NewNullDecimal(w.CurrentBalance().Add(delta))
}
