// Package importer converts between plain records and stored resources.
// Transaction imports go through the ledger so that wallet balances stay
// consistent; this package contains no accounting logic of its own.
package importer

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the flat shape of a transaction in CSV exports and
// imports. The type and the category are strings and are resolved into the
// closed type enum and a category reference on import.
type TransactionRecord struct {
	Date        *time.Time
	Description string
	Amount      decimal.Decimal
	Type        string
	Category    string
}

// CategoryRecord is the flat shape of a category.
type CategoryRecord struct {
	Name string
}

// WalletRecord is the flat shape of a wallet.
type WalletRecord struct {
	Balance decimal.NullDecimal
}

// GoalRecord is the flat shape of a savings goal.
type GoalRecord struct {
	Title        string
	TargetAmount decimal.Decimal
	CurrentSaved decimal.NullDecimal
	Deadline     *time.Time
}

// Result summarizes an import run.
type Result struct {
	Created       int `json:"created"`       // Number of resources created
	Skipped       int `json:"skipped"`       // Number of records skipped, e.g. duplicates
	NewCategories int `json:"newCategories"` // Number of categories created as a side effect
}
