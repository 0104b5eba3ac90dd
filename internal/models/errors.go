package models

import (
	"errors"
)

var (
	// ErrGeneral is returned when the database failed in a way we cannot
	// explain to the user.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is returned for all lookups that do not match a
	// record owned by the requesting user. Records owned by other users are
	// reported exactly the same way as records that do not exist.
	ErrResourceNotFound = errors.New("there is no")

	// ErrNoWallet is returned when an operation needs a wallet, but the user
	// has not created one yet.
	ErrNoWallet = errors.New("you need to create a wallet before you can use this resource")

	// ErrWalletExists is returned when a user tries to create a second wallet.
	ErrWalletExists = errors.New("you already have a wallet")

	ErrAmountNotPositive      = errors.New("the amount must be larger than zero")
	ErrAmountNegative         = errors.New("the amount must not be negative")
	ErrInvalidTransactionType = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrStartDateNotSet        = errors.New("the start date must be set")
)
