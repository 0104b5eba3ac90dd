// Package ledger keeps wallet balances consistent with transaction
// mutations. Every create, edit and delete of a transaction goes through
// this package so that the balance always equals the sum of the signed
// amounts of the stored transactions plus all posted recurring incomes.
package ledger

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/models"
)

// WalletForUser returns the user's wallet. If the user has no wallet,
// models.ErrNoWallet is returned.
func WalletForUser(db *gorm.DB, userID string) (models.Wallet, error) {
	var wallet models.Wallet

	err := db.Where(&models.Wallet{UserID: userID}).First(&wallet).Error
	if err == nil {
		return wallet, nil
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Wallet{}, models.ErrNoWallet
	}

	return models.Wallet{}, err
}

// TransactionForUser returns a transaction by ID, scoped to the wallets of
// the given user. Transactions of other users are indistinguishable from
// transactions that do not exist.
func TransactionForUser(db *gorm.DB, userID string, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction

	err := db.
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", userID).
		First(&transaction, "transactions.id = ?", id).
		Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// ApplyNew stores a new transaction and applies its effect to the wallet
// balance. Both writes happen in one database transaction to keep the
// balance invariant intact even when one of them fails.
func ApplyNew(db *gorm.DB, wallet *models.Wallet, transaction *models.Transaction) error {
	transaction.WalletID = wallet.ID

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(transaction).Error
		if err != nil {
			return err
		}

		wallet.AddToBalance(transaction.Signed())
		return tx.Model(wallet).Select("Balance").Updates(models.Wallet{Balance: wallet.Balance}).Error
	})
}

// ReverseAndReapply persists an edit of a transaction. The balance is
// adjusted by the net difference between the new and the old effect in a
// single update, so there is no observable intermediate state.
func ReverseAndReapply(db *gorm.DB, wallet *models.Wallet, old models.Transaction, updated *models.Transaction) error {
	updated.ID = old.ID
	updated.WalletID = old.WalletID

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(updated).
			Select("Date", "Description", "Amount", "Type", "CategoryID").
			Updates(*updated).Error
		if err != nil {
			return err
		}

		wallet.AddToBalance(updated.Signed().Sub(old.Signed()))
		return tx.Model(wallet).Select("Balance").Updates(models.Wallet{Balance: wallet.Balance}).Error
	})
}

// Reverse deletes a transaction and removes its effect from the wallet
// balance.
func Reverse(db *gorm.DB, wallet *models.Wallet, transaction models.Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Delete(&transaction).Error
		if err != nil {
			return err
		}

		wallet.AddToBalance(transaction.Signed().Neg())
		return tx.Model(wallet).Select("Balance").Updates(models.Wallet{Balance: wallet.Balance}).Error
	})
}
