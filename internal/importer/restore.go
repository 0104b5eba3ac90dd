package importer

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
)

// RestoreJSON imports records of the given entity type from a JSON export.
//
// Ownership is always forced to the importing user. IDs present in the file
// are preserved so a full restore keeps resource identity; records whose ID
// already exists are skipped. Transactions are applied through the ledger.
func RestoreJSON(db *gorm.DB, userID, entity string, data []byte) (Result, error) {
	switch entity {
	case "transaction":
		return restoreTransactions(db, userID, data)
	case "category":
		var categories []models.Category
		return restoreRecords(db, data, &categories, func(c *models.Category) uuid.UUID {
			c.UserID = userID
			return c.ID
		})
	case "wallet":
		return restoreWallets(db, userID, data)
	case "budget":
		var budgets []models.Budget
		return restoreRecords(db, data, &budgets, func(b *models.Budget) uuid.UUID {
			b.UserID = userID
			return b.ID
		})
	case "goal":
		var goals []models.Goal
		return restoreRecords(db, data, &goals, func(g *models.Goal) uuid.UUID {
			g.UserID = userID
			return g.ID
		})
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
}

// restoreTransactions restores transactions through the ledger. Transactions
// referencing a wallet the user does not own are reattached to the user's
// wallet.
func restoreTransactions(db *gorm.DB, userID string, data []byte) (Result, error) {
	var result Result

	var transactions []models.Transaction
	err := json.Unmarshal(data, &transactions)
	if err != nil {
		return result, err
	}

	wallet, err := ledger.WalletForUser(db, userID)
	if err != nil {
		return result, err
	}

	for i := range transactions {
		transaction := transactions[i]
		transaction.Timestamps = models.Timestamps{}

		if transaction.ID != uuid.Nil && exists(db, &models.Transaction{}, transaction.ID) {
			result.Skipped++
			continue
		}

		// ApplyNew attaches the transaction to the user's wallet, which also
		// drops references to foreign wallets.
		err = ledger.ApplyNew(db, &wallet, &transaction)
		if err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}

// restoreWallets restores at most one wallet, since users have a single
// wallet.
func restoreWallets(db *gorm.DB, userID string, data []byte) (Result, error) {
	var result Result

	var wallets []models.Wallet
	err := json.Unmarshal(data, &wallets)
	if err != nil {
		return result, err
	}

	for i := range wallets {
		wallet := wallets[i]
		wallet.UserID = userID
		wallet.Timestamps = models.Timestamps{}

		if wallet.ID != uuid.Nil && exists(db, &models.Wallet{}, wallet.ID) {
			result.Skipped++
			continue
		}

		if _, err := ledger.WalletForUser(db, userID); err == nil {
			result.Skipped++
			continue
		}

		err = db.Create(&wallet).Error
		if err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}

// restoreRecords unmarshals and stores a list of records, skipping records
// whose ID already exists. prepare forces ownership and returns the ID.
func restoreRecords[R any](db *gorm.DB, data []byte, records *[]R, prepare func(*R) uuid.UUID) (Result, error) {
	var result Result

	err := json.Unmarshal(data, records)
	if err != nil {
		return result, err
	}

	for i := range *records {
		record := (*records)[i]
		id := prepare(&record)

		if id != uuid.Nil && exists(db, new(R), id) {
			result.Skipped++
			continue
		}

		err = db.Create(&record).Error
		if err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}

// exists reports whether a record with the ID is stored, including soft
// deleted ones.
func exists(db *gorm.DB, model any, id uuid.UUID) bool {
	var count int64
	db.Model(model).Unscoped().Where("id = ?", id).Count(&count)
	return count > 0
}
