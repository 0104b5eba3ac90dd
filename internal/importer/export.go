package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/models"
)

// ErrUnknownEntity is returned for export and import requests with an
// unsupported entity type.
var ErrUnknownEntity = errors.New("the entity type is not supported")

// csvDateLayout is the date format written to CSV exports.
const csvDateLayout = "2006-01-02 15:04:05"

// ExportJSON returns all of the user's records of the given entity type as
// JSON. The output can be imported again via RestoreJSON.
func ExportJSON(db *gorm.DB, userID, entity string) ([]byte, error) {
	switch entity {
	case "transaction":
		transactions, err := ownedTransactions(db, userID)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(transactions, "", "  ")
	case "category":
		var categories []models.Category
		err := db.Where(&models.Category{UserID: userID}).Find(&categories).Error
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(categories, "", "  ")
	case "wallet":
		var wallets []models.Wallet
		err := db.Where(&models.Wallet{UserID: userID}).Find(&wallets).Error
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(wallets, "", "  ")
	case "budget":
		var budgets []models.Budget
		err := db.Where(&models.Budget{UserID: userID}).Find(&budgets).Error
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(budgets, "", "  ")
	case "goal":
		var goals []models.Goal
		err := db.Where(&models.Goal{UserID: userID}).Find(&goals).Error
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(goals, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
}

// ExportCSV returns all of the user's records of the given entity type as
// CSV. Transactions are exported in the flat TransactionRecord shape with
// category names resolved.
func ExportCSV(db *gorm.DB, userID, entity string) ([]byte, error) {
	switch entity {
	case "transaction":
		records, err := TransactionRecords(db, userID)
		if err != nil {
			return nil, err
		}
		return writeCSV([]string{"Date", "Description", "Amount", "Type", "Category"}, len(records), func(i int) []string {
			date := ""
			if records[i].Date != nil {
				date = records[i].Date.Format(csvDateLayout)
			}
			return []string{date, records[i].Description, records[i].Amount.String(), records[i].Type, records[i].Category}
		})
	case "category":
		var categories []models.Category
		err := db.Where(&models.Category{UserID: userID}).Order("name ASC").Find(&categories).Error
		if err != nil {
			return nil, err
		}
		return writeCSV([]string{"Name"}, len(categories), func(i int) []string {
			return []string{categories[i].Name}
		})
	case "wallet":
		var wallets []models.Wallet
		err := db.Where(&models.Wallet{UserID: userID}).Find(&wallets).Error
		if err != nil {
			return nil, err
		}
		return writeCSV([]string{"Balance"}, len(wallets), func(i int) []string {
			return []string{wallets[i].CurrentBalance().String()}
		})
	case "budget":
		var budgets []models.Budget
		err := db.Where(&models.Budget{UserID: userID}).Find(&budgets).Error
		if err != nil {
			return nil, err
		}
		return writeCSV([]string{"Month", "PlannedAmount"}, len(budgets), func(i int) []string {
			return []string{budgets[i].Month.String(), budgets[i].PlannedAmount.String()}
		})
	case "goal":
		var goals []models.Goal
		err := db.Where(&models.Goal{UserID: userID}).Find(&goals).Error
		if err != nil {
			return nil, err
		}
		return writeCSV([]string{"Title", "TargetAmount", "CurrentSaved", "Deadline"}, len(goals), func(i int) []string {
			saved := ""
			if goals[i].CurrentSaved.Valid {
				saved = goals[i].CurrentSaved.Decimal.String()
			}
			return []string{goals[i].Title, goals[i].TargetAmount.String(), saved, goals[i].Deadline.Format(csvDateLayout)}
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
}

// TransactionRecords returns the user's transactions in the flat record
// shape, with category names resolved and deleted categories resolving to
// an empty name.
func TransactionRecords(db *gorm.DB, userID string) ([]TransactionRecord, error) {
	transactions, err := ownedTransactions(db, userID)
	if err != nil {
		return nil, err
	}

	records := make([]TransactionRecord, 0, len(transactions))
	for _, transaction := range transactions {
		records = append(records, TransactionRecord{
			Date:        transaction.Date,
			Description: transaction.Description,
			Amount:      transaction.Amount,
			Type:        string(transaction.Type),
			Category:    transaction.Category.Name,
		})
	}

	return records, nil
}

// ownedTransactions returns all transactions of the user's wallets, newest
// first.
func ownedTransactions(db *gorm.DB, userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.
		Preload("Category").
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// writeCSV writes a header and rows to a CSV document.
func writeCSV(header []string, rows int, row func(i int) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	err := w.Write(header)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		err = w.Write(row(i))
		if err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
