package importer

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
)

var titleCaser = cases.Title(language.Und)

// ParseType resolves a free-form type string from an import file. "income",
// "revenu" and "1" (in any casing) mean income, everything else is an
// expense.
func ParseType(s string) models.TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "revenu", "1":
		return models.Income
	default:
		return models.Expense
	}
}

// NormalizeCategoryName brings an imported category name into canonical
// casing, so "groceries" and "GROCERIES" end up as the same category.
func NormalizeCategoryName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// resolveCategory returns the ID of the user's category with the given
// name, matching case-insensitively. If no category matches, one is created.
// An empty name resolves to no category.
func resolveCategory(db *gorm.DB, userID, name string, result *Result) (*uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	normalized := NormalizeCategoryName(name)

	var category models.Category
	err := db.
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, normalized).
		First(&category).Error
	if err == nil {
		return &category.ID, nil
	}

	category = models.Category{UserID: userID, Name: normalized}
	err = db.Create(&category).Error
	if err != nil {
		return nil, err
	}

	result.NewCategories++
	return &category.ID, nil
}

// pastCategory looks up the category of the most recent transaction with
// the same description. It is the fallback for records that carry no
// category of their own.
func pastCategory(db *gorm.DB, walletID uuid.UUID, description string) *uuid.UUID {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	var transaction models.Transaction
	err := db.
		Where("wallet_id = ? AND LOWER(description) = LOWER(?) AND category_id IS NOT NULL", walletID, description).
		Order("date DESC").
		First(&transaction).Error
	if err != nil {
		return nil
	}

	return transaction.CategoryID
}

// CreateTransactions imports transaction records for the user. Category
// names are matched or created, and every transaction is applied through
// the ledger so the wallet balance stays consistent.
func CreateTransactions(db *gorm.DB, userID string, records []TransactionRecord) (Result, error) {
	var result Result

	wallet, err := ledger.WalletForUser(db, userID)
	if err != nil {
		return result, err
	}

	for _, record := range records {
		transaction := models.Transaction{
			Date:        record.Date,
			Description: record.Description,
			Amount:      record.Amount,
			Type:        ParseType(record.Type),
		}

		transaction.CategoryID, err = resolveCategory(db, userID, record.Category, &result)
		if err != nil {
			return result, err
		}

		if transaction.CategoryID == nil {
			transaction.CategoryID = pastCategory(db, wallet.ID, record.Description)
		}

		err = ledger.ApplyNew(db, &wallet, &transaction)
		if err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}

// CreateCategories imports category records, skipping names the user
// already has.
func CreateCategories(db *gorm.DB, userID string, records []CategoryRecord) (Result, error) {
	var result Result

	for _, record := range records {
		if strings.TrimSpace(record.Name) == "" {
			result.Skipped++
			continue
		}

		var count int64
		err := db.Model(&models.Category{}).
			Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, record.Name).
			Count(&count).Error
		if err != nil {
			return result, err
		}
		if count > 0 {
			result.Skipped++
			continue
		}

		err = db.Create(&models.Category{UserID: userID, Name: record.Name}).Error
		if err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}

// CreateWallet imports a wallet record. Users have a single wallet, so the
// record is skipped when one exists already.
func CreateWallet(db *gorm.DB, userID string, record WalletRecord) (Result, error) {
	var result Result

	_, err := ledger.WalletForUser(db, userID)
	if err == nil {
		result.Skipped++
		return result, nil
	}

	err = db.Create(&models.Wallet{UserID: userID, Balance: record.Balance}).Error
	if err != nil {
		return result, err
	}

	result.Created++
	return result, nil
}

// CreateGoals imports goal records.
func CreateGoals(db *gorm.DB, userID string, records []GoalRecord) (Result, error) {
	var result Result

	for _, record := range records {
		goal := models.Goal{
			UserID:       userID,
			Title:        record.Title,
			TargetAmount: record.TargetAmount,
			CurrentSaved: record.CurrentSaved,
		}
		if record.Deadline != nil {
			goal.Deadline = *record.Deadline
		}

		err := db.Create(&goal).Error
		if err != nil {
			return result, err
		}
		result.Created++
	}

	return result, nil
}
