// Package recurring materializes overdue recurring incomes into concrete
// transactions. There is no background scheduler, the catch-up runs lazily
// whenever a wallet is loaded.
package recurring

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
)

// PeriodDays is the length of one posting period. This is a fixed 30-day
// unit, not a calendar month.
const PeriodDays = 30

// PostDue posts all overdue periods for every recurring income of the
// wallet. One transaction is created per period, dated 30, 60, ... days
// after the last processed date, and the last processed date is then set to
// now for the whole run.
//
// Processing is best effort: failures are logged and never surfaced to the
// caller, so a wallet view always succeeds even when this feature's storage
// is unavailable.
func PostDue(db *gorm.DB, wallet *models.Wallet, now time.Time) {
	if !models.Features.RecurringIncomes {
		log.Debug().Str("wallet", wallet.ID.String()).Msg("recurring incomes are not available, skipping processing")
		return
	}

	var incomes []models.RecurringIncome
	err := db.Where(&models.RecurringIncome{UserID: wallet.UserID, WalletID: wallet.ID}).Find(&incomes).Error
	if err != nil {
		log.Error().Err(err).Str("wallet", wallet.ID.String()).Msg("could not load recurring incomes, skipping processing")
		return
	}

	for i := range incomes {
		err = postIncome(db, wallet, &incomes[i], now)
		if err != nil {
			log.Error().Err(err).Str("recurringIncome", incomes[i].ID.String()).Msg("could not post recurring income")
		}
	}
}

// postIncome posts all overdue periods for a single recurring income.
func postIncome(db *gorm.DB, wallet *models.Wallet, income *models.RecurringIncome, now time.Time) error {
	lastProcessed := income.StartDate
	if income.LastProcessedDate != nil {
		lastProcessed = *income.LastProcessedDate
	}

	elapsedDays := int(now.Sub(lastProcessed).Hours() / 24)
	if elapsedDays < PeriodDays {
		return nil
	}

	periods := elapsedDays / PeriodDays

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 1; i <= periods; i++ {
			date := lastProcessed.AddDate(0, 0, PeriodDays*i)

			transaction := models.Transaction{
				Date:        &date,
				Description: income.Description,
				Amount:      income.Amount,
				Type:        models.Income,
			}

			err := ledger.ApplyNew(tx, wallet, &transaction)
			if err != nil {
				return err
			}
		}

		// The "now" captured at the start of the run is the bound for all
		// periods posted in this run.
		income.LastProcessedDate = &now
		return tx.Model(income).Select("LastProcessedDate").Updates(models.RecurringIncome{LastProcessedDate: income.LastProcessedDate}).Error
	})
}
