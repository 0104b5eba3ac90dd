// Package report computes monthly budget usage, category breakdowns and
// over-budget alerts. All computations are pure reads.
package report

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/types"
)

// Health classification for a month's budget usage.
const (
	HealthGood    = "good"
	HealthWarning = "warning"
	HealthDanger  = "danger"
)

// Uncategorized is the bucket for expenses without a category, including
// expenses whose category has been deleted.
const Uncategorized = "Uncategorized"

var oneHundred = decimal.NewFromInt(100)

// CategoryBreakdownItem is the spend of one category in one month.
type CategoryBreakdownItem struct {
	CategoryName string           `json:"categoryName" example:"Groceries"`
	Total        decimal.Decimal  `json:"total" swaggertype:"number" example:"250"`
	MaxAmount    *decimal.Decimal `json:"maxAmount,omitempty" swaggertype:"number" example:"200"` // The category budget for the month, if one exists
}

// CategoryBudgetAlert reports a category whose spend exceeded its limit.
type CategoryBudgetAlert struct {
	CategoryName   string          `json:"categoryName" example:"Groceries"`
	MaxAmount      decimal.Decimal `json:"maxAmount" swaggertype:"number" example:"200"`
	Spent          decimal.Decimal `json:"spent" swaggertype:"number" example:"250"`
	OverAmount     decimal.Decimal `json:"overAmount" swaggertype:"number" example:"50"`
	OverPercentage decimal.Decimal `json:"overPercentage" swaggertype:"number" example:"25"`
}

// Summary is the result of evaluating one month for one user.
type Summary struct {
	Month             types.Month             `json:"month" example:"2025-06-01T00:00:00Z"`
	Balance           decimal.Decimal         `json:"balance" swaggertype:"number" example:"700"`
	TotalIncome       decimal.Decimal         `json:"totalIncome" swaggertype:"number" example:"1000"`
	TotalExpense      decimal.Decimal         `json:"totalExpense" swaggertype:"number" example:"300"`
	PlannedAmount     decimal.Decimal         `json:"plannedAmount" swaggertype:"number" example:"500"`
	Remaining         decimal.Decimal         `json:"remaining" swaggertype:"number" example:"200"` // PlannedAmount minus TotalExpense, may be negative
	UsagePercent      decimal.Decimal         `json:"usagePercent" swaggertype:"number" example:"60"`
	HealthStatus      string                  `json:"healthStatus" example:"good"`
	SavingsRate       decimal.Decimal         `json:"savingsRate" swaggertype:"number" example:"70"`
	MonthsWithBudget  int                     `json:"monthsWithBudget" example:"4"`
	MonthsOverBudget  int                     `json:"monthsOverBudget" example:"1"`
	CategoryBreakdown []CategoryBreakdownItem `json:"categoryBreakdown"`
	CategoryAlerts    []CategoryBudgetAlert   `json:"categoryAlerts"`
}

// zeroSummary is returned for users without a wallet.
func zeroSummary(month types.Month) Summary {
	return Summary{
		Month:             month,
		HealthStatus:      HealthGood,
		CategoryBreakdown: make([]CategoryBreakdownItem, 0),
		CategoryAlerts:    make([]CategoryBudgetAlert, 0),
	}
}

// Evaluate computes the summary for one user and month.
//
// A user without a wallet gets a zero-valued summary, not an error.
func Evaluate(db *gorm.DB, userID string, month types.Month) (Summary, error) {
	wallet, err := ledger.WalletForUser(db, userID)
	if err != nil {
		if errors.Is(err, models.ErrNoWallet) {
			return zeroSummary(month), nil
		}
		return Summary{}, err
	}

	summary := zeroSummary(month)
	summary.Balance = wallet.CurrentBalance()

	summary.TotalIncome, err = MonthSum(db, wallet.ID, models.Income, month)
	if err != nil {
		return Summary{}, err
	}

	summary.TotalExpense, err = MonthSum(db, wallet.ID, models.Expense, month)
	if err != nil {
		return Summary{}, err
	}

	var budget models.Budget
	err = db.Where(&models.Budget{UserID: userID, Month: month}).First(&budget).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		return Summary{}, err
	}
	summary.PlannedAmount = budget.PlannedAmount

	summary.Remaining = summary.PlannedAmount.Sub(summary.TotalExpense)

	if summary.PlannedAmount.IsPositive() {
		summary.UsagePercent = summary.TotalExpense.Div(summary.PlannedAmount).Mul(oneHundred)
	}

	if summary.TotalIncome.IsPositive() {
		summary.SavingsRate = summary.TotalIncome.Sub(summary.TotalExpense).Div(summary.TotalIncome).Mul(oneHundred)
	}

	summary.CategoryBreakdown, err = CategoryBreakdown(db, userID, wallet.ID, month)
	if err != nil {
		return Summary{}, err
	}

	summary.CategoryAlerts = CategoryAlerts(db, userID, month, summary.CategoryBreakdown)

	summary.HealthStatus = healthStatus(summary.UsagePercent, len(summary.CategoryAlerts))

	summary.MonthsWithBudget, summary.MonthsOverBudget, err = OverBudgetHistory(db, userID, wallet.ID)
	if err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// healthStatus classifies budget usage. Any category alert forces "danger",
// regardless of the aggregate usage.
func healthStatus(usagePercent decimal.Decimal, alerts int) string {
	if alerts > 0 {
		return HealthDanger
	}

	if usagePercent.LessThanOrEqual(decimal.NewFromInt(75)) {
		return HealthGood
	}

	if usagePercent.LessThanOrEqual(decimal.NewFromInt(90)) {
		return HealthWarning
	}

	return HealthDanger
}

// MonthSum returns the sum of all transaction amounts of one type for the
// wallet in the given month. Transactions without a date are never counted.
func MonthSum(db *gorm.DB, walletID uuid.UUID, transactionType models.TransactionType, month types.Month) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.
		Model(&models.Transaction{}).
		Where("wallet_id = ? AND type = ?", walletID, transactionType).
		Where("date >= ? AND date < ?", month, month.AddDate(0, 1)).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// CategoryBreakdown groups the month's expenses by category, ordered by
// total descending. Expenses without a category, or whose category was
// deleted, are grouped under the Uncategorized bucket. Each entry carries
// the category budget for the month if one exists.
func CategoryBreakdown(db *gorm.DB, userID string, walletID uuid.UUID, month types.Month) ([]CategoryBreakdownItem, error) {
	var transactions []models.Transaction
	err := db.
		Preload("Category").
		Where("wallet_id = ? AND type = ?", walletID, models.Expense).
		Where("date >= ? AND date < ?", month, month.AddDate(0, 1)).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, transaction := range transactions {
		name := Uncategorized
		if transaction.CategoryID != nil && transaction.Category.Name != "" {
			name = transaction.Category.Name
		}

		if _, ok := totals[name]; !ok {
			order = append(order, name)
		}
		totals[name] = totals[name].Add(transaction.Amount)
	}

	breakdown := make([]CategoryBreakdownItem, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, CategoryBreakdownItem{
			CategoryName: name,
			Total:        totals[name],
		})
	}

	// Sort by total descending. The sort is stable, ties keep group order.
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})

	attachLimits(db, userID, month, breakdown)

	return breakdown, nil
}

// attachLimits sets the MaxAmount for breakdown entries that have a category
// budget for the month.
func attachLimits(db *gorm.DB, userID string, month types.Month, breakdown []CategoryBreakdownItem) {
	if !models.Features.CategoryBudgets {
		return
	}

	budgets := categoryBudgets(db, userID, month)
	for i := range breakdown {
		for _, budget := range budgets {
			if budget.Category.Name == breakdown[i].CategoryName {
				max := budget.MaxAmount
				breakdown[i].MaxAmount = &max
				break
			}
		}
	}
}

// CategoryAlerts compares the month's category spend against the configured
// limits and reports every category whose spend exceeds its limit. When the
// category budget storage is unavailable this degrades to no alerts.
func CategoryAlerts(db *gorm.DB, userID string, month types.Month, breakdown []CategoryBreakdownItem) []CategoryBudgetAlert {
	alerts := make([]CategoryBudgetAlert, 0)

	if !models.Features.CategoryBudgets {
		return alerts
	}

	for _, budget := range categoryBudgets(db, userID, month) {
		for _, item := range breakdown {
			if item.CategoryName != budget.Category.Name || !item.Total.GreaterThan(budget.MaxAmount) {
				continue
			}

			over := item.Total.Sub(budget.MaxAmount)
			alerts = append(alerts, CategoryBudgetAlert{
				CategoryName:   budget.Category.Name,
				MaxAmount:      budget.MaxAmount,
				Spent:          item.Total,
				OverAmount:     over,
				OverPercentage: over.Div(budget.MaxAmount).Mul(oneHundred),
			})
		}
	}

	return alerts
}

// categoryBudgets loads all category budgets of the user for the month.
// Failures degrade to an empty list, never to an error for the caller.
func categoryBudgets(db *gorm.DB, userID string, month types.Month) []models.CategoryBudget {
	var budgets []models.CategoryBudget
	err := db.
		Preload("Category").
		Where(&models.CategoryBudget{UserID: userID, Month: month}).
		Find(&budgets).Error
	if err != nil {
		return nil
	}

	return budgets
}

// OverBudgetHistory counts the months that have a budget at all and, of
// those, the months whose expenses exceeded the planned amount.
func OverBudgetHistory(db *gorm.DB, userID string, walletID uuid.UUID) (withBudget, overBudget int, err error) {
	var budgets []models.Budget
	err = db.Where(&models.Budget{UserID: userID}).Find(&budgets).Error
	if err != nil {
		return 0, 0, err
	}

	for _, budget := range budgets {
		expenses, err := MonthSum(db, walletID, models.Expense, budget.Month)
		if err != nil {
			return 0, 0, err
		}

		if expenses.GreaterThan(budget.PlannedAmount) {
			overBudget++
		}
	}

	return len(budgets), overBudget, nil
}
