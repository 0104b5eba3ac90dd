package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/report"
	"github.com/walletwise/backend/internal/types"
)

type BudgetEditable struct {
	Month         types.Month     `json:"month" example:"2024-03"`
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"1200.00"`
}

type BudgetResponse struct {
	Data  *models.Budget `json:"data"`
	Error *string        `json:"error"`
}

type BudgetListResponse struct {
	Data  []models.Budget `json:"data"`
	Error *string         `json:"error"`
}

type SummaryResponse struct {
	Data  *report.Summary `json:"data"`
	Error *string         `json:"error"`
}

// SummaryQuery selects the month the summary is calculated for. Both
// fields default to the current month.
type SummaryQuery struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", SetBudget)
	}
	{
		r.OPTIONS("/summary", OptionsBudgetSummary)
		r.GET("/summary", GetBudgetSummary)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets/summary [options]
func OptionsBudgetSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the budgets belong to"
// @Router			/v1/budgets [get]
func GetBudgets(c *gin.Context) {
	var budgets []models.Budget
	err := models.DB.
		Where(&models.Budget{UserID: httputil.UserID(c)}).
		Order("month DESC").
		Find(&budgets).Error
	if err != nil {
		c.JSON(status(err), BudgetListResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// @Summary		Set budget
// @Description	Sets the planned amount for a month. The budget for the month is created when it does not exist yet, otherwise it is updated.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Success		201	{object}	BudgetResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string			true	"User the budget belongs to"
// @Param			budget		body	BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func SetBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: errString(err)})
		return
	}

	if editable.Month.IsZero() {
		editable.Month = types.MonthOf(time.Now().UTC())
	}

	var budget models.Budget
	err := models.DB.First(&budget, "user_id = ? AND month = ?", httputil.UserID(c), editable.Month).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		c.JSON(status(err), BudgetResponse{Error: errString(err)})
		return
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		budget = models.Budget{
			UserID:        httputil.UserID(c),
			Month:         editable.Month,
			PlannedAmount: editable.PlannedAmount,
		}

		if err := models.DB.Create(&budget).Error; err != nil {
			c.JSON(status(err), BudgetResponse{Error: errString(err)})
			return
		}

		c.JSON(http.StatusCreated, BudgetResponse{Data: &budget})
		return
	}

	budget.PlannedAmount = editable.PlannedAmount
	if err := models.DB.Model(&budget).Select("PlannedAmount").Updates(models.Budget{PlannedAmount: editable.PlannedAmount}).Error; err != nil {
		c.JSON(status(err), BudgetResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// @Summary		Budget summary
// @Description	Returns the budget evaluation for a month: totals, usage, health status, savings rate, per-category breakdown and limit alerts.
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the summary is calculated for"
// @Param			year		query	int		false	"Year, defaults to the current one"
// @Param			month		query	int		false	"Month, defaults to the current one"
// @Router			/v1/budgets/summary [get]
func GetBudgetSummary(c *gin.Context) {
	now := time.Now().UTC()
	query := SummaryQuery{Year: now.Year(), Month: int(now.Month())}
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, SummaryResponse{Error: errString(httputil.ErrInvalidQueryString)})
		return
	}

	if query.Month < 1 || query.Month > 12 {
		c.JSON(http.StatusBadRequest, SummaryResponse{Error: errString(httputil.ErrInvalidQueryString)})
		return
	}

	month := types.NewMonth(query.Year, time.Month(query.Month))
	summary, err := report.Evaluate(models.DB, httputil.UserID(c), month)
	if err != nil {
		c.JSON(status(err), SummaryResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}
