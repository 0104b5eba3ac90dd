package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
)

type RecurringIncomeEditable struct {
	Amount      decimal.Decimal `json:"amount" example:"2400.00"`
	StartDate   time.Time       `json:"startDate" example:"2024-01-15T00:00:00Z"`
	Description string          `json:"description" example:"Salary"`
}

type RecurringIncomeResponse struct {
	Data  *models.RecurringIncome `json:"data"`
	Error *string                 `json:"error"`
}

type RecurringIncomeListResponse struct {
	Data  []models.RecurringIncome `json:"data"`
	Error *string                  `json:"error"`
}

// RegisterRecurringIncomeRoutes registers the routes for recurring
// incomes with the RouterGroup that is passed.
func RegisterRecurringIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRecurringIncomeList)
		r.GET("", GetRecurringIncomes)
		r.POST("", CreateRecurringIncome)
	}
	{
		r.OPTIONS("/:id", OptionsRecurringIncomeDetail)
		r.GET("/:id", GetRecurringIncome)
		r.PATCH("/:id", UpdateRecurringIncome)
		r.DELETE("/:id", DeleteRecurringIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringIncomes
// @Success		204
// @Router			/v1/recurring-incomes [options]
func OptionsRecurringIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringIncomes
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/recurring-incomes/{id} [options]
func OptionsRecurringIncomeDetail(c *gin.Context) {
	if _, err := parseID(c); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List recurring incomes
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	RecurringIncomeListResponse
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the incomes belong to"
// @Router			/v1/recurring-incomes [get]
func GetRecurringIncomes(c *gin.Context) {
	var incomes []models.RecurringIncome
	err := models.DB.
		Where(&models.RecurringIncome{UserID: httputil.UserID(c)}).
		Order("start_date ASC").
		Find(&incomes).Error
	if err != nil {
		c.JSON(status(err), RecurringIncomeListResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, RecurringIncomeListResponse{Data: incomes})
}

// @Summary		Create recurring income
// @Description	Creates a recurring income. Overdue periods are posted to the ledger on the next dashboard request.
// @Tags			RecurringIncomes
// @Accept			json
// @Produce		json
// @Success		201	{object}	RecurringIncomeResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string					true	"User the income belongs to"
// @Param			income		body	RecurringIncomeEditable	true	"RecurringIncome"
// @Router			/v1/recurring-incomes [post]
func CreateRecurringIncome(c *gin.Context) {
	var editable RecurringIncomeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, RecurringIncomeResponse{Error: errString(err)})
		return
	}

	wallet, err := ledger.WalletForUser(models.DB, httputil.UserID(c))
	if err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	if editable.StartDate.IsZero() {
		editable.StartDate = time.Now().UTC()
	}

	income := models.RecurringIncome{
		UserID:      httputil.UserID(c),
		WalletID:    wallet.ID,
		Amount:      editable.Amount,
		StartDate:   editable.StartDate,
		Description: editable.Description,
	}

	if err := models.DB.Create(&income).Error; err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusCreated, RecurringIncomeResponse{Data: &income})
}

// @Summary		Get recurring income
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	RecurringIncomeResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the income belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/recurring-incomes/{id} [get]
func GetRecurringIncome(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, RecurringIncomeResponse{Error: errString(err)})
		return
	}

	var income models.RecurringIncome
	if err := models.DB.First(&income, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, RecurringIncomeResponse{Data: &income})
}

// @Summary		Update recurring income
// @Description	Updates amount, start date or description. Already posted transactions are not touched.
// @Tags			RecurringIncomes
// @Accept			json
// @Produce		json
// @Success		200	{object}	RecurringIncomeResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string					true	"User the income belongs to"
// @Param			id			path	string					true	"ID formatted as string"
// @Param			income		body	RecurringIncomeEditable	true	"RecurringIncome"
// @Router			/v1/recurring-incomes/{id} [patch]
func UpdateRecurringIncome(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, RecurringIncomeResponse{Error: errString(err)})
		return
	}

	var income models.RecurringIncome
	if err := models.DB.First(&income, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	editable := RecurringIncomeEditable{
		Amount:      income.Amount,
		StartDate:   income.StartDate,
		Description: income.Description,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, RecurringIncomeResponse{Error: errString(err)})
		return
	}

	income.Amount = editable.Amount
	income.StartDate = editable.StartDate
	income.Description = editable.Description

	err = models.DB.Model(&income).
		Select("Amount", "StartDate", "Description").
		Updates(models.RecurringIncome{
			Amount:      editable.Amount,
			StartDate:   editable.StartDate,
			Description: editable.Description,
		}).Error
	if err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, RecurringIncomeResponse{Data: &income})
}

// @Summary		Delete recurring income
// @Description	Deletes the recurring income. Transactions it already posted stay in the ledger.
// @Tags			RecurringIncomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the income belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/recurring-incomes/{id} [delete]
func DeleteRecurringIncome(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, RecurringIncomeResponse{Error: errString(err)})
		return
	}

	var income models.RecurringIncome
	if err := models.DB.First(&income, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	if err := models.DB.Delete(&income).Error; err != nil {
		c.JSON(status(err), RecurringIncomeResponse{Error: errString(err)})
		return
	}

	c.Status(http.StatusNoContent)
}
