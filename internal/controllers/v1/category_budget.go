package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/types"
)

type CategoryBudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"3d4161e5-9b6f-4c39-b9a4-1236ac2d1f60"`
	Month      types.Month     `json:"month" example:"2024-03"`
	MaxAmount  decimal.Decimal `json:"maxAmount" example:"250.00"`
}

type CategoryBudgetResponse struct {
	Data  *models.CategoryBudget `json:"data"`
	Error *string                `json:"error"`
}

type CategoryBudgetListResponse struct {
	Data  []models.CategoryBudget `json:"data"`
	Error *string                 `json:"error"`
}

type CategoryBudgetQueryFilter struct {
	Month string `form:"month"`
}

// RegisterCategoryBudgetRoutes registers the routes for category
// spending limits with the RouterGroup that is passed.
func RegisterCategoryBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryBudgetList)
		r.GET("", GetCategoryBudgets)
		r.POST("", SetCategoryBudget)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryBudgetDetail)
		r.DELETE("/:id", DeleteCategoryBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryBudgets
// @Success		204
// @Router			/v1/category-budgets [options]
func OptionsCategoryBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryBudgets
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/category-budgets/{id} [options]
func OptionsCategoryBudgetDetail(c *gin.Context) {
	if _, err := parseID(c); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		List category spending limits
// @Tags			CategoryBudgets
// @Produce		json
// @Success		200	{object}	CategoryBudgetListResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the limits belong to"
// @Param			month		query	string	false	"Month in YYYY-MM notation"
// @Router			/v1/category-budgets [get]
func GetCategoryBudgets(c *gin.Context) {
	var filter CategoryBudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, CategoryBudgetListResponse{Error: errString(httputil.ErrInvalidQueryString)})
		return
	}

	query := models.DB.
		Where(&models.CategoryBudget{UserID: httputil.UserID(c)}).
		Preload("Category").
		Order("month DESC")

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, CategoryBudgetListResponse{Error: errString(err)})
			return
		}
		query = query.Where("month = ?", month)
	}

	var limits []models.CategoryBudget
	if err := query.Find(&limits).Error; err != nil {
		c.JSON(status(err), CategoryBudgetListResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, CategoryBudgetListResponse{Data: limits})
}

// @Summary		Set category spending limit
// @Description	Sets the spending limit for a category and month. The limit is created when it does not exist yet, otherwise it is updated.
// @Tags			CategoryBudgets
// @Accept			json
// @Produce		json
// @Success		200	{object}	CategoryBudgetResponse
// @Success		201	{object}	CategoryBudgetResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string					true	"User the limit belongs to"
// @Param			limit		body	CategoryBudgetEditable	true	"Limit"
// @Router			/v1/category-budgets [post]
func SetCategoryBudget(c *gin.Context) {
	var editable CategoryBudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, CategoryBudgetResponse{Error: errString(err)})
		return
	}

	if editable.Month.IsZero() {
		editable.Month = types.MonthOf(time.Now().UTC())
	}

	var limit models.CategoryBudget
	err := models.DB.First(&limit, "user_id = ? AND category_id = ? AND month = ?",
		httputil.UserID(c), editable.CategoryID, editable.Month).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		c.JSON(status(err), CategoryBudgetResponse{Error: errString(err)})
		return
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		limit = models.CategoryBudget{
			UserID:     httputil.UserID(c),
			CategoryID: editable.CategoryID,
			Month:      editable.Month,
			MaxAmount:  editable.MaxAmount,
		}

		if err := models.DB.Create(&limit).Error; err != nil {
			c.JSON(status(err), CategoryBudgetResponse{Error: errString(err)})
			return
		}

		c.JSON(http.StatusCreated, CategoryBudgetResponse{Data: &limit})
		return
	}

	limit.MaxAmount = editable.MaxAmount
	if err := models.DB.Model(&limit).Select("MaxAmount").Updates(models.CategoryBudget{MaxAmount: editable.MaxAmount}).Error; err != nil {
		c.JSON(status(err), CategoryBudgetResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, CategoryBudgetResponse{Data: &limit})
}

// @Summary		Delete category spending limit
// @Tags			CategoryBudgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the limit belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/category-budgets/{id} [delete]
func DeleteCategoryBudget(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, CategoryBudgetResponse{Error: errString(err)})
		return
	}

	var limit models.CategoryBudget
	if err := models.DB.First(&limit, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), CategoryBudgetResponse{Error: errString(err)})
		return
	}

	if err := models.DB.Delete(&limit).Error; err != nil {
		c.JSON(status(err), CategoryBudgetResponse{Error: errString(err)})
		return
	}

	c.Status(http.StatusNoContent)
}
