package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/types"
)

type TransactionEditable struct {
	Date        *time.Time             `json:"date" example:"2024-03-17T00:00:00Z"`
	Description string                 `json:"description" example:"Groceries"`
	Amount      decimal.Decimal        `json:"amount" example:"54.30"`
	Type        models.TransactionType `json:"type" example:"EXPENSE"`
	CategoryID  *uuid.UUID             `json:"categoryId" example:"3d4161e5-9b6f-4c39-b9a4-1236ac2d1f60"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date,
		Description: editable.Description,
		Amount:      editable.Amount,
		Type:        editable.Type,
		CategoryID:  editable.CategoryID,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error"`
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`
	Error *string              `json:"error"`
}

// TransactionQueryFilter narrows down the transaction list.
type TransactionQueryFilter struct {
	Month      string `form:"month"`
	Type       string `form:"type"`
	CategoryID string `form:"category"`
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	if _, err := parseID(c); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List transactions
// @Description	Returns the user's transactions, newest first. Optional filters on month, type and category.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the transactions belong to"
// @Param			month		query	string	false	"Month in YYYY-MM notation"
// @Param			type		query	string	false	"INCOME or EXPENSE"
// @Param			category	query	string	false	"Category ID"
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: errString(httputil.ErrInvalidQueryString)})
		return
	}

	query := models.DB.
		Model(&models.Transaction{}).
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", httputil.UserID(c)).
		Preload("Category").
		Order("date DESC")

	if filter.Type != "" {
		transactionType := models.TransactionType(filter.Type)
		if !transactionType.Valid() {
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: errString(models.ErrInvalidTransactionType)})
			return
		}
		query = query.Where("transactions.type = ?", transactionType)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: errString(err)})
			return
		}
		query = query.Where("transactions.date >= ? AND transactions.date < ?", time.Time(month), time.Time(month.AddDate(0, 1)))
	}

	if filter.CategoryID != "" {
		id, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: errString(httputil.ErrInvalidUUID)})
			return
		}
		query = query.Where("transactions.category_id = ?", id)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		c.JSON(status(err), TransactionListResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary		Create transaction
// @Description	Creates a transaction and applies its effect to the wallet balance.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string				true	"User the transaction belongs to"
// @Param			transaction	body	TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: errString(err)})
		return
	}

	wallet, err := ledger.WalletForUser(models.DB, httputil.UserID(c))
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	if err := checkCategory(models.DB, httputil.UserID(c), editable.CategoryID); err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	transaction := editable.model()
	if transaction.Date == nil {
		now := time.Now().UTC()
		transaction.Date = &now
	}

	if err := ledger.ApplyNew(models.DB, &wallet, &transaction); err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// @Summary		Get transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the transaction belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: errString(err)})
		return
	}

	transaction, err := ledger.TransactionForUser(models.DB, httputil.UserID(c), id)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Update transaction
// @Description	Updates the transaction. The old effect on the wallet balance is reversed and the new one applied.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string				true	"User the transaction belongs to"
// @Param			id			path	string				true	"ID formatted as string"
// @Param			transaction	body	TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: errString(err)})
		return
	}

	transaction, err := ledger.TransactionForUser(models.DB, httputil.UserID(c), id)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	// Fields not set in the request keep their current value
	editable := TransactionEditable{
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Type:        transaction.Type,
		CategoryID:  transaction.CategoryID,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: errString(err)})
		return
	}

	if err := checkCategory(models.DB, httputil.UserID(c), editable.CategoryID); err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	wallet, err := ledger.WalletForUser(models.DB, httputil.UserID(c))
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	updated := editable.model()
	if err := ledger.ReverseAndReapply(models.DB, &wallet, transaction, &updated); err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &updated})
}

// @Summary		Delete transaction
// @Description	Deletes the transaction and reverses its effect on the wallet balance.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the transaction belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: errString(err)})
		return
	}

	transaction, err := ledger.TransactionForUser(models.DB, httputil.UserID(c), id)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	wallet, err := ledger.WalletForUser(models.DB, httputil.UserID(c))
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	if err := ledger.Reverse(models.DB, &wallet, transaction); err != nil {
		c.JSON(status(err), TransactionResponse{Error: errString(err)})
		return
	}

	c.Status(http.StatusNoContent)
}

// checkCategory verifies that the referenced category exists and belongs
// to the user. A nil reference is fine.
func checkCategory(db *gorm.DB, userID string, id *uuid.UUID) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}

	return db.First(&models.Category{}, "id = ? AND user_id = ?", id, userID).Error
}
