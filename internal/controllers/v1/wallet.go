package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/recurring"
	"github.com/walletwise/backend/internal/report"
	"github.com/walletwise/backend/internal/types"
)

type WalletEditable struct {
	Balance decimal.NullDecimal `json:"balance" example:"1500.00"`
}

// Dashboard combines the wallet with the budget summary for the
// current month. This is the payload the landing page renders from.
type Dashboard struct {
	Wallet  models.Wallet  `json:"wallet"`
	Summary report.Summary `json:"summary"`
}

type WalletResponse struct {
	Data  *models.Wallet `json:"data"`
	Error *string        `json:"error"`
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`
	Error *string    `json:"error"`
}

// RegisterWalletRoutes registers the routes for the wallet with
// the RouterGroup that is passed.
func RegisterWalletRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsWallet)
	r.GET("", GetWallet)
	r.POST("", CreateWallet)
	r.PATCH("", UpdateWallet)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallet
// @Success		204
// @Router			/v1/wallet [options]
func OptionsWallet(c *gin.Context) {
	httputil.OptionsGetPostPatch(c)
}

// @Summary		Get dashboard
// @Description	Returns the wallet and the budget summary for the current month. Posts overdue recurring income first.
// @Tags			Wallet
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the wallet belongs to"
// @Router			/v1/wallet [get]
func GetWallet(c *gin.Context) {
	wallet, err := ledger.WalletForUser(models.DB, httputil.UserID(c))
	if err != nil {
		c.JSON(walletStatus(err), DashboardResponse{Error: errString(err)})
		return
	}

	now := time.Now().UTC()
	recurring.PostDue(models.DB, &wallet, now)

	summary, err := report.Evaluate(models.DB, httputil.UserID(c), types.MonthOf(now))
	if err != nil {
		c.JSON(status(err), DashboardResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &Dashboard{Wallet: wallet, Summary: summary}})
}

// @Summary		Create wallet
// @Description	Creates the wallet for the user. Only one wallet can exist per user.
// @Tags			Wallet
// @Accept			json
// @Produce		json
// @Success		201	{object}	WalletResponse
// @Failure		400	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string			true	"User the wallet belongs to"
// @Param			wallet		body	WalletEditable	true	"Wallet"
// @Router			/v1/wallet [post]
func CreateWallet(c *gin.Context) {
	var editable WalletEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, WalletResponse{Error: errString(err)})
		return
	}

	wallet := models.Wallet{
		UserID:  httputil.UserID(c),
		Balance: editable.Balance,
	}

	if err := models.DB.Create(&wallet).Error; err != nil {
		c.JSON(status(err), WalletResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusCreated, WalletResponse{Data: &wallet})
}

// @Summary		Update wallet
// @Description	Sets the wallet balance to the submitted value.
// @Tags			Wallet
// @Accept			json
// @Produce		json
// @Success		200	{object}	WalletResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string			true	"User the wallet belongs to"
// @Param			wallet		body	WalletEditable	true	"Wallet"
// @Router			/v1/wallet [patch]
func UpdateWallet(c *gin.Context) {
	wallet, err := ledger.WalletForUser(models.DB, httputil.UserID(c))
	if err != nil {
		c.JSON(walletStatus(err), WalletResponse{Error: errString(err)})
		return
	}

	editable := WalletEditable{Balance: wallet.Balance}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, WalletResponse{Error: errString(err)})
		return
	}

	wallet.Balance = editable.Balance
	if err := models.DB.Model(&wallet).Select("Balance").Updates(models.Wallet{Balance: editable.Balance}).Error; err != nil {
		c.JSON(status(err), WalletResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &wallet})
}
