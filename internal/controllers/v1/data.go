package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/importer"
	"github.com/walletwise/backend/internal/importer/parser/csvrecords"
	"github.com/walletwise/backend/internal/models"
)

// ErrNoFilePost is returned when an import request has no file attached.
var ErrNoFilePost = errors.New("you must send a file to this endpoint")

// ErrUnknownFormat is returned for files that are neither CSV nor JSON.
var ErrUnknownFormat = errors.New("the file format is not supported, use .csv or .json")

type ImportResponse struct {
	Data  *importer.Result `json:"data"`
	Error *string          `json:"error"`
}

// ExportQuery selects what is exported and in which format.
type ExportQuery struct {
	Type   string `form:"type" binding:"required"`
	Format string `form:"format"`
}

// RegisterDataRoutes registers the routes for export and import with
// the RouterGroup that is passed.
func RegisterDataRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/export", OptionsExport)
		r.GET("/export", GetExport)
	}
	{
		r.OPTIONS("/import", OptionsImport)
		r.POST("/import", PostImport)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Data
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Data
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Export data
// @Description	Returns the user's records of the requested entity type as a CSV or JSON download. JSON exports can be restored via the import endpoint.
// @Tags			Data
// @Produce		json
// @Produce		text/csv
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the data belongs to"
// @Param			type		query	string	true	"transaction, category, wallet, budget or goal"
// @Param			format		query	string	false	"csv or json, defaults to json"
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	var query ExportQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidQueryString.Error()})
		return
	}

	switch query.Format {
	case "", "json":
		data, err := importer.ExportJSON(models.DB, httputil.UserID(c), query.Type)
		if err != nil {
			c.JSON(exportStatus(err), httpError{Error: err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, query.Type))
		c.Data(http.StatusOK, "application/json", data)
	case "csv":
		data, err := importer.ExportCSV(models.DB, httputil.UserID(c), query.Type)
		if err != nil {
			c.JSON(exportStatus(err), httpError{Error: err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, query.Type))
		c.Data(http.StatusOK, "text/csv", data)
	default:
		c.JSON(http.StatusBadRequest, httpError{Error: ErrUnknownFormat.Error()})
	}
}

// @Summary		Import data
// @Description	Imports records of the requested entity type from an uploaded CSV or JSON file. CSV rows create new records, JSON files restore a previous export.
// @Tags			Data
// @Accept			multipart/form-data
// @Produce		json
// @Success		201	{object}	ImportResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header		string	true	"User the data is imported for"
// @Param			type		query		string	true	"transaction, category, wallet or goal"
// @Param			file		formData	file	true	"File to import"
// @Router			/v1/import [post]
func PostImport(c *gin.Context) {
	entity := c.Query("type")

	formFile, err := c.FormFile("file")
	if formFile == nil {
		c.JSON(http.StatusBadRequest, ImportResponse{Error: errString(ErrNoFilePost)})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ImportResponse{Error: errString(err)})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ImportResponse{Error: errString(err)})
		return
	}
	defer f.Close()

	var result importer.Result
	switch strings.ToLower(filepath.Ext(formFile.Filename)) {
	case ".csv":
		result, err = importCSV(c, entity, f)
	case ".json":
		var data []byte
		data, err = io.ReadAll(f)
		if err == nil {
			result, err = importer.RestoreJSON(models.DB, httputil.UserID(c), entity, data)
		}
	default:
		err = ErrUnknownFormat
	}

	if err != nil {
		c.JSON(exportStatus(err), ImportResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}

func importCSV(c *gin.Context, entity string, f io.Reader) (importer.Result, error) {
	userID := httputil.UserID(c)

	switch entity {
	case "transaction":
		records, err := csvrecords.Transactions(f)
		if err != nil {
			return importer.Result{}, err
		}
		return importer.CreateTransactions(models.DB, userID, records)
	case "category":
		records, err := csvrecords.Categories(f)
		if err != nil {
			return importer.Result{}, err
		}
		return importer.CreateCategories(models.DB, userID, records)
	case "wallet":
		records, err := csvrecords.Wallets(f)
		if err != nil {
			return importer.Result{}, err
		}
		if len(records) == 0 {
			return importer.Result{}, nil
		}
		return importer.CreateWallet(models.DB, userID, records[0])
	case "goal":
		records, err := csvrecords.Goals(f)
		if err != nil {
			return importer.Result{}, err
		}
		return importer.CreateGoals(models.DB, userID, records)
	default:
		return importer.Result{}, fmt.Errorf("%w: %s", importer.ErrUnknownEntity, entity)
	}
}

// exportStatus maps import and export errors. Parse and entity errors are
// the caller's fault, everything else goes through the database mapping.
func exportStatus(err error) int {
	if errors.Is(err, importer.ErrUnknownEntity) || errors.Is(err, ErrUnknownFormat) {
		return http.StatusBadRequest
	}

	return status(err)
}
