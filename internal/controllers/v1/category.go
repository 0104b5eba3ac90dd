package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/models"
)

type CategoryEditable struct {
	Name string `json:"name" example:"Groceries"`
}

type CategoryResponse struct {
	Data  *models.Category `json:"data"`
	Error *string          `json:"error"`
}

type CategoryListResponse struct {
	Data  []models.Category `json:"data"`
	Error *string           `json:"error"`
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	if _, err := parseID(c); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the categories belong to"
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	var categories []models.Category
	err := models.DB.
		Where(&models.Category{UserID: httputil.UserID(c)}).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// @Summary		Create category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201	{object}	CategoryResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string				true	"User the category belongs to"
// @Param			category	body	CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	category := models.Category{
		UserID: httputil.UserID(c),
		Name:   editable.Name,
	}

	if err := models.DB.Create(&category).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// @Summary		Get category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the category belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: errString(err)})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// @Summary		Update category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string				true	"User the category belongs to"
// @Param			id			path	string				true	"ID formatted as string"
// @Param			category	body	CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: errString(err)})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: errString(err)})
		return
	}

	editable := CategoryEditable{Name: category.Name}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: errString(err)})
		return
	}

	category.Name = editable.Name
	if err := models.DB.Model(&category).Select("Name").Updates(models.Category{Name: editable.Name}).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: errString(err)})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// @Summary		Delete category
// @Description	Deletes the category. Transactions keep their reference and are reported as uncategorized.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the category belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: errString(err)})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: errString(err)})
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: errString(err)})
		return
	}

	c.Status(http.StatusNoContent)
}
