package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/models"
)

type GoalEditable struct {
	Title        string              `json:"title" example:"Emergency fund"`
	TargetAmount decimal.Decimal     `json:"targetAmount" example:"5000.00"`
	CurrentSaved decimal.NullDecimal `json:"currentSaved" example:"1250.00"`
	Deadline     time.Time           `json:"deadline" example:"2024-12-31T00:00:00Z"`
}

// GoalEnvelope adds the computed progress to the goal.
type GoalEnvelope struct {
	models.Goal
	Progress decimal.Decimal `json:"progress" example:"25"`
}

func newGoalEnvelope(goal models.Goal) GoalEnvelope {
	return GoalEnvelope{Goal: goal, Progress: goal.Progress()}
}

type GoalResponse struct {
	Data  *GoalEnvelope `json:"data"`
	Error *string       `json:"error"`
}

type GoalListResponse struct {
	Data  []GoalEnvelope `json:"data"`
	Error *string        `json:"error"`
}

// RegisterGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func OptionsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/goals/{id} [options]
func OptionsGoalDetail(c *gin.Context) {
	if _, err := parseID(c); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List savings goals
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalListResponse
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the goals belong to"
// @Router			/v1/goals [get]
func GetGoals(c *gin.Context) {
	var goals []models.Goal
	err := models.DB.
		Where(&models.Goal{UserID: httputil.UserID(c)}).
		Order("deadline ASC").
		Find(&goals).Error
	if err != nil {
		c.JSON(status(err), GoalListResponse{Error: errString(err)})
		return
	}

	envelopes := make([]GoalEnvelope, 0, len(goals))
	for _, goal := range goals {
		envelopes = append(envelopes, newGoalEnvelope(goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: envelopes})
}

// @Summary		Create savings goal
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		201	{object}	GoalResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string			true	"User the goal belongs to"
// @Param			goal		body	GoalEditable	true	"Goal"
// @Router			/v1/goals [post]
func CreateGoal(c *gin.Context) {
	var editable GoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, GoalResponse{Error: errString(err)})
		return
	}

	goal := models.Goal{
		UserID:       httputil.UserID(c),
		Title:        editable.Title,
		TargetAmount: editable.TargetAmount,
		CurrentSaved: editable.CurrentSaved,
		Deadline:     editable.Deadline,
	}

	if err := models.DB.Create(&goal).Error; err != nil {
		c.JSON(status(err), GoalResponse{Error: errString(err)})
		return
	}

	envelope := newGoalEnvelope(goal)
	c.JSON(http.StatusCreated, GoalResponse{Data: &envelope})
}

// @Summary		Get savings goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the goal belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/goals/{id} [get]
func GetGoal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, GoalResponse{Error: errString(err)})
		return
	}

	var goal models.Goal
	if err := models.DB.First(&goal, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), GoalResponse{Error: errString(err)})
		return
	}

	envelope := newGoalEnvelope(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &envelope})
}

// @Summary		Update savings goal
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string			true	"User the goal belongs to"
// @Param			id			path	string			true	"ID formatted as string"
// @Param			goal		body	GoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func UpdateGoal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, GoalResponse{Error: errString(err)})
		return
	}

	var goal models.Goal
	if err := models.DB.First(&goal, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), GoalResponse{Error: errString(err)})
		return
	}

	editable := GoalEditable{
		Title:        goal.Title,
		TargetAmount: goal.TargetAmount,
		CurrentSaved: goal.CurrentSaved,
		Deadline:     goal.Deadline,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, GoalResponse{Error: errString(err)})
		return
	}

	goal.Title = editable.Title
	goal.TargetAmount = editable.TargetAmount
	goal.CurrentSaved = editable.CurrentSaved
	goal.Deadline = editable.Deadline

	err = models.DB.Model(&goal).
		Select("Title", "TargetAmount", "CurrentSaved", "Deadline").
		Updates(models.Goal{
			Title:        editable.Title,
			TargetAmount: editable.TargetAmount,
			CurrentSaved: editable.CurrentSaved,
			Deadline:     editable.Deadline,
		}).Error
	if err != nil {
		c.JSON(status(err), GoalResponse{Error: errString(err)})
		return
	}

	envelope := newGoalEnvelope(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &envelope})
}

// @Summary		Delete savings goal
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			X-User-ID	header	string	true	"User the goal belongs to"
// @Param			id			path	string	true	"ID formatted as string"
// @Router			/v1/goals/{id} [delete]
func DeleteGoal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, GoalResponse{Error: errString(err)})
		return
	}

	var goal models.Goal
	if err := models.DB.First(&goal, "id = ? AND user_id = ?", id, httputil.UserID(c)).Error; err != nil {
		c.JSON(status(err), GoalResponse{Error: errString(err)})
		return
	}

	if err := models.DB.Delete(&goal).Error; err != nil {
		c.JSON(status(err), GoalResponse{Error: errString(err)})
		return
	}

	c.Status(http.StatusNoContent)
}
