package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "piggybank/internal/errors"
	"piggybank/internal/patch"
	"piggybank/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Title        string   `json:"title" binding:"required,not_blank"`
	TargetAmount *float64 `json:"target_amount" binding:"required,gt=0"`
	TargetDate   *string  `json:"target_date"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"image_url"`
}

// UpdateGoalRequest represents a partial goal update. Omitted keys are left
// untouched; null clears target_date, description and image_url.
type UpdateGoalRequest struct {
	Title        patch.Field[string]  `json:"title" swaggertype:"string"`
	TargetAmount patch.Field[float64] `json:"target_amount" swaggertype:"number"`
	TargetDate   patch.Field[string]  `json:"target_date" swaggertype:"string"`
	Description  patch.Field[string]  `json:"description" swaggertype:"string"`
	ImageURL     patch.Field[string]  `json:"image_url" swaggertype:"string"`
	IsActive     patch.Field[bool]    `json:"is_active" swaggertype:"boolean"`
}

// CreateGoal handles the creation of a new savings goal
// @Summary     Create a goal
// @Description Create a savings goal. The balance always starts at zero.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     200 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	var targetDate *time.Time
	if req.TargetDate != nil && *req.TargetDate != "" {
		parsed, err := parseFlexibleTime(*req.TargetDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		targetDate = &parsed
	}

	goal, err := h.goalService.CreateGoal(services.GoalInput{
		Title:        req.Title,
		TargetAmount: *req.TargetAmount,
		TargetDate:   targetDate,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": goal.Title, "target_amount": goal.TargetAmount})

	c.JSON(http.StatusOK, goal)
}

// ListGoals handles the retrieval of all goals
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Param       skip  query int false "Offset (default 0)"
// @Param       limit query int false "Page size (default 100, max 1000)"
// @Success     200 {array}  models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.ListGoals(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// GetGoal handles the retrieval of a single goal
// @Summary     Get a goal
// @Tags        goals
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoal(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// UpdateGoal handles a partial update of a goal
// @Summary     Update a goal
// @Description Update the fields present in the body. current_balance cannot be set.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidBody(err))
		return
	}

	targetDate, err := patch.Convert(req.TargetDate, parseFlexibleTime)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(goalID, services.GoalPatch{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		TargetDate:   targetDate,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_GOAL", "goal", goal.ID, c.ClientIP(), changedFields(map[string]interface{}{
		"title":         req.Title,
		"target_amount": req.TargetAmount,
		"target_date":   req.TargetDate,
		"description":   req.Description,
		"image_url":     req.ImageURL,
		"is_active":     req.IsActive,
	}))

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal handles the deletion of a goal and all of its transactions
// @Summary     Delete a goal
// @Tags        goals
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

// ListGoalTransactions handles the retrieval of one goal's transactions
// @Summary     List a goal's transactions
// @Tags        goals,transactions
// @Produce     json
// @Param       id    path  int true  "Goal ID"
// @Param       skip  query int false "Offset (default 0)"
// @Param       limit query int false "Page size (default 100, max 1000)"
// @Success     200 {array}  models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/transactions [get]
func (h *GoalHandler) ListGoalTransactions(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.goalService.ListGoalTransactions(goalID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetGoalProgress reports how close a goal is to its target
// @Summary     Get goal progress
// @Tags        goals
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} services.GoalProgress
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [get]
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.GetGoalProgress(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// ResetGoalProgress removes every transaction of a goal
// @Summary     Reset goal progress
// @Description Delete all of the goal's transactions. The balance returns to zero.
// @Tags        goals
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/reset [post]
func (h *GoalHandler) ResetGoalProgress(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.ResetGoalProgress(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RESET_GOAL", "goal", goal.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, goal)
}
