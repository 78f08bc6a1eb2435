package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"school-store/internal/domain/dto"
	"school-store/internal/repository"
	"school-store/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PointsService interface {
	Award(ctx context.Context, teacherID uuid.UUID, req dto.AwardRequest) (dto.AwardResponse, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (dto.UserDTO, error)
	ListTransactions(ctx context.Context, userID *uuid.UUID, page, perPage int) (dto.TransactionsPage, error)
	Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type PointsHandler struct {
	log           *slog.Logger
	pointsService PointsService
	roles         RoleChecker
}

func NewPointsHandler(log *slog.Logger, pointsService PointsService, roles RoleChecker) *PointsHandler {
	return &PointsHandler{
		log:           log,
		pointsService: pointsService,
		roles:         roles,
	}
}

// Award
// @Summary Award points to a student (teacher only)
// @Description One call per student; multi-student awards are sequential client-side.
// @Tags points
// @Accept json
// @Produce json
// @Param award body dto.AwardRequest true "Award"
// @Success 201 {object} dto.AwardResponse
// @Failure 400 {object} map[string]string "Validation failure or non-student target"
// @Router /points/award [post]
func (h *PointsHandler) Award(c *gin.Context) {
	teacherID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input dto.AwardRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.pointsService.Award(c.Request.Context(), teacherID, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrNotAStudent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Can only award points to students"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetBalance
// @Summary Points balance for a user
// @Description Students may only read their own balance.
// @Tags points
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} dto.UserDTO
// @Failure 403 {object} map[string]string "Access denied"
// @Router /points/{id} [get]
func (h *PointsHandler) GetBalance(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if targetID != callerID {
		role, roleErr := h.roles.ResolveRole(c.Request.Context(), callerID.String())
		if roleErr != nil || role != "teacher" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	user, err := h.pointsService.GetBalance(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":        user.ID,
		"points_balance": user.PointsBalance,
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
	})
}

// ListTransactions
// @Summary Point transaction history
// @Description Students see their own transactions; teachers see everyone's and may filter by user_id.
// @Tags points
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param per_page query int false "Page size (default 50)"
// @Param user_id query string false "Teacher-only filter"
// @Success 200 {object} dto.TransactionsPage
// @Router /points/transactions [get]
func (h *PointsHandler) ListTransactions(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))

	role, err := h.roles.ResolveRole(c.Request.Context(), callerID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	filter := &callerID
	if role == "teacher" {
		filter = nil
		if raw := c.Query("user_id"); raw != "" {
			parsed, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
				return
			}
			filter = &parsed
		}
	}

	pageData, err := h.pointsService.ListTransactions(c.Request.Context(), filter, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, pageData)
}

// Leaderboard
// @Summary Top students by points balance (teacher only)
// @Tags points
// @Produce json
// @Param limit query int false "Number of entries (default 10)"
// @Success 200 {object} map[string][]dto.LeaderboardEntry
// @Router /points/leaderboard [get]
func (h *PointsHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	leaderboard, err := h.pointsService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": leaderboard})
}
