package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
	"school-store/internal/lib/sessions"
	"school-store/internal/repository"
	"school-store/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (models.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type AuthHandler struct {
	log         *slog.Logger
	authService AuthService
	cookieTTL   int
}

func NewAuthHandler(log *slog.Logger, authService AuthService, cookieTTL int) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: authService,
		cookieTTL:   cookieTTL,
	}
}

func authUserDTO(user models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          string(user.Role),
		PointsBalance: user.PointsBalance,
		CreatedAt:     user.CreatedAt,
	}
}

// Login
// @Summary Log in with username and password
// @Description Opens a cookie-backed session. The profile in the response carries the authoritative points balance.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.UserDTO "Login successful"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrFailedToCreateSession) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		}
		return
	}

	c.SetCookie(sessions.CookieName, token, h.cookieTTL, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    authUserDTO(user),
	})
}

// Me
// @Summary Current authenticated user
// @Description Re-fetch point of truth for the points balance after purchases and awards.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, authUserDTO(user))
}

// Logout
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionIDVal, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionIDVal.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.SetCookie(sessions.CookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// currentUserID pulls the authenticated user id set by the session middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDVal.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return uuid.Nil, false
	}

	return userID, true
}
