package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"school-store/internal/domain/dto"
	"school-store/internal/middlewares"
	"school-store/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]dto.UserDTO, error)
	GetUser(ctx context.Context, userID uuid.UUID) (dto.UserDTO, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserDTO, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (dto.UserDTO, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type UserHandler struct {
	log         *slog.Logger
	userService UserService
}

func NewUserHandler(log *slog.Logger, userService UserService) *UserHandler {
	return &UserHandler{
		log:         log,
		userService: userService,
	}
}

// ListUsers
// @Summary List all users (teacher only)
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserDTO
// @Failure 403 {object} map[string]string "Teacher access required"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser
// @Summary Fetch one user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} map[string]string "Not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser
// @Summary Create a user (teacher only)
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "New user"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} map[string]string "Validation failure"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser
// @Summary Update a user (teacher only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} map[string]string "Not found"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, repository.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser
// @Summary Delete a user (teacher only)
// @Tags users
// @Param id path string true "User id"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, middlewares.ErrEmptyField) ||
		errors.Is(err, middlewares.ErrInvalidEmail) ||
		errors.Is(err, middlewares.ErrLoginTooShort) ||
		errors.Is(err, middlewares.ErrPasswordTooShort) ||
		errors.Is(err, middlewares.ErrNameTooShort) ||
		errors.Is(err, middlewares.ErrInvalidRole) ||
		errors.Is(err, middlewares.ErrNonPositive) ||
		errors.Is(err, middlewares.ErrEmptyReason)
}
