package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"school-store/internal/domain/dto"
	"school-store/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StoreService interface {
	ListItems(ctx context.Context, category string, availableOnly bool) ([]dto.ItemDTO, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (dto.ItemDTO, error)
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (dto.ItemDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req dto.UpdateItemRequest) (dto.ItemDTO, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListCategories(ctx context.Context) ([]string, error)
	Purchase(ctx context.Context, userID uuid.UUID, req dto.PurchaseRequest) (dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context, userID *uuid.UUID, page, perPage int) (dto.PurchasesPage, error)
}

// RoleChecker tells purchase-history listing whether the caller is a teacher.
type RoleChecker interface {
	ResolveRole(ctx context.Context, userID string) (string, error)
}

type StoreHandler struct {
	log          *slog.Logger
	storeService StoreService
	roles        RoleChecker
}

func NewStoreHandler(log *slog.Logger, storeService StoreService, roles RoleChecker) *StoreHandler {
	return &StoreHandler{
		log:          log,
		storeService: storeService,
		roles:        roles,
	}
}

// ListItems
// @Summary List catalog items
// @Description Returns the purchasable catalog. Prices come per size via size_pricing.
// @Tags store
// @Produce json
// @Param category query string false "Filter by category"
// @Param available_only query bool false "Hide disabled items (default true)"
// @Success 200 {array} dto.ItemDTO
// @Router /store/items [get]
func (h *StoreHandler) ListItems(c *gin.Context) {
	category := c.Query("category")
	availableOnly := c.DefaultQuery("available_only", "true") == "true"

	items, err := h.storeService.ListItems(c.Request.Context(), category, availableOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem
// @Summary Fetch one catalog item
// @Tags store
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} dto.ItemDTO
// @Failure 404 {object} map[string]string "Not found"
// @Router /store/items/{id} [get]
func (h *StoreHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.storeService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem
// @Summary Create a catalog item (teacher only)
// @Tags store
// @Accept json
// @Produce json
// @Param item body dto.CreateItemRequest true "New item"
// @Success 201 {object} dto.ItemDTO
// @Failure 400 {object} map[string]string "Validation failure"
// @Router /store/items [post]
func (h *StoreHandler) CreateItem(c *gin.Context) {
	var input dto.CreateItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.storeService.CreateItem(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem
// @Summary Update a catalog item (teacher only)
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemDTO
// @Failure 404 {object} map[string]string "Not found"
// @Router /store/items/{id} [put]
func (h *StoreHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var input dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.storeService.UpdateItem(c.Request.Context(), itemID, input)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem
// @Summary Delete a catalog item (teacher only)
// @Tags store
// @Param id path string true "Item id"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /store/items/{id} [delete]
func (h *StoreHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.storeService.DeleteItem(c.Request.Context(), itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCategories
// @Summary Distinct catalog categories
// @Tags store
// @Produce json
// @Success 200 {array} string
// @Router /store/categories [get]
func (h *StoreHandler) ListCategories(c *gin.Context) {
	categories, err := h.storeService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Purchase
// @Summary Purchase one cart line
// @Description Charges the caller for quantity units of one item in one size. Multi-line carts submit one request per line.
// @Tags store
// @Accept json
// @Produce json
// @Param purchase body dto.PurchaseRequest true "Line to purchase"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Insufficient points, bad size, or unavailable item"
// @Router /store/purchase [post]
func (h *StoreHandler) Purchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input dto.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.storeService.Purchase(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, repository.ErrInsufficientPoints):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient points"})
		case errors.Is(err, repository.ErrSizeUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Size is not available for this item"})
		case errors.Is(err, repository.ErrItemUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item is not available"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListPurchases
// @Summary Purchase history
// @Description Students see their own purchases; teachers see everyone's and may filter by user_id.
// @Tags store
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param per_page query int false "Page size (default 20)"
// @Param user_id query string false "Teacher-only filter"
// @Success 200 {object} dto.PurchasesPage
// @Router /store/purchases [get]
func (h *StoreHandler) ListPurchases(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	role, err := h.roles.ResolveRole(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	filter := &userID
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

	pageData, err := h.storeService.ListPurchases(c.Request.Context(), filter, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, pageData)
}
