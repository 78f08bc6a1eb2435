package services

import (
	"context"
	"fmt"
	"log/slog"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
	"school-store/internal/middlewares"
	"school-store/internal/repository"

	"github.com/google/uuid"
)

type StoreService struct {
	log             *slog.Logger
	storeRepository StoreRepository
}

type StoreRepository interface {
	ListItems(ctx context.Context, category string, availableOnly bool) ([]models.StoreItem, error)
	GetItemById(ctx context.Context, itemID uuid.UUID) (models.StoreItem, error)
	SaveItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error)
	UpdateItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListCategories(ctx context.Context) ([]string, error)
	PurchaseItem(ctx context.Context, userID uuid.UUID, item models.StoreItem, size string, quantity, totalCost int) (models.Purchase, int, error)
	ListPurchases(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.Purchase, int, error)
}

func NewStoreService(log *slog.Logger, storeRepository StoreRepository) *StoreService {
	return &StoreService{
		log:             log,
		storeRepository: storeRepository,
	}
}

func itemToDTO(item models.StoreItem) dto.ItemDTO {
	return dto.ItemDTO{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		AvailableSizes: item.AvailableSizes,
		SizePricing:    item.SizePricing(),
		ImageURL:       item.ImageURL,
		Category:       item.Category,
		IsAvailable:    item.IsAvailable,
		CreatedAt:      item.CreatedAt,
	}
}

func purchaseToDTO(p models.Purchase, itemName string) dto.PurchaseDTO {
	return dto.PurchaseDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		ItemID:    p.ItemID,
		ItemName:  itemName,
		Quantity:  p.Quantity,
		Size:      p.Size,
		TotalCost: p.TotalCost,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func (s *StoreService) ListItems(ctx context.Context, category string, availableOnly bool) ([]dto.ItemDTO, error) {
	const op = "services.StoreService.ListItems"

	items, err := s.storeRepository.ListItems(ctx, category, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, itemToDTO(item))
	}

	return out, nil
}

func (s *StoreService) GetItem(ctx context.Context, itemID uuid.UUID) (dto.ItemDTO, error) {
	const op = "services.StoreService.GetItem"

	item, err := s.storeRepository.GetItemById(ctx, itemID)
	if err != nil {
		return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	return itemToDTO(item), nil
}

// normalizeSizes converts incoming labels (XS, S, ...) to canonical names and
// rejects unknown sizes.
func normalizeSizes(in []string) ([]string, error) {
	if len(in) == 0 {
		return []string{"medium"}, nil
	}

	out := make([]string, 0, len(in))
	for _, size := range in {
		if !models.ValidSize(size) {
			return nil, fmt.Errorf("invalid size: %s", size)
		}
		out = append(out, models.NormalizeSize(size))
	}

	return out, nil
}

func (s *StoreService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (dto.ItemDTO, error) {
	const op = "services.StoreService.CreateItem"

	if req.Name == "" {
		return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, middlewares.ErrEmptyField)
	}

	sizes, err := normalizeSizes(req.AvailableSizes)
	if err != nil {
		return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	saved, err := s.storeRepository.SaveItem(ctx, models.StoreItem{
		Name:           req.Name,
		Description:    req.Description,
		AvailableSizes: sizes,
		ImageURL:       req.ImageURL,
		Category:       req.Category,
		IsAvailable:    available,
	})
	if err != nil {
		return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("store item created",
		slog.String("op", op),
		slog.String("item_id", saved.ID.String()),
		slog.String("name", saved.Name),
	)

	return itemToDTO(saved), nil
}

func (s *StoreService) UpdateItem(ctx context.Context, itemID uuid.UUID, req dto.UpdateItemRequest) (dto.ItemDTO, error) {
	const op = "services.StoreService.UpdateItem"

	item, err := s.storeRepository.GetItemById(ctx, itemID)
	if err != nil {
		return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.AvailableSizes != nil {
		sizes, sizeErr := normalizeSizes(req.AvailableSizes)
		if sizeErr != nil {
			return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, sizeErr)
		}
		item.AvailableSizes = sizes
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	updated, err := s.storeRepository.UpdateItem(ctx, item)
	if err != nil {
		return dto.ItemDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	return itemToDTO(updated), nil
}

func (s *StoreService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	const op = "services.StoreService.DeleteItem"

	if err := s.storeRepository.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *StoreService) ListCategories(ctx context.Context) ([]string, error) {
	const op = "services.StoreService.ListCategories"

	categories, err := s.storeRepository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

// Purchase charges one cart line: quantity units of one item in one size.
// Multi-line carts call this once per line; there is deliberately no batch
// endpoint, the client owns the partial-success contract.
func (s *StoreService) Purchase(ctx context.Context, userID uuid.UUID, req dto.PurchaseRequest) (dto.PurchaseResponse, error) {
	const op = "services.StoreService.Purchase"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("item_id", req.ItemID.String()),
	)

	if req.Quantity <= 0 {
		return dto.PurchaseResponse{}, fmt.Errorf("%s: %w", op, middlewares.ErrNonPositive)
	}

	item, err := s.storeRepository.GetItemById(ctx, req.ItemID)
	if err != nil {
		return dto.PurchaseResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if !item.IsAvailable {
		return dto.PurchaseResponse{}, fmt.Errorf("%s: %w", op, repository.ErrItemUnavailable)
	}

	price, ok := item.PriceForSize(req.Size)
	if !ok {
		return dto.PurchaseResponse{}, fmt.Errorf("%s: %w", op, repository.ErrSizeUnavailable)
	}

	totalCost := price * req.Quantity

	purchase, newBalance, err := s.storeRepository.PurchaseItem(ctx, userID, item, models.NormalizeSize(req.Size), req.Quantity, totalCost)
	if err != nil {
		log.Info("purchase rejected", slog.String("error", err.Error()))
		return dto.PurchaseResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("purchase completed",
		slog.Int("total_cost", totalCost),
		slog.Int("new_balance", newBalance),
	)

	return dto.PurchaseResponse{
		Message:    "Purchase successful",
		Purchase:   purchaseToDTO(purchase, item.Name),
		NewBalance: newBalance,
	}, nil
}

func (s *StoreService) ListPurchases(ctx context.Context, userID *uuid.UUID, page, perPage int) (dto.PurchasesPage, error) {
	const op = "services.StoreService.ListPurchases"

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	purchases, total, err := s.storeRepository.ListPurchases(ctx, userID, page, perPage)
	if err != nil {
		return dto.PurchasesPage{}, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.PurchaseDTO, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, purchaseToDTO(p, ""))
	}

	pages := (total + perPage - 1) / perPage

	return dto.PurchasesPage{
		Purchases:   out,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}
