package mocks

import (
	"context"

	"school-store/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type StoreRepositoryMock struct {
	mock.Mock
}

func (m *StoreRepositoryMock) ListItems(ctx context.Context, category string, availableOnly bool) ([]models.StoreItem, error) {
	args := m.Called(ctx, category, availableOnly)
	return args.Get(0).([]models.StoreItem), args.Error(1)
}

func (m *StoreRepositoryMock) GetItemById(ctx context.Context, itemID uuid.UUID) (models.StoreItem, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(models.StoreItem), args.Error(1)
}

func (m *StoreRepositoryMock) SaveItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.StoreItem), args.Error(1)
}

func (m *StoreRepositoryMock) UpdateItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.StoreItem), args.Error(1)
}

func (m *StoreRepositoryMock) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *StoreRepositoryMock) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *StoreRepositoryMock) PurchaseItem(ctx context.Context, userID uuid.UUID, item models.StoreItem, size string, quantity, totalCost int) (models.Purchase, int, error) {
	args := m.Called(ctx, userID, item, size, quantity, totalCost)
	return args.Get(0).(models.Purchase), args.Int(1), args.Error(2)
}

func (m *StoreRepositoryMock) ListPurchases(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.Purchase, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).([]models.Purchase), args.Int(1), args.Error(2)
}
