package mocks

import (
	"context"

	"school-store/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PointsRepositoryMock struct {
	mock.Mock
}

func (m *PointsRepositoryMock) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *PointsRepositoryMock) AwardPoints(ctx context.Context, userID, teacherID uuid.UUID, amount int, reason string) (models.PointsTransaction, int, error) {
	args := m.Called(ctx, userID, teacherID, amount, reason)
	return args.Get(0).(models.PointsTransaction), args.Int(1), args.Error(2)
}

func (m *PointsRepositoryMock) ListTransactions(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.PointsTransaction, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).([]models.PointsTransaction), args.Int(1), args.Error(2)
}

func (m *PointsRepositoryMock) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.User), args.Error(1)
}
