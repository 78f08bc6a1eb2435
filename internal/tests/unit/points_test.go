package unit

import (
	"context"
	"testing"

	"log/slog"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
	"school-store/internal/middlewares"
	"school-store/internal/services"
	"school-store/internal/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPointsService_Award_CreditsStudent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	teacherID := uuid.New()
	studentID := uuid.New()

	repo := new(mocks.PointsRepositoryMock)
	repo.On("GetUserById", ctx, studentID).
		Return(models.User{ID: studentID, Role: models.RoleStudent, PointsBalance: 100}, nil).Once()
	repo.On("AwardPoints", ctx, studentID, teacherID, 50, "Helped clean the classroom").
		Return(models.PointsTransaction{
			ID:              uuid.New(),
			UserID:          studentID,
			TransactionType: models.TransactionEarned,
			Amount:          50,
			Reason:          "Helped clean the classroom",
			CreatedBy:       &teacherID,
		}, 150, nil).Once()

	service := services.NewPointsService(slog.Default(), repo)

	// Act
	resp, err := service.Award(ctx, teacherID, dto.AwardRequest{
		UserID: studentID,
		Amount: 50,
		Reason: "Helped clean the classroom",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 150, resp.NewBalance)
	assert.Equal(t, "earned", resp.Transaction.TransactionType)
	assert.Equal(t, 50, resp.Transaction.Amount)
	repo.AssertExpectations(t)
}

func TestPointsService_Award_RejectsTeacherRecipient(t *testing.T) {
	// Arrange
	ctx := context.Background()
	teacherID := uuid.New()
	otherTeacherID := uuid.New()

	repo := new(mocks.PointsRepositoryMock)
	repo.On("GetUserById", ctx, otherTeacherID).
		Return(models.User{ID: otherTeacherID, Role: models.RoleTeacher}, nil).Once()

	service := services.NewPointsService(slog.Default(), repo)

	// Act
	_, err := service.Award(ctx, teacherID, dto.AwardRequest{
		UserID: otherTeacherID,
		Amount: 50,
		Reason: "good work",
	})

	// Assert
	assert.ErrorIs(t, err, services.ErrNotAStudent)
	repo.AssertNotCalled(t, "AwardPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPointsService_Award_RejectsNonPositiveAmount(t *testing.T) {
	// Arrange
	repo := new(mocks.PointsRepositoryMock)
	service := services.NewPointsService(slog.Default(), repo)

	// Act
	_, err := service.Award(context.Background(), uuid.New(), dto.AwardRequest{
		UserID: uuid.New(),
		Amount: 0,
		Reason: "good work",
	})

	// Assert
	assert.ErrorIs(t, err, middlewares.ErrNonPositive)
	repo.AssertNotCalled(t, "GetUserById", mock.Anything, mock.Anything)
}

func TestPointsService_Award_RejectsBlankReason(t *testing.T) {
	// Arrange
	repo := new(mocks.PointsRepositoryMock)
	service := services.NewPointsService(slog.Default(), repo)

	// Act
	_, err := service.Award(context.Background(), uuid.New(), dto.AwardRequest{
		UserID: uuid.New(),
		Amount: 25,
		Reason: "   ",
	})

	// Assert
	assert.ErrorIs(t, err, middlewares.ErrEmptyReason)
	repo.AssertNotCalled(t, "GetUserById", mock.Anything, mock.Anything)
}

func TestPointsService_Leaderboard_AssignsRanksInOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()

	repo := new(mocks.PointsRepositoryMock)
	repo.On("Leaderboard", ctx, 10).
		Return([]models.User{
			{ID: uuid.New(), FirstName: "Alice", PointsBalance: 900},
			{ID: uuid.New(), FirstName: "Bob", PointsBalance: 400},
		}, nil).Once()

	service := services.NewPointsService(slog.Default(), repo)

	// Act
	board, err := service.Leaderboard(ctx, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "Alice", board[0].FirstName)
	assert.Equal(t, 2, board[1].Rank)
	repo.AssertExpectations(t)
}

func TestPointsService_ListTransactions_ComputesPageCount(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.PointsRepositoryMock)
	repo.On("ListTransactions", ctx, &userID, 2, 50).
		Return([]models.PointsTransaction{{ID: uuid.New(), UserID: userID}}, 120, nil).Once()

	service := services.NewPointsService(slog.Default(), repo)

	// Act
	page, err := service.ListTransactions(ctx, &userID, 2, 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 120, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.CurrentPage)
	repo.AssertExpectations(t)
}
