package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
	"school-store/internal/middlewares"

	"github.com/google/uuid"
)

type PointsService struct {
	log              *slog.Logger
	pointsRepository PointsRepository
}

type PointsRepository interface {
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	AwardPoints(ctx context.Context, userID, teacherID uuid.UUID, amount int, reason string) (models.PointsTransaction, int, error)
	ListTransactions(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.PointsTransaction, int, error)
	Leaderboard(ctx context.Context, limit int) ([]models.User, error)
}

var ErrNotAStudent = errors.New("can only award points to students")

func NewPointsService(log *slog.Logger, pointsRepository PointsRepository) *PointsService {
	return &PointsService{
		log:              log,
		pointsRepository: pointsRepository,
	}
}

func transactionToDTO(t models.PointsTransaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:              t.ID,
		UserID:          t.UserID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		Reason:          t.Reason,
		ReferenceID:     t.ReferenceID,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}

// Award credits a single student. Multi-student awards are one call per
// student from the client, mirroring the purchase contract.
func (s *PointsService) Award(ctx context.Context, teacherID uuid.UUID, req dto.AwardRequest) (dto.AwardResponse, error) {
	const op = "services.PointsService.Award"

	log := s.log.With(
		slog.String("op", op),
		slog.String("teacher_id", teacherID.String()),
		slog.String("user_id", req.UserID.String()),
	)

	if err := middlewares.CheckAward(req.Amount, req.Reason); err != nil {
		return dto.AwardResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	student, err := s.pointsRepository.GetUserById(ctx, req.UserID)
	if err != nil {
		return dto.AwardResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if student.Role != models.RoleStudent {
		return dto.AwardResponse{}, fmt.Errorf("%s: %w", op, ErrNotAStudent)
	}

	transaction, newBalance, err := s.pointsRepository.AwardPoints(ctx, req.UserID, teacherID, req.Amount, req.Reason)
	if err != nil {
		log.Error("failed to award points", slog.String("error", err.Error()))
		return dto.AwardResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("points awarded", slog.Int("amount", req.Amount), slog.Int("new_balance", newBalance))

	return dto.AwardResponse{
		Message:     "Points awarded successfully",
		Transaction: transactionToDTO(transaction),
		NewBalance:  newBalance,
	}, nil
}

func (s *PointsService) GetBalance(ctx context.Context, userID uuid.UUID) (dto.UserDTO, error) {
	const op = "services.PointsService.GetBalance"

	user, err := s.pointsRepository.GetUserById(ctx, userID)
	if err != nil {
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	return userToDTO(user), nil
}

func (s *PointsService) ListTransactions(ctx context.Context, userID *uuid.UUID, page, perPage int) (dto.TransactionsPage, error) {
	const op = "services.PointsService.ListTransactions"

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	transactions, total, err := s.pointsRepository.ListTransactions(ctx, userID, page, perPage)
	if err != nil {
		return dto.TransactionsPage{}, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, transactionToDTO(t))
	}

	pages := (total + perPage - 1) / perPage

	return dto.TransactionsPage{
		Transactions: out,
		Total:        total,
		Pages:        pages,
		CurrentPage:  page,
	}, nil
}

func (s *PointsService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	const op = "services.PointsService.Leaderboard"

	if limit < 1 {
		limit = 10
	}

	students, err := s.pointsRepository.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	leaderboard := make([]dto.LeaderboardEntry, 0, len(students))
	for i, student := range students {
		leaderboard = append(leaderboard, dto.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        student.ID,
			FirstName:     student.FirstName,
			LastName:      student.LastName,
			PointsBalance: student.PointsBalance,
		})
	}

	return leaderboard, nil
}
