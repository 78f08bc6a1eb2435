package postgres

import (
	"context"
	"errors"
	"fmt"

	"school-store/internal/domain/models"
	"school-store/internal/repository"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AwardPoints credits a student and records the earned transaction in one
// database transaction.
func (s *Storage) AwardPoints(ctx context.Context, userID, teacherID uuid.UUID, amount int, reason string) (models.PointsTransaction, int, error) {
	const op = "storage.Postgres.AwardPoints"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	creditQuery, creditArgs, err := squirrel.Update("users").
		Set("points_balance", squirrel.Expr("points_balance + ?", amount)).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING points_balance").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	var newBalance int
	err = tx.QueryRow(ctx, creditQuery, creditArgs...).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	insertQuery, insertArgs, err := squirrel.Insert("points_transactions").
		Columns("user_id", "transaction_type", "amount", "reason", "created_by").
		Values(userID, models.TransactionEarned, amount, reason, teacherID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	transaction := models.PointsTransaction{
		UserID:          userID,
		TransactionType: models.TransactionEarned,
		Amount:          amount,
		Reason:          reason,
		CreatedBy:       &teacherID,
	}
	err = tx.QueryRow(ctx, insertQuery, insertArgs...).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return models.PointsTransaction{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	return transaction, newBalance, nil
}

// ListTransactions returns a page of point transactions, newest first. A nil
// userID means all users.
func (s *Storage) ListTransactions(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.PointsTransaction, int, error) {
	const op = "storage.Postgres.ListTransactions"

	countBuilder := squirrel.Select("COUNT(*)").
		From("points_transactions").
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := squirrel.Select("id", "user_id", "transaction_type", "amount", "reason", "reference_id", "created_by", "created_at").
		From("points_transactions").
		OrderBy("created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		PlaceholderFormat(squirrel.Dollar)

	if userID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"user_id": *userID})
		listBuilder = listBuilder.Where(squirrel.Eq{"user_id": *userID})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var transactions []models.PointsTransaction
	for rows.Next() {
		var t models.PointsTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TransactionType, &t.Amount, &t.Reason, &t.ReferenceID, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		transactions = append(transactions, t)
	}

	return transactions, total, nil
}

// Leaderboard returns the top students by points balance.
func (s *Storage) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	const op = "storage.Postgres.Leaderboard"

	sql, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": models.RoleStudent}).
		OrderBy("points_balance DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var students []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		students = append(students, user)
	}

	return students, nil
}
