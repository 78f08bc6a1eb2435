package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school-store/internal/domain/models"
	"school-store/internal/repository"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var itemColumns = []string{
	"id", "name", "description", "available_sizes", "image_url", "category",
	"is_available", "created_at", "updated_at",
}

func scanItem(row pgx.Row) (models.StoreItem, error) {
	var i models.StoreItem
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.AvailableSizes, &i.ImageURL,
		&i.Category, &i.IsAvailable, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// ListItems returns catalog items ordered by name. An empty category matches
// everything; availableOnly hides disabled items.
func (s *Storage) ListItems(ctx context.Context, category string, availableOnly bool) ([]models.StoreItem, error) {
	const op = "storage.Postgres.ListItems"

	builder := squirrel.Select(itemColumns...).
		From("store_items").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	if category != "" {
		builder = builder.Where(squirrel.Eq{"category": category})
	}
	if availableOnly {
		builder = builder.Where(squirrel.Eq{"is_available": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.StoreItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *Storage) GetItemById(ctx context.Context, itemID uuid.UUID) (models.StoreItem, error) {
	const op = "storage.Postgres.GetItemById"

	sql, args, err := squirrel.Select(itemColumns...).
		From("store_items").
		Where(squirrel.Eq{"id": itemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.StoreItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanItem(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.StoreItem{}, fmt.Errorf("%s: %w", op, repository.ErrItemNotFound)
		}

		return models.StoreItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *Storage) SaveItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error) {
	const op = "storage.Postgres.SaveItem"

	sql, args, err := squirrel.Insert("store_items").
		Columns("name", "description", "available_sizes", "image_url", "category", "is_available").
		Values(item.Name, item.Description, item.AvailableSizes, item.ImageURL, item.Category, item.IsAvailable).
		Suffix("RETURNING " + joinColumns(itemColumns)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.StoreItem{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanItem(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return models.StoreItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) UpdateItem(ctx context.Context, item models.StoreItem) (models.StoreItem, error) {
	const op = "storage.Postgres.UpdateItem"

	sql, args, err := squirrel.Update("store_items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("available_sizes", item.AvailableSizes).
		Set("image_url", item.ImageURL).
		Set("category", item.Category).
		Set("is_available", item.IsAvailable).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": item.ID}).
		Suffix("RETURNING " + joinColumns(itemColumns)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.StoreItem{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanItem(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.StoreItem{}, fmt.Errorf("%s: %w", op, repository.ErrItemNotFound)
		}

		return models.StoreItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	const op = "storage.Postgres.DeleteItem"

	sql, args, err := squirrel.Delete("store_items").
		Where(squirrel.Eq{"id": itemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cmdTag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrItemNotFound)
	}

	return nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]string, error) {
	const op = "storage.Postgres.ListCategories"

	sql, args, err := squirrel.Select("DISTINCT category").
		From("store_items").
		Where(squirrel.NotEq{"category": ""}).
		OrderBy("category").
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

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// PurchaseItem charges the user for quantity units of the item in the given
// size inside one transaction: balance-guarded deduction, purchase row, spent
// transaction row. The caller has already validated size and availability.
func (s *Storage) PurchaseItem(ctx context.Context, userID uuid.UUID, item models.StoreItem, size string, quantity, totalCost int) (models.Purchase, int, error) {
	const op = "storage.Postgres.PurchaseItem"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	deductQuery, deductArgs, err := squirrel.Update("users").
		Set("points_balance", squirrel.Expr("points_balance - ?", totalCost)).
		Where(squirrel.Eq{"id": userID}).
		Where("points_balance >= ?", totalCost).
		Suffix("RETURNING points_balance").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	var newBalance int
	err = tx.QueryRow(ctx, deductQuery, deductArgs...).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, repository.ErrInsufficientPoints)
		}
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	insertQuery, insertArgs, err := squirrel.Insert("purchases").
		Columns("user_id", "item_id", "quantity", "size", "total_cost", "status").
		Values(userID, item.ID, quantity, size, totalCost, models.PurchaseCompleted).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	purchase := models.Purchase{
		UserID:    userID,
		ItemID:    item.ID,
		Quantity:  quantity,
		Size:      size,
		TotalCost: totalCost,
		Status:    models.PurchaseCompleted,
	}
	err = tx.QueryRow(ctx, insertQuery, insertArgs...).Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	reason := fmt.Sprintf("Purchased %dx %s (%s)", quantity, item.Name, size)
	txnQuery, txnArgs, err := squirrel.Insert("points_transactions").
		Columns("user_id", "transaction_type", "amount", "reason", "reference_id").
		Values(userID, models.TransactionSpent, totalCost, reason, purchase.ID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.Exec(ctx, txnQuery, txnArgs...)
	if err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Purchase{}, 0, fmt.Errorf("%s: %w", op, err)
	}

	return purchase, newBalance, nil
}

// ListPurchases returns a page of purchases, newest first. A nil userID means
// all users (teacher view).
func (s *Storage) ListPurchases(ctx context.Context, userID *uuid.UUID, page, perPage int) ([]models.Purchase, int, error) {
	const op = "storage.Postgres.ListPurchases"

	countBuilder := squirrel.Select("COUNT(*)").
		From("purchases").
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := squirrel.Select("id", "user_id", "item_id", "quantity", "size", "total_cost", "status", "created_at").
		From("purchases").
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

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ItemID, &p.Quantity, &p.Size, &p.TotalCost, &p.Status, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		purchases = append(purchases, p)
	}

	return purchases, total, nil
}
