package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

const itemColumns = `id, name, description, hsn_sac, uom, rate, gst_percentage, is_active, created_at, updated_at`

// PostgresItemRepository stores catalogue items in PostgreSQL.
type PostgresItemRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresItemRepository(db *sql.DB, logger *logging.Logger) *PostgresItemRepository {
	return &PostgresItemRepository{db: db, logger: logger}
}

func (r *PostgresItemRepository) Create(ctx context.Context, it *models.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.Name,
		nullString(it.Description),
		it.HSNSAC,
		it.UOM,
		it.Rate,
		it.GSTPercentage,
		it.IsActive,
		it.CreatedAt,
		it.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create item", logging.Fields{
			"name":  it.Name,
			"error": err.Error(),
		})
		return err
	}

	r.logger.Info("Item created", logging.Fields{"item_id": it.ID})
	return nil
}

func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch item", logging.Fields{
			"item_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}
	return it, nil
}

func (r *PostgresItemRepository) Update(ctx context.Context, it *models.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, hsn_sac = $4, uom = $5, rate = $6, gst_percentage = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.Name,
		nullString(it.Description),
		it.HSNSAC,
		it.UOM,
		it.Rate,
		it.GSTPercentage,
		it.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update item", logging.Fields{
			"item_id": it.ID,
			"error":   err.Error(),
		})
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresItemRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE items SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to deactivate item", logging.Fields{
			"item_id": id,
			"error":   err.Error(),
		})
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Item deactivated", logging.Fields{"item_id": id})
	return nil
}

// ListActive returns active items, newest first, matching name or HSN/SAC code.
func (r *PostgresItemRepository) ListActive(ctx context.Context, filter models.ListFilter) ([]*models.Item, int, error) {
	var where whereClause
	where.addRaw("is_active")
	if filter.Query != "" {
		where.add("(name ILIKE ? OR hsn_sac ILIKE ?)", filter.Pattern())
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items"+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.page(
		"SELECT "+itemColumns+" FROM items"+where.String()+" ORDER BY created_at DESC",
		filter.PageSize, filter.Offset(),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*models.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func scanItem(s rowScanner) (*models.Item, error) {
	var it models.Item
	var description sql.NullString
	var updatedAt sql.NullTime

	if err := s.Scan(
		&it.ID,
		&it.Name,
		&description,
		&it.HSNSAC,
		&it.UOM,
		&it.Rate,
		&it.GSTPercentage,
		&it.IsActive,
		&it.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	it.Description = description.String
	if updatedAt.Valid {
		it.UpdatedAt = &updatedAt.Time
	}
	return &it, nil
}
