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

const customerColumns = `id, name, email, phone, address, gstin, pan_number, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// PostgresCustomerRepository stores customers in PostgreSQL.
type PostgresCustomerRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresCustomerRepository(db *sql.DB, logger *logging.Logger) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db, logger: logger}
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		nullString(c.Phone),
		nullString(c.Address),
		nullString(c.GSTIN),
		nullString(c.PANNumber),
		c.IsActive,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create customer", logging.Fields{
			"name":  c.Name,
			"error": err.Error(),
		})
		return err
	}

	r.logger.Info("Customer created", logging.Fields{"customer_id": c.ID})
	return nil
}

// GetByID returns the customer whether or not it is active.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	r.logger.Debug("Fetching customer by ID", logging.Fields{"customer_id": id})

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch customer", logging.Fields{
			"customer_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}
	return c, nil
}

func (r *PostgresCustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5, gstin = $6, pan_number = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		nullString(c.Phone),
		nullString(c.Address),
		nullString(c.GSTIN),
		nullString(c.PANNumber),
		c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update customer", logging.Fields{
			"customer_id": c.ID,
			"error":       err.Error(),
		})
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Customer updated", logging.Fields{"customer_id": c.ID})
	return nil
}

// Deactivate soft-deletes the customer.
func (r *PostgresCustomerRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE customers SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate customer", logging.Fields{
			"customer_id": id,
			"error":       err.Error(),
		})
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Customer deactivated", logging.Fields{"customer_id": id})
	return nil
}

// ListActive returns active customers, newest first, matching the filter's
// query against name or email.
func (r *PostgresCustomerRepository) ListActive(ctx context.Context, filter models.ListFilter) ([]*models.Customer, int, error) {
	var where whereClause
	where.addRaw("is_active")
	if filter.Query != "" {
		where.add("(name ILIKE ? OR email ILIKE ?)", filter.Pattern())
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers"+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.page(
		"SELECT "+customerColumns+" FROM customers"+where.String()+" ORDER BY created_at DESC",
		filter.PageSize, filter.Offset(),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	r.logger.Debug("Customers listed", logging.Fields{
		"count": len(customers),
		"total": total,
	})
	return customers, total, nil
}

func scanCustomer(s rowScanner) (*models.Customer, error) {
	var c models.Customer
	var phone, address, gstin, pan sql.NullString
	var updatedAt sql.NullTime

	if err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&phone,
		&address,
		&gstin,
		&pan,
		&c.IsActive,
		&c.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	c.Phone = phone.String
	c.Address = address.String
	c.GSTIN = gstin.String
	c.PANNumber = pan.String
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	return &c, nil
}
