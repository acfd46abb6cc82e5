package repository

import (
	"context"
	"database/sql"

	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

type PostgresStatsRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresStatsRepository(db *sql.DB, logger *logging.Logger) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db, logger: logger}
}

// DashboardStats counts invoices and active master records and sums invoice totals.
func (r *PostgresStatsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers WHERE is_active),
			(SELECT COUNT(*) FROM items WHERE is_active),
			(SELECT COALESCE(SUM(grand_total), 0) FROM invoices)
	`

	var stats models.DashboardStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalInvoices,
		&stats.TotalCustomers,
		&stats.TotalItems,
		&stats.TotalRevenue,
	)
	if err != nil {
		r.logger.Error("Failed to compute dashboard stats", logging.Fields{"error": err.Error()})
		return nil, err
	}
	return &stats, nil
}
