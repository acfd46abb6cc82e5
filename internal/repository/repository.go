package repository

import (
	"context"

	"github.com/spm-engineering/billing-service/internal/invoicenumber"
	"github.com/spm-engineering/billing-service/internal/models"
)

var (
	_ CustomerRepository = (*PostgresCustomerRepository)(nil)
	_ ItemRepository     = (*PostgresItemRepository)(nil)
	_ InvoiceRepository  = (*PostgresInvoiceRepository)(nil)
	_ StatsRepository    = (*PostgresStatsRepository)(nil)
	_ InvoiceCache       = (*RedisInvoiceCache)(nil)
)

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Deactivate(ctx context.Context, id string) error
	ListActive(ctx context.Context, filter models.ListFilter) ([]*models.Customer, int, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *models.Item) error
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, it *models.Item) error
	Deactivate(ctx context.Context, id string) error
	ListActive(ctx context.Context, filter models.ListFilter) ([]*models.Item, int, error)
}

type InvoiceRepository interface {
	// CurrentCounter returns the stored sequence, or nil when none exists yet.
	CurrentCounter(ctx context.Context) (*invoicenumber.Counter, error)
	// CreateNumbered assigns the next number in fy to inv and inserts it,
	// advancing the counter in the same transaction.
	CreateNumbered(ctx context.Context, inv *models.Invoice, fy string) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ListFilter) ([]*models.Invoice, int, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// InvoiceCache caches invoice documents and the dashboard summary.
// Get methods return (nil, nil) on a miss.
type InvoiceCache interface {
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Set(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	SetStats(ctx context.Context, stats *models.DashboardStats) error
	InvalidateStats(ctx context.Context) error
}
