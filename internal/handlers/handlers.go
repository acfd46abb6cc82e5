package handlers

import (
	"context"

	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/invoicenumber"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

type InvoiceService interface {
	PreviewNumber(ctx context.Context) (*invoicenumber.Preview, error)
	Calculate(items []invoicecalc.LineItem) invoicecalc.Totals
	Create(ctx context.Context, req *models.InvoiceRequest) (*models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, id string, req *models.InvoiceRequest) (*models.Invoice, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ListFilter) ([]*models.Invoice, int, error)
}

type CustomerService interface {
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ListFilter) ([]*models.Customer, int, error)
}

type ItemService interface {
	Create(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error)
	Get(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ListFilter) ([]*models.Item, int, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type AuthService interface {
	VerifyPIN(ctx context.Context, pin string) (*auth.Session, error)
}

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// Services groups the collaborators the handlers call into.
type Services struct {
	Invoices  InvoiceService
	Customers CustomerService
	Items     ItemService
	Dashboard DashboardService
	Auth      AuthService
}

// Handlers holds all HTTP handlers for the billing service.
type Handlers struct {
	invoices  InvoiceService
	customers CustomerService
	items     ItemService
	dashboard DashboardService
	auth      AuthService
	checks    map[string]ReadinessCheck
	config    *config.Config
	logger    *logging.Logger
}

// NewHandlers creates a new handlers instance. checks are run by /ready.
func NewHandlers(svc Services, cfg *config.Config, checks map[string]ReadinessCheck) *Handlers {
	return &Handlers{
		invoices:  svc.Invoices,
		customers: svc.Customers,
		items:     svc.Items,
		dashboard: svc.Dashboard,
		auth:      svc.Auth,
		checks:    checks,
		config:    cfg,
		logger:    logging.NewLogger("handlers"),
	}
}
