package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/invoicenumber"
	"github.com/spm-engineering/billing-service/internal/models"
)

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	counter  *invoicenumber.Counter
	invoices map[string]*models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
}

func (r *fakeInvoiceRepo) CurrentCounter(context.Context) (*invoicenumber.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counter == nil {
		return nil, nil
	}
	c := *r.counter
	return &c, nil
}

func (r *fakeInvoiceRepo) CreateNumbered(_ context.Context, inv *models.Invoice, fy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := invoicenumber.Next(r.counter, fy)
	inv.SequenceNumber = seq
	inv.FinancialYear = fy
	inv.InvoiceNumber = invoicenumber.Format(seq, fy)
	inv.ID = uuid.NewString()
	r.counter = &invoicenumber.Counter{Sequence: seq, FinancialYear: fy}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[inv.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(context.Context, models.ListFilter) ([]*models.Invoice, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Meta.CreatedAt.After(out[j].Meta.CreatedAt) })
	return out, len(out), nil
}

type fakeCache struct {
	invoices        map[string]*models.Invoice
	stats           *models.DashboardStats
	statsInvalidate int
}

func newFakeCache() *fakeCache {
	return &fakeCache{invoices: make(map[string]*models.Invoice)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*models.Invoice, error) {
	return c.invoices[id], nil
}

func (c *fakeCache) Set(_ context.Context, inv *models.Invoice) error {
	c.invoices[inv.ID] = inv
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id string) error {
	delete(c.invoices, id)
	return nil
}

func (c *fakeCache) GetStats(context.Context) (*models.DashboardStats, error) {
	return c.stats, nil
}

func (c *fakeCache) SetStats(_ context.Context, stats *models.DashboardStats) error {
	c.stats = stats
	return nil
}

func (c *fakeCache) InvalidateStats(context.Context) error {
	c.stats = nil
	c.statsInvalidate++
	return nil
}

type fakeLocker struct {
	err      error
	acquired int
	released int
}

func (l *fakeLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func() { l.released++ }, nil
}

type fakeCustomerRepo struct {
	customers map[string]*models.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	c.ID = uuid.NewString()
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *models.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Deactivate(_ context.Context, id string) error {
	c, ok := r.customers[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.IsActive = false
	return nil
}

func (r *fakeCustomerRepo) ListActive(context.Context, models.ListFilter) ([]*models.Customer, int, error) {
	var out []*models.Customer
	for _, c := range r.customers {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

type fakeItemRepo struct {
	items map[string]*models.Item
}

func (r *fakeItemRepo) Create(_ context.Context, it *models.Item) error {
	it.ID = uuid.NewString()
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*models.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *models.Item) error {
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Deactivate(_ context.Context, id string) error {
	it, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	it.IsActive = false
	return nil
}

func (r *fakeItemRepo) ListActive(context.Context, models.ListFilter) ([]*models.Item, int, error) {
	var out []*models.Item
	for _, it := range r.items {
		if it.IsActive {
			out = append(out, it)
		}
	}
	return out, len(out), nil
}

type fakeStatsRepo struct {
	calls int
	stats models.DashboardStats
}

func (r *fakeStatsRepo) DashboardStats(context.Context) (*models.DashboardStats, error) {
	r.calls++
	s := r.stats
	return &s, nil
}
