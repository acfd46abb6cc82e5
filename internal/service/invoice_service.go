package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/events"
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/invoicenumber"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/metrics"
	"github.com/spm-engineering/billing-service/internal/models"
	"github.com/spm-engineering/billing-service/internal/repository"
)

const (
	counterLockKey = "lock:invoice-counter"
	counterLockTTL = 10 * time.Second
)

// IST is the business time zone; financial years roll over at midnight IST on April 1.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// InvoiceService handles invoice business logic.
type InvoiceService struct {
	repo      repository.InvoiceRepository
	cache     repository.InvoiceCache
	publisher events.Publisher
	locker    Locker
	config    *config.Config
	logger    *logging.Logger
	now       func() time.Time
}

// NewInvoiceService wires the invoice service. locker may be nil.
func NewInvoiceService(
	repo repository.InvoiceRepository,
	cache repository.InvoiceCache,
	publisher events.Publisher,
	locker Locker,
	cfg *config.Config,
) *InvoiceService {
	return &InvoiceService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		locker:    locker,
		config:    cfg,
		logger:    logging.NewLogger("invoice-service"),
		now:       time.Now,
	}
}

// PreviewNumber reports the number the next invoice would get without reserving it.
func (s *InvoiceService) PreviewNumber(ctx context.Context) (*invoicenumber.Preview, error) {
	counter, err := s.repo.CurrentCounter(ctx)
	if err != nil {
		return nil, fmt.Errorf("read invoice counter: %w", err)
	}
	p := invoicenumber.PreviewAt(counter, s.now().In(IST))
	return &p, nil
}

// Calculate runs the shared calculator for the editor preview.
func (s *InvoiceService) Calculate(items []invoicecalc.LineItem) invoicecalc.Totals {
	return invoicecalc.ComputeTotals(items)
}

func (s *InvoiceService) Create(ctx context.Context, req *models.InvoiceRequest) (*models.Invoice, error) {
	log := s.logger.WithContext(ctx)
	log.Info("Creating invoice", logging.Fields{
		"buyer":      req.Buyer.Name,
		"item_count": len(req.Items),
	})

	if err := ValidateInvoiceRequest(req); err != nil {
		return nil, err
	}

	items, totals := PriceInvoice(req.Items)
	s.warnOnTotalsMismatch(log, req, totals)

	now := s.now().In(IST)
	inv := &models.Invoice{
		InvoiceDate: req.InvoiceDate,
		PONumber:    req.PONumber,
		Buyer:       req.Buyer,
		Consignee:   req.Consignee,
		Items:       items,
		Totals:      totals,
		Meta:        models.InvoiceMeta{CreatedAt: now.UTC()},
	}

	release := s.lockCounter(ctx)
	defer release()

	if err := s.repo.CreateNumbered(ctx, inv, invoicenumber.FinancialYear(now)); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	metrics.InvoicesCreated.Inc()
	metrics.InvoiceTotal.Observe(float64(inv.Totals.Total))

	s.afterWrite(ctx, inv)
	s.publish(ctx, events.EventTypeInvoiceCreated, inv)

	log.Info("Invoice created successfully", logging.Fields{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"total":          inv.Totals.Total,
	})
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	if s.config.Features.EnableInvoiceCaching {
		inv, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("invoice", "error").Inc()
		case inv != nil:
			metrics.CacheLookups.WithLabelValues("invoice", "hit").Inc()
			return inv, nil
		default:
			metrics.CacheLookups.WithLabelValues("invoice", "miss").Inc()
		}
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableInvoiceCaching {
		_ = s.cache.Set(ctx, inv)
	}
	return inv, nil
}

// Update replaces the editable fields of an invoice and reprices it. The
// invoice number, financial year and creation time are kept.
func (s *InvoiceService) Update(ctx context.Context, id string, req *models.InvoiceRequest) (*models.Invoice, error) {
	if err := ValidateInvoiceRequest(req); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, totals := PriceInvoice(req.Items)
	s.warnOnTotalsMismatch(s.logger.WithContext(ctx), req, totals)

	updatedAt := s.now().UTC()
	inv.InvoiceDate = req.InvoiceDate
	inv.PONumber = req.PONumber
	inv.Buyer = req.Buyer
	inv.Consignee = req.Consignee
	inv.Items = items
	inv.Totals = totals
	inv.Meta.UpdatedAt = &updatedAt

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, inv)
	s.publish(ctx, events.EventTypeInvoiceUpdated, inv)

	s.logger.WithContext(ctx).Info("Invoice updated", logging.Fields{
		"invoice_id": inv.ID,
		"total":      inv.Totals.Total,
	})
	return inv, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.config.Features.EnableInvoiceCaching {
		_ = s.cache.Delete(ctx, id)
		_ = s.cache.InvalidateStats(ctx)
	}
	s.publish(ctx, events.EventTypeInvoiceDeleted, inv)
	return nil
}

func (s *InvoiceService) List(ctx context.Context, filter models.ListFilter) ([]*models.Invoice, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *InvoiceService) afterWrite(ctx context.Context, inv *models.Invoice) {
	if !s.config.Features.EnableInvoiceCaching {
		return
	}
	if err := s.cache.Set(ctx, inv); err != nil {
		// Log but don't fail
		s.logger.Error("Failed to cache invoice", logging.Fields{
			"invoice_id": inv.ID,
			"error":      err.Error(),
		})
	}
	_ = s.cache.InvalidateStats(ctx)
}

func (s *InvoiceService) publish(ctx context.Context, eventType events.EventType, inv *models.Invoice) {
	if !s.config.Features.EnableInvoiceEvents {
		return
	}

	var err error
	switch eventType {
	case events.EventTypeInvoiceCreated:
		err = s.publisher.PublishInvoiceCreated(ctx, inv)
	case events.EventTypeInvoiceUpdated:
		err = s.publisher.PublishInvoiceUpdated(ctx, inv)
	case events.EventTypeInvoiceDeleted:
		err = s.publisher.PublishInvoiceDeleted(ctx, inv)
	}
	if err != nil {
		metrics.EventPublishFailures.Inc()
		s.logger.Error("Failed to publish invoice event", logging.Fields{
			"event_type": eventType,
			"invoice_id": inv.ID,
			"error":      err.Error(),
		})
	}
}

// lockCounter takes the cross-instance counter lock when Redis is available.
// The row lock inside CreateNumbered still serializes numbering without it.
func (s *InvoiceService) lockCounter(ctx context.Context) func() {
	noop := func() {}
	if s.locker == nil {
		return noop
	}

	release, err := s.locker.Acquire(ctx, counterLockKey, counterLockTTL)
	if errors.Is(err, redislock.ErrNotObtained) {
		s.logger.Warn("could not obtain counter lock; proceeding without redis lock")
		return noop
	}
	if err != nil {
		s.logger.Warn("error obtaining counter lock; proceeding without redis lock", logging.Fields{"error": err.Error()})
		return noop
	}
	return release
}

func (s *InvoiceService) warnOnTotalsMismatch(log *logging.Logger, req *models.InvoiceRequest, totals invoicecalc.Totals) {
	if req.Totals == nil || req.Totals.Total == totals.Total {
		return
	}
	log.Warn("Client totals differ from computed totals", logging.Fields{
		"client_total":   req.Totals.Total,
		"computed_total": totals.Total,
	})
}
