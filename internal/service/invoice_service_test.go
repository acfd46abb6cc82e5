package service

import (
	"context"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/events"
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/invoicenumber"
	"github.com/spm-engineering/billing-service/internal/models"
)

type invoiceFixture struct {
	svc       *InvoiceService
	repo      *fakeInvoiceRepo
	cache     *fakeCache
	publisher *events.RecordingPublisher
	locker    *fakeLocker
}

func newInvoiceFixture(now time.Time) *invoiceFixture {
	cfg := &config.Config{Features: config.FeatureFlags{
		EnableInvoiceCaching: true,
		EnableInvoiceEvents:  true,
	}}
	f := &invoiceFixture{
		repo:      newFakeInvoiceRepo(),
		cache:     newFakeCache(),
		publisher: &events.RecordingPublisher{},
		locker:    &fakeLocker{},
	}
	f.svc = NewInvoiceService(f.repo, f.cache, f.publisher, f.locker, cfg)
	f.svc.now = func() time.Time { return now }
	return f
}

func validRequest() *models.InvoiceRequest {
	return &models.InvoiceRequest{
		InvoiceDate: "2025-10-19",
		PONumber:    "PO-77",
		Buyer:       models.Party{Name: "Acme Pumps", GSTIN: "33AAACA1234A1Z5"},
		Consignee:   models.Party{Name: "Acme Pumps Unit 2"},
		Items: []models.InvoiceItem{{
			ItemID:        "item-1",
			Name:          "MS Bracket",
			HSN:           "7326",
			UOM:           "NOS",
			Quantity:      invoicecalc.NumberFromInt(10),
			Rate:          invoicecalc.NumberFromInt(50),
			GSTPercentage: invoicecalc.NumberFromInt(18),
			Amount:        invoicecalc.NumberFromInt(1),
		}},
	}
}

var october = time.Date(2025, time.October, 19, 6, 0, 0, 0, time.UTC)

func TestInvoiceService_Create(t *testing.T) {
	f := newInvoiceFixture(october)
	req := validRequest()
	req.Totals = &invoicecalc.Totals{Total: 999999}

	inv, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "INV/25-26/0001", inv.InvoiceNumber)
	assert.Equal(t, "2025-2026", inv.FinancialYear)
	assert.Equal(t, "500.00", invoicecalc.FormatFixed(inv.Items[0].Amount.Decimal))
	assert.Equal(t, int64(590), inv.Totals.Total)
	assert.Equal(t, "Five Hundred Ninety Rupees Only", inv.Totals.AmountInWords)

	assert.Contains(t, f.cache.invoices, inv.ID)
	assert.Equal(t, 1, f.cache.statsInvalidate)
	assert.Equal(t, []events.EventType{events.EventTypeInvoiceCreated}, f.publisher.Types())
	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)
}

func TestInvoiceService_Create_SequenceIncrements(t *testing.T) {
	f := newInvoiceFixture(october)

	first, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "INV/25-26/0001", first.InvoiceNumber)
	assert.Equal(t, "INV/25-26/0002", second.InvoiceNumber)
}

func TestInvoiceService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.InvoiceRequest)
		field  string
	}{
		{"bad date", func(r *models.InvoiceRequest) { r.InvoiceDate = "19/10/2025" }, "invoice_date"},
		{"no buyer", func(r *models.InvoiceRequest) { r.Buyer.Name = " " }, "buyer.name"},
		{"no items", func(r *models.InvoiceRequest) { r.Items = nil }, "items"},
		{"zero quantity", func(r *models.InvoiceRequest) { r.Items[0].Quantity = invoicecalc.Number{} }, "items[0].quantity"},
		{"negative rate", func(r *models.InvoiceRequest) { r.Items[0].Rate = invoicecalc.NewNumber(-1) }, "items[0].rate"},
		{"gst above 100", func(r *models.InvoiceRequest) { r.Items[0].GSTPercentage = invoicecalc.NewNumber(101) }, "items[0].gst_percentage"},
		{"subtotal above ceiling", func(r *models.InvoiceRequest) { r.Items[0].Rate = invoicecalc.ParseNumber("1e20") }, "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInvoiceFixture(october)
			req := validRequest()
			tt.mutate(req)

			_, err := f.svc.Create(context.Background(), req)
			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Nil(t, f.repo.counter, "counter must not advance")
		})
	}
}

func TestInvoiceService_Create_ProceedsWithoutLock(t *testing.T) {
	f := newInvoiceFixture(october)
	f.locker.err = redislock.ErrNotObtained

	inv, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV/25-26/0001", inv.InvoiceNumber)
}

func TestInvoiceService_PreviewNumber_DoesNotAdvance(t *testing.T) {
	f := newInvoiceFixture(october)
	f.repo.counter = &invoicenumber.Counter{Sequence: 41, FinancialYear: "2025-2026"}

	for i := 0; i < 2; i++ {
		p, err := f.svc.PreviewNumber(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "INV/25-26/0042", p.InvoiceNumber)
		assert.Equal(t, 42, p.SequenceNumber)
	}
	assert.Equal(t, 41, f.repo.counter.Sequence)
}

func TestInvoiceService_PreviewNumber_UsesIndianTime(t *testing.T) {
	// 19:00 UTC on March 31 is already April 1 in India.
	f := newInvoiceFixture(time.Date(2026, time.March, 31, 19, 0, 0, 0, time.UTC))
	f.repo.counter = &invoicenumber.Counter{Sequence: 318, FinancialYear: "2025-2026"}

	p, err := f.svc.PreviewNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV/26-27/0001", p.InvoiceNumber)
	assert.Equal(t, "2026-2027", p.FinancialYear)
}

func TestInvoiceService_Update(t *testing.T) {
	f := newInvoiceFixture(october)
	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	later := october.Add(48 * time.Hour)
	f.svc.now = func() time.Time { return later }

	req := validRequest()
	req.Items[0].Quantity = invoicecalc.NumberFromInt(20)
	req.PONumber = "PO-78"

	updated, err := f.svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, created.Meta.CreatedAt, updated.Meta.CreatedAt)
	require.NotNil(t, updated.Meta.UpdatedAt)
	assert.True(t, updated.Meta.UpdatedAt.Equal(later))
	assert.Equal(t, "PO-78", updated.PONumber)
	assert.Equal(t, int64(1180), updated.Totals.Total)
	assert.Equal(t, []events.EventType{events.EventTypeInvoiceCreated, events.EventTypeInvoiceUpdated}, f.publisher.Types())
}

func TestInvoiceService_Update_NotFound(t *testing.T) {
	f := newInvoiceFixture(october)
	_, err := f.svc.Update(context.Background(), "missing", validRequest())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInvoiceService_Get_CacheHit(t *testing.T) {
	f := newInvoiceFixture(october)
	f.cache.invoices["cached"] = &models.Invoice{ID: "cached", InvoiceNumber: "INV/25-26/0007"}

	inv, err := f.svc.Get(context.Background(), "cached")
	require.NoError(t, err)
	assert.Equal(t, "INV/25-26/0007", inv.InvoiceNumber)
}

func TestInvoiceService_Delete(t *testing.T) {
	f := newInvoiceFixture(october)
	inv, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), inv.ID))

	assert.NotContains(t, f.cache.invoices, inv.ID)
	_, err = f.svc.Get(context.Background(), inv.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, events.EventTypeInvoiceDeleted, f.publisher.Types()[1])

	assert.ErrorIs(t, f.svc.Delete(context.Background(), inv.ID), apperrors.ErrNotFound)
}

func TestInvoiceService_EventsDisabled(t *testing.T) {
	f := newInvoiceFixture(october)
	f.svc.config.Features.EnableInvoiceEvents = false

	_, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, f.publisher.Types())
}

func TestPriceInvoice_IgnoresClientAmounts(t *testing.T) {
	items := validRequest().Items
	items = append(items, models.InvoiceItem{
		Name:          "Nut",
		Quantity:      invoicecalc.ParseNumber("4"),
		Rate:          invoicecalc.ParseNumber("2.50"),
		GSTPercentage: invoicecalc.ParseNumber("28"),
		Amount:        invoicecalc.NumberFromInt(12345),
	})

	priced, totals := PriceInvoice(items)

	assert.Equal(t, "10.00", invoicecalc.FormatFixed(priced[1].Amount.Decimal))
	assert.Equal(t, "510.00", invoicecalc.FormatFixed(totals.Subtotal.Decimal))
	// 18% from the first line applies to the whole invoice
	assert.Equal(t, "45.90", invoicecalc.FormatFixed(totals.SGST.Decimal))
	assert.Equal(t, int64(602), totals.Total)
	assert.Equal(t, "12345", items[1].Amount.String(), "input slice untouched")
}
