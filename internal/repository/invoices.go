package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/invoicenumber"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

// counterID keys the single row of invoice_counters.
const counterID = "count"

const invoiceColumns = `
	id, invoice_number, financial_year, sequence_number, invoice_date, po_number,
	buyer, consignee, items, totals, created_at, updated_at`

const uniqueViolation = "23505"

// PostgresInvoiceRepository stores invoices as JSONB documents plus a few
// flattened columns used for search, ordering and the revenue summary.
type PostgresInvoiceRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresInvoiceRepository(db *sql.DB, logger *logging.Logger) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db, logger: logger}
}

func (r *PostgresInvoiceRepository) CurrentCounter(ctx context.Context) (*invoicenumber.Counter, error) {
	var c invoicenumber.Counter
	err := r.db.QueryRowContext(ctx,
		`SELECT inv_no, fy FROM invoice_counters WHERE id = $1`, counterID,
	).Scan(&c.Sequence, &c.FinancialYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresInvoiceRepository) CreateNumbered(ctx context.Context, inv *models.Invoice, fy string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current *invoicenumber.Counter
	var c invoicenumber.Counter
	err = tx.QueryRowContext(ctx,
		`SELECT inv_no, fy FROM invoice_counters WHERE id = $1 FOR UPDATE`, counterID,
	).Scan(&c.Sequence, &c.FinancialYear)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	default:
		current = &c
	}

	seq := invoicenumber.Next(current, fy)
	inv.SequenceNumber = seq
	inv.FinancialYear = fy
	inv.InvoiceNumber = invoicenumber.Format(seq, fy)
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	docs, err := marshalInvoiceDocs(inv)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (
			id, invoice_number, financial_year, sequence_number, invoice_date, po_number,
			buyer, consignee, items, totals, buyer_name, consignee_name, grand_total,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		inv.ID,
		inv.InvoiceNumber,
		inv.FinancialYear,
		inv.SequenceNumber,
		inv.InvoiceDate,
		inv.PONumber,
		docs.buyer,
		docs.consignee,
		docs.items,
		docs.totals,
		inv.Buyer.Name,
		inv.Consignee.Name,
		inv.Totals.Total,
		inv.Meta.CreatedAt,
		inv.Meta.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Warn("Invoice number already taken", logging.Fields{
				"invoice_number": inv.InvoiceNumber,
			})
			return apperrors.ErrConflict
		}
		r.logger.Error("Failed to insert invoice", logging.Fields{
			"invoice_number": inv.InvoiceNumber,
			"error":          err.Error(),
		})
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoice_counters (id, inv_no, fy) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET inv_no = EXCLUDED.inv_no, fy = EXCLUDED.fy`,
		counterID, seq, fy,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info("Invoice created", logging.Fields{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"total":          inv.Totals.Total,
	})
	return nil
}

func (r *PostgresInvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	r.logger.Debug("Fetching invoice by ID", logging.Fields{"invoice_id": id})

	inv, err := scanInvoice(r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch invoice", logging.Fields{
			"invoice_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return inv, nil
}

// Update rewrites the editable parts of the invoice. The number and creation
// time never change.
func (r *PostgresInvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	docs, err := marshalInvoiceDocs(inv)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		SET invoice_date = $2, po_number = $3, buyer = $4, consignee = $5, items = $6, totals = $7,
		    buyer_name = $8, consignee_name = $9, grand_total = $10, updated_at = $11
		WHERE id = $1`,
		inv.ID,
		inv.InvoiceDate,
		inv.PONumber,
		docs.buyer,
		docs.consignee,
		docs.items,
		docs.totals,
		inv.Buyer.Name,
		inv.Consignee.Name,
		inv.Totals.Total,
		inv.Meta.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", logging.Fields{
			"invoice_id": inv.ID,
			"error":      err.Error(),
		})
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresInvoiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete invoice", logging.Fields{
			"invoice_id": id,
			"error":      err.Error(),
		})
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Invoice deleted", logging.Fields{"invoice_id": id})
	return nil
}

// List returns invoices newest first. The query matches the invoice number,
// PO number, buyer name or consignee name.
func (r *PostgresInvoiceRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Invoice, int, error) {
	var where whereClause
	if filter.Query != "" {
		where.add("(invoice_number ILIKE ? OR po_number ILIKE ? OR buyer_name ILIKE ? OR consignee_name ILIKE ?)", filter.Pattern())
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices"+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.page(
		"SELECT "+invoiceColumns+" FROM invoices"+where.String()+" ORDER BY created_at DESC",
		filter.PageSize, filter.Offset(),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices := make([]*models.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	r.logger.Debug("Invoices listed", logging.Fields{
		"count": len(invoices),
		"total": total,
	})
	return invoices, total, nil
}

type invoiceDocs struct {
	buyer, consignee, items, totals []byte
}

func marshalInvoiceDocs(inv *models.Invoice) (*invoiceDocs, error) {
	var d invoiceDocs
	var err error
	if d.buyer, err = json.Marshal(inv.Buyer); err != nil {
		return nil, err
	}
	if d.consignee, err = json.Marshal(inv.Consignee); err != nil {
		return nil, err
	}
	items := inv.Items
	if items == nil {
		items = []models.InvoiceItem{}
	}
	if d.items, err = json.Marshal(items); err != nil {
		return nil, err
	}
	if d.totals, err = json.Marshal(inv.Totals); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanInvoice(s rowScanner) (*models.Invoice, error) {
	var inv models.Invoice
	var buyer, consignee, items, totals []byte
	var updatedAt sql.NullTime

	if err := s.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.FinancialYear,
		&inv.SequenceNumber,
		&inv.InvoiceDate,
		&inv.PONumber,
		&buyer,
		&consignee,
		&items,
		&totals,
		&inv.Meta.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(buyer, &inv.Buyer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(consignee, &inv.Consignee); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totals, &inv.Totals); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		inv.Meta.UpdatedAt = &updatedAt.Time
	}
	return &inv, nil
}
