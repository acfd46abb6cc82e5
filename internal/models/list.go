package models

import (
	"strings"

	"github.com/spm-engineering/billing-service/internal/invoicecalc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// ListFilter drives the searchable, paginated list endpoints. A zero
// PageSize means no limit.
type ListFilter struct {
	Query    string
	Page     int
	PageSize int
}

// NewListFilter normalizes raw query values.
func NewListFilter(q string, page, pageSize int) ListFilter {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return ListFilter{Query: strings.TrimSpace(q), Page: page, PageSize: pageSize}
}

func (f ListFilter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Pattern is the ILIKE pattern for Query.
func (f ListFilter) Pattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(f.Query) + "%"
}

type DashboardStats struct {
	TotalInvoices  int64              `json:"total_invoices"`
	TotalCustomers int64              `json:"total_customers"`
	TotalItems     int64              `json:"total_items"`
	TotalRevenue   invoicecalc.Number `json:"total_revenue"`
}
