package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
	"github.com/spm-engineering/billing-service/internal/render"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PreviewInvoiceNumber handles GET /api/v1/invoices/preview-invoice-number
func (h *Handlers) PreviewInvoiceNumber(c *gin.Context) {
	preview, err := h.invoices.PreviewNumber(c.Request.Context())
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// CalculateInvoice handles POST /api/v1/invoices/calculate
func (h *Handlers) CalculateInvoice(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.invoices.Calculate(req.Items))
}

// CreateInvoice handles POST /api/v1/invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithContext(c.Request.Context()).Warn("Failed to bind invoice", logging.Fields{"error": err.Error()})
		bindError(c, err)
		return
	}

	inv, err := h.invoices.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Invoice created successfully",
		"data":    inv,
	})
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	inv, err := h.invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": inv})
}

// UpdateInvoice handles PUT /api/v1/invoices/:id
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.invoices.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Invoice updated successfully",
		"data":    inv,
	})
}

// DeleteInvoice handles DELETE /api/v1/invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	if err := h.invoices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err, "Invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Invoice deleted successfully",
	})
}

// ListInvoices handles GET /api/v1/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	filter := listFilter(c)

	invoices, total, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":  invoices,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// InvoicePDF handles GET /api/v1/invoices/:id/pdf
func (h *Handlers) InvoicePDF(c *gin.Context) {
	inv, err := h.invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	body, err := render.InvoicePDF(inv, h.config.Company)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	download, _ := strconv.ParseBool(c.Query("download"))
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, pdfFilename(inv)))
	c.Data(http.StatusOK, contentTypePDF, body)
}

// ExportInvoices handles GET /api/v1/invoices/export. The optional q filter
// applies; pagination does not.
func (h *Handlers) ExportInvoices(c *gin.Context) {
	filter := models.ListFilter{Query: strings.TrimSpace(c.Query("q"))}

	invoices, _, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	body, err := render.InvoiceRegister(invoices)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	name := "invoices_" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentTypeXLSX, body)
}

// PrintInvoice handles GET /print/invoices/:id
func (h *Handlers) PrintInvoice(c *gin.Context) {
	inv, err := h.invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}

	autoPrint := c.Query("print") == "1" || c.Query("print") == "true"
	body, err := render.InvoiceHTML(inv, h.config.Company, autoPrint)
	if err != nil {
		handleError(c, err, "Invoice")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func pdfFilename(inv *models.Invoice) string {
	number := inv.InvoiceNumber
	if number == "" {
		number = "document"
	}
	return "invoice_" + strings.ReplaceAll(number, "/", "-") + ".pdf"
}
