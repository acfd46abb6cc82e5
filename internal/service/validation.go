package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/models"
)

const invoiceDateLayout = "2006-01-02"

var maxGSTPercentage = decimal.NewFromInt(100)

// ValidateInvoiceRequest checks the fields a saved invoice must carry.
func ValidateInvoiceRequest(req *models.InvoiceRequest) error {
	if strings.TrimSpace(req.InvoiceDate) == "" {
		return apperrors.NewValidationError("invoice_date", "invoice date is required")
	}
	if _, err := time.Parse(invoiceDateLayout, req.InvoiceDate); err != nil {
		return apperrors.NewValidationError("invoice_date", "invoice date must be in YYYY-MM-DD format")
	}

	if strings.TrimSpace(req.Buyer.Name) == "" {
		return apperrors.NewValidationError("buyer.name", "buyer name is required")
	}
	if strings.TrimSpace(req.Consignee.Name) == "" {
		return apperrors.NewValidationError("consignee.name", "consignee name is required")
	}

	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "at least one item is required")
	}

	subtotal := decimal.Zero
	for i, item := range req.Items {
		if err := validateInvoiceItem(&item, i); err != nil {
			return err
		}
		subtotal = subtotal.Add(item.Line().Amount())
	}
	if subtotal.GreaterThan(invoicecalc.MaxInvoiceAmount) {
		return apperrors.NewValidationError("items",
			fmt.Sprintf("invoice subtotal cannot exceed %s", invoicecalc.FormatIndian(invoicecalc.MaxInvoiceAmount)))
	}

	return nil
}

func validateInvoiceItem(item *models.InvoiceItem, index int) error {
	field := fmt.Sprintf("items[%d]", index)

	if strings.TrimSpace(item.Name) == "" {
		return apperrors.NewValidationError(field+".name", "item name is required")
	}
	if !item.Quantity.IsPositive() {
		return apperrors.NewValidationError(field+".quantity", "quantity must be positive")
	}
	if item.Rate.IsNegative() {
		return apperrors.NewValidationError(field+".rate", "rate cannot be negative")
	}
	return validateGST(field+".gst_percentage", item.GSTPercentage)
}

func validateGST(field string, gst invoicecalc.Number) error {
	if gst.IsNegative() || gst.GreaterThan(maxGSTPercentage) {
		return apperrors.NewValidationError(field, "GST percentage must be between 0 and 100")
	}
	return nil
}

// ValidateItem checks a catalogue item before it is stored.
func ValidateItem(it *models.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(it.HSNSAC) == "" {
		return apperrors.NewValidationError("hsn_sac", "HSN/SAC code is required")
	}
	if strings.TrimSpace(it.UOM) == "" {
		return apperrors.NewValidationError("uom", "unit of measure is required")
	}
	if it.Rate.IsNegative() {
		return apperrors.NewValidationError("rate", "rate cannot be negative")
	}
	return validateGST("gst_percentage", it.GSTPercentage)
}

func ValidateCustomer(c *models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	return nil
}
