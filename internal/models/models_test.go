package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListFilter(t *testing.T) {
	f := NewListFilter("  acme ", 0, 0)
	assert.Equal(t, "acme", f.Query)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 0, f.Offset())

	f = NewListFilter("", 3, 1000)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.Equal(t, 2*MaxPageSize, f.Offset())
}

func TestListFilter_PatternEscapesWildcards(t *testing.T) {
	f := ListFilter{Query: `50%_off\`}
	assert.Equal(t, `%50\%\_off\\%`, f.Pattern())
}

func TestUpdateCustomerRequest_Apply(t *testing.T) {
	var req UpdateCustomerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone": "9876543210", "gstin": null}`), &req))

	c := &Customer{Name: "Acme", Email: "a@acme.in", GSTIN: "33AFHPE4773N1Z6"}
	req.Apply(c)

	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "9876543210", c.Phone)
	assert.Equal(t, "33AFHPE4773N1Z6", c.GSTIN)
}

func TestInvoiceItem_DecodesStringNumbers(t *testing.T) {
	var it InvoiceItem
	payload := `{"item_id": "i1", "name": "Bolt", "hsn": "7318", "uom": "NOS",
		"quantity": "10", "rate": 50, "gst_percentage": "18", "amount": ""}`
	require.NoError(t, json.Unmarshal([]byte(payload), &it))

	line := it.Line()
	assert.Equal(t, "500", line.Amount().String())
	assert.True(t, it.Amount.IsZero())
}
