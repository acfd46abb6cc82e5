package models

import (
	"time"

	"github.com/spm-engineering/billing-service/internal/invoicecalc"
)

// Item is a catalogue entry that can be picked into an invoice line.
type Item struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	HSNSAC        string             `json:"hsn_sac"`
	UOM           string             `json:"uom"`
	Rate          invoicecalc.Number `json:"rate"`
	GSTPercentage invoicecalc.Number `json:"gst_percentage"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at"`
}

type CreateItemRequest struct {
	Name          string             `json:"name" binding:"required"`
	Description   string             `json:"description"`
	HSNSAC        string             `json:"hsn_sac" binding:"required"`
	UOM           string             `json:"uom" binding:"required"`
	Rate          invoicecalc.Number `json:"rate"`
	GSTPercentage invoicecalc.Number `json:"gst_percentage"`
}

type UpdateItemRequest struct {
	Name          *string             `json:"name" binding:"omitempty,min=1"`
	Description   *string             `json:"description"`
	HSNSAC        *string             `json:"hsn_sac" binding:"omitempty,min=1"`
	UOM           *string             `json:"uom" binding:"omitempty,min=1"`
	Rate          *invoicecalc.Number `json:"rate"`
	GSTPercentage *invoicecalc.Number `json:"gst_percentage"`
}

func (r *UpdateItemRequest) Apply(it *Item) {
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Description != nil {
		it.Description = *r.Description
	}
	if r.HSNSAC != nil {
		it.HSNSAC = *r.HSNSAC
	}
	if r.UOM != nil {
		it.UOM = *r.UOM
	}
	if r.Rate != nil {
		it.Rate = *r.Rate
	}
	if r.GSTPercentage != nil {
		it.GSTPercentage = *r.GSTPercentage
	}
}
