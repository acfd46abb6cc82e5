package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spm-engineering/billing-service/internal/models"
)

// CreateItem handles POST /api/v1/items
func (h *Handlers) CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.items.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err, "Item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item_id": item.ID})
}

// GetItem handles GET /api/v1/items/:id
func (h *Handlers) GetItem(c *gin.Context) {
	item, err := h.items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem handles PUT /api/v1/items/:id
func (h *Handlers) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if _, err := h.items.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		handleError(c, err, "Item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteItem handles DELETE /api/v1/items/:id
func (h *Handlers) DeleteItem(c *gin.Context) {
	if err := h.items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err, "Item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListItems handles GET /api/v1/items
func (h *Handlers) ListItems(c *gin.Context) {
	filter := listFilter(c)

	items, total, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err, "Item")
		return
	}
	if items == nil {
		items = []*models.Item{}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}
