package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

// CreateCustomer handles POST /api/v1/customers
func (h *Handlers) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind customer", logging.Fields{"error": err.Error()})
		bindError(c, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err, "Customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customer_id": customer.ID})
}

// GetCustomer handles GET /api/v1/customers/:id
func (h *Handlers) GetCustomer(c *gin.Context) {
	customer, err := h.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func (h *Handlers) UpdateCustomer(c *gin.Context) {
	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if _, err := h.customers.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		handleError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func (h *Handlers) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListCustomers handles GET /api/v1/customers
func (h *Handlers) ListCustomers(c *gin.Context) {
	filter := listFilter(c)

	customers, total, err := h.customers.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err, "Customer")
		return
	}
	if customers == nil {
		customers = []*models.Customer{}
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}
