package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"success": false, "detail": detail})
}

// handleError maps service errors onto HTTP responses. resource names the
// entity in not-found messages ("Invoice not found").
func handleError(c *gin.Context, err error, resource string) {
	var vErr *apperrors.ValidationError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		fail(c, http.StatusNotFound, resource+" not found")
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"detail":  vErr.Error(),
			"details": vErr.Details,
		})
	case errors.Is(err, apperrors.ErrInvalidPIN):
		fail(c, http.StatusUnauthorized, "Invalid PIN")
	case errors.Is(err, apperrors.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperrors.ErrPinNotConfigured):
		fail(c, http.StatusInternalServerError, "PIN not configured")
	case errors.Is(err, apperrors.ErrConflict):
		fail(c, http.StatusConflict, resource+" was modified concurrently, retry")
	default:
		logging.NewLogger("handlers").WithContext(c.Request.Context()).Error("Request failed", logging.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		})
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindError reports a malformed or invalid request body with 422.
func bindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"detail":  "invalid request body",
			"details": details,
		})
		return
	}
	fail(c, http.StatusUnprocessableEntity, "invalid request body")
}

// listFilter reads q, page and page_size from the query string.
func listFilter(c *gin.Context) models.ListFilter {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return models.NewListFilter(c.Query("q"), page, size)
}
