package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type verifyPINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// VerifyPIN handles POST /api/v1/auth/verify-pin
func (h *Handlers) VerifyPIN(c *gin.Context) {
	var req verifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.auth.VerifyPIN(c.Request.Context(), req.PIN)
	if err != nil {
		handleError(c, err, "PIN")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "PIN verified successfully",
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}
