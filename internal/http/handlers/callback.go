package handlers

import (
	"net/http"

	"casino_wallet/internal/service"

	"github.com/gin-gonic/gin"
)

// Callback receives one settlement event from the game provider and applies
// it. The provider retries on 5xx, so a failure here must not be acked.
func (h *Handler) Callback(c *gin.Context) {
	var req service.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing."})
		return
	}

	result, err := h.Settlements.ProcessCallback(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	ok(c, http.StatusOK, "Callback processed successfully.", gin.H{
		"username":    result.Username,
		"new_balance": result.NewBalance,
		"gameRecord":  result.Record,
	})
}
