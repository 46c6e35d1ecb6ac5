package handlers

import (
	"math"
	"net/http"
	"strconv"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateWithdrawal submits a withdrawal request (user side). The amount is
// reserved from balance before the request exists.
func (h *Handler) CreateWithdrawal(c *gin.Context) {
	var req service.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	w, err := h.Withdrawals.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Withdraw request submitted successfully", w)
}

// ListWithdrawals returns withdrawal requests with pagination.
func (h *Handler) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	list, total, err := h.Withdrawals.List(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    list,
		"pagination": gin.H{
			"current": page,
			"pages":   int(math.Ceil(float64(total) / float64(limit))),
			"total":   total,
		},
	})
}

// GetWithdrawal returns one withdrawal request.
func (h *Handler) GetWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	w, err := h.Withdrawals.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", w)
}

// UpdateWithdrawalStatus settles a pending withdrawal: completion disburses
// (no balance change, funds already reserved), cancel/fail refund.
func (h *Handler) UpdateWithdrawalStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status required"})
		return
	}

	status := domain.WithdrawalStatus(req.Status)
	w, err := h.Withdrawals.UpdateStatus(c.Request.Context(), id, status, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}

	msg := "Withdrawal completed – amount deducted permanently"
	if status.Refundable() {
		msg = "Withdrawal " + string(status) + " – amount refunded"
	}
	ok(c, http.StatusOK, msg, gin.H{"transaction": w, "action": status})
}

// DeleteWithdrawal removes a request, refunding a pending reservation.
// Completed withdrawals cannot be deleted.
func (h *Handler) DeleteWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	refunded, err := h.Withdrawals.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Transaction deleted permanently",
		"refunded": refunded,
	})
}
