package handlers

import (
	"net/http"
	"strconv"

	"casino_wallet/internal/domain"
	"casino_wallet/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDeposit submits a deposit request (user side).
func (h *Handler) CreateDeposit(c *gin.Context) {
	var req service.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "paymentMethodId, userId & amount required"})
		return
	}

	d, err := h.Deposits.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Deposit request created successfully", d)
}

// ListDeposits returns deposit requests for the admin panel.
func (h *Handler) ListDeposits(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	list, err := h.Deposits.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

// GetDeposit returns one deposit request.
func (h *Handler) GetDeposit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	d, err := h.Deposits.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", d)
}

// UpdateDepositStatus moves a pending deposit to a terminal status. Only
// the first transition wins; completion credits balance, bonus and
// commissions exactly once.
func (h *Handler) UpdateDepositStatus(c *gin.Context) {
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

	d, err := h.Deposits.UpdateStatus(c.Request.Context(), id, domain.DepositStatus(req.Status), req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Transaction updated successfully", d)
}

// DeleteDeposit removes a deposit request of any status.
func (h *Handler) DeleteDeposit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}

	if err := h.Deposits.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Transaction deleted successfully", nil)
}

// SearchDeposits matches requests by user-supplied evidence (trx id etc.).
func (h *Handler) SearchDeposits(c *gin.Context) {
	list, err := h.Deposits.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}
