package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ListFees returns every fee record.
func (h *Handler) ListFees(c *gin.Context) {
	fees, err := h.Storage.ListFees()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, fees)
}

// FeeSummary returns the collection-rate aggregates for the dashboard.
func (h *Handler) FeeSummary(c *gin.Context) {
	summary, err := h.Fees.Summarize()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type createFeeRequest struct {
	StudentID string    `json:"student_id" binding:"required"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
	DueDate   time.Time `json:"due_date" binding:"required"`
}

// CreateFee opens a pending fee for a student.
func (h *Handler) CreateFee(c *gin.Context) {
	var req createFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fee, err := h.Fees.CreateFee(req.StudentID, req.Amount, req.DueDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fee)
}

// MarkFeePaid settles a fee from the admin side.
func (h *Handler) MarkFeePaid(c *gin.Context) {
	fee, err := h.Fees.MarkPaid(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, fee)
}

// MarkFeeOverdue flips a pending fee to overdue.
func (h *Handler) MarkFeeOverdue(c *gin.Context) {
	fee, err := h.Fees.MarkOverdue(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, fee)
}

type payFeeRequest struct {
	Method string `json:"method" binding:"required"`
}

// PayFee records a payment by the authenticated student against their own
// fee.
func (h *Handler) PayFee(c *gin.Context) {
	var req payFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fee, err := h.Storage.GetFeeByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if fee.StudentID != c.GetString(ctxUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "fee belongs to another student"})
		return
	}
	paid, err := h.Fees.RecordPayment(fee.ID, req.Method)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, paid)
}

// MyFees returns the authenticated student's fees.
func (h *Handler) MyFees(c *gin.Context) {
	fees, err := h.Fees.ListByStudent(c.GetString(ctxUserID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, fees)
}

// MyPayments returns the authenticated student's payment history.
func (h *Handler) MyPayments(c *gin.Context) {
	payments, err := h.Fees.PaymentHistory(c.GetString(ctxUserID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
