package payment

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/member"
	"gymdesk/internal/plan"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Record a payment
// @Description  Inserts the payment and re-derives the member's due/active standing in one transaction. A renewal payment with extend_expiry=true also advances the expiry date by one plan duration.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body payment.RecordPaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.service.RecordPayment(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member's plan no longer exists"})
		case errors.Is(err, member.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "payment_date must be formatted as YYYY-MM-DD"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      Outstanding dues for a member
// @Description  Due amount is computed on demand from the plan price and the paid payments of the current period; it is never stored.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} payment.DuesResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/dues [get]
func (h *Handler) GetDues(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	dues, err := h.service.GetDues(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member's plan no longer exists"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute dues"})
		}
		return
	}

	c.JSON(http.StatusOK, dues)
}

// @Summary      List a member's payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {array} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/payments [get]
func (h *Handler) ListMemberPayments(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	payments, err := h.service.GetMemberPayments(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		}
		return
	}

	c.JSON(http.StatusOK, payments)
}

// @Summary      List all payments
// @Tags         admin,payments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} payment.Payment
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.service.GetAllPayments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
