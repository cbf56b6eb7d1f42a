package handlers

import (
	"errors"
	"net/http"

	"deskhive/models"
	"deskhive/services/checkout"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler serves order creation and payment verification.
type CheckoutHandler struct {
	Service checkout.Service
	Logger  *zap.Logger
}

// NewCheckoutHandler returns a handler over the given checkout service.
func NewCheckoutHandler(svc checkout.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Service: svc, Logger: logger}
}

// CreateOrderHandler handles POST /api/create-order. Validation failures are
// 400s with the offending reason; gateway trouble is a 502 the client may
// safely retry.
func (h *CheckoutHandler) CreateOrderHandler(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid order payload", err.Error())
		return
	}

	session, err := h.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order", "reason": vErr.Reason, "field": vErr.Field})
			return
		}
		var cErr *checkout.OrderCreationError
		if errors.As(err, &cErr) {
			utils.JSONError(c, http.StatusBadGateway, "Could not create payment session", "Please try again.")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create order", err.Error())
		return
	}

	c.JSON(http.StatusOK, session)
}

// VerifyPaymentHandler handles POST /api/verify-payment. A rejected proof is
// terminal for the attempt: the response tells the user to contact support
// rather than inviting a retry.
func (h *CheckoutHandler) VerifyPaymentHandler(c *gin.Context) {
	var proof models.PaymentProof
	if err := c.ShouldBindJSON(&proof); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment proof", err.Error())
		return
	}

	order, err := h.Service.VerifyPayment(c.Request.Context(), proof)
	if err != nil {
		var vErr *checkout.VerificationError
		if errors.As(err, &vErr) {
			h.Logger.Warn("verification rejected",
				zap.String("providerOrderId", proof.ProviderOrderID))
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "payment verification failed",
				"message": "We could not verify this payment. Please contact support with your payment details.",
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to verify payment", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "confirmed",
		"orderId": order.ID,
		"amount":  checkout.FormatAmount(order.AmountMinor, order.Currency),
	})
}
