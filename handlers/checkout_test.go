package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deskhive/models"
	"deskhive/services/checkout"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCheckout struct {
	createErr error
	verifyErr error
}

func (s *stubCheckout) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.PaymentSession, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.PaymentSession{
		SessionKey:      "key_test",
		Amount:          499900,
		Currency:        "INR",
		ProviderOrderID: "order_xyz",
	}, nil
}

func (s *stubCheckout) VerifyPayment(ctx context.Context, proof models.PaymentProof) (*models.Order, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &models.Order{
		ID:          "ord_1",
		AmountMinor: 499900,
		Currency:    "INR",
		Status:      models.OrderStatusPaid,
	}, nil
}

func (s *stubCheckout) ExpireOrder(ctx context.Context, orderID string) error { return nil }

func newCheckoutRouter(svc checkout.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCheckoutHandler(svc, zap.NewNop())
	r.POST("/api/create-order", h.CreateOrderHandler)
	r.POST("/api/verify-payment", h.VerifyPaymentHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validOrderRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		LocationID:        3,
		ServiceOfferingID: 9,
		Customer: models.CustomerDetails{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9876543210",
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := newCheckoutRouter(&stubCheckout{})

	w := postJSON(t, r, "/api/create-order", validOrderRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var session models.PaymentSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, int64(499900), session.Amount)
	assert.Equal(t, "order_xyz", session.ProviderOrderID)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	r := newCheckoutRouter(&stubCheckout{
		createErr: &checkout.ValidationError{Reason: checkout.ReasonInvalidCustomer, Field: "email"},
	})

	w := postJSON(t, r, "/api/create-order", validOrderRequest())
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, checkout.ReasonInvalidCustomer, body["reason"])
	assert.Equal(t, "email", body["field"])
}

func TestCreateOrderEndpointGatewayDown(t *testing.T) {
	r := newCheckoutRouter(&stubCheckout{
		createErr: &checkout.OrderCreationError{Err: errors.New("gateway timeout")},
	})

	w := postJSON(t, r, "/api/create-order", validOrderRequest())
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	r := newCheckoutRouter(&stubCheckout{})

	w := postJSON(t, r, "/api/verify-payment", models.PaymentProof{
		ProviderOrderID:   "order_xyz",
		ProviderPaymentID: "pay_1",
		ProviderSignature: "sig",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "4,999.00 INR", body["amount"])
}

func TestVerifyPaymentEndpointRejectedProof(t *testing.T) {
	r := newCheckoutRouter(&stubCheckout{
		verifyErr: &checkout.VerificationError{ProviderOrderID: "order_xyz", Err: errors.New("signature mismatch")},
	})

	w := postJSON(t, r, "/api/verify-payment", models.PaymentProof{
		ProviderOrderID:   "order_xyz",
		ProviderPaymentID: "pay_1",
		ProviderSignature: "forged",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "contact support")
}

func TestVerifyPaymentEndpointMissingFields(t *testing.T) {
	r := newCheckoutRouter(&stubCheckout{})

	w := postJSON(t, r, "/api/verify-payment", map[string]string{"providerOrderId": "order_xyz"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
