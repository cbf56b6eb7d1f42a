package models

import "time"

// Order status lifecycle.
const (
	OrderStatusPending            = "pending"
	OrderStatusPaid               = "paid"
	OrderStatusVerificationFailed = "verification_failed"
	OrderStatusExpired            = "expired"
)

// OrderDraft is a validated, normalized order-creation request. It exists
// only in memory between form submission and session creation.
type OrderDraft struct {
	LocationID        int             `json:"locationId"`
	ServiceOfferingID int             `json:"serviceOfferingId"`
	Customer          CustomerDetails `json:"customer"`
	Amount            string          `json:"amount"` // decimal string, major units
	Currency          string          `json:"currency"`
}

// CreateOrderRequest is the wire payload of POST /api/create-order.
type CreateOrderRequest struct {
	LocationID        int             `json:"locationId" binding:"required"`
	ServiceOfferingID int             `json:"serviceOfferingId" binding:"required"`
	Customer          CustomerDetails `json:"customer" binding:"required"`
}

// PaymentSession is what the backend hands the client in exchange for an
// order draft. Amount is in integer minor units; the client passes it to the
// payment provider untouched.
type PaymentSession struct {
	SessionKey      string `json:"sessionKey"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	ProviderOrderID string `json:"providerOrderId"`
}

// PaymentProof is the signed callback payload the payment provider returns
// after the user completes a transaction. Submitted exactly once for
// verification.
type PaymentProof struct {
	ProviderOrderID   string `json:"providerOrderId" binding:"required"`
	ProviderPaymentID string `json:"providerPaymentId" binding:"required"`
	ProviderSignature string `json:"providerSignature" binding:"required"`
}

// Order is the persisted record of a checkout attempt.
type Order struct {
	ID                string          `json:"id" bson:"id"`
	LocationID        int             `json:"locationId" bson:"locationId"`
	ServiceOfferingID int             `json:"serviceOfferingId" bson:"serviceOfferingId"`
	Customer          CustomerDetails `json:"customer" bson:"customer"`
	AmountMinor       int64           `json:"amountMinor" bson:"amountMinor"`
	Currency          string          `json:"currency" bson:"currency"`
	ProviderOrderID   string          `json:"providerOrderId" bson:"providerOrderId"`
	ProviderPaymentID string          `json:"providerPaymentId,omitempty" bson:"providerPaymentId,omitempty"`
	SessionKey        string          `json:"sessionKey" bson:"sessionKey"`
	Status            string          `json:"status" bson:"status"`
	CreatedAt         time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// CheckoutSession holds context between order creation and payment
// verification. Cached in Redis under ProviderOrderID with a TTL; a new
// checkout attempt always gets a fresh session.
type CheckoutSession struct {
	SessionKey      string          `json:"sessionKey"`
	OrderID         string          `json:"orderId"`
	ProviderOrderID string          `json:"providerOrderId"`
	AmountMinor     int64           `json:"amountMinor"`
	Currency        string          `json:"currency"`
	Customer        CustomerDetails `json:"customer"`
	CreatedAt       time.Time       `json:"createdAt"`
}
