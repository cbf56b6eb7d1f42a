package payment

import (
	"context"

	"deskhive/models"
)

// Gateway is the payment provider the checkout flow hands money off to. The
// vendor's wire protocol stays behind this interface; the rest of the repo
// only ever sees integer minor units and opaque provider IDs.
type Gateway interface {
	// CreateOrder registers an order with the provider and returns the
	// provider's order ID plus the key the hosted UI is opened with.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (orderID, sessionKey string, err error)
	// VerifySignature checks a payment proof's authenticity.
	VerifySignature(proof models.PaymentProof) error
}
