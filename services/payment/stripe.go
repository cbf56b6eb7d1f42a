package payment

import (
	"context"
	"errors"
	"strings"

	"deskhive/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway implements Gateway on Stripe PaymentIntents. The intent ID
// doubles as the provider order ID and the client secret as the session key
// the embedded payment element is mounted with.
type StripeGateway struct{}

// NewStripeGateway returns a Stripe-backed gateway. The package-level
// stripe.Key must be set before use.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

// CreateOrder opens a PaymentIntent for the given amount in minor units.
func (g *StripeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(strings.ToLower(currency)),
		Metadata: map[string]string{"receipt": receipt},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}
	return pi.ID, pi.ClientSecret, nil
}

// VerifySignature checks the proof against the live intent: the intent must
// exist, have succeeded, and the proof's signature must be the client secret
// Stripe handed back on confirmation.
func (g *StripeGateway) VerifySignature(proof models.PaymentProof) error {
	pi, err := paymentintent.Get(proof.ProviderOrderID, nil)
	if err != nil {
		return err
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return errors.New("payment not completed")
	}
	if pi.ClientSecret != proof.ProviderSignature {
		return errors.New("signature mismatch")
	}
	if pi.LatestCharge != nil && proof.ProviderPaymentID != "" && pi.LatestCharge.ID != proof.ProviderPaymentID {
		return errors.New("payment id mismatch")
	}
	return nil
}
