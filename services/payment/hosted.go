package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"deskhive/models"
)

// HostedGateway talks to a hosted-checkout provider over its REST API. The
// provider signs each completed payment with an HMAC-SHA256 over
// "<orderID>|<paymentID>" keyed by the merchant secret; VerifySignature
// recomputes it server-side.
type HostedGateway struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Client    *http.Client
}

// NewHostedGateway builds a gateway client from merchant credentials.
func NewHostedGateway(baseURL, keyID, keySecret string) *HostedGateway {
	return &HostedGateway{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type hostedOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type hostedOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder registers the order with the provider. Amount is already in
// minor units; this call performs no currency arithmetic.
func (g *HostedGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, string, error) {
	body, err := json.Marshal(hostedOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.KeyID, g.KeySecret)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("gateway order creation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("gateway order creation: status %d: %s", resp.StatusCode, snippet)
	}

	var out hostedOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("gateway order creation: decode: %w", err)
	}
	if out.ID == "" {
		return "", "", errors.New("gateway order creation: empty order id")
	}
	// The hosted UI authenticates with the merchant's public key ID.
	return out.ID, g.KeyID, nil
}

// VerifySignature recomputes the provider's HMAC and compares it in constant
// time.
func (g *HostedGateway) VerifySignature(proof models.PaymentProof) error {
	mac := hmac.New(sha256.New, []byte(g.KeySecret))
	mac.Write([]byte(proof.ProviderOrderID + "|" + proof.ProviderPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(proof.ProviderSignature)) {
		return errors.New("signature mismatch")
	}
	return nil
}

// Sign produces the provider-side signature for a payment. Exposed for tests
// and for the sandbox tooling that fakes provider callbacks.
func (g *HostedGateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
