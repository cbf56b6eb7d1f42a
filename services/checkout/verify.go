package checkout

import (
	"context"
	"errors"
	"sync"

	"deskhive/models"
)

// VerificationGate submits payment proofs to the backend exactly once each.
// Proofs are single-use and time-bound on the provider side, so a proof that
// has been rejected is never resubmitted automatically; only explicit user
// action on a fresh proof moves the flow forward.
type VerificationGate struct {
	mu        sync.Mutex
	verifier  Verifier
	attempted map[string]bool
}

// NewVerificationGate wraps a Verifier with the single-attempt guard.
func NewVerificationGate(verifier Verifier) *VerificationGate {
	return &VerificationGate{
		verifier:  verifier,
		attempted: make(map[string]bool),
	}
}

// Verify submits the proof for signature verification. A second call with
// the same proof fails immediately without touching the backend.
func (g *VerificationGate) Verify(ctx context.Context, proof models.PaymentProof) error {
	key := proof.ProviderOrderID + "|" + proof.ProviderPaymentID

	g.mu.Lock()
	if g.attempted[key] {
		g.mu.Unlock()
		return &VerificationError{
			ProviderOrderID: proof.ProviderOrderID,
			Err:             errors.New("proof already submitted"),
		}
	}
	g.attempted[key] = true
	g.mu.Unlock()

	if err := g.verifier.VerifyPayment(ctx, proof); err != nil {
		return &VerificationError{ProviderOrderID: proof.ProviderOrderID, Err: err}
	}
	return nil
}
