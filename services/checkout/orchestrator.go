package checkout

import (
	"context"
	"sync"

	"deskhive/models"

	"go.uber.org/zap"
)

// State is a checkout attempt's position in the payment flow.
type State string

const (
	StateIdle                 State = "Idle"
	StateSessionRequested     State = "SessionRequested"
	StateSessionReady         State = "SessionReady"
	StatePaymentUIOpen        State = "PaymentUIOpen"
	StateAwaitingVerification State = "PaymentSucceededPendingVerification"
	StatePaymentFailed        State = "PaymentFailed"
	StatePaymentCancelled     State = "PaymentCancelled"
	StateVerificationFailed   State = "VerificationFailed"
	StateConfirmed            State = "Confirmed"
)

// SessionRequester creates a server-side payment session for an order draft.
type SessionRequester interface {
	CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.PaymentSession, error)
}

// Verifier submits a payment proof to the backend for signature verification.
type Verifier interface {
	VerifyPayment(ctx context.Context, proof models.PaymentProof) error
}

// ProviderLoader makes the payment gateway available before its UI is opened.
// The gateway is not guaranteed present up front; Load must be a no-op when
// IsLoaded already reports true.
type ProviderLoader interface {
	IsLoaded() bool
	Load(ctx context.Context) error
}

// PaymentUI opens the provider's hosted payment surface. Open must not
// block: the outcome arrives asynchronously through onResult, which the
// provider may never invoke (user dismissal).
type PaymentUI interface {
	Open(session models.PaymentSession, customer models.CustomerDetails, onResult func(models.PaymentProof)) error
}

// Orchestrator drives one checkout attempt from draft to verified payment.
// It is the only component that talks to the payment provider, and the only
// place amounts cross between decimal strings and minor units.
type Orchestrator struct {
	mu       sync.Mutex
	state    State
	session  *models.PaymentSession
	proof    *models.PaymentProof
	consumed map[string]bool
	closed   bool

	backend SessionRequester
	loader  ProviderLoader
	ui      PaymentUI
	gate    *VerificationGate
	logger  *zap.Logger

	// OnTransition, if set, is invoked after every state change. It runs
	// under the orchestrator's lock and must not call back into it.
	OnTransition func(State)
}

// NewOrchestrator wires an orchestrator from its collaborators.
func NewOrchestrator(backend SessionRequester, loader ProviderLoader, ui PaymentUI, verifier Verifier, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		state:    StateIdle,
		consumed: make(map[string]bool),
		backend:  backend,
		loader:   loader,
		ui:       ui,
		gate:     NewVerificationGate(verifier),
		logger:   logger,
	}
}

// State returns the current flow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Session returns the active payment session, or nil.
func (o *Orchestrator) Session() *models.PaymentSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session
}

// RequestSession exchanges a validated draft for a fresh payment session.
// Each call creates a new session: a session invalidated by a failed or
// abandoned attempt is never reused. Failure is an OrderCreationError and
// leaves the flow retryable.
func (o *Orchestrator) RequestSession(ctx context.Context, draft models.OrderDraft) (*models.PaymentSession, error) {
	o.mu.Lock()
	switch o.state {
	case StatePaymentUIOpen, StateAwaitingVerification, StateConfirmed:
		st := o.state
		o.mu.Unlock()
		return nil, &StateError{Op: "RequestSession", State: st}
	}
	o.session = nil
	o.proof = nil
	o.setStateLocked(StateSessionRequested)
	o.mu.Unlock()

	session, err := o.backend.CreateOrder(ctx, draft)
	if err != nil {
		o.transition(StateIdle)
		return nil, &OrderCreationError{Err: err}
	}

	o.mu.Lock()
	o.session = session
	o.setStateLocked(StateSessionReady)
	o.mu.Unlock()

	o.logger.Info("payment session ready",
		zap.String("providerOrderId", session.ProviderOrderID),
		zap.Int64("amountMinor", session.Amount))
	return session, nil
}

// EnsureProviderLoaded loads the payment gateway if it is not already
// available. A gateway that is still absent after loading is reported as
// ProviderUnavailableError, never as a payment failure.
func (o *Orchestrator) EnsureProviderLoaded(ctx context.Context) error {
	if o.loader.IsLoaded() {
		return nil
	}
	if err := o.loader.Load(ctx); err != nil {
		return &ProviderUnavailableError{Err: err}
	}
	if !o.loader.IsLoaded() {
		return &ProviderUnavailableError{Err: errProviderAbsent}
	}
	return nil
}

// OpenPaymentUI opens the provider's hosted payment surface for the active
// session. The call returns once the surface is open; the outcome arrives
// later via HandleResult, Dismiss or Fail.
func (o *Orchestrator) OpenPaymentUI(ctx context.Context, customer models.CustomerDetails) error {
	o.mu.Lock()
	if o.state != StateSessionReady || o.session == nil {
		st := o.state
		o.mu.Unlock()
		return &StateError{Op: "OpenPaymentUI", State: st}
	}
	session := *o.session
	o.mu.Unlock()

	if err := o.EnsureProviderLoaded(ctx); err != nil {
		return err
	}

	if err := o.ui.Open(session, customer, o.HandleResult); err != nil {
		o.transition(StatePaymentFailed)
		return &ProviderUnavailableError{Err: err}
	}
	o.transition(StatePaymentUIOpen)
	return nil
}

// HandleResult consumes the provider's success callback. The proof is
// correlated against the active session by provider order ID, not by
// whatever the UI closure captured, so a rapid re-trigger of the flow cannot
// attach a stale proof to a fresh session. Invoked at most once per session;
// duplicates and strays are dropped.
func (o *Orchestrator) HandleResult(proof models.PaymentProof) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	if o.state != StatePaymentUIOpen || o.session == nil {
		o.logger.Warn("dropping payment callback outside open UI",
			zap.String("providerOrderId", proof.ProviderOrderID),
			zap.String("state", string(o.state)))
		return
	}
	if proof.ProviderOrderID != o.session.ProviderOrderID {
		o.logger.Warn("dropping payment callback for stale session",
			zap.String("providerOrderId", proof.ProviderOrderID),
			zap.String("active", o.session.ProviderOrderID))
		return
	}
	if o.consumed[proof.ProviderOrderID] {
		return
	}
	o.consumed[proof.ProviderOrderID] = true
	o.proof = &proof
	o.setStateLocked(StateAwaitingVerification)
}

// Dismiss records that the user closed the payment surface without
// completing it. Dismissal is not failure: the flow returns to SessionReady
// so the user may retry against the same provider session.
func (o *Orchestrator) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StatePaymentUIOpen {
		return
	}
	o.setStateLocked(StateSessionReady)
}

// Abandon terminates the attempt. The session is discarded; a later attempt
// must request a fresh one.
func (o *Orchestrator) Abandon() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateConfirmed {
		return
	}
	o.session = nil
	o.setStateLocked(StatePaymentCancelled)
}

// Fail records an explicit provider-side payment failure. The session is
// discarded; retrying requires a fresh RequestSession.
func (o *Orchestrator) Fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logger.Warn("payment failed", zap.Error(err))
	o.session = nil
	o.setStateLocked(StatePaymentFailed)
}

// VerifyPayment submits the held proof through the verification gate. On
// success the flow reaches its Confirmed terminal state. On failure the
// attempt is dead: the proof is single-use, so the error is surfaced as a
// support-contact instruction and never auto-retried.
func (o *Orchestrator) VerifyPayment(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateAwaitingVerification || o.proof == nil {
		st := o.state
		o.mu.Unlock()
		return &StateError{Op: "VerifyPayment", State: st}
	}
	proof := *o.proof
	o.mu.Unlock()

	if err := o.gate.Verify(ctx, proof); err != nil {
		o.transition(StateVerificationFailed)
		return err
	}
	o.transition(StateConfirmed)
	o.logger.Info("payment confirmed", zap.String("providerOrderId", proof.ProviderOrderID))
	return nil
}

// Close disposes the orchestrator. Late provider callbacks after Close are
// dropped instead of mutating state nobody is watching.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
}

func (o *Orchestrator) transition(next State) {
	o.mu.Lock()
	o.setStateLocked(next)
	o.mu.Unlock()
}

func (o *Orchestrator) setStateLocked(next State) {
	o.state = next
	if o.OnTransition != nil {
		o.OnTransition(next)
	}
}
