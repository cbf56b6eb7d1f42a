package checkout

import (
	"context"
	"errors"
	"testing"

	"deskhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	sessions int
	fail     bool
}

func (b *fakeBackend) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.PaymentSession, error) {
	if b.fail {
		return nil, errors.New("backend down")
	}
	b.sessions++
	return &models.PaymentSession{
		SessionKey:      "key_test",
		Amount:          499900,
		Currency:        "INR",
		ProviderOrderID: "order_" + string(rune('a'+b.sessions-1)),
	}, nil
}

type fakeLoader struct {
	loaded    bool
	loadErr   error
	loadCalls int
	absent    bool // Load "succeeds" but the gateway never appears
}

func (l *fakeLoader) IsLoaded() bool { return l.loaded }

func (l *fakeLoader) Load(ctx context.Context) error {
	l.loadCalls++
	if l.loadErr != nil {
		return l.loadErr
	}
	if !l.absent {
		l.loaded = true
	}
	return nil
}

type fakeUI struct {
	opened   int
	openErr  error
	onResult func(models.PaymentProof)
}

func (u *fakeUI) Open(session models.PaymentSession, customer models.CustomerDetails, onResult func(models.PaymentProof)) error {
	if u.openErr != nil {
		return u.openErr
	}
	u.opened++
	u.onResult = onResult
	return nil
}

type fakeVerifier struct {
	calls int
	err   error
}

func (v *fakeVerifier) VerifyPayment(ctx context.Context, proof models.PaymentProof) error {
	v.calls++
	return v.err
}

func testDraft() models.OrderDraft {
	return models.OrderDraft{
		LocationID:        3,
		ServiceOfferingID: 9,
		Customer:          validCustomer(),
		Amount:            "4999.00",
		Currency:          "INR",
	}
}

func newTestOrchestrator(backend *fakeBackend, loader *fakeLoader, ui *fakeUI, verifier *fakeVerifier) *Orchestrator {
	return NewOrchestrator(backend, loader, ui, verifier, zap.NewNop())
}

func TestHappyPath(t *testing.T) {
	backend := &fakeBackend{}
	loader := &fakeLoader{}
	ui := &fakeUI{}
	verifier := &fakeVerifier{}
	o := newTestOrchestrator(backend, loader, ui, verifier)

	ctx := context.Background()
	session, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(499900), session.Amount)
	assert.Equal(t, StateSessionReady, o.State())

	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))
	assert.Equal(t, StatePaymentUIOpen, o.State())
	assert.Equal(t, 1, loader.loadCalls)

	ui.onResult(models.PaymentProof{
		ProviderOrderID:   session.ProviderOrderID,
		ProviderPaymentID: "pay_1",
		ProviderSignature: "sig",
	})
	assert.Equal(t, StateAwaitingVerification, o.State())

	require.NoError(t, o.VerifyPayment(ctx))
	assert.Equal(t, StateConfirmed, o.State())
	assert.Equal(t, 1, verifier.calls)
}

func TestSessionRequestFailureIsRetryable(t *testing.T) {
	backend := &fakeBackend{fail: true}
	o := newTestOrchestrator(backend, &fakeLoader{}, &fakeUI{}, &fakeVerifier{})

	_, err := o.RequestSession(context.Background(), testDraft())
	var cErr *OrderCreationError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, StateIdle, o.State())

	backend.fail = false
	_, err = o.RequestSession(context.Background(), testDraft())
	assert.NoError(t, err)
}

func TestLoaderFailureIsProviderUnavailable(t *testing.T) {
	loader := &fakeLoader{loadErr: errors.New("script blocked")}
	o := newTestOrchestrator(&fakeBackend{}, loader, &fakeUI{}, &fakeVerifier{})

	ctx := context.Background()
	_, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)

	err = o.OpenPaymentUI(ctx, validCustomer())
	var pErr *ProviderUnavailableError
	require.ErrorAs(t, err, &pErr)
	// Not a payment failure; the session survives for a retry.
	assert.Equal(t, StateSessionReady, o.State())
}

func TestLoaderCompletesButGatewayAbsent(t *testing.T) {
	loader := &fakeLoader{absent: true}
	o := newTestOrchestrator(&fakeBackend{}, loader, &fakeUI{}, &fakeVerifier{})

	ctx := context.Background()
	_, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)

	err = o.OpenPaymentUI(ctx, validCustomer())
	var pErr *ProviderUnavailableError
	require.ErrorAs(t, err, &pErr)
}

func TestLoadSkippedWhenAlreadyLoaded(t *testing.T) {
	loader := &fakeLoader{loaded: true}
	o := newTestOrchestrator(&fakeBackend{}, loader, &fakeUI{}, &fakeVerifier{})

	ctx := context.Background()
	_, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))
	assert.Zero(t, loader.loadCalls)
}

// An un-invoked callback (user dismissed the provider UI) must not surface
// as a payment failure.
func TestDismissalIsNotFailure(t *testing.T) {
	ui := &fakeUI{}
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, ui, &fakeVerifier{})

	ctx := context.Background()
	_, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))

	// Callback never fires; the flow just sits in PaymentUIOpen.
	assert.Equal(t, StatePaymentUIOpen, o.State())
	assert.NotEqual(t, StatePaymentFailed, o.State())

	// Explicit dismissal returns to SessionReady for a retry.
	o.Dismiss()
	assert.Equal(t, StateSessionReady, o.State())
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))
	assert.Equal(t, 2, ui.opened)
}

func TestExplicitProviderErrorIsFailure(t *testing.T) {
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, &fakeUI{}, &fakeVerifier{})

	ctx := context.Background()
	_, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))

	o.Fail(errors.New("card declined"))
	assert.Equal(t, StatePaymentFailed, o.State())
	assert.Nil(t, o.Session())
}

func TestStaleCallbackIgnored(t *testing.T) {
	backend := &fakeBackend{}
	ui := &fakeUI{}
	o := newTestOrchestrator(backend, &fakeLoader{}, ui, &fakeVerifier{})

	ctx := context.Background()
	first, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))
	staleResult := ui.onResult

	// User rapidly re-triggers the flow: dismiss, new session, new UI.
	o.Dismiss()
	second, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NotEqual(t, first.ProviderOrderID, second.ProviderOrderID)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))

	// The provider delivers a result for the abandoned session.
	staleResult(models.PaymentProof{
		ProviderOrderID:   first.ProviderOrderID,
		ProviderPaymentID: "pay_stale",
		ProviderSignature: "sig",
	})
	assert.Equal(t, StatePaymentUIOpen, o.State())

	// The live session's result still lands.
	ui.onResult(models.PaymentProof{
		ProviderOrderID:   second.ProviderOrderID,
		ProviderPaymentID: "pay_live",
		ProviderSignature: "sig",
	})
	assert.Equal(t, StateAwaitingVerification, o.State())
}

func TestCallbackConsumedAtMostOnce(t *testing.T) {
	ui := &fakeUI{}
	verifier := &fakeVerifier{}
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, ui, verifier)

	ctx := context.Background()
	session, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))

	proof := models.PaymentProof{
		ProviderOrderID:   session.ProviderOrderID,
		ProviderPaymentID: "pay_1",
		ProviderSignature: "sig",
	}
	ui.onResult(proof)
	ui.onResult(proof)
	assert.Equal(t, StateAwaitingVerification, o.State())

	require.NoError(t, o.VerifyPayment(ctx))
	assert.Equal(t, 1, verifier.calls)
}

// A failed verification is terminal; the orchestrator refuses to re-verify
// without explicit user action on a fresh attempt.
func TestNoAutomaticReverification(t *testing.T) {
	ui := &fakeUI{}
	verifier := &fakeVerifier{err: errors.New("signature rejected")}
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, ui, verifier)

	ctx := context.Background()
	session, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))
	ui.onResult(models.PaymentProof{
		ProviderOrderID:   session.ProviderOrderID,
		ProviderPaymentID: "pay_1",
		ProviderSignature: "bad",
	})

	err = o.VerifyPayment(ctx)
	var vErr *VerificationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StateVerificationFailed, o.State())
	assert.Equal(t, 1, verifier.calls)

	// A second call is a state error, not another backend round-trip.
	err = o.VerifyPayment(ctx)
	var sErr *StateError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, 1, verifier.calls)
}

func TestAbandonDiscardsSession(t *testing.T) {
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, &fakeUI{}, &fakeVerifier{})

	_, err := o.RequestSession(context.Background(), testDraft())
	require.NoError(t, err)

	o.Abandon()
	assert.Equal(t, StatePaymentCancelled, o.State())
	assert.Nil(t, o.Session())
}

func TestClosedOrchestratorDropsLateCallbacks(t *testing.T) {
	ui := &fakeUI{}
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, ui, &fakeVerifier{})

	ctx := context.Background()
	session, err := o.RequestSession(ctx, testDraft())
	require.NoError(t, err)
	require.NoError(t, o.OpenPaymentUI(ctx, validCustomer()))

	o.Close()
	ui.onResult(models.PaymentProof{
		ProviderOrderID:   session.ProviderOrderID,
		ProviderPaymentID: "pay_late",
		ProviderSignature: "sig",
	})
	assert.Equal(t, StatePaymentUIOpen, o.State())
}

func TestOpenWithoutSessionRejected(t *testing.T) {
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, &fakeUI{}, &fakeVerifier{})

	err := o.OpenPaymentUI(context.Background(), validCustomer())
	var sErr *StateError
	require.ErrorAs(t, err, &sErr)
}

func TestTransitionHook(t *testing.T) {
	var states []State
	o := newTestOrchestrator(&fakeBackend{}, &fakeLoader{}, &fakeUI{}, &fakeVerifier{})
	o.OnTransition = func(s State) { states = append(states, s) }

	_, err := o.RequestSession(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, []State{StateSessionRequested, StateSessionReady}, states)
}
