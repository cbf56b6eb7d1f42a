package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskhive/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// expiryGrace is how long past the session TTL an unverified order is left
// alone before being marked expired. Covers a verification call racing the
// session's expiry.
const expiryGrace = 5 * time.Minute

// CreateOrder validates the request against the live catalog, registers the
// order with the payment gateway and caches a checkout session. The returned
// PaymentSession carries the amount in integer minor units; this is the only
// place the catalog's decimal price is converted.
func (s *DefaultCheckoutService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.PaymentSession, error) {
	location, err := s.Catalog.GetLocationByID(ctx, req.LocationID)
	if err != nil || !location.IsActive {
		return nil, NewValidationError(ReasonMissingLocation)
	}
	offering, err := s.Catalog.GetOfferingByID(ctx, req.ServiceOfferingID)
	if err != nil || !offering.IsActive || offering.LocationID != location.ID {
		return nil, NewValidationError(ReasonMissingService)
	}

	draft, err := BuildDraft(location, offering, req.Customer)
	if err != nil {
		return nil, err
	}
	amountMinor, err := ToMinorUnits(draft.Amount)
	if err != nil {
		return nil, NewValidationError(ReasonMalformedPrice)
	}

	receipt := uuid.New().String()
	providerOrderID, gatewayKey, err := s.Gateway.CreateOrder(ctx, amountMinor, draft.Currency, receipt)
	if err != nil {
		return nil, &OrderCreationError{Err: err}
	}

	order := models.Order{
		ID:                receipt,
		LocationID:        draft.LocationID,
		ServiceOfferingID: draft.ServiceOfferingID,
		Customer:          draft.Customer,
		AmountMinor:       amountMinor,
		Currency:          draft.Currency,
		ProviderOrderID:   providerOrderID,
		SessionKey:        gatewayKey,
		Status:            models.OrderStatusPending,
	}
	if _, err := s.Orders.Create(ctx, order); err != nil {
		return nil, &OrderCreationError{Err: fmt.Errorf("failed to persist order: %w", err)}
	}

	session := models.CheckoutSession{
		SessionKey:      gatewayKey,
		OrderID:         order.ID,
		ProviderOrderID: providerOrderID,
		AmountMinor:     amountMinor,
		Currency:        draft.Currency,
		Customer:        draft.Customer,
		CreatedAt:       time.Now(),
	}
	if err := s.Sessions.Save(ctx, session, s.SessionTTL); err != nil {
		s.Logger.Error("failed to cache checkout session", zap.Error(err),
			zap.String("orderId", order.ID))
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleExpiry(order.ID, s.SessionTTL+expiryGrace); err != nil {
			s.Logger.Error("failed to schedule order expiry", zap.Error(err),
				zap.String("orderId", order.ID))
		}
	}

	s.Logger.Info("checkout session created",
		zap.String("orderId", order.ID),
		zap.String("providerOrderId", providerOrderID),
		zap.Int64("amountMinor", amountMinor))

	return &models.PaymentSession{
		SessionKey:      gatewayKey,
		Amount:          amountMinor,
		Currency:        draft.Currency,
		ProviderOrderID: providerOrderID,
	}, nil
}

// VerifyPayment checks a payment proof against the gateway signature and
// marks the order paid. A proof is single-use: any order that is no longer
// pending rejects further proofs.
func (s *DefaultCheckoutService) VerifyPayment(ctx context.Context, proof models.PaymentProof) (*models.Order, error) {
	order, err := s.Orders.GetByProviderOrderID(ctx, proof.ProviderOrderID)
	if err != nil {
		return nil, &VerificationError{
			ProviderOrderID: proof.ProviderOrderID,
			Err:             errors.New("no order for this payment"),
		}
	}
	if order.Status != models.OrderStatusPending {
		return nil, &VerificationError{
			ProviderOrderID: proof.ProviderOrderID,
			Err:             fmt.Errorf("order is %s", order.Status),
		}
	}

	if err := s.Gateway.VerifySignature(proof); err != nil {
		if uerr := s.Orders.UpdateStatus(ctx, order.ID, models.OrderStatusVerificationFailed); uerr != nil {
			s.Logger.Error("failed to record verification failure", zap.Error(uerr),
				zap.String("orderId", order.ID))
		}
		s.Logger.Warn("payment proof rejected",
			zap.String("orderId", order.ID),
			zap.String("providerPaymentId", proof.ProviderPaymentID),
			zap.Error(err))
		return nil, &VerificationError{ProviderOrderID: proof.ProviderOrderID, Err: err}
	}

	if err := s.Orders.MarkPaid(ctx, order.ID, proof.ProviderPaymentID); err != nil {
		// Lost the race with another verification of the same proof.
		return nil, &VerificationError{ProviderOrderID: proof.ProviderOrderID, Err: err}
	}
	if err := s.Sessions.Delete(ctx, order.ProviderOrderID); err != nil {
		s.Logger.Warn("failed to clear checkout session", zap.Error(err),
			zap.String("orderId", order.ID))
	}

	s.Logger.Info("payment verified",
		zap.String("orderId", order.ID),
		zap.String("providerPaymentId", proof.ProviderPaymentID))

	order.Status = models.OrderStatusPaid
	order.ProviderPaymentID = proof.ProviderPaymentID
	return order, nil
}

// ExpireOrder marks a still-pending order expired. Invoked by the background
// worker once the session TTL plus grace has passed; orders that were paid or
// already failed are left untouched.
func (s *DefaultCheckoutService) ExpireOrder(ctx context.Context, orderID string) error {
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusPending {
		return nil
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, models.OrderStatusExpired); err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, order.ProviderOrderID); err != nil {
		s.Logger.Warn("failed to clear expired session", zap.Error(err),
			zap.String("orderId", orderID))
	}
	s.Logger.Info("expired unpaid order", zap.String("orderId", orderID))
	return nil
}
