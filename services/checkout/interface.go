package checkout

import (
	"context"
	"time"

	catalogRepo "deskhive/database/repository/catalog"
	orderRepo "deskhive/database/repository/order"
	"deskhive/models"
	"deskhive/services/payment"

	"go.uber.org/zap"
)

// Service is the server side of the checkout flow: it turns validated drafts
// into payment sessions and payment proofs into confirmed orders.
type Service interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.PaymentSession, error)
	VerifyPayment(ctx context.Context, proof models.PaymentProof) (*models.Order, error)
	ExpireOrder(ctx context.Context, orderID string) error
}

// ExpiryScheduler queues the delayed cleanup of an order whose session was
// never verified.
type ExpiryScheduler interface {
	ScheduleExpiry(orderID string, delay time.Duration) error
}

// DefaultCheckoutService implements Service.
type DefaultCheckoutService struct {
	Catalog    catalogRepo.CatalogRepository
	Orders     orderRepo.OrderRepository
	Gateway    payment.Gateway
	Sessions   SessionStore
	Scheduler  ExpiryScheduler
	Logger     *zap.Logger
	SessionTTL time.Duration
}
