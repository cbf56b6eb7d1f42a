package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"deskhive/config"
	"deskhive/services/checkout"

	"github.com/hibiken/asynq"
)

const TypeCheckoutExpire = "checkout:expire"

type expirePayload struct {
	OrderID string `json:"orderId"`
}

// Scheduler enqueues delayed checkout-expiry tasks. It implements
// checkout.ExpiryScheduler.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler returns a Scheduler on the configured Redis queue.
func NewScheduler() *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(queueRedisOpts()),
	}
}

// ScheduleExpiry queues the cleanup of an order after the given delay.
func (s *Scheduler) ScheduleExpiry(orderID string, delay time.Duration) error {
	payload, err := json.Marshal(expirePayload{OrderID: orderID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeCheckoutExpire, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessIn(delay))
	return err
}

// InitExpiryWorker runs the async worker in background.
func InitExpiryWorker(checkoutSvc checkout.Service) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCheckoutExpire, handleExpireTask(checkoutSvc))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpireTask(checkoutSvc checkout.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p expirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}
		if err := checkoutSvc.ExpireOrder(ctx, p.OrderID); err != nil {
			log.Printf("[ExpiryWorker] failed to expire order %s: %v", p.OrderID, err)
			return err
		}
		return nil
	}
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
