// Package client consumes the deskhive checkout API the way the web pages
// do: catalog reads, order creation and payment verification. It satisfies
// the checkout package's SessionRequester and Verifier interfaces, so an
// Orchestrator can be wired straight onto it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"deskhive/models"
)

// NetworkError reports a transport-level failure talking to the backend.
// Catalog callers recover locally (empty state, user may retry); it is never
// fatal to the page.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

// Client talks to the deskhive backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu        sync.Mutex
	offerings map[int][]models.ServiceOffering
}

// New returns a Client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:   baseURL,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		offerings: make(map[int][]models.ServiceOffering),
	}
}

// ListLocations fetches the available locations. An empty list means "no
// locations available", not an error.
func (c *Client) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if err := c.get(ctx, "/api/locations", &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// ListServiceOfferings fetches the packages for a location. Results are
// memoized per location ID for the lifetime of the client; a city without
// packages yet yields an empty list.
func (c *Client) ListServiceOfferings(ctx context.Context, locationID int) ([]models.ServiceOffering, error) {
	c.mu.Lock()
	if cached, ok := c.offerings[locationID]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var offs []models.ServiceOffering
	path := fmt.Sprintf("/api/pricing-catalog/%d", locationID)
	if err := c.get(ctx, path, &offs); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.offerings[locationID] = offs
	c.mu.Unlock()
	return offs, nil
}

// CreateOrder submits an order draft and returns the payment session to open
// the provider UI with.
func (c *Client) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.PaymentSession, error) {
	req := models.CreateOrderRequest{
		LocationID:        draft.LocationID,
		ServiceOfferingID: draft.ServiceOfferingID,
		Customer:          draft.Customer,
	}
	var session models.PaymentSession
	if err := c.post(ctx, "/api/create-order", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyPayment submits a payment proof for verification.
func (c *Client) VerifyPayment(ctx context.Context, proof models.PaymentProof) error {
	return c.post(ctx, "/api/verify-payment", proof, nil)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Op: op, Status: resp.StatusCode, Body: string(snippet)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
