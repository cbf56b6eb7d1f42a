package payment

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Loader establishes that the payment gateway is reachable before its UI is
// opened. Mirrors the lazy script loader the web checkout uses: Load is only
// called when IsLoaded is false, and a completed Load sticks.
type Loader struct {
	BaseURL string
	Client  *http.Client

	mu     sync.Mutex
	loaded bool
}

// NewLoader returns a Loader probing the given gateway base URL.
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// IsLoaded reports whether a previous Load completed.
func (l *Loader) IsLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Load probes the gateway. Any HTTP response counts as reachable; only a
// transport failure leaves the gateway unavailable.
func (l *Loader) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	resp.Body.Close()

	l.mu.Lock()
	l.loaded = true
	l.mu.Unlock()
	return nil
}
