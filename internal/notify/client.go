// Package notify delivers finalized bookings to the external booking
// notification service over HTTP.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/logger"
	"github.com/avstrong/lodgix/internal/metrics"
)

const (
	breakerName      = "booking-notify"
	defaultTripAfter = 5
	maxErrorBody     = 512
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

type Config struct {
	L       *logger.Logger
	URL     string
	Token   string
	Timeout time.Duration
	// TripAfter consecutive failures open the breaker. Zero means the default.
	TripAfter uint32
	// OpenFor is how long the breaker stays open before probing again.
	OpenFor    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	l      *logger.Logger
	url    string
	token  string
	client *http.Client
	cb     *gobreaker.CircuitBreaker[struct{}]
}

func New(conf Config) *Client {
	httpClient := conf.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: conf.Timeout} //nolint:exhaustruct
	}

	tripAfter := conf.TripAfter
	if tripAfter == 0 {
		tripAfter = defaultTripAfter
	}

	openFor := conf.OpenFor
	if openFor <= 0 {
		openFor = 30 * time.Second //nolint:gomnd
	}

	l := conf.L.With("notify")

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	//nolint:exhaustruct
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.LogWarnf("Circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		l:      l,
		url:    conf.URL,
		token:  conf.Token,
		client: httpClient,
		cb:     cb,
	}
}

// Notify posts the notification. Calls are rejected without touching the
// network while the breaker is open.
func (c *Client) Notify(ctx context.Context, n booking.Notification) error {
	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, c.post(ctx, n)
	})

	switch {
	case err == nil:
		metrics.Notifications.WithLabelValues("sent").Inc()

		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.Notifications.WithLabelValues("rejected").Inc()

		return fmt.Errorf("notify booking service: %w", err)
	default:
		metrics.Notifications.WithLabelValues("failed").Inc()

		return fmt.Errorf("notify booking service: %w", err)
	}
}

func (c *Client) post(ctx context.Context, n booking.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2 //nolint:gomnd
	default:
		return -1
	}
}
