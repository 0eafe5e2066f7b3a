// Copyright 2025 Candor Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package notify delivers pipeline events to external listeners.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Event types emitted by the load and search pipelines.
const (
	EventProfilesLoaded   = "profiles.loaded"
	EventInterviewsLoaded = "interviews.loaded"
	EventSearchCompleted  = "search.completed"
)

// ErrWebhookURLRequired is returned when a webhook notifier is created
// without a URL.
var ErrWebhookURLRequired = errors.New("webhook URL required")

const defaultWebhookTimeout = 5 * time.Second

// Event is a single pipeline notification.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Details    map[string]any `json:"details,omitempty"`
}

// Notifier delivers events. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NoopNotifier discards all events.
type NoopNotifier struct{}

var _ Notifier = (*NoopNotifier)(nil)

// Notify implements Notifier.
func (n *NoopNotifier) Notify(_ context.Context, _ Event) error { return nil }

// WebhookNotifier POSTs events as JSON to a fixed URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

var _ Notifier = (*WebhookNotifier)(nil)

// WebhookOption configures a WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithHTTPClient sets a custom HTTP client.
// Default uses a 5 second timeout.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *WebhookNotifier) {
		if client != nil {
			w.client = client
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WebhookOption {
	return func(w *WebhookNotifier) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
	}
}

// NewWebhookNotifier creates a webhook notifier targeting url.
func NewWebhookNotifier(url string, opts ...WebhookOption) (*WebhookNotifier, error) {
	if url == "" {
		return nil, ErrWebhookURLRequired
	}

	w := &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: defaultWebhookTimeout},
		logger: slog.Default().With("component", "webhook-notifier"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Notify delivers the event. A non-2xx response is an error.
func (w *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
