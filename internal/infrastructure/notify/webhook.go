// Package notify posts staff events to a chat webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/barcrafted/bar-system/internal/core/ports"
)

const requestTimeout = 5 * time.Second

// WebhookNotifier delivers chat notifications with a plain JSON POST.
// An empty URL disables delivery, which keeps local development quiet.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func NewWebhookNotifier(url string, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		log:    log,
	}
}

type chatMessage struct {
	Text  string `json:"text"`
	BarID *int64 `json:"bar_id,omitempty"`
}

func (n *WebhookNotifier) StaffJoined(ctx context.Context, barID *int64, name string) error {
	if n.url == "" {
		n.log.Debug().Str("name", name).Msg("chat webhook disabled, skipping notification")
		return nil
	}

	body, err := json.Marshal(chatMessage{
		Text:  fmt.Sprintf("%s completed onboarding", name),
		BarID: barID,
	})
	if err != nil {
		return fmt.Errorf("encode chat message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post chat message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("chat webhook returned %d", resp.StatusCode)
	}
	return nil
}

var _ ports.Notifier = (*WebhookNotifier)(nil)
