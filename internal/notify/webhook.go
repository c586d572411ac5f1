package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookSink POSTs {"text": message} to a URL.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink returns a webhook sink. A nil client uses a 10s timeout.
func NewWebhookSink(url string, client *http.Client) (*WebhookSink, error) {
	if url == "" {
		return nil, errors.New("webhook sink: url is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookSink{url: url, client: client}, nil
}

type webhookPayload struct {
	Text string `json:"text"`
}

func (s *WebhookSink) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(webhookPayload{Text: message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook error %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
