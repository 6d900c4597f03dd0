package alerts

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const signatureHeader = "X-Signature-256"

// WebhookNotifier posts phase alerts as JSON to an HTTP endpoint. With a
// secret, the body is signed with HMAC-SHA256 in X-Signature-256.
type WebhookNotifier struct {
	url    string
	secret []byte
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier. An empty secret disables
// signing.
func NewWebhookNotifier(url, secret string) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	if secret != "" {
		n.secret = []byte(secret)
	}
	return n
}

func (w *WebhookNotifier) Name() string { return "webhook" }

// webhookEvent is the wire format. Event carries the alert kind so receivers
// can route on it without decoding the nested alert.
type webhookEvent struct {
	Event     AlertKind `json:"event"`
	Timestamp string    `json:"timestamp"`
	Alert     Alert     `json:"alert"`
}

func newWebhookEvent(alert Alert) webhookEvent {
	return webhookEvent{
		Event:     alert.Kind,
		Timestamp: alert.At.UTC().Format(time.RFC3339),
		Alert:     alert,
	}
}

func (w *WebhookNotifier) Send(ctx context.Context, alert Alert) error {
	body, err := json.Marshal(newWebhookEvent(alert))
	if err != nil {
		return fmt.Errorf("encode %s alert: %w", alert.Kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Tomatina/1.0")
	if w.secret != nil {
		req.Header.Set(signatureHeader, Sign(body, w.secret))
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s alert: %w", alert.Kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("webhook rejected %s alert: status %d", alert.Kind, resp.StatusCode)
	}
	return nil
}

// Sign returns the X-Signature-256 value for body.
func Sign(body, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
