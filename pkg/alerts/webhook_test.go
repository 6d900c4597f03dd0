package alerts_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/alerts"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_Name(t *testing.T) {
	n := alerts.NewWebhookNotifier("https://example.com/webhook", "")
	assert.Equal(t, "webhook", n.Name())
}

func TestWebhookNotifier_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Tomatina/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, http.MethodPost, r.Method)

		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewWebhookNotifier(server.URL, "")
	alert := alerts.Alert{
		Kind:               alerts.AlertWorkDue,
		From:               "short_break",
		Phase:              "pending_work",
		CompletedIntervals: 2,
		At:                 time.Date(2026, 3, 11, 9, 45, 0, 0, time.FixedZone("CET", 3600)),
	}

	err := n.Send(context.Background(), alert)
	require.NoError(t, err)
	assert.Equal(t, "work_due", received["event"])
	assert.Equal(t, "2026-03-11T08:45:00Z", received["timestamp"])

	body, ok := received["alert"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "work_due", body["kind"])
	assert.Equal(t, "pending_work", body["phase"])
}

func TestWebhookNotifier_Send_WithHMAC(t *testing.T) {
	var signature string
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature = r.Header.Get("X-Signature-256")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewWebhookNotifier(server.URL, "test-secret")
	err := n.Send(context.Background(), alerts.Alert{Kind: alerts.AlertBreakDue})
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write(body)
	assert.Equal(t, "sha256="+hex.EncodeToString(mac.Sum(nil)), signature)
	assert.Equal(t, signature, alerts.Sign(body, []byte("test-secret")))
}

func TestWebhookNotifier_Send_EventFollowsKind(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	tr := model.Transition{
		From:               model.Working,
		To:                 model.PendingLongBreak,
		Cause:              model.CauseTimeout,
		CompletedIntervals: 4,
		At:                 time.Date(2026, 3, 11, 10, 20, 0, 0, time.UTC),
	}
	alert, ok := alerts.FromTransition(tr)
	require.True(t, ok)

	n := alerts.NewWebhookNotifier(server.URL, "")
	require.NoError(t, n.Send(context.Background(), alert))
	assert.Equal(t, "break_due", received["event"])
	assert.Equal(t, "2026-03-11T10:20:00Z", received["timestamp"])
}

func TestWebhookNotifier_Send_NoHMAC(t *testing.T) {
	var hasSignature bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasSignature = r.Header.Get("X-Signature-256") != ""
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewWebhookNotifier(server.URL, "")
	err := n.Send(context.Background(), alerts.Alert{Kind: alerts.AlertBreakDue})
	require.NoError(t, err)
	assert.False(t, hasSignature)
}

func TestWebhookNotifier_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	n := alerts.NewWebhookNotifier(server.URL, "")
	err := n.Send(context.Background(), alerts.Alert{Kind: alerts.AlertBreakDue})
	assert.Error(t, err)
}
