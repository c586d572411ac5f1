package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tim-element/element-nutrients-automation/internal/notify"
)

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	s := notify.NewConsoleSink(&buf)

	require.NoError(t, s.Send(context.Background(), "🗑️ Trash goes out tonight!"))
	assert.Equal(t, "📱 SENDING: 🗑️ Trash goes out tonight!\n", buf.String())
}

func TestWebhookSink(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := notify.NewWebhookSink(srv.URL, srv.Client())
	require.NoError(t, err)
	require.NoError(t, s.Send(context.Background(), "hello"))
	assert.Equal(t, "hello", got["text"])
}

func TestWebhookSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := notify.NewWebhookSink(srv.URL, srv.Client())
	require.NoError(t, err)

	err = s.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewWebhookSink_RequiresURL(t *testing.T) {
	_, err := notify.NewWebhookSink("", nil)
	assert.Error(t, err)
}

func TestCommandSink(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	t.Run("success", func(t *testing.T) {
		s, err := notify.NewCommandSink("sh",
			[]string{"-c", `test "$1" = "+15550100" && test "$2" = "pack gear"`, "sh", notify.RecipientPlaceholder, notify.MessagePlaceholder},
			"+15550100")
		require.NoError(t, err)
		assert.NoError(t, s.Send(context.Background(), "pack gear"))
	})

	t.Run("message appended without placeholder", func(t *testing.T) {
		s, err := notify.NewCommandSink("sh", []string{"-c", `test "$1" = "pack gear"`, "sh"}, "")
		require.NoError(t, err)
		assert.NoError(t, s.Send(context.Background(), "pack gear"))
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		s, err := notify.NewCommandSink("sh", []string{"-c", "echo boom >&2; exit 3"}, "")
		require.NoError(t, err)
		err = s.Send(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestOpen(t *testing.T) {
	var buf bytes.Buffer

	s, closeFn, err := notify.Open(notify.Options{}, &buf)
	require.NoError(t, err)
	require.NoError(t, s.Send(context.Background(), "x"))
	assert.NoError(t, closeFn())
	assert.Contains(t, buf.String(), "SENDING: x")

	_, _, err = notify.Open(notify.Options{Kind: notify.KindCommand}, &buf)
	assert.Error(t, err, "command sink needs a program")

	_, _, err = notify.Open(notify.Options{Kind: "pigeon"}, &buf)
	assert.Error(t, err)
}
