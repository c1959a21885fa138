package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) *OpenRouterService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resty.New()
	svc := NewOpenRouterServiceWithClient("test-key", "openai/gpt-4o-mini", srv.URL+"/", client)
	client.SetRetryCount(0)
	return svc
}

func TestOpenRouterService_Complete(t *testing.T) {
	var gotBody string
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": `{"overallBand": 7}`}},
			},
		})
	})

	reply, err := svc.Complete(context.Background(), "evaluate this")
	require.NoError(t, err)
	assert.Equal(t, `{"overallBand": 7}`, reply)

	assert.Equal(t, "openai/gpt-4o-mini", gjson.Get(gotBody, "model").String())
	assert.Equal(t, "user", gjson.Get(gotBody, "messages.1.role").String())
	assert.Equal(t, "evaluate this", gjson.Get(gotBody, "messages.1.content").String())
	assert.Equal(t, "json_object", gjson.Get(gotBody, "response_format.type").String())
}

func TestOpenRouterService_ErrorStatus(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	})

	_, err := svc.Complete(context.Background(), "evaluate this")
	require.Error(t, err)
	assert.Equal(t, "openrouter returned status 401: invalid api key", err.Error())
}

func TestOpenRouterService_ErrorStatusPlainBody(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := svc.Complete(context.Background(), "evaluate this")
	require.Error(t, err)
	assert.Equal(t, "openrouter returned status 502: upstream down", err.Error())
}

func TestOpenRouterService_EmptyChoices(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := svc.Complete(context.Background(), "evaluate this")
	assert.EqualError(t, err, "no response from LLM")
}

func TestOpenRouterService_RequiresKeyAndPrompt(t *testing.T) {
	called := false
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := svc.Complete(context.Background(), "   ")
	assert.EqualError(t, err, "prompt cannot be empty")

	svc.APIKey = ""
	_, err = svc.Complete(context.Background(), "evaluate this")
	assert.EqualError(t, err, "OPENROUTER_API_KEY not set")
	assert.False(t, called)
	assert.Equal(t, "openrouter", svc.Name())
}
