package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenAIChat(t *testing.T) {
	var gotReq openAIChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Oi! 💜"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-4o-mini", 200, 0.8, 5*time.Second)
	reply, err := p.Chat(context.Background(), []Message{
		{Role: "system", Content: "persona prompt"},
		{Role: "user", Content: "Oi!"},
	})
	require.NoError(t, err)
	require.Equal(t, "Oi! 💜", reply)

	require.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Equal(t, 200, gotReq.MaxTokens)
	require.InDelta(t, 0.8, gotReq.Temperature, 1e-9)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestOpenAIChat_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "", 0, 0, 0)
	_, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestOpenAIChat_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "", 0, 0, 0)
	_, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}

func TestOpenAIChat_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "", 0, 0, 0)
	_, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}

func TestOpenAIChat_MissingAPIKey(t *testing.T) {
	p := NewOpenAIProvider("http://unused", "", "", 0, 0, 0)
	_, err := p.Chat(context.Background(), nil)
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("OpenAI", func(model string) (Provider, error) {
		return NewOpenAIProvider("http://unused", "k", model, 0, 0, 0), nil
	})

	p, err := reg.Build("openai", "gpt-4o-mini")
	require.NoError(t, err)
	require.NotNil(t, p)

	_, err = reg.Build("missing", "")
	require.Error(t, err)
}
