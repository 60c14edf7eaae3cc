package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqClientIsConfigured(t *testing.T) {
	assert.False(t, NewGroqClient("http://x", "", "m", time.Second).IsConfigured())
	assert.True(t, NewGroqClient("http://x", "key", "m", time.Second).IsConfigured())
}

func TestGroqClientComplete(t *testing.T) {
	t.Run("sends the wire format and returns the first choice", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
				MaxTokens int `json:"max_tokens"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "user", req.Messages[1].Role)
			assert.Equal(t, 800, req.MaxTokens)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "hello there"}},
				},
			})
		}))
		defer srv.Close()

		client := NewGroqClient(srv.URL, "test-key", "test-model", time.Second)
		reply, err := client.Complete("sys", "usr", 800)
		require.NoError(t, err)
		assert.Equal(t, "hello there", reply)
	})

	t.Run("non-2xx wraps as upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewGroqClient(srv.URL, "test-key", "test-model", time.Second)
		_, err := client.Complete("sys", "usr", 800)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("empty choices wraps as upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		client := NewGroqClient(srv.URL, "test-key", "test-model", time.Second)
		_, err := client.Complete("sys", "usr", 800)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("missing key fails before any request", func(t *testing.T) {
		client := NewGroqClient("http://127.0.0.1:0", "", "m", time.Second)
		_, err := client.Complete("sys", "usr", 10)
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
