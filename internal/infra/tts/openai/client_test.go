package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesizeSuccess(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x64}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/speech", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini-tts", req.Model)
		require.Equal(t, "alloy", req.Voice)
		require.Equal(t, "Take an umbrella.", req.Input)
		require.Equal(t, "mp3", req.Format)

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(mp3)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "gpt-4o-mini-tts", "alloy")
	audio, err := client.Synthesize(context.Background(), "Take an umbrella.", "en")
	require.NoError(t, err)
	require.Equal(t, mp3, audio.Data)
	require.Equal(t, "audio/mpeg", audio.ContentType)
}

func TestSynthesizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "gpt-4o-mini-tts", "alloy")
	_, err := client.Synthesize(context.Background(), "hello", "en")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestSynthesizeMissingKey(t *testing.T) {
	client := NewClient("", "http://127.0.0.1:0", "gpt-4o-mini-tts", "alloy")
	_, err := client.Synthesize(context.Background(), "hello", "en")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}
