package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeepgramTranscribeOK(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": {
				"channels": [
					{"alternatives": [{"transcript": "hello from deepgram"}]}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewDeepgramClientWithBaseURL("dg-key", srv.URL)
	transcript, err := client.Transcribe(context.Background(), []byte("audio"), "audio/wav", []string{"Trastevere", "birthday"})
	require.NoError(t, err)
	require.Equal(t, "hello from deepgram", transcript)

	require.Equal(t, "/v1/listen", gotReq.URL.Path)
	require.Equal(t, "Token dg-key", gotReq.Header.Get("Authorization"))
	require.Equal(t, "audio/wav", gotReq.Header.Get("Content-Type"))

	query := gotReq.URL.Query()
	require.Equal(t, "nova-3", query.Get("model"))
	require.Equal(t, "true", query.Get("smart_format"))
	require.Equal(t, []string{"Trastevere", "birthday"}, query["keywords"])
}

func TestDeepgramTranscribeEmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`))
	}))
	defer srv.Close()

	client := NewDeepgramClientWithBaseURL("dg-key", srv.URL)
	_, err := client.Transcribe(context.Background(), []byte("audio"), "audio/wav", nil)
	require.ErrorIs(t, err, ErrNoTranscript)
}

func TestDeepgramTranscribeNoChannels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"channels":[]}}`))
	}))
	defer srv.Close()

	client := NewDeepgramClientWithBaseURL("dg-key", srv.URL)
	_, err := client.Transcribe(context.Background(), []byte("audio"), "", nil)
	require.ErrorIs(t, err, ErrNoTranscript)
}

func TestDeepgramTranscribeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewDeepgramClientWithBaseURL("dg-key", srv.URL)
	_, err := client.Transcribe(context.Background(), []byte("audio"), "audio/wav", nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoTranscript)
	require.Contains(t, err.Error(), "status 401")
}

func TestDeepgramTranscribeDefaultContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"ok"}]}]}}`))
	}))
	defer srv.Close()

	client := NewDeepgramClientWithBaseURL("dg-key", srv.URL)
	_, err := client.Transcribe(context.Background(), []byte("audio"), "", nil)
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", gotContentType)
}
