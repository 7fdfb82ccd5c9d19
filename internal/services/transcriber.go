package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoTranscript is returned when the transcription provider produced no
// channel/alternative data or an empty transcript.
var ErrNoTranscript = errors.New("no transcript generated")

// Transcriber turns raw audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string, keywords []string) (string, error)
}

const (
	deepgramBaseURL = "https://api.deepgram.com"
	deepgramModel   = "nova-3"
)

// DeepgramClient calls Deepgram's prerecorded-listen REST API.
type DeepgramClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewDeepgramClient(apiKey string) *DeepgramClient {
	return &DeepgramClient{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: deepgramBaseURL,
		apiKey:  apiKey,
	}
}

// NewDeepgramClientWithBaseURL exists for tests against a local server.
func NewDeepgramClientWithBaseURL(apiKey, baseURL string) *DeepgramClient {
	c := NewDeepgramClient(apiKey)
	c.baseURL = baseURL
	return c
}

type deepgramResponse struct {
	Results *struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, contentType string, keywords []string) (string, error) {
	params := url.Values{}
	params.Set("model", deepgramModel)
	params.Set("smart_format", "true")
	for _, kw := range keywords {
		params.Add("keywords", kw)
	}

	endpoint := fmt.Sprintf("%s/v1/listen?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcription provider returned status %d: %s", resp.StatusCode, body)
	}

	var decoded deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	if decoded.Results == nil || len(decoded.Results.Channels) == 0 ||
		len(decoded.Results.Channels[0].Alternatives) == 0 {
		return "", ErrNoTranscript
	}
	transcript := decoded.Results.Channels[0].Alternatives[0].Transcript
	if transcript == "" {
		return "", ErrNoTranscript
	}
	return transcript, nil
}
