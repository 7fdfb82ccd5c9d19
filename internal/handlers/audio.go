package handlers

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recallo-backend/internal/metrics"
	"recallo-backend/internal/modeljson"
	"recallo-backend/internal/models"
	"recallo-backend/internal/services"
	"recallo-backend/internal/telemetry"
)

const (
	defaultFriendName        = "my friend"
	maxTranscriptionKeywords = 10
	minKeywordLength         = 5
	summarizeMaxTokens       = 2000
	maxRawDetailBytes        = 500
)

type AudioHandler struct {
	transcriber services.Transcriber
	model       services.ModelClient
	audit       *telemetry.AuditEmitter
	scratchDir  string
}

func NewAudioHandler(transcriber services.Transcriber, model services.ModelClient, audit *telemetry.AuditEmitter, scratchDir string) *AudioHandler {
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	return &AudioHandler{transcriber: transcriber, model: model, audit: audit, scratchDir: scratchDir}
}

// transcriptionKeywords picks up to 10 words longer than 4 characters
// from the remarks as vocabulary hints for the transcription provider.
func transcriptionKeywords(remarks string) []string {
	var keywords []string
	for _, word := range strings.Fields(remarks) {
		if len(word) < minKeywordLength {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxTranscriptionKeywords {
			break
		}
	}
	return keywords
}

func summarySystemPrompt(friendName string) string {
	return "You are a helpful assistant analyzing a transcript of a conversation with " + friendName + ".\n" +
		"If the transcript contains personal or sensitive information about third parties, " +
		"first rewrite it in an anonymized and safe form.\n" +
		"After anonymizing, extract the main topics. Write each topic's content in first person, " +
		"diary style, and never address " + friendName + " as \"you\".\n" +
		"Return JSON only in this format:\n" +
		"{\n" +
		"  \"topics\": [\n" +
		"    {\"topic\": \"string\", \"content\": \"string\"}\n" +
		"  ]\n" +
		"}\n" +
		"Do not include a summary. If the input cannot be safely analyzed, respond with {\"topics\": []}."
}

// stageUpload writes the uploaded audio to a per-request scratch file and
// returns its path, the file bytes, and a detected content type. The
// caller must remove the file.
func (h *AudioHandler) stageUpload(c *gin.Context) (string, []byte, string, error) {
	file, err := c.FormFile("audio")
	if err != nil {
		return "", nil, "", errors.New("missing audio file")
	}

	// The path is returned even on failure: SaveUploadedFile can leave a
	// partially written file behind, and the caller's deferred remove
	// must cover it.
	path := filepath.Join(h.scratchDir, "audio_"+uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return path, nil, "", fmt.Errorf("failed to stage audio: %w", err)
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return path, nil, "", fmt.Errorf("failed to read staged audio: %w", err)
	}

	head := audio
	if len(head) > 512 {
		head = head[:512]
	}
	return path, audio, nethttp.DetectContentType(head), nil
}

// ProcessAudio runs the full pipeline: stage, transcribe, summarize,
// parse. The scratch file is removed on every exit path.
func (h *AudioHandler) ProcessAudio(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	friendName := c.DefaultPostForm("friend_name", defaultFriendName)
	remarks := c.PostForm("remarks")

	path, audio, contentType, err := h.stageUpload(c)
	if path != "" {
		defer os.Remove(path)
	}
	if err != nil {
		metrics.IncAudioProcess(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	transcript, err := h.transcriber.Transcribe(ctx, audio, contentType, transcriptionKeywords(remarks))
	if err != nil {
		metrics.IncAudioProcess(metrics.StatusFailed)
		if errors.Is(err, services.ErrNoTranscript) {
			c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "No transcript generated"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	reply, err := h.model.CreateMessage(ctx, services.MessageRequest{
		System:      summarySystemPrompt(friendName),
		Prompt:      "Transcript:\n" + transcript,
		MaxTokens:   summarizeMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		metrics.IncAudioProcess(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if reply.Refused() {
		h.audit.EmitAudit(ctx, "WARN", "model declined to analyze a transcript", requestID, nil)
		metrics.IncAudioProcess(metrics.StatusSuccess)
		c.JSON(nethttp.StatusOK, gin.H{
			"topics":  []models.TopicItem{},
			"warning": "The model declined to analyze this transcript due to safety rules.",
		})
		return
	}

	var analyzed models.TopicList
	if err := modeljson.Unmarshal(reply.Text, &analyzed); err != nil {
		metrics.IncAudioProcess(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{
			"detail": "model did not return valid JSON. Raw output was: " + modeljson.Truncate(reply.Text, maxRawDetailBytes),
		})
		return
	}
	if analyzed.Topics == nil {
		analyzed.Topics = []models.TopicItem{}
	}

	h.audit.EmitAudit(ctx, "INFO",
		fmt.Sprintf("Extracted %d topics from an audio recording", len(analyzed.Topics)),
		requestID, nil)
	metrics.IncAudioProcess(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, analyzed)
}

// Transcribe stages and transcribes an upload without the summarization
// step.
func (h *AudioHandler) Transcribe(c *gin.Context) {
	remarks := c.PostForm("remarks")

	path, audio, contentType, err := h.stageUpload(c)
	if path != "" {
		defer os.Remove(path)
	}
	if err != nil {
		metrics.IncTranscription(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	transcript, err := h.transcriber.Transcribe(c.Request.Context(), audio, contentType, transcriptionKeywords(remarks))
	if err != nil {
		metrics.IncTranscription(metrics.StatusFailed)
		if errors.Is(err, services.ErrNoTranscript) {
			c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "No transcript generated"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	metrics.IncTranscription(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"text": transcript})
}
