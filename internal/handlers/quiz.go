package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recallo-backend/internal/metrics"
	"recallo-backend/internal/modeljson"
	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
	"recallo-backend/internal/services"
	"recallo-backend/internal/telemetry"
)

const (
	quizSize         = 10
	quizOptionCount  = 4
	minQuizRelations = 2
	maxPromptItems   = 20
	quizMaxTokens    = 4000
	quizTemperature  = 0.7
)

type QuizHandler struct {
	friends   repositories.FriendRepository
	events    repositories.EventRepository
	relations repositories.RelationRepository
	contents  repositories.ContentRepository
	model     services.ModelClient
	audit     *telemetry.AuditEmitter
}

func NewQuizHandler(
	friends repositories.FriendRepository,
	events repositories.EventRepository,
	relations repositories.RelationRepository,
	contents repositories.ContentRepository,
	model services.ModelClient,
	audit *telemetry.AuditEmitter,
) *QuizHandler {
	return &QuizHandler{
		friends:   friends,
		events:    events,
		relations: relations,
		contents:  contents,
		model:     model,
		audit:     audit,
	}
}

type generateQuizBody struct {
	UserID   string `json:"user_id" binding:"required"`
	FriendID string `json:"friend_id" binding:"required"`
}

// Generate builds a multiple-choice quiz about a friend from the
// content recorded for that friend. Friends with fewer than two linked
// interactions are rejected before any model call.
func (h *QuizHandler) Generate(c *gin.Context) {
	requestID := requestIDFromHeader(c)

	var body generateQuizBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}
	friendID, err := uuid.Parse(body.FriendID)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid friend id"})
		return
	}

	ctx := c.Request.Context()

	friend, err := h.friends.GetByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Friend not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	links, err := h.relations.LinksForUserFriend(ctx, userID, friendID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if len(links) < minQuizRelations {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Not enough interactions with this friend"})
		return
	}

	relationIDs := make([]int64, 0, len(links))
	eventIDs := make([]uuid.UUID, 0, len(links))
	seenEvents := make(map[uuid.UUID]bool)
	for _, link := range links {
		relationIDs = append(relationIDs, link.ID)
		if !seenEvents[link.EventID] {
			seenEvents[link.EventID] = true
			eventIDs = append(eventIDs, link.EventID)
		}
	}

	contents, err := h.contents.ListByRelations(ctx, relationIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if len(contents) == 0 {
		c.JSON(nethttp.StatusNotFound, gin.H{"detail": "No content found for this friend"})
		return
	}

	events, err := h.events.ListByIDs(ctx, eventIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	reply, err := h.model.CreateMessage(ctx, services.MessageRequest{
		Prompt:      buildQuizPrompt(friend.FriendName, links, events, contents),
		MaxTokens:   quizMaxTokens,
		Temperature: quizTemperature,
	})
	if err != nil {
		metrics.IncQuizGeneration(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	questions, err := parseQuizQuestions(reply.Text)
	if err != nil {
		metrics.IncQuizGeneration(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{
			"detail": "Failed to parse quiz response: " + modeljson.Truncate(reply.Text, maxRawDetailBytes),
		})
		return
	}

	questions = sanitizeQuestions(questions)
	questions = padQuestions(questions, friend.FriendName)

	h.audit.EmitAudit(ctx, "INFO",
		fmt.Sprintf("Generated a %d-question quiz about %s", len(questions), friend.FriendName),
		requestID, nil)
	metrics.IncQuizGeneration(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{
		"questions":   questions,
		"friend_name": friend.FriendName,
	})
}

// Content returns the raw material a quiz would be built from, for
// inspection.
func (h *QuizHandler) Content(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}
	friendID, ok := uuidParam(c, "friend_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid friend id"})
		return
	}

	ctx := c.Request.Context()
	links, err := h.relations.LinksForUserFriend(ctx, userID, friendID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if len(links) == 0 {
		c.JSON(nethttp.StatusOK, gin.H{"events": []models.Event{}, "content": []models.Content{}})
		return
	}

	relationIDs := make([]int64, 0, len(links))
	eventIDs := make([]uuid.UUID, 0, len(links))
	seenEvents := make(map[uuid.UUID]bool)
	for _, link := range links {
		relationIDs = append(relationIDs, link.ID)
		if !seenEvents[link.EventID] {
			seenEvents[link.EventID] = true
			eventIDs = append(eventIDs, link.EventID)
		}
	}

	events, err := h.events.ListByIDs(ctx, eventIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	contents, err := h.contents.ListByRelations(ctx, relationIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	if contents == nil {
		contents = []models.Content{}
	}
	c.JSON(nethttp.StatusOK, gin.H{
		"events":    events,
		"content":   contents,
		"relations": links,
	})
}

// buildQuizPrompt groups content rows under their event name and asks
// for exactly quizSize multiple-choice questions in a strict JSON
// shape. At most maxPromptItems content rows are included to bound the
// prompt.
func buildQuizPrompt(friendName string, links []models.UserFriendsEvent, events []models.Event, contents []models.Content) string {
	eventNames := make(map[uuid.UUID]string, len(events))
	for _, event := range events {
		eventNames[event.ID] = event.EventName
	}
	relationEvents := make(map[int64]string, len(links))
	for _, link := range links {
		relationEvents[link.ID] = eventNames[link.EventID]
	}

	var material strings.Builder
	included := 0
	for _, row := range contents {
		if included == maxPromptItems {
			break
		}
		eventName := relationEvents[row.UserFriendEventID]
		if eventName == "" {
			eventName = "an event"
		}
		fmt.Fprintf(&material, "- Event: %s | Topic: %s | Notes: %s\n", eventName, row.Topic, row.Content)
		included++
	}

	return fmt.Sprintf(`You are generating a memory quiz about a friend named %s.
These are diary notes about shared events with %s:

%s
Create exactly %d multiple-choice questions testing how well the user remembers these moments.
Each question must have exactly %d options and exactly one correct answer.
Return JSON only in this format:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correct_answer": 0,
      "topic": "string",
      "explanation": "string"
    }
  ]
}
"correct_answer" is the zero-based index of the correct option.`,
		friendName, friendName, material.String(), quizSize, quizOptionCount)
}

// parseQuizQuestions accepts either the documented wrapper object or a
// bare array of questions.
func parseQuizQuestions(raw string) ([]models.QuizQuestion, error) {
	text, err := modeljson.Extract(raw)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && len(wrapped.Questions) > 0 {
		return wrapped.Questions, nil
	}

	var bare []models.QuizQuestion
	if err := json.Unmarshal([]byte(text), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	return nil, errors.New("no questions in model output")
}

// sanitizeQuestions drops malformed questions and normalizes the rest:
// exactly quizOptionCount options, a correct answer index inside them,
// and a non-empty topic.
func sanitizeQuestions(questions []models.QuizQuestion) []models.QuizQuestion {
	sanitized := make([]models.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) < quizOptionCount {
			continue
		}
		q.Options = q.Options[:quizOptionCount]
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= quizOptionCount {
			q.CorrectAnswer = 0
		}
		if strings.TrimSpace(q.Topic) == "" {
			q.Topic = "General"
		}
		sanitized = append(sanitized, q)
		if len(sanitized) == quizSize {
			break
		}
	}
	return sanitized
}

// padQuestions tops the quiz up to quizSize with generic questions
// built from the topics already present, so the client always receives
// a fixed-size quiz.
func padQuestions(questions []models.QuizQuestion, friendName string) []models.QuizQuestion {
	topics := make([]string, 0, len(questions))
	seen := make(map[string]bool)
	for _, q := range questions {
		if !seen[q.Topic] {
			seen[q.Topic] = true
			topics = append(topics, q.Topic)
		}
	}
	if len(topics) == 0 {
		topics = []string{"General"}
	}

	for i := 0; len(questions) < quizSize; i++ {
		topic := topics[i%len(topics)]
		questions = append(questions, models.QuizQuestion{
			Question:      fmt.Sprintf("Which of these topics came up when you last talked with %s?", friendName),
			Options:       pickOtherTopics(topic, topics),
			CorrectAnswer: 0,
			Topic:         topic,
			Explanation:   fmt.Sprintf("You discussed %s with %s.", topic, friendName),
		})
	}
	return questions
}

// pickOtherTopics builds an option list with the correct topic first,
// padded with plausible distractors.
func pickOtherTopics(correct string, topics []string) []string {
	options := []string{correct}
	for _, topic := range topics {
		if len(options) == quizOptionCount {
			break
		}
		if topic != correct {
			options = append(options, topic)
		}
	}
	for _, filler := range []string{"The weather", "A recent movie", "Weekend plans", "Work news"} {
		if len(options) == quizOptionCount {
			break
		}
		if !containsString(options, filler) {
			options = append(options, filler)
		}
	}
	return options
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
