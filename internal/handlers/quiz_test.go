package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recallo-backend/internal/mocks"
	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
	"recallo-backend/internal/services"
)

type quizMocks struct {
	friends   *mocks.MockFriendRepository
	events    *mocks.MockEventRepository
	relations *mocks.MockRelationRepository
	contents  *mocks.MockContentRepository
	model     *mocks.MockModelClient
}

func setupQuizRouter() (*gin.Engine, quizMocks) {
	gin.SetMode(gin.TestMode)
	m := quizMocks{
		friends:   new(mocks.MockFriendRepository),
		events:    new(mocks.MockEventRepository),
		relations: new(mocks.MockRelationRepository),
		contents:  new(mocks.MockContentRepository),
		model:     new(mocks.MockModelClient),
	}
	handler := NewQuizHandler(m.friends, m.events, m.relations, m.contents, m.model, noopAudit())
	r := gin.New()
	r.POST("/quiz/generate", handler.Generate)
	r.GET("/quiz/content/:user_id/:friend_id", handler.Content)
	return r, m
}

func generateQuizRequest(userID, friendID uuid.UUID) *http.Request {
	body := fmt.Sprintf(`{"user_id":%q,"friend_id":%q}`, userID, friendID)
	req := httptest.NewRequest(http.MethodPost, "/quiz/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func makeQuestions(n int) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.QuizQuestion{
			Question:      fmt.Sprintf("What happened at event %d?", i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Topic:         "Travel",
			Explanation:   "It came up in the notes.",
		})
	}
	return questions
}

func quizLinks(userID, friendID uuid.UUID, n int) []models.UserFriendsEvent {
	links := make([]models.UserFriendsEvent, 0, n)
	for i := 0; i < n; i++ {
		links = append(links, models.UserFriendsEvent{
			ID:       int64(i + 1),
			UserID:   userID,
			FriendID: friendID,
			EventID:  uuid.New(),
		})
	}
	return links
}

func TestGenerateQuizFriendNotFound(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()

	m.friends.On("GetByID", mock.Anything, friendID).Return(nil, repositories.ErrNotFound).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Friend not found", resp["detail"])
	m.model.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestGenerateQuizNotEnoughInteractions(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()

	m.friends.On("GetByID", mock.Anything, friendID).
		Return(&models.Friend{ID: friendID, FriendName: "Maria"}, nil).Once()
	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).
		Return(quizLinks(userID, friendID, 1), nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Not enough interactions with this friend", resp["detail"])
	m.model.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
	m.contents.AssertNotCalled(t, "ListByRelations", mock.Anything, mock.Anything)
}

func TestGenerateQuizNoContent(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()
	links := quizLinks(userID, friendID, 2)

	m.friends.On("GetByID", mock.Anything, friendID).
		Return(&models.Friend{ID: friendID, FriendName: "Maria"}, nil).Once()
	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(links, nil).Once()
	m.contents.On("ListByRelations", mock.Anything, []int64{1, 2}).Return(nil, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "No content found for this friend", resp["detail"])
	m.model.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestGenerateQuizFullDeck(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()
	links := quizLinks(userID, friendID, 2)

	m.friends.On("GetByID", mock.Anything, friendID).
		Return(&models.Friend{ID: friendID, FriendName: "Maria"}, nil).Once()
	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(links, nil).Once()
	m.contents.On("ListByRelations", mock.Anything, []int64{1, 2}).
		Return([]models.Content{
			{ID: 1, UserFriendEventID: 1, Topic: "Travel", Content: "Rome plans."},
			{ID: 2, UserFriendEventID: 2, Topic: "Work", Content: "New job."},
		}, nil).Once()
	m.events.On("ListByIDs", mock.Anything, []uuid.UUID{links[0].EventID, links[1].EventID}).
		Return([]models.Event{
			{ID: links[0].EventID, EventName: "Dinner"},
			{ID: links[1].EventID, EventName: "Hike"},
		}, nil).Once()

	payload, err := json.Marshal(map[string]any{"questions": makeQuestions(10)})
	require.NoError(t, err)
	m.model.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req services.MessageRequest) bool {
		return strings.Contains(req.Prompt, "Maria") &&
			strings.Contains(req.Prompt, "Dinner") &&
			strings.Contains(req.Prompt, "Rome plans.") &&
			req.Temperature == 0.7
	})).Return(&services.MessageResponse{Text: string(payload), StopReason: "end_turn"}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Questions  []models.QuizQuestion `json:"questions"`
		FriendName string                `json:"friend_name"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Questions, 10)
	require.Equal(t, "Maria", resp.FriendName)
	for _, q := range resp.Questions {
		require.Len(t, q.Options, 4)
		require.GreaterOrEqual(t, q.CorrectAnswer, 0)
		require.Less(t, q.CorrectAnswer, 4)
	}
	m.model.AssertExpectations(t)
}

func TestGenerateQuizAcceptsBareArray(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()
	links := quizLinks(userID, friendID, 2)

	m.friends.On("GetByID", mock.Anything, friendID).
		Return(&models.Friend{ID: friendID, FriendName: "Maria"}, nil).Once()
	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(links, nil).Once()
	m.contents.On("ListByRelations", mock.Anything, mock.Anything).
		Return([]models.Content{{ID: 1, UserFriendEventID: 1, Topic: "Travel", Content: "Rome."}}, nil).Once()
	m.events.On("ListByIDs", mock.Anything, mock.Anything).Return(nil, nil).Once()

	payload, err := json.Marshal(makeQuestions(10))
	require.NoError(t, err)
	m.model.On("CreateMessage", mock.Anything, mock.Anything).
		Return(&services.MessageResponse{Text: string(payload), StopReason: "end_turn"}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Questions, 10)
}

func TestGenerateQuizPadsShortDeck(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()
	links := quizLinks(userID, friendID, 2)

	m.friends.On("GetByID", mock.Anything, friendID).
		Return(&models.Friend{ID: friendID, FriendName: "Maria"}, nil).Once()
	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(links, nil).Once()
	m.contents.On("ListByRelations", mock.Anything, mock.Anything).
		Return([]models.Content{{ID: 1, UserFriendEventID: 1, Topic: "Travel", Content: "Rome."}}, nil).Once()
	m.events.On("ListByIDs", mock.Anything, mock.Anything).Return(nil, nil).Once()

	// Six usable questions plus two malformed ones that must be dropped.
	questions := makeQuestions(6)
	questions = append(questions,
		models.QuizQuestion{Question: "", Options: []string{"A", "B", "C", "D"}},
		models.QuizQuestion{Question: "Too few options?", Options: []string{"A", "B"}},
	)
	payload, err := json.Marshal(map[string]any{"questions": questions})
	require.NoError(t, err)
	m.model.On("CreateMessage", mock.Anything, mock.Anything).
		Return(&services.MessageResponse{Text: string(payload), StopReason: "end_turn"}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Questions, 10)
	for _, q := range resp.Questions {
		require.NotEmpty(t, q.Question)
		require.Len(t, q.Options, 4)
	}
}

func TestGenerateQuizUnparseableModelOutput(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()
	links := quizLinks(userID, friendID, 2)

	m.friends.On("GetByID", mock.Anything, friendID).
		Return(&models.Friend{ID: friendID, FriendName: "Maria"}, nil).Once()
	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(links, nil).Once()
	m.contents.On("ListByRelations", mock.Anything, mock.Anything).
		Return([]models.Content{{ID: 1, UserFriendEventID: 1, Topic: "Travel", Content: "Rome."}}, nil).Once()
	m.events.On("ListByIDs", mock.Anything, mock.Anything).Return(nil, nil).Once()
	m.model.On("CreateMessage", mock.Anything, mock.Anything).
		Return(&services.MessageResponse{Text: "sorry, no quiz today", StopReason: "end_turn"}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, generateQuizRequest(userID, friendID))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp["detail"], "Failed to parse quiz response")
}

func TestGenerateQuizInvalidBody(t *testing.T) {
	router, m := setupQuizRouter()

	req := httptest.NewRequest(http.MethodPost, "/quiz/generate", strings.NewReader(`{"user_id":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	m.friends.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQuizContentEmpty(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()

	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quiz/content/%s/%s", userID, friendID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Empty(t, resp["events"])
	require.Empty(t, resp["content"])
	m.events.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
}

func TestQuizContentReturnsMaterial(t *testing.T) {
	router, m := setupQuizRouter()
	userID, friendID := uuid.New(), uuid.New()
	links := quizLinks(userID, friendID, 2)

	m.relations.On("LinksForUserFriend", mock.Anything, userID, friendID).Return(links, nil).Once()
	m.events.On("ListByIDs", mock.Anything, []uuid.UUID{links[0].EventID, links[1].EventID}).
		Return([]models.Event{{ID: links[0].EventID, EventName: "Dinner"}}, nil).Once()
	m.contents.On("ListByRelations", mock.Anything, []int64{1, 2}).
		Return([]models.Content{{ID: 1, UserFriendEventID: 1, Topic: "Travel"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quiz/content/%s/%s", userID, friendID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Events    []models.Event            `json:"events"`
		Content   []models.Content          `json:"content"`
		Relations []models.UserFriendsEvent `json:"relations"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Events, 1)
	require.Len(t, resp.Content, 1)
	require.Len(t, resp.Relations, 2)
}

func TestSanitizeQuestionsClampsAnswers(t *testing.T) {
	questions := sanitizeQuestions([]models.QuizQuestion{
		{Question: "Q1", Options: []string{"A", "B", "C", "D", "E"}, CorrectAnswer: 4, Topic: ""},
		{Question: "Q2", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: -1, Topic: "Work"},
	})

	require.Len(t, questions, 2)
	require.Len(t, questions[0].Options, 4)
	require.Equal(t, 0, questions[0].CorrectAnswer)
	require.Equal(t, "General", questions[0].Topic)
	require.Equal(t, 0, questions[1].CorrectAnswer)
}
