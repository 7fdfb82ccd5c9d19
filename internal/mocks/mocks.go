package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"recallo-backend/internal/models"
	"recallo-backend/internal/rabbitmq"
	"recallo-backend/internal/repositories"
	"recallo-backend/internal/services"
)

// MockUserRepository mocks UserRepository behavior for handlers.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	args := m.Called(ctx, in)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, skip, limit)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

var _ repositories.UserRepository = (*MockUserRepository)(nil)

// MockFriendRepository mocks FriendRepository behavior for handlers.
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) Create(ctx context.Context, in models.FriendCreate) (*models.Friend, error) {
	args := m.Called(ctx, in)
	var friend *models.Friend
	if val := args.Get(0); val != nil {
		friend = val.(*models.Friend)
	}
	return friend, args.Error(1)
}

func (m *MockFriendRepository) List(ctx context.Context, skip, limit int) ([]models.Friend, error) {
	args := m.Called(ctx, skip, limit)
	var friends []models.Friend
	if val := args.Get(0); val != nil {
		friends = val.([]models.Friend)
	}
	return friends, args.Error(1)
}

func (m *MockFriendRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	args := m.Called(ctx, id)
	var friend *models.Friend
	if val := args.Get(0); val != nil {
		friend = val.(*models.Friend)
	}
	return friend, args.Error(1)
}

func (m *MockFriendRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Friend, error) {
	args := m.Called(ctx, ids)
	var friends []models.Friend
	if val := args.Get(0); val != nil {
		friends = val.([]models.Friend)
	}
	return friends, args.Error(1)
}

func (m *MockFriendRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Friend, error) {
	args := m.Called(ctx, id, fields)
	var friend *models.Friend
	if val := args.Get(0); val != nil {
		friend = val.(*models.Friend)
	}
	return friend, args.Error(1)
}

func (m *MockFriendRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	args := m.Called(ctx, id)
	var friend *models.Friend
	if val := args.Get(0); val != nil {
		friend = val.(*models.Friend)
	}
	return friend, args.Error(1)
}

var _ repositories.FriendRepository = (*MockFriendRepository)(nil)

// MockEventRepository mocks EventRepository behavior for handlers.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, in models.EventCreate) (*models.Event, error) {
	args := m.Called(ctx, in)
	var event *models.Event
	if val := args.Get(0); val != nil {
		event = val.(*models.Event)
	}
	return event, args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, skip, limit int) ([]models.Event, error) {
	args := m.Called(ctx, skip, limit)
	var events []models.Event
	if val := args.Get(0); val != nil {
		events = val.([]models.Event)
	}
	return events, args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	args := m.Called(ctx, id)
	var event *models.Event
	if val := args.Get(0); val != nil {
		event = val.(*models.Event)
	}
	return event, args.Error(1)
}

func (m *MockEventRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error) {
	args := m.Called(ctx, ids)
	var events []models.Event
	if val := args.Get(0); val != nil {
		events = val.([]models.Event)
	}
	return events, args.Error(1)
}

func (m *MockEventRepository) LatestEventDate(ctx context.Context, ids []uuid.UUID) (*models.Date, error) {
	args := m.Called(ctx, ids)
	var date *models.Date
	if val := args.Get(0); val != nil {
		date = val.(*models.Date)
	}
	return date, args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Event, error) {
	args := m.Called(ctx, id, fields)
	var event *models.Event
	if val := args.Get(0); val != nil {
		event = val.(*models.Event)
	}
	return event, args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	args := m.Called(ctx, id)
	var event *models.Event
	if val := args.Get(0); val != nil {
		event = val.(*models.Event)
	}
	return event, args.Error(1)
}

var _ repositories.EventRepository = (*MockEventRepository)(nil)

// MockRelationRepository mocks RelationRepository behavior for handlers.
type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) CreateUserFriend(ctx context.Context, in models.UserFriendCreate) (*models.UserFriend, error) {
	args := m.Called(ctx, in)
	var rel *models.UserFriend
	if val := args.Get(0); val != nil {
		rel = val.(*models.UserFriend)
	}
	return rel, args.Error(1)
}

func (m *MockRelationRepository) ListUserFriends(ctx context.Context, skip, limit int) ([]models.UserFriend, error) {
	args := m.Called(ctx, skip, limit)
	var rels []models.UserFriend
	if val := args.Get(0); val != nil {
		rels = val.([]models.UserFriend)
	}
	return rels, args.Error(1)
}

func (m *MockRelationRepository) CreateUserEvent(ctx context.Context, in models.UserEventCreate) (*models.UserEvent, error) {
	args := m.Called(ctx, in)
	var rel *models.UserEvent
	if val := args.Get(0); val != nil {
		rel = val.(*models.UserEvent)
	}
	return rel, args.Error(1)
}

func (m *MockRelationRepository) ListUserEvents(ctx context.Context, skip, limit int) ([]models.UserEvent, error) {
	args := m.Called(ctx, skip, limit)
	var rels []models.UserEvent
	if val := args.Get(0); val != nil {
		rels = val.([]models.UserEvent)
	}
	return rels, args.Error(1)
}

func (m *MockRelationRepository) CreateUserFriendsEvent(ctx context.Context, in models.UserFriendsEventCreate) (*models.UserFriendsEvent, error) {
	args := m.Called(ctx, in)
	var rel *models.UserFriendsEvent
	if val := args.Get(0); val != nil {
		rel = val.(*models.UserFriendsEvent)
	}
	return rel, args.Error(1)
}

func (m *MockRelationRepository) ListUserFriendsEvents(ctx context.Context, skip, limit int) ([]models.UserFriendsEvent, error) {
	args := m.Called(ctx, skip, limit)
	var rels []models.UserFriendsEvent
	if val := args.Get(0); val != nil {
		rels = val.([]models.UserFriendsEvent)
	}
	return rels, args.Error(1)
}

func (m *MockRelationRepository) GetUserFriendsEvent(ctx context.Context, userID, friendID, eventID uuid.UUID) (*models.UserFriendsEvent, error) {
	args := m.Called(ctx, userID, friendID, eventID)
	var rel *models.UserFriendsEvent
	if val := args.Get(0); val != nil {
		rel = val.(*models.UserFriendsEvent)
	}
	return rel, args.Error(1)
}

func (m *MockRelationRepository) FriendIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	var ids []uuid.UUID
	if val := args.Get(0); val != nil {
		ids = val.([]uuid.UUID)
	}
	return ids, args.Error(1)
}

func (m *MockRelationRepository) EventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	var ids []uuid.UUID
	if val := args.Get(0); val != nil {
		ids = val.([]uuid.UUID)
	}
	return ids, args.Error(1)
}

func (m *MockRelationRepository) LinksForFriend(ctx context.Context, friendID uuid.UUID) ([]models.UserFriendsEvent, error) {
	args := m.Called(ctx, friendID)
	var links []models.UserFriendsEvent
	if val := args.Get(0); val != nil {
		links = val.([]models.UserFriendsEvent)
	}
	return links, args.Error(1)
}

func (m *MockRelationRepository) LinksForUserFriend(ctx context.Context, userID, friendID uuid.UUID) ([]models.UserFriendsEvent, error) {
	args := m.Called(ctx, userID, friendID)
	var links []models.UserFriendsEvent
	if val := args.Get(0); val != nil {
		links = val.([]models.UserFriendsEvent)
	}
	return links, args.Error(1)
}

func (m *MockRelationRepository) LinksForUserEvent(ctx context.Context, userID, eventID uuid.UUID) ([]models.UserFriendsEvent, error) {
	args := m.Called(ctx, userID, eventID)
	var links []models.UserFriendsEvent
	if val := args.Get(0); val != nil {
		links = val.([]models.UserFriendsEvent)
	}
	return links, args.Error(1)
}

var _ repositories.RelationRepository = (*MockRelationRepository)(nil)

// MockContentRepository mocks ContentRepository behavior for handlers.
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, in models.ContentCreate) (*models.Content, error) {
	args := m.Called(ctx, in)
	var row *models.Content
	if val := args.Get(0); val != nil {
		row = val.(*models.Content)
	}
	return row, args.Error(1)
}

func (m *MockContentRepository) CreateBulk(ctx context.Context, entries []models.ContentCreate) ([]models.Content, error) {
	args := m.Called(ctx, entries)
	var rows []models.Content
	if val := args.Get(0); val != nil {
		rows = val.([]models.Content)
	}
	return rows, args.Error(1)
}

func (m *MockContentRepository) List(ctx context.Context, skip, limit int) ([]models.Content, error) {
	args := m.Called(ctx, skip, limit)
	var rows []models.Content
	if val := args.Get(0); val != nil {
		rows = val.([]models.Content)
	}
	return rows, args.Error(1)
}

func (m *MockContentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	args := m.Called(ctx, id)
	var row *models.Content
	if val := args.Get(0); val != nil {
		row = val.(*models.Content)
	}
	return row, args.Error(1)
}

func (m *MockContentRepository) Update(ctx context.Context, id int64, fields map[string]any) (*models.Content, error) {
	args := m.Called(ctx, id, fields)
	var row *models.Content
	if val := args.Get(0); val != nil {
		row = val.(*models.Content)
	}
	return row, args.Error(1)
}

func (m *MockContentRepository) Delete(ctx context.Context, id int64) (*models.Content, error) {
	args := m.Called(ctx, id)
	var row *models.Content
	if val := args.Get(0); val != nil {
		row = val.(*models.Content)
	}
	return row, args.Error(1)
}

func (m *MockContentRepository) ListByRelation(ctx context.Context, relationID int64) ([]models.Content, error) {
	args := m.Called(ctx, relationID)
	var rows []models.Content
	if val := args.Get(0); val != nil {
		rows = val.([]models.Content)
	}
	return rows, args.Error(1)
}

func (m *MockContentRepository) ListByRelations(ctx context.Context, relationIDs []int64) ([]models.Content, error) {
	args := m.Called(ctx, relationIDs)
	var rows []models.Content
	if val := args.Get(0); val != nil {
		rows = val.([]models.Content)
	}
	return rows, args.Error(1)
}

var _ repositories.ContentRepository = (*MockContentRepository)(nil)

// MockTranscriber mocks the transcription provider.
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string, keywords []string) (string, error) {
	args := m.Called(ctx, audio, contentType, keywords)
	return args.String(0), args.Error(1)
}

var _ services.Transcriber = (*MockTranscriber)(nil)

// MockModelClient mocks the language model provider.
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) CreateMessage(ctx context.Context, req services.MessageRequest) (*services.MessageResponse, error) {
	args := m.Called(ctx, req)
	var resp *services.MessageResponse
	if val := args.Get(0); val != nil {
		resp = val.(*services.MessageResponse)
	}
	return resp, args.Error(1)
}

var _ services.ModelClient = (*MockModelClient)(nil)

// MockPublisher mocks RabbitMQ publisher behavior for telemetry.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ rabbitmq.Publisher = (*MockPublisher)(nil)
