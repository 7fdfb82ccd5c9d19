package handlers

import (
	"bytes"
	"encoding/json"
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
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", handler.Create)
	r.GET("/users", handler.List)
	r.GET("/users/:user_id", handler.GetByID)
	r.PUT("/users/:user_id", handler.Update)
	r.DELETE("/users/:user_id", handler.Delete)
	return r
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestCreateUserOK(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	created := &models.User{ID: uuid.New(), Username: strPtr("alice"), Email: strPtr("alice@example.com"), Age: intPtr(30)}
	mockUsers.On("Create", mock.Anything, models.UserCreate{Username: "alice", Email: "alice@example.com", Age: intPtr(30)}).
		Return(created, nil).Once()

	body := `{"username":"alice","email":"alice@example.com","age":30}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, created.ID, resp.ID)
	require.Equal(t, "alice", *resp.Username)

	mockUsers.AssertExpectations(t)
}

func TestCreateUserInvalidEmail(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	body := `{"username":"alice","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUserRejected(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	mockUsers.On("Create", mock.Anything, mock.Anything).
		Return(nil, repositories.ErrRejected).Once()

	body := `{"username":"alice","email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "User could not be created", resp["detail"])
}

func TestListUsersEmpty(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	mockUsers.On("List", mock.Anything, 0, 100).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListUsersPagination(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	mockUsers.On("List", mock.Anything, 5, 2).
		Return([]models.User{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users?skip=5&limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockUsers.AssertExpectations(t)
}

func TestGetUserByIDNotFound(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	id := uuid.New()
	mockUsers.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "User not found", resp["detail"])
}

func TestGetUserByIDInvalidID(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateUserNoFields(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	req := httptest.NewRequest(http.MethodPut, "/users/"+uuid.NewString(), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "No data provided to update", resp["detail"])
	mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserPartialFields(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	id := uuid.New()
	updated := &models.User{ID: id, Username: strPtr("renamed")}
	mockUsers.On("Update", mock.Anything, id, map[string]any{"username": "renamed"}).
		Return(updated, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/users/"+id.String(), strings.NewReader(`{"username":"renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockUsers.AssertExpectations(t)
}

func TestDeleteUserTwice(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	router := setupUserRouter(NewUserHandler(mockUsers))

	id := uuid.New()
	deleted := &models.User{ID: id, Username: strPtr("gone")}
	mockUsers.On("Delete", mock.Anything, id).Return(deleted, nil).Once()
	mockUsers.On("Delete", mock.Anything, id).Return(nil, repositories.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/users/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, id, resp.ID)

	req = httptest.NewRequest(http.MethodDelete, "/users/"+id.String(), bytes.NewReader(nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	mockUsers.AssertExpectations(t)
}
