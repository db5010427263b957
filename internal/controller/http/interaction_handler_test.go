package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInteractionUseCase is a mock implementation of InteractionUseCase
type MockInteractionUseCase struct {
	mock.Mock
}

func (m *MockInteractionUseCase) ToggleLike(postID, userID string, likeType entity.LikeType) (*entity.Like, error) {
	args := m.Called(postID, userID, likeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Like), args.Error(1)
}

func (m *MockInteractionUseCase) CountLikes(postID string, likeType entity.LikeType) (int64, error) {
	args := m.Called(postID, likeType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionUseCase) GetComments(postID string) ([]*entity.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) CreateComment(postID, userID, content string) (*entity.Comment, error) {
	args := m.Called(postID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

var _ usecase.InteractionUseCase = (*MockInteractionUseCase)(nil)

func TestToggleLike_Create(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/posts/:id/like", func(c *gin.Context) {
		c.Set("user_id", "bob")
		handler.ToggleLike(c)
	})

	mockLike := &entity.Like{ID: "like-1", PostID: "hello-world", UserID: "bob", Type: entity.LikeUp}
	mockUseCase.On("ToggleLike", "hello-world", "bob", entity.LikeUp).Return(mockLike, nil)

	body := `{"type":"up"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/hello-world/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]*entity.Like
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "like-1", response["like"].ID)

	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_Retract(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/posts/:id/like", func(c *gin.Context) {
		c.Set("user_id", "bob")
		handler.ToggleLike(c)
	})

	// Toggling the same type again retracts the vote and yields a null like.
	mockUseCase.On("ToggleLike", "hello-world", "bob", entity.LikeUp).Return(nil, nil)

	body := `{"type":"up"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/hello-world/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["like"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_InvalidType(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/posts/:id/like", handler.ToggleLike)

	body := `{"type":"sideways"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/hello-world/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "ToggleLike")
}

func TestToggleLike_PostNotFound(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/posts/:id/like", handler.ToggleLike)

	mockUseCase.On("ToggleLike", "missing", "", entity.LikeDown).
		Return(nil, apperr.NotFound("post not found: missing"))

	body := `{"type":"down"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/missing/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCountLikes_DefaultsToUp(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/posts/:id/likes", handler.CountLikes)

	mockUseCase.On("CountLikes", "hello-world", entity.LikeUp).Return(int64(7), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/hello-world/likes", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]int64
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(7), response["count"])

	mockUseCase.AssertExpectations(t)
}

func TestCountLikes_Down(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/posts/:id/likes", handler.CountLikes)

	mockUseCase.On("CountLikes", "hello-world", entity.LikeDown).Return(int64(2), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/hello-world/likes?type=down", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCountLikes_InvalidType(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/posts/:id/likes", handler.CountLikes)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/hello-world/likes?type=sideways", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CountLikes")
}

func TestGetComments_NewestFirst(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/posts/:id/comments", handler.GetComments)

	now := time.Now()
	mockComments := []*entity.Comment{
		{ID: "c3", PostID: "hello-world", Content: "third", CreatedAt: now},
		{ID: "c2", PostID: "hello-world", Content: "second", CreatedAt: now.Add(-time.Minute)},
		{ID: "c1", PostID: "hello-world", Content: "first", CreatedAt: now.Add(-2 * time.Minute)},
	}
	mockUseCase.On("GetComments", "hello-world").Return(mockComments, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/hello-world/comments", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string][]*entity.Comment
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 3, len(response["comments"]))
	assert.Equal(t, "c3", response["comments"][0].ID)

	mockUseCase.AssertExpectations(t)
}

func TestCreateComment_Success(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", func(c *gin.Context) {
		c.Set("user_id", "bob")
		handler.CreateComment(c)
	})

	mockComment := &entity.Comment{ID: "c1", PostID: "hello-world", UserID: "bob", Content: "Nice read"}
	mockUseCase.On("CreateComment", "hello-world", "bob", "Nice read").Return(mockComment, nil)

	body := `{"content":"Nice read"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/hello-world/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreateComment_EmptyContent(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", handler.CreateComment)

	body := `{"content":""}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/hello-world/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreateComment")
}
