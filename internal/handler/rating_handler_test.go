package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartblog/internal/entity"
	"smartblog/internal/service"
	"smartblog/pkg/apperror"
)

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) AddRating(ctx context.Context, postID, userID uuid.UUID, ratingType entity.RatingType) (*entity.Rating, error) {
	args := m.Called(ctx, postID, userID, ratingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingService) RemoveRating(ctx context.Context, postID, ratingID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, postID, ratingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingService) Score(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingService) RatingsForPost(ctx context.Context, postID uuid.UUID) ([]*entity.Rating, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Rating), args.Error(1)
}

func (m *MockRatingService) RatingsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Rating), args.Error(1)
}

var _ service.RatingService = (*MockRatingService)(nil)

func setupRatingRouter(svc service.RatingService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewRatingHandler(svc)

	authed := func(c *gin.Context) {
		c.Set("user_id", userID.String())
	}
	router.POST("/posts/:post_id/ratings", authed, handler.CreateRating)
	router.GET("/posts/:post_id/rating", authed, handler.GetScore)
	router.DELETE("/posts/:post_id/ratings/:rating_id", authed, handler.DeleteRating)
	return router
}

func TestCreateRating_Created(t *testing.T) {
	svc := new(MockRatingService)
	userID := uuid.New()
	postID := uuid.New()
	router := setupRatingRouter(svc, userID)

	svc.On("AddRating", mock.Anything, postID, userID, entity.RatingLike).
		Return(&entity.Rating{ID: uuid.New(), PostID: postID, UserID: userID, Type: entity.RatingLike}, nil)

	body := bytes.NewBufferString(`{"type":"LIKE"}`)
	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID.String()+"/ratings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateRating_InvalidTypeRejected(t *testing.T) {
	svc := new(MockRatingService)
	router := setupRatingRouter(svc, uuid.New())

	body := bytes.NewBufferString(`{"type":"MEH"}`)
	req := httptest.NewRequest(http.MethodPost, "/posts/"+uuid.NewString()+"/ratings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddRating")
}

func TestCreateRating_SelfVoteMapsTo400(t *testing.T) {
	svc := new(MockRatingService)
	userID := uuid.New()
	postID := uuid.New()
	router := setupRatingRouter(svc, userID)

	svc.On("AddRating", mock.Anything, postID, userID, entity.RatingLike).
		Return(nil, apperror.BadRequest("User can't rate their own post."))

	body := bytes.NewBufferString(`{"type":"LIKE"}`)
	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID.String()+"/ratings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User can't rate their own post.")
}

func TestGetScore_ReturnsBareInteger(t *testing.T) {
	svc := new(MockRatingService)
	postID := uuid.New()
	router := setupRatingRouter(svc, uuid.New())

	svc.On("Score", mock.Anything, postID).Return(int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.String()+"/rating", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Body.String())
}

func TestGetScore_InvalidPostID(t *testing.T) {
	svc := new(MockRatingService)
	router := setupRatingRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/posts/not-a-uuid/rating", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Score")
}

func TestDeleteRating_NotFoundMapsTo404(t *testing.T) {
	svc := new(MockRatingService)
	postID := uuid.New()
	ratingID := uuid.New()
	router := setupRatingRouter(svc, uuid.New())

	svc.On("RemoveRating", mock.Anything, postID, ratingID).
		Return(nil, apperror.NotFound("Rating not found."))

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+postID.String()+"/ratings/"+ratingID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Rating not found.")
}
