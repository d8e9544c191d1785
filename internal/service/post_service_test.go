package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"smartblog/internal/dto"
	"smartblog/internal/entity"
)

func newPostFixture() (*MockPostRepository, *MockTagRepository, *MockSearchService, PostService) {
	posts := new(MockPostRepository)
	tags := new(MockTagRepository)
	search := new(MockSearchService)
	return posts, tags, search, NewPostService(posts, tags, search)
}

func TestCreatePost_ResolvesTagsOnce(t *testing.T) {
	posts, tags, search, svc := newPostFixture()
	ownerID := uuid.New()
	goTag := &entity.Tag{ID: uuid.New(), Name: "golang"}

	// Duplicate names in the request collapse to one lookup.
	tags.On("GetOrCreate", mock.Anything, "golang").Return(goTag, nil).Once()
	search.On("IndexTag", goTag).Return()
	posts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Post")).Return(nil)

	post, err := svc.CreatePost(context.Background(), ownerID, dto.CreatePostRequest{
		Title: "Hello",
		Text:  "World",
		Tags:  []string{"golang", "golang"},
	})

	assert.NoError(t, err)
	assert.Equal(t, ownerID, post.UserID)
	assert.Len(t, post.Tags, 1)
	assert.Equal(t, "golang", post.Tags[0].Name)
	tags.AssertExpectations(t)
}

func TestCreatePost_SanitizesMarkup(t *testing.T) {
	posts, _, _, svc := newPostFixture()
	ownerID := uuid.New()

	posts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Post")).Return(nil)

	post, err := svc.CreatePost(context.Background(), ownerID, dto.CreatePostRequest{
		Title: "<script>alert(1)</script>Title",
		Text:  "plain text",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Title", post.Title)
	assert.Equal(t, "plain text", post.Text)
}

func TestGetPost_NotFound(t *testing.T) {
	posts, _, _, svc := newPostFixture()
	postID := uuid.New()

	posts.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

	post, err := svc.GetPost(context.Background(), postID)

	assert.Nil(t, post)
	assert.EqualError(t, err, "Post not found.")
}

func TestUpdatePost_NonOwnerLooksAbsent(t *testing.T) {
	posts, _, _, svc := newPostFixture()
	postID := uuid.New()
	strangerID := uuid.New()

	posts.On("FindByIDAndOwner", mock.Anything, postID, strangerID).Return(nil, gorm.ErrRecordNotFound)

	post, err := svc.UpdatePost(context.Background(), postID, strangerID, dto.UpdatePostRequest{
		Title: "New",
		Text:  "Body",
	})

	assert.Nil(t, post)
	assert.EqualError(t, err, "Post not found.")
	posts.AssertNotCalled(t, "Update")
}

func TestUpdatePost_ReplacesTagSet(t *testing.T) {
	posts, tags, search, svc := newPostFixture()
	postID := uuid.New()
	ownerID := uuid.New()
	existing := &entity.Post{ID: postID, UserID: ownerID, Title: "Old", Text: "Old"}
	newTag := &entity.Tag{ID: uuid.New(), Name: "news"}

	posts.On("FindByIDAndOwner", mock.Anything, postID, ownerID).Return(existing, nil)
	tags.On("GetOrCreate", mock.Anything, "news").Return(newTag, nil)
	search.On("IndexTag", newTag).Return()
	posts.On("Update", mock.Anything, existing).Return(nil)
	posts.On("ReplaceTags", mock.Anything, existing, []entity.Tag{*newTag}).Return(nil)

	post, err := svc.UpdatePost(context.Background(), postID, ownerID, dto.UpdatePostRequest{
		Title: "New",
		Text:  "Body",
		Tags:  []string{"news"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "New", post.Title)
	assert.Equal(t, []entity.Tag{*newTag}, post.Tags)
	posts.AssertExpectations(t)
}

func TestDeletePost_NonOwnerLooksAbsent(t *testing.T) {
	posts, _, _, svc := newPostFixture()
	postID := uuid.New()
	strangerID := uuid.New()

	posts.On("FindByIDAndOwner", mock.Anything, postID, strangerID).Return(nil, gorm.ErrRecordNotFound)

	post, err := svc.DeletePost(context.Background(), postID, strangerID)

	assert.Nil(t, post)
	assert.EqualError(t, err, "Post not found.")
	posts.AssertNotCalled(t, "Delete")
}

func TestDeletePost_OwnerSucceeds(t *testing.T) {
	posts, _, _, svc := newPostFixture()
	postID := uuid.New()
	ownerID := uuid.New()
	existing := &entity.Post{ID: postID, UserID: ownerID}

	posts.On("FindByIDAndOwner", mock.Anything, postID, ownerID).Return(existing, nil)
	posts.On("Delete", mock.Anything, existing).Return(nil)

	post, err := svc.DeletePost(context.Background(), postID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, postID, post.ID)
	posts.AssertExpectations(t)
}
