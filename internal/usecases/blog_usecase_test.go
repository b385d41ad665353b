package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/usecases"
)

func TestBlogUpsert_CreatesAndStampsPublishedAt(t *testing.T) {
	blogRepo := new(MockBlogPostRepository)
	uc := usecases.NewBlogUsecase(blogRepo)
	authorID := uuid.New()

	blogRepo.On("GetBySlug", mock.Anything, "recycling-in-lagos").Return(nil, domainerrors.ErrNotFound).Once()
	blogRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.BlogPost) bool {
		return p.AuthorID == authorID && p.Published && p.PublishedAt.Valid
	})).Return(nil).Once()

	post, err := uc.Upsert(context.Background(), authorID, &entities.UpsertBlogPostInput{
		Slug: "recycling-in-lagos", Title: "Recycling in Lagos", Body: "...", Published: true,
	})
	require.NoError(t, err)
	assert.True(t, post.PublishedAt.Valid)
	blogRepo.AssertExpectations(t)
}

func TestBlogUpsert_DraftHasNoPublishedAt(t *testing.T) {
	blogRepo := new(MockBlogPostRepository)
	uc := usecases.NewBlogUsecase(blogRepo)

	blogRepo.On("GetBySlug", mock.Anything, "draft-post").Return(nil, domainerrors.ErrNotFound).Once()
	blogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	post, err := uc.Upsert(context.Background(), uuid.New(), &entities.UpsertBlogPostInput{
		Slug: "draft-post", Title: "Draft", Body: "...", Published: false,
	})
	require.NoError(t, err)
	assert.False(t, post.PublishedAt.Valid)
}

func TestBlogUpsert_PublishingExistingDraftSetsTimestamp(t *testing.T) {
	blogRepo := new(MockBlogPostRepository)
	uc := usecases.NewBlogUsecase(blogRepo)
	postID := uuid.New()

	blogRepo.On("GetBySlug", mock.Anything, "draft-post").Return(&entities.BlogPost{
		ID: postID, Slug: "draft-post", Title: "Draft", Published: false,
	}, nil).Once()
	blogRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entities.BlogPost) bool {
		return p.ID == postID && p.Published && p.PublishedAt.Valid && p.Title == "Now Live"
	})).Return(nil).Once()

	post, err := uc.Upsert(context.Background(), uuid.New(), &entities.UpsertBlogPostInput{
		Slug: "draft-post", Title: "Now Live", Body: "updated", Published: true,
	})
	require.NoError(t, err)
	assert.True(t, post.PublishedAt.Valid)
	blogRepo.AssertExpectations(t)
}

func TestBlogGetBySlug_UnpublishedHiddenFromNonAdmins(t *testing.T) {
	blogRepo := new(MockBlogPostRepository)
	uc := usecases.NewBlogUsecase(blogRepo)

	draft := &entities.BlogPost{ID: uuid.New(), Slug: "secret-draft", Published: false}
	blogRepo.On("GetBySlug", mock.Anything, "secret-draft").Return(draft, nil).Twice()

	_, err := uc.GetBySlug(context.Background(), "secret-draft", false)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	post, err := uc.GetBySlug(context.Background(), "secret-draft", true)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, post.ID)
}

func TestBlogList_NonAdminsSeePublishedOnly(t *testing.T) {
	blogRepo := new(MockBlogPostRepository)
	uc := usecases.NewBlogUsecase(blogRepo)

	blogRepo.On("List", mock.Anything, true).Return([]*entities.BlogPost{{ID: uuid.New()}}, nil).Once()
	posts, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	blogRepo.On("List", mock.Anything, false).Return([]*entities.BlogPost{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Once()
	posts, err = uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	blogRepo.AssertExpectations(t)
}
