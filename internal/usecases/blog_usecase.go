package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// BlogUsecase manages admin-authored site articles.
type BlogUsecase struct {
	blogRepo repositories.BlogPostRepository
}

// NewBlogUsecase creates a new blog usecase
func NewBlogUsecase(blogRepo repositories.BlogPostRepository) *BlogUsecase {
	return &BlogUsecase{blogRepo: blogRepo}
}

// Upsert creates a post under the slug or updates the existing one.
func (u *BlogUsecase) Upsert(ctx context.Context, authorID uuid.UUID, input *entities.UpsertBlogPostInput) (*entities.BlogPost, error) {
	existing, err := u.blogRepo.GetBySlug(ctx, input.Slug)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Title = input.Title
		existing.Body = input.Body
		if input.Published && !existing.Published {
			existing.PublishedAt = null.TimeFrom(time.Now())
		}
		existing.Published = input.Published
		existing.UpdatedAt = time.Now()
		if err := u.blogRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	post := &entities.BlogPost{
		ID:        utils.GenerateUUIDv7(),
		AuthorID:  authorID,
		Slug:      input.Slug,
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if post.Published {
		post.PublishedAt = null.TimeFrom(time.Now())
	}
	if err := u.blogRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetBySlug returns a post. Unpublished posts are admin-only.
func (u *BlogUsecase) GetBySlug(ctx context.Context, slug string, isAdmin bool) (*entities.BlogPost, error) {
	post, err := u.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published && !isAdmin {
		return nil, domainerrors.ErrNotFound
	}
	return post, nil
}

// List returns posts, published only for non-admins.
func (u *BlogUsecase) List(ctx context.Context, isAdmin bool) ([]*entities.BlogPost, error) {
	return u.blogRepo.List(ctx, !isAdmin)
}

// Delete removes a post.
func (u *BlogUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.blogRepo.Delete(ctx, id)
}
