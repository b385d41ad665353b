package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/interfaces/http/middleware"
	"kudichain.backend/internal/interfaces/http/response"
)

type BlogService interface {
	Upsert(ctx context.Context, authorID uuid.UUID, input *entities.UpsertBlogPostInput) (*entities.BlogPost, error)
	GetBySlug(ctx context.Context, slug string, isAdmin bool) (*entities.BlogPost, error)
	List(ctx context.Context, isAdmin bool) ([]*entities.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlogHandler handles public site article endpoints
type BlogHandler struct {
	blogUsecase BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogUsecase BlogService) *BlogHandler {
	return &BlogHandler{blogUsecase: blogUsecase}
}

// List returns posts
// GET /api/v1/blog
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.blogUsecase.List(c.Request.Context(), isAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

// Get returns one post
// GET /api/v1/blog/:slug
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.blogUsecase.GetBySlug(c.Request.Context(), c.Param("slug"), isAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// Upsert creates or updates a post
// PUT /api/v1/admin/blog
func (h *BlogHandler) Upsert(c *gin.Context) {
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.UpsertBlogPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	post, err := h.blogUsecase.Upsert(c.Request.Context(), authorID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// Delete removes a post
// DELETE /api/v1/admin/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid post ID"))
		return
	}

	if err := h.blogUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "post deleted"})
}

func isAdmin(c *gin.Context) bool {
	role, ok := middleware.GetUserRole(c)
	return ok && role == entities.UserRoleAdmin
}
