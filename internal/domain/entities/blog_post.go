package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BlogPost is an admin-authored article shown on the public site.
type BlogPost struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"authorId"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Published   bool      `json:"published"`
	PublishedAt null.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpsertBlogPostInput represents creating or editing a post.
type UpsertBlogPostInput struct {
	Slug      string `json:"slug" binding:"required,min=3,max=150"`
	Title     string `json:"title" binding:"required,min=3,max=200"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}
