package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// SupportTicketRepository defines support ticket data operations
type SupportTicketRepository interface {
	Create(ctx context.Context, ticket *entities.SupportTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SupportTicket, error)
	Update(ctx context.Context, ticket *entities.SupportTicket) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.SupportTicket, error)
	List(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error)
	CountOpen(ctx context.Context) (int64, error)
}

// AuditLogRepository defines append-only audit log operations
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entities.AuditLog) error
	List(ctx context.Context, entityType string, limit, offset int) ([]*entities.AuditLog, int64, error)
}

// BlogPostRepository defines blog post data operations
type BlogPostRepository interface {
	Create(ctx context.Context, post *entities.BlogPost) error
	Update(ctx context.Context, post *entities.BlogPost) error
	GetBySlug(ctx context.Context, slug string) (*entities.BlogPost, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]*entities.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
