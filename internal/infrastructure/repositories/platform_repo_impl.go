package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/infrastructure/models"
)

// SupportTicketRepository implements support ticket data operations
type SupportTicketRepository struct {
	db *gorm.DB
}

// NewSupportTicketRepository creates a new support ticket repository
func NewSupportTicketRepository(db *gorm.DB) *SupportTicketRepository {
	return &SupportTicketRepository{db: db}
}

// Create creates a new ticket
func (r *SupportTicketRepository) Create(ctx context.Context, ticket *entities.SupportTicket) error {
	m := ticketToModel(ticket)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a ticket by ID
func (r *SupportTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SupportTicket, error) {
	var m models.SupportTicket
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ticketToEntity(&m), nil
}

// Update persists reply/status changes
func (r *SupportTicketRepository) Update(ctx context.Context, ticket *entities.SupportTicket) error {
	updates := map[string]interface{}{
		"status":      string(ticket.Status),
		"admin_reply": ticket.AdminReply,
		"replied_by":  ticket.RepliedBy,
		"updated_at":  time.Now(),
	}
	if ticket.RepliedAt.Valid {
		updates["replied_at"] = ticket.RepliedAt.Time
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.SupportTicket{}).
		Where("id = ?", ticket.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's tickets
func (r *SupportTicketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.SupportTicket, error) {
	var ticketModels []models.SupportTicket
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ticketModels).Error
	if err != nil {
		return nil, err
	}
	return ticketsToEntities(ticketModels), nil
}

// List lists all tickets, optionally by status
func (r *SupportTicketRepository) List(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error) {
	var ticketModels []models.SupportTicket
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	return ticketsToEntities(ticketModels), nil
}

// CountOpen counts tickets not yet resolved or closed
func (r *SupportTicketRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.SupportTicket{}).
		Where("status IN ?", []string{
			string(entities.TicketStatusOpen),
			string(entities.TicketStatusInProgress),
		}).
		Count(&count).Error
	return count, err
}

func ticketsToEntities(ticketModels []models.SupportTicket) []*entities.SupportTicket {
	tickets := make([]*entities.SupportTicket, 0, len(ticketModels))
	for i := range ticketModels {
		tickets = append(tickets, ticketToEntity(&ticketModels[i]))
	}
	return tickets
}

func ticketToModel(t *entities.SupportTicket) *models.SupportTicket {
	m := &models.SupportTicket{
		ID:         t.ID,
		UserID:     t.UserID,
		Subject:    t.Subject,
		Message:    t.Message,
		Status:     string(t.Status),
		AdminReply: t.AdminReply,
		RepliedBy:  t.RepliedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	m.RepliedAt = t.RepliedAt.Ptr()
	return m
}

func ticketToEntity(m *models.SupportTicket) *entities.SupportTicket {
	return &entities.SupportTicket{
		ID:         m.ID,
		UserID:     m.UserID,
		Subject:    m.Subject,
		Message:    m.Message,
		Status:     entities.TicketStatus(m.Status),
		AdminReply: m.AdminReply,
		RepliedBy:  m.RepliedBy,
		RepliedAt:  null.TimeFromPtr(m.RepliedAt),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// AuditLogRepository implements audit log data operations
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends an audit log entry
func (r *AuditLogRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	m := &models.AuditLog{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		CreatedAt:  entry.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// List lists audit entries, newest first
func (r *AuditLogRepository) List(ctx context.Context, entityType string, limit, offset int) ([]*entities.AuditLog, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AuditLog{})
	if entityType != "" {
		db = db.Where("entity_type = ?", entityType)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.AuditLog
	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entities.AuditLog, 0, len(logModels))
	for _, m := range logModels {
		logs = append(logs, &entities.AuditLog{
			ID:         m.ID,
			ActorID:    m.ActorID,
			Action:     m.Action,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Detail:     m.Detail,
			CreatedAt:  m.CreatedAt,
		})
	}
	return logs, total, nil
}

// BlogPostRepository implements blog post data operations
type BlogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository creates a new blog post repository
func NewBlogPostRepository(db *gorm.DB) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

// Create creates a post
func (r *BlogPostRepository) Create(ctx context.Context, post *entities.BlogPost) error {
	m := blogPostToModel(post)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// Update updates a post
func (r *BlogPostRepository) Update(ctx context.Context, post *entities.BlogPost) error {
	updates := map[string]interface{}{
		"slug":       post.Slug,
		"title":      post.Title,
		"body":       post.Body,
		"published":  post.Published,
		"updated_at": time.Now(),
	}
	if post.PublishedAt.Valid {
		updates["published_at"] = post.PublishedAt.Time
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.BlogPost{}).
		Where("id = ?", post.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetBySlug gets a post by slug
func (r *BlogPostRepository) GetBySlug(ctx context.Context, slug string) (*entities.BlogPost, error) {
	var m models.BlogPost
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return blogPostToEntity(&m), nil
}

// GetByID gets a post by ID
func (r *BlogPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BlogPost, error) {
	var m models.BlogPost
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return blogPostToEntity(&m), nil
}

// List lists posts, optionally published only
func (r *BlogPostRepository) List(ctx context.Context, publishedOnly bool) ([]*entities.BlogPost, error) {
	var postModels []models.BlogPost
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.BlogPost, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, blogPostToEntity(&postModels[i]))
	}
	return posts, nil
}

// Delete soft deletes a post
func (r *BlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func blogPostToModel(p *entities.BlogPost) *models.BlogPost {
	m := &models.BlogPost{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Slug:      p.Slug,
		Title:     p.Title,
		Body:      p.Body,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	m.PublishedAt = p.PublishedAt.Ptr()
	return m
}

func blogPostToEntity(m *models.BlogPost) *entities.BlogPost {
	return &entities.BlogPost{
		ID:          m.ID,
		AuthorID:    m.AuthorID,
		Slug:        m.Slug,
		Title:       m.Title,
		Body:        m.Body,
		Published:   m.Published,
		PublishedAt: null.TimeFromPtr(m.PublishedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
