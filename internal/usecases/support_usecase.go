package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// SupportUsecase manages user support tickets.
type SupportUsecase struct {
	ticketRepo repositories.SupportTicketRepository
}

// NewSupportUsecase creates a new support usecase
func NewSupportUsecase(ticketRepo repositories.SupportTicketRepository) *SupportUsecase {
	return &SupportUsecase{ticketRepo: ticketRepo}
}

// CreateTicket opens a ticket for the user.
func (u *SupportUsecase) CreateTicket(ctx context.Context, userID uuid.UUID, input *entities.CreateTicketInput) (*entities.SupportTicket, error) {
	ticket := &entities.SupportTicket{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    entities.TicketStatusOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := u.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicket returns a ticket visible to the actor. Admins see all
// tickets; other users only their own.
func (u *SupportUsecase) GetTicket(ctx context.Context, actorID uuid.UUID, role entities.UserRole, ticketID uuid.UUID) (*entities.SupportTicket, error) {
	ticket, err := u.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if role != entities.UserRoleAdmin && ticket.UserID != actorID {
		return nil, domainerrors.Forbidden("not your ticket")
	}
	return ticket, nil
}

// ListMyTickets lists the actor's tickets.
func (u *SupportUsecase) ListMyTickets(ctx context.Context, userID uuid.UUID) ([]*entities.SupportTicket, error) {
	return u.ticketRepo.ListByUser(ctx, userID)
}

// ListTickets lists all tickets, optionally by status. Admin only,
// enforced at the route.
func (u *SupportUsecase) ListTickets(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error) {
	return u.ticketRepo.List(ctx, status)
}

// Reply records an admin reply and moves the ticket's status.
func (u *SupportUsecase) Reply(ctx context.Context, adminID uuid.UUID, ticketID uuid.UUID, input *entities.ReplyTicketInput) (*entities.SupportTicket, error) {
	status := entities.TicketStatus(input.Status)
	switch status {
	case entities.TicketStatusInProgress, entities.TicketStatusResolved, entities.TicketStatusClosed:
	default:
		return nil, domainerrors.BadRequest("status must be in_progress, resolved or closed")
	}

	ticket, err := u.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == entities.TicketStatusClosed {
		return nil, domainerrors.Conflict("ticket is closed")
	}

	ticket.AdminReply = input.Reply
	ticket.RepliedBy = &adminID
	ticket.RepliedAt = null.TimeFrom(time.Now())
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	if err := u.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
