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

type SupportService interface {
	CreateTicket(ctx context.Context, userID uuid.UUID, input *entities.CreateTicketInput) (*entities.SupportTicket, error)
	GetTicket(ctx context.Context, actorID uuid.UUID, role entities.UserRole, ticketID uuid.UUID) (*entities.SupportTicket, error)
	ListMyTickets(ctx context.Context, userID uuid.UUID) ([]*entities.SupportTicket, error)
	ListTickets(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error)
	Reply(ctx context.Context, adminID uuid.UUID, ticketID uuid.UUID, input *entities.ReplyTicketInput) (*entities.SupportTicket, error)
}

// SupportHandler handles support ticket endpoints
type SupportHandler struct {
	supportUsecase SupportService
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(supportUsecase SupportService) *SupportHandler {
	return &SupportHandler{supportUsecase: supportUsecase}
}

// CreateTicket opens a ticket
// POST /api/v1/support/tickets
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ticket, err := h.supportUsecase.CreateTicket(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ticket": ticket})
}

// GetTicket returns one ticket
// GET /api/v1/support/tickets/:id
func (h *SupportHandler) GetTicket(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ticket ID"))
		return
	}

	ticket, err := h.supportUsecase.GetTicket(c.Request.Context(), actorID, role, ticketID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ticket": ticket})
}

// ListMyTickets returns the caller's tickets
// GET /api/v1/support/tickets
func (h *SupportHandler) ListMyTickets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tickets, err := h.supportUsecase.ListMyTickets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tickets": tickets})
}

// ListTickets lists all tickets for admins
// GET /api/v1/admin/support/tickets
func (h *SupportHandler) ListTickets(c *gin.Context) {
	status := entities.TicketStatus(c.Query("status"))
	tickets, err := h.supportUsecase.ListTickets(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tickets": tickets})
}

// Reply records an admin reply
// POST /api/v1/admin/support/tickets/:id/reply
func (h *SupportHandler) Reply(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ticket ID"))
		return
	}

	var input entities.ReplyTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ticket, err := h.supportUsecase.Reply(c.Request.Context(), adminID, ticketID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ticket": ticket})
}
