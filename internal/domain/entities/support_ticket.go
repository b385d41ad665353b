package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TicketStatus represents support ticket states
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// SupportTicket is a user-raised issue handled by admins.
type SupportTicket struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"userId"`
	Subject    string       `json:"subject"`
	Message    string       `json:"message"`
	Status     TicketStatus `json:"status"`
	AdminReply string       `json:"adminReply,omitempty"`
	RepliedBy  *uuid.UUID   `json:"repliedBy,omitempty"`
	RepliedAt  null.Time    `json:"repliedAt,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// CreateTicketInput represents a user opening a ticket.
type CreateTicketInput struct {
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required,min=3"`
}

// ReplyTicketInput represents an admin replying to a ticket.
type ReplyTicketInput struct {
	Reply  string `json:"reply" binding:"required"`
	Status string `json:"status" binding:"required"`
}
