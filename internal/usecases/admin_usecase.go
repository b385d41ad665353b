package usecases

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	"kudichain.backend/internal/domain/repositories"
)

// PlatformStats is the admin dashboard aggregate, computed from the
// live tables on every call.
type PlatformStats struct {
	UsersByRole        map[entities.UserRole]int64        `json:"usersByRole"`
	DropsByStatus      map[entities.DropStatus]int64      `json:"dropsByStatus"`
	WeightByTypeGrams  map[entities.TrashType]int64       `json:"weightByTypeGrams"`
	TotalsByEntryKobo  map[entities.TransactionType]int64 `json:"totalsByEntryKobo"`
	OpenSupportTickets int64                              `json:"openSupportTickets"`
}

// AdminUsecase serves administrative reads: platform stats, user
// listings and the audit trail.
type AdminUsecase struct {
	userRepo   repositories.UserRepository
	dropRepo   repositories.TrashRecordRepository
	txRepo     repositories.TransactionRepository
	ticketRepo repositories.SupportTicketRepository
	auditRepo  repositories.AuditLogRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	dropRepo repositories.TrashRecordRepository,
	txRepo repositories.TransactionRepository,
	ticketRepo repositories.SupportTicketRepository,
	auditRepo repositories.AuditLogRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:   userRepo,
		dropRepo:   dropRepo,
		txRepo:     txRepo,
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
	}
}

// GetStats aggregates platform-wide counts and totals.
func (u *AdminUsecase) GetStats(ctx context.Context) (*PlatformStats, error) {
	usersByRole, err := u.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	dropsByStatus, err := u.dropRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	weightByType, err := u.dropRepo.TotalWeightByType(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[entities.TransactionType]int64)
	for _, txType := range []entities.TransactionType{
		entities.TransactionTypeEarn,
		entities.TransactionTypeRedeem,
		entities.TransactionTypeBonus,
		entities.TransactionTypePenalty,
		entities.TransactionTypeRefund,
	} {
		total, err := u.txRepo.TotalByType(ctx, txType)
		if err != nil {
			return nil, err
		}
		totals[txType] = total
	}

	openTickets, err := u.ticketRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		UsersByRole:        usersByRole,
		DropsByStatus:      dropsByStatus,
		WeightByTypeGrams:  weightByType,
		TotalsByEntryKobo:  totals,
		OpenSupportTickets: openTickets,
	}, nil
}

// ListUsers lists users, optionally filtered by role or search term.
func (u *AdminUsecase) ListUsers(ctx context.Context, role entities.UserRole, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, role, search)
}

// GetUser returns a single user.
func (u *AdminUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// RemoveUser soft-deletes a user.
func (u *AdminUsecase) RemoveUser(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.SoftDelete(ctx, id)
}

// ListAuditLog pages through the audit trail.
func (u *AdminUsecase) ListAuditLog(ctx context.Context, entityType string, page, limit int) ([]*entities.AuditLog, int64, error) {
	offset := (page - 1) * limit
	return u.auditRepo.List(ctx, entityType, limit, offset)
}
