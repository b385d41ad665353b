package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/infrastructure/models"
)

// PaymentRateRepository implements payment rate data operations
type PaymentRateRepository struct {
	db *gorm.DB
}

// NewPaymentRateRepository creates a new payment rate repository
func NewPaymentRateRepository(db *gorm.DB) *PaymentRateRepository {
	return &PaymentRateRepository{db: db}
}

// Create creates a new payment rate row
func (r *PaymentRateRepository) Create(ctx context.Context, rate *entities.PaymentRate) error {
	m := rateToModel(rate)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a rate by ID
func (r *PaymentRateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRate, error) {
	var m models.PaymentRate
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return rateToEntity(&m), nil
}

// GetActiveByType returns the single active rate for a trash type
func (r *PaymentRateRepository) GetActiveByType(ctx context.Context, trashType entities.TrashType) (*entities.PaymentRate, error) {
	var m models.PaymentRate
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("trash_type = ? AND is_active = ?", string(trashType), true).
		Order("updated_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return rateToEntity(&m), nil
}

// Update updates a rate row
func (r *PaymentRateRepository) Update(ctx context.Context, rate *entities.PaymentRate) error {
	updates := map[string]interface{}{
		"rate_per_kg_kobo":  rate.RatePerKgKobo,
		"rate_per_ton_kobo": rate.RatePerTonKobo,
		"is_active":         rate.IsActive,
		"updated_by":        rate.UpdatedBy,
		"updated_at":        time.Now(),
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PaymentRate{}).
		Where("id = ?", rate.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeactivateByType clears the active flag on all rates for a type
func (r *PaymentRateRepository) DeactivateByType(ctx context.Context, trashType entities.TrashType) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.PaymentRate{}).
		Where("trash_type = ? AND is_active = ?", string(trashType), true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// List lists rates, optionally active only
func (r *PaymentRateRepository) List(ctx context.Context, activeOnly bool) ([]*entities.PaymentRate, error) {
	var rateModels []models.PaymentRate
	query := GetDB(ctx, r.db).WithContext(ctx).Order("trash_type ASC, updated_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]*entities.PaymentRate, 0, len(rateModels))
	for i := range rateModels {
		rates = append(rates, rateToEntity(&rateModels[i]))
	}
	return rates, nil
}

func rateToModel(r *entities.PaymentRate) *models.PaymentRate {
	return &models.PaymentRate{
		ID:             r.ID,
		TrashType:      string(r.TrashType),
		RatePerKgKobo:  r.RatePerKgKobo,
		RatePerTonKobo: r.RatePerTonKobo,
		IsActive:       r.IsActive,
		UpdatedBy:      r.UpdatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func rateToEntity(m *models.PaymentRate) *entities.PaymentRate {
	return &entities.PaymentRate{
		ID:             m.ID,
		TrashType:      entities.TrashType(m.TrashType),
		RatePerKgKobo:  m.RatePerKgKobo,
		RatePerTonKobo: m.RatePerTonKobo,
		IsActive:       m.IsActive,
		UpdatedBy:      m.UpdatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
