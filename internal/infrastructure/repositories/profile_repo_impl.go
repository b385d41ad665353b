package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/infrastructure/models"
)

// VendorProfileRepository implements vendor profile data operations
type VendorProfileRepository struct {
	db *gorm.DB
}

// NewVendorProfileRepository creates a new vendor profile repository
func NewVendorProfileRepository(db *gorm.DB) *VendorProfileRepository {
	return &VendorProfileRepository{db: db}
}

// Upsert creates or replaces the vendor's profile (1:1 per user)
func (r *VendorProfileRepository) Upsert(ctx context.Context, profile *entities.VendorProfile) error {
	m := &models.VendorProfile{
		ID:            profile.ID,
		UserID:        profile.UserID,
		BusinessName:  profile.BusinessName,
		BankName:      profile.BankName,
		AccountNumber: profile.AccountNumber,
		AccountName:   profile.AccountName,
		State:         profile.State,
		LGA:           profile.LGA,
		Ward:          profile.Ward,
		Verified:      profile.Verified,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"business_name", "bank_name", "account_number", "account_name",
			"state", "lga", "ward", "updated_at",
		}),
	}).Create(m).Error
}

// GetByUserID gets a vendor profile by owner
func (r *VendorProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.VendorProfile, error) {
	var m models.VendorProfile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return vendorProfileToEntity(&m), nil
}

// List lists vendor profiles, optionally by state
func (r *VendorProfileRepository) List(ctx context.Context, state string) ([]*entities.VendorProfile, error) {
	var profileModels []models.VendorProfile
	query := GetDB(ctx, r.db).WithContext(ctx).Order("business_name ASC")
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entities.VendorProfile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, vendorProfileToEntity(&profileModels[i]))
	}
	return profiles, nil
}

// SetVerified flips the vendor verification flag
func (r *VendorProfileRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VendorProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"verified": verified, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func vendorProfileToEntity(m *models.VendorProfile) *entities.VendorProfile {
	return &entities.VendorProfile{
		ID:            m.ID,
		UserID:        m.UserID,
		BusinessName:  m.BusinessName,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		State:         m.State,
		LGA:           m.LGA,
		Ward:          m.Ward,
		Verified:      m.Verified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FactoryRepository implements factory data operations
type FactoryRepository struct {
	db *gorm.DB
}

// NewFactoryRepository creates a new factory repository
func NewFactoryRepository(db *gorm.DB) *FactoryRepository {
	return &FactoryRepository{db: db}
}

// Create creates a new factory
func (r *FactoryRepository) Create(ctx context.Context, factory *entities.Factory) error {
	m := factoryToModel(factory)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a factory by ID
func (r *FactoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Factory, error) {
	var m models.Factory
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return factoryToEntity(&m), nil
}

// GetByOwner gets the factory owned by a user
func (r *FactoryRepository) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entities.Factory, error) {
	var m models.Factory
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return factoryToEntity(&m), nil
}

// Update updates factory fields
func (r *FactoryRepository) Update(ctx context.Context, factory *entities.Factory) error {
	updates := map[string]interface{}{
		"name":                 factory.Name,
		"accepted_trash_types": factory.AcceptedTrashTypes,
		"latitude":             factory.Latitude,
		"longitude":            factory.Longitude,
		"address":              factory.Address,
		"state":                factory.State,
		"updated_at":           time.Now(),
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Factory{}).
		Where("id = ?", factory.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVerified flips the factory verification flag
func (r *FactoryRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Factory{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"verified": verified, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists factories, optionally verified only
func (r *FactoryRepository) List(ctx context.Context, verifiedOnly bool) ([]*entities.Factory, error) {
	var factoryModels []models.Factory
	query := GetDB(ctx, r.db).WithContext(ctx).Order("name ASC")
	if verifiedOnly {
		query = query.Where("verified = ?", true)
	}
	if err := query.Find(&factoryModels).Error; err != nil {
		return nil, err
	}

	factories := make([]*entities.Factory, 0, len(factoryModels))
	for i := range factoryModels {
		factories = append(factories, factoryToEntity(&factoryModels[i]))
	}
	return factories, nil
}

func factoryToModel(f *entities.Factory) *models.Factory {
	return &models.Factory{
		ID:                 f.ID,
		OwnerUserID:        f.OwnerUserID,
		Name:               f.Name,
		AcceptedTrashTypes: f.AcceptedTrashTypes,
		Latitude:           f.Latitude,
		Longitude:          f.Longitude,
		Address:            f.Address,
		State:              f.State,
		Verified:           f.Verified,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

func factoryToEntity(m *models.Factory) *entities.Factory {
	return &entities.Factory{
		ID:                 m.ID,
		OwnerUserID:        m.OwnerUserID,
		Name:               m.Name,
		AcceptedTrashTypes: m.AcceptedTrashTypes,
		Latitude:           m.Latitude,
		Longitude:          m.Longitude,
		Address:            m.Address,
		State:              m.State,
		Verified:           m.Verified,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
