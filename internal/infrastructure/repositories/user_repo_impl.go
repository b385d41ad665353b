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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByBarcode resolves a collector barcode to the user
func (r *UserRepository) GetByBarcode(ctx context.Context, barcodeID string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("barcode_id = ? AND role = ?", barcodeID, string(entities.UserRoleCollector)).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update updates mutable profile fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":       user.Name,
		"phone":      user.Phone,
		"role":       string(user.Role),
		"updated_at": time.Now(),
	}
	if user.PasswordHash != "" {
		updates["password_hash"] = user.PasswordHash
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateKYC persists KYC submission/review fields
func (r *UserRepository) UpdateKYC(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"kyc_status":         string(user.KYCStatus),
		"id_type":            user.IDType,
		"id_number":          user.IDNumber,
		"id_verified":        user.IDVerified,
		"verified_full_name": user.VerifiedFullName,
		"updated_at":         time.Now(),
	}
	if user.KYCReviewedAt.Valid {
		updates["kyc_reviewed_at"] = user.KYCReviewedAt.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional role and search filters
func (r *UserRepository) List(ctx context.Context, role entities.UserRole, search string) ([]*entities.User, error) {
	var userModels []models.User
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")

	if role != "" {
		query = query.Where("role = ?", string(role))
	}
	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR barcode_id LIKE ?", searchTerm, searchTerm, searchTerm)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// CountByRole returns user counts grouped by role
func (r *UserRepository) CountByRole(ctx context.Context) (map[entities.UserRole]int64, error) {
	type row struct {
		Role  string
		Count int64
	}
	var rows []row
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.UserRole]int64, len(rows))
	for _, rw := range rows {
		counts[entities.UserRole(rw.Role)] = rw.Count
	}
	return counts, nil
}

func userToModel(u *entities.User) *models.User {
	m := &models.User{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		PasswordHash:     u.PasswordHash,
		Role:             string(u.Role),
		BarcodeID:        u.BarcodeID,
		KYCStatus:        string(u.KYCStatus),
		IDType:           u.IDType,
		IDNumber:         u.IDNumber,
		IDVerified:       u.IDVerified,
		VerifiedFullName: u.VerifiedFullName,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if u.KYCReviewedAt.Valid {
		t := u.KYCReviewedAt.Time
		m.KYCReviewedAt = &t
	}
	return m
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:               m.ID,
		Email:            m.Email,
		Name:             m.Name,
		Phone:            m.Phone,
		PasswordHash:     m.PasswordHash,
		Role:             entities.UserRole(m.Role),
		BarcodeID:        m.BarcodeID,
		KYCStatus:        entities.KYCStatus(m.KYCStatus),
		IDType:           m.IDType,
		IDNumber:         m.IDNumber,
		IDVerified:       m.IDVerified,
		VerifiedFullName: m.VerifiedFullName,
		KYCReviewedAt:    null.TimeFromPtr(m.KYCReviewedAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
