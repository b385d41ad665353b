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

// TrashRecordRepository implements trash drop data operations
type TrashRecordRepository struct {
	db *gorm.DB
}

// NewTrashRecordRepository creates a new trash record repository
func NewTrashRecordRepository(db *gorm.DB) *TrashRecordRepository {
	return &TrashRecordRepository{db: db}
}

// Create creates a new trash record
func (r *TrashRecordRepository) Create(ctx context.Context, record *entities.TrashRecord) error {
	m := trashRecordToModel(record)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a trash record by ID
func (r *TrashRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TrashRecord, error) {
	var m models.TrashRecord
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return trashRecordToEntity(&m), nil
}

// Transition persists a status change guarded by the optimistic
// version column. RowsAffected == 0 with an existing row means a
// concurrent writer advanced the record first.
func (r *TrashRecordRepository) Transition(ctx context.Context, record *entities.TrashRecord, expectedVersion int64) error {
	updates := map[string]interface{}{
		"status":                string(record.Status),
		"factory_id":            record.FactoryID,
		"weight_grams":          record.WeightGrams,
		"rate_per_kg_kobo":      record.RatePerKgKobo,
		"committed_payout_kobo": record.CommittedPayoutKobo,
		"vendor_payout_kobo":    record.VendorPayoutKobo,
		"cancel_reason":         record.CancelReason,
		"version":               expectedVersion + 1,
		"updated_at":            time.Now(),
	}
	if record.ConfirmedAt.Valid {
		updates["confirmed_at"] = record.ConfirmedAt.Time
	}
	if record.ShippedAt.Valid {
		updates["shipped_at"] = record.ShippedAt.Time
	}
	if record.ReceivedAt.Valid {
		updates["received_at"] = record.ReceivedAt.Time
	}
	if record.PaidAt.Valid {
		updates["paid_at"] = record.PaidAt.Time
	}
	if record.CancelledAt.Valid {
		updates["cancelled_at"] = record.CancelledAt.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrashRecord{}).
		Where("id = ? AND version = ?", record.ID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrashRecord{}).
			Where("id = ?", record.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}
	record.Version = expectedVersion + 1
	return nil
}

// ListByCollector lists a collector's drops, newest first
func (r *TrashRecordRepository) ListByCollector(ctx context.Context, collectorID uuid.UUID, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	return r.list(ctx, "collector_id = ?", []interface{}{collectorID}, "", limit, offset)
}

// ListByVendor lists a vendor's drops with optional status filter
func (r *TrashRecordRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	return r.list(ctx, "vendor_id = ?", []interface{}{vendorID}, status, limit, offset)
}

// ListByFactory lists a factory's drops with optional status filter
func (r *TrashRecordRepository) ListByFactory(ctx context.Context, factoryID uuid.UUID, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	return r.list(ctx, "factory_id = ?", []interface{}{factoryID}, status, limit, offset)
}

func (r *TrashRecordRepository) list(ctx context.Context, cond string, args []interface{}, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrashRecord{}).Where(cond, args...)
	if status != "" {
		db = db.Where("status = ?", string(status))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recordModels []models.TrashRecord
	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*entities.TrashRecord, 0, len(recordModels))
	for i := range recordModels {
		records = append(records, trashRecordToEntity(&recordModels[i]))
	}
	return records, total, nil
}

// CountByStatus returns drop counts grouped by status
func (r *TrashRecordRepository) CountByStatus(ctx context.Context) (map[entities.DropStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrashRecord{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.DropStatus]int64, len(rows))
	for _, rw := range rows {
		counts[entities.DropStatus(rw.Status)] = rw.Count
	}
	return counts, nil
}

// TotalWeightByType sums weight per trash type across drops that
// reached the factory
func (r *TrashRecordRepository) TotalWeightByType(ctx context.Context) (map[entities.TrashType]int64, error) {
	type row struct {
		TrashType string
		Total     int64
	}
	var rows []row
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TrashRecord{}).
		Select("trash_type, SUM(weight_grams) as total").
		Where("status IN ?", []string{
			string(entities.DropStatusFactoryReceived),
			string(entities.DropStatusPayoutReleased),
		}).
		Group("trash_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[entities.TrashType]int64, len(rows))
	for _, rw := range rows {
		totals[entities.TrashType(rw.TrashType)] = rw.Total
	}
	return totals, nil
}

func trashRecordToModel(rec *entities.TrashRecord) *models.TrashRecord {
	m := &models.TrashRecord{
		ID:                  rec.ID,
		CollectorID:         rec.CollectorID,
		VendorID:            rec.VendorID,
		FactoryID:           rec.FactoryID,
		TrashType:           string(rec.TrashType),
		WeightGrams:         rec.WeightGrams,
		Status:              string(rec.Status),
		RatePerKgKobo:       rec.RatePerKgKobo,
		CommittedPayoutKobo: rec.CommittedPayoutKobo,
		VendorPayoutKobo:    rec.VendorPayoutKobo,
		KYCWarning:          rec.KYCWarning,
		CancelReason:        rec.CancelReason,
		Version:             rec.Version,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
	m.ConfirmedAt = rec.ConfirmedAt.Ptr()
	m.ShippedAt = rec.ShippedAt.Ptr()
	m.ReceivedAt = rec.ReceivedAt.Ptr()
	m.PaidAt = rec.PaidAt.Ptr()
	m.CancelledAt = rec.CancelledAt.Ptr()
	return m
}

func trashRecordToEntity(m *models.TrashRecord) *entities.TrashRecord {
	return &entities.TrashRecord{
		ID:                  m.ID,
		CollectorID:         m.CollectorID,
		VendorID:            m.VendorID,
		FactoryID:           m.FactoryID,
		TrashType:           entities.TrashType(m.TrashType),
		WeightGrams:         m.WeightGrams,
		Status:              entities.DropStatus(m.Status),
		RatePerKgKobo:       m.RatePerKgKobo,
		CommittedPayoutKobo: m.CommittedPayoutKobo,
		VendorPayoutKobo:    m.VendorPayoutKobo,
		KYCWarning:          m.KYCWarning,
		CancelReason:        m.CancelReason,
		Version:             m.Version,
		ConfirmedAt:         null.TimeFromPtr(m.ConfirmedAt),
		ShippedAt:           null.TimeFromPtr(m.ShippedAt),
		ReceivedAt:          null.TimeFromPtr(m.ReceivedAt),
		PaidAt:              null.TimeFromPtr(m.PaidAt),
		CancelledAt:         null.TimeFromPtr(m.CancelledAt),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
