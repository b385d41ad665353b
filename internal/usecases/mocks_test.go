package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"kudichain.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByBarcode(ctx context.Context, barcodeID string) (*entities.User, error) {
	args := m.Called(ctx, barcodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateKYC(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, role entities.UserRole, search string) ([]*entities.User, error) {
	args := m.Called(ctx, role, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[entities.UserRole]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.UserRole]int64), args.Error(1)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyDelta(ctx context.Context, userID uuid.UUID, deltaKobo int64) error {
	args := m.Called(ctx, userID, deltaKobo)
	return args.Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) SignedSum(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) TotalByType(ctx context.Context, txType entities.TransactionType) (int64, error) {
	args := m.Called(ctx, txType)
	return args.Get(0).(int64), args.Error(1)
}

// Mock TrashRecordRepository
type MockTrashRecordRepository struct {
	mock.Mock
}

func (m *MockTrashRecordRepository) Create(ctx context.Context, record *entities.TrashRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTrashRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TrashRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TrashRecord), args.Error(1)
}

func (m *MockTrashRecordRepository) Transition(ctx context.Context, record *entities.TrashRecord, expectedVersion int64) error {
	args := m.Called(ctx, record, expectedVersion)
	return args.Error(0)
}

func (m *MockTrashRecordRepository) ListByCollector(ctx context.Context, collectorID uuid.UUID, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	args := m.Called(ctx, collectorID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TrashRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockTrashRecordRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	args := m.Called(ctx, vendorID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TrashRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockTrashRecordRepository) ListByFactory(ctx context.Context, factoryID uuid.UUID, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error) {
	args := m.Called(ctx, factoryID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TrashRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockTrashRecordRepository) CountByStatus(ctx context.Context) (map[entities.DropStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.DropStatus]int64), args.Error(1)
}

func (m *MockTrashRecordRepository) TotalWeightByType(ctx context.Context) (map[entities.TrashType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.TrashType]int64), args.Error(1)
}

// Mock PaymentRateRepository
type MockPaymentRateRepository struct {
	mock.Mock
}

func (m *MockPaymentRateRepository) Create(ctx context.Context, rate *entities.PaymentRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockPaymentRateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRate), args.Error(1)
}

func (m *MockPaymentRateRepository) GetActiveByType(ctx context.Context, trashType entities.TrashType) (*entities.PaymentRate, error) {
	args := m.Called(ctx, trashType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRate), args.Error(1)
}

func (m *MockPaymentRateRepository) Update(ctx context.Context, rate *entities.PaymentRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockPaymentRateRepository) DeactivateByType(ctx context.Context, trashType entities.TrashType) error {
	args := m.Called(ctx, trashType)
	return args.Error(0)
}

func (m *MockPaymentRateRepository) List(ctx context.Context, activeOnly bool) ([]*entities.PaymentRate, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentRate), args.Error(1)
}

// Mock FactoryRepository
type MockFactoryRepository struct {
	mock.Mock
}

func (m *MockFactoryRepository) Create(ctx context.Context, factory *entities.Factory) error {
	args := m.Called(ctx, factory)
	return args.Error(0)
}

func (m *MockFactoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Factory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Factory), args.Error(1)
}

func (m *MockFactoryRepository) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entities.Factory, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Factory), args.Error(1)
}

func (m *MockFactoryRepository) Update(ctx context.Context, factory *entities.Factory) error {
	args := m.Called(ctx, factory)
	return args.Error(0)
}

func (m *MockFactoryRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockFactoryRepository) List(ctx context.Context, verifiedOnly bool) ([]*entities.Factory, error) {
	args := m.Called(ctx, verifiedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Factory), args.Error(1)
}

// Mock VendorProfileRepository
type MockVendorProfileRepository struct {
	mock.Mock
}

func (m *MockVendorProfileRepository) Upsert(ctx context.Context, profile *entities.VendorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockVendorProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.VendorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VendorProfile), args.Error(1)
}

func (m *MockVendorProfileRepository) List(ctx context.Context, state string) ([]*entities.VendorProfile, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VendorProfile), args.Error(1)
}

func (m *MockVendorProfileRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	args := m.Called(ctx, userID, verified)
	return args.Error(0)
}

// Mock TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) Claim(ctx context.Context, taskID, collectorID uuid.UUID) error {
	args := m.Called(ctx, taskID, collectorID)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListAvailable(ctx context.Context, trashType entities.TrashType) ([]*entities.Task, error) {
	args := m.Called(ctx, trashType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entities.Task, error) {
	args := m.Called(ctx, factoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entities.Task, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Task), args.Error(1)
}

// Mock SupportTicketRepository
type MockSupportTicketRepository struct {
	mock.Mock
}

func (m *MockSupportTicketRepository) Create(ctx context.Context, ticket *entities.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockSupportTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SupportTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SupportTicket), args.Error(1)
}

func (m *MockSupportTicketRepository) Update(ctx context.Context, ticket *entities.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockSupportTicketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.SupportTicket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SupportTicket), args.Error(1)
}

func (m *MockSupportTicketRepository) List(ctx context.Context, status entities.TicketStatus) ([]*entities.SupportTicket, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SupportTicket), args.Error(1)
}

func (m *MockSupportTicketRepository) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, entityType string, limit, offset int) ([]*entities.AuditLog, int64, error) {
	args := m.Called(ctx, entityType, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Get(1).(int64), args.Error(2)
}

// Mock BlogPostRepository
type MockBlogPostRepository struct {
	mock.Mock
}

func (m *MockBlogPostRepository) Create(ctx context.Context, post *entities.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogPostRepository) Update(ctx context.Context, post *entities.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogPostRepository) GetBySlug(ctx context.Context, slug string) (*entities.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) List(ctx context.Context, publishedOnly bool) ([]*entities.BlogPost, error) {
	args := m.Called(ctx, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
