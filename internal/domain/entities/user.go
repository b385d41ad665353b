package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleCollector UserRole = "collector"
	UserRoleVendor    UserRole = "vendor"
	UserRoleFactory   UserRole = "factory"
	UserRoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCollector, UserRoleVendor, UserRoleFactory, UserRoleAdmin:
		return true
	}
	return false
}

// KYCStatus represents KYC verification status
type KYCStatus string

const (
	KYCPending   KYCStatus = "pending"
	KYCSubmitted KYCStatus = "submitted"
	KYCApproved  KYCStatus = "approved"
	KYCRejected  KYCStatus = "rejected"
)

// User represents a platform user. Collectors additionally carry a
// barcode ID that vendors scan at drop time.
type User struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	PasswordHash     string    `json:"-"`
	Role             UserRole  `json:"role"`
	BarcodeID        string    `json:"barcodeId,omitempty"`
	KYCStatus        KYCStatus `json:"kycStatus"`
	IDType           string    `json:"idType,omitempty"`
	IDNumber         string    `json:"idNumber,omitempty"`
	IDVerified       bool      `json:"idVerified"`
	VerifiedFullName string    `json:"verifiedFullName,omitempty"`
	KYCReviewedAt    null.Time `json:"kycReviewedAt,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// SubmitKYCInput represents a collector submitting identity details.
type SubmitKYCInput struct {
	IDType   string `json:"idType" binding:"required"`
	IDNumber string `json:"idNumber" binding:"required"`
	FullName string `json:"fullName" binding:"required,min=2,max=150"`
}

// ReviewKYCInput represents an admin KYC decision.
type ReviewKYCInput struct {
	Approve          bool   `json:"approve"`
	VerifiedFullName string `json:"verifiedFullName"`
	Reason           string `json:"reason"`
}
