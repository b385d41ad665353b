package entities

import (
	"time"

	"github.com/google/uuid"
)

// VendorProfile holds business identity and banking details for a
// vendor user. Read by factories and admins for verification.
type VendorProfile struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	BusinessName  string    `json:"businessName"`
	BankName      string    `json:"bankName,omitempty"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	AccountName   string    `json:"accountName,omitempty"`
	State         string    `json:"state"`
	LGA           string    `json:"lga"`
	Ward          string    `json:"ward,omitempty"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UpsertVendorProfileInput represents vendor onboarding/profile edits.
type UpsertVendorProfileInput struct {
	BusinessName  string `json:"businessName" binding:"required,min=2,max=150"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	State         string `json:"state" binding:"required"`
	LGA           string `json:"lga" binding:"required"`
	Ward          string `json:"ward"`
}
