package entities

import (
	"time"

	"github.com/google/uuid"
)

// Bounds for the per-ton rate relative to the per-kg rate. One ton is
// 1000 kg; the band allows an 80-120% bulk markup either way.
const (
	RatePerTonMinFactor = 1800
	RatePerTonMaxFactor = 2200
)

// PaymentRate maps a trash type to its payout rates. Only one active
// rate may exist per trash type; confirmation snapshots the active
// per-kg rate onto the trash record so later rate changes only apply
// to new confirmations.
type PaymentRate struct {
	ID             uuid.UUID  `json:"id"`
	TrashType      TrashType  `json:"trashType"`
	RatePerKgKobo  int64      `json:"ratePerKgKobo"`
	RatePerTonKobo int64      `json:"ratePerTonKobo"`
	IsActive       bool       `json:"isActive"`
	UpdatedBy      *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TonBandValid reports whether the per-ton rate falls within the
// allowed [1800, 2200] x per-kg band.
func (r *PaymentRate) TonBandValid() bool {
	return r.RatePerTonKobo >= r.RatePerKgKobo*RatePerTonMinFactor &&
		r.RatePerTonKobo <= r.RatePerKgKobo*RatePerTonMaxFactor
}

// UpsertRateInput represents an admin creating or updating a rate.
type UpsertRateInput struct {
	TrashType       string  `json:"trashType" binding:"required"`
	RatePerKgNaira  float64 `json:"ratePerKgNaira" binding:"required,gt=0"`
	RatePerTonNaira float64 `json:"ratePerTonNaira" binding:"required,gt=0"`
	IsActive        bool    `json:"isActive"`
}
