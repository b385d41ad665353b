package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TrashType represents the closed set of accepted waste categories.
type TrashType string

const (
	TrashTypePlastic TrashType = "plastic"
	TrashTypePaper   TrashType = "paper"
	TrashTypeMetal   TrashType = "metal"
	TrashTypeGlass   TrashType = "glass"
	TrashTypeOrganic TrashType = "organic"
	TrashTypeEWaste  TrashType = "e_waste"
	TrashTypeTextile TrashType = "textile"
)

// AllTrashTypes lists every accepted waste category.
var AllTrashTypes = []TrashType{
	TrashTypePlastic, TrashTypePaper, TrashTypeMetal, TrashTypeGlass,
	TrashTypeOrganic, TrashTypeEWaste, TrashTypeTextile,
}

// Valid reports whether the trash type is in the accepted set.
func (t TrashType) Valid() bool {
	for _, known := range AllTrashTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DropStatus represents the lifecycle state of a trash record.
type DropStatus string

const (
	DropStatusPendingVendorConfirmation DropStatus = "pending_vendor_confirmation"
	DropStatusVendorConfirmed           DropStatus = "vendor_confirmed"
	DropStatusInTransit                 DropStatus = "in_transit"
	DropStatusFactoryReceived           DropStatus = "factory_received"
	DropStatusPayoutReleased            DropStatus = "payout_released"
	DropStatusCancelled                 DropStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s DropStatus) Terminal() bool {
	return s == DropStatusPayoutReleased || s == DropStatusCancelled
}

// dropTransitions is the directed edge set of the drop lifecycle.
// Cancellation is handled separately: it is reachable from every
// non-terminal state.
var dropTransitions = map[DropStatus]DropStatus{
	DropStatusPendingVendorConfirmation: DropStatusVendorConfirmed,
	DropStatusVendorConfirmed:           DropStatusInTransit,
	DropStatusInTransit:                 DropStatusFactoryReceived,
	DropStatusFactoryReceived:           DropStatusPayoutReleased,
}

// CanTransition reports whether moving from s to next follows the
// lifecycle graph.
func (s DropStatus) CanTransition(next DropStatus) bool {
	if next == DropStatusCancelled {
		return !s.Terminal()
	}
	return dropTransitions[s] == next
}

// TrashRecord is the unit of work flowing collector -> vendor ->
// factory -> payout. Payout amounts and the per-kg rate are snapshotted
// at vendor confirmation and never recomputed. Version guards against
// concurrent transitions on the same record.
type TrashRecord struct {
	ID                  uuid.UUID  `json:"id"`
	CollectorID         uuid.UUID  `json:"collectorId"`
	VendorID            uuid.UUID  `json:"vendorId"`
	FactoryID           *uuid.UUID `json:"factoryId,omitempty"`
	TrashType           TrashType  `json:"trashType"`
	WeightGrams         int64      `json:"weightGrams"`
	Status              DropStatus `json:"status"`
	RatePerKgKobo       int64      `json:"ratePerKgKobo,omitempty"`
	CommittedPayoutKobo int64      `json:"committedPayoutKobo"`
	VendorPayoutKobo    int64      `json:"vendorPayoutKobo"`
	KYCWarning          bool       `json:"kycWarning"`
	CancelReason        string     `json:"cancelReason,omitempty"`
	Version             int64      `json:"version"`
	ConfirmedAt         null.Time  `json:"confirmedAt,omitempty"`
	ShippedAt           null.Time  `json:"shippedAt,omitempty"`
	ReceivedAt          null.Time  `json:"receivedAt,omitempty"`
	PaidAt              null.Time  `json:"paidAt,omitempty"`
	CancelledAt         null.Time  `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`

	// Joins
	Collector *User    `json:"collector,omitempty"`
	Vendor    *User    `json:"vendor,omitempty"`
	Factory   *Factory `json:"factory,omitempty"`
}

// CreateDropInput represents a new drop. Collectors set VendorID;
// vendors instead scan a collector's barcode.
type CreateDropInput struct {
	VendorID         string  `json:"vendorId"`
	CollectorBarcode string  `json:"collectorBarcode"`
	TrashType        string  `json:"trashType" binding:"required"`
	WeightKg         float64 `json:"weightKg" binding:"required,gt=0"`
}

// ConfirmDropInput represents the vendor confirming identity and weight.
type ConfirmDropInput struct {
	WeightKg float64 `json:"weightKg"` // optional correction; 0 keeps recorded weight
	Version  int64   `json:"version"`
}

// ShipDropInput represents the vendor dispatching a drop to a factory.
type ShipDropInput struct {
	FactoryID string `json:"factoryId" binding:"required"`
	Version   int64  `json:"version"`
}

// AdvanceDropInput carries the optimistic version for receive/release.
type AdvanceDropInput struct {
	Version int64 `json:"version"`
}

// CancelDropInput voids a drop from any non-terminal state.
type CancelDropInput struct {
	Reason  string `json:"reason"`
	Version int64  `json:"version"`
}
