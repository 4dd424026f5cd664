package models

const (
	DisputeStatusPending  = "pending"
	DisputeStatusResolved = "resolved"
)

// Dispute ties a conflict to a booking. At most one dispute may ever exist
// per booking, enforced both by the arbiter service and the unique index.
type Dispute struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BookingID        uint64 `gorm:"uniqueIndex" json:"booking_id"`
	RaisedBy         string `gorm:"size:128" json:"raised_by"`
	Reason           string `gorm:"size:500" json:"reason"`
	Evidence         string `gorm:"size:1000" json:"evidence"`
	Status           string `gorm:"size:16" json:"status"`
	Resolution       string `gorm:"size:500" json:"resolution"`
	RefundPercentage uint64 `json:"refund_percentage"`
	CreatedAt        uint64 `json:"created_at"`
	ResolvedAt       uint64 `json:"resolved_at"`
}

// BookingDispute is the lookup result for get-booking-dispute.
type BookingDispute struct {
	DisputeID uint64 `json:"dispute_id"`
	Exists    bool   `json:"exists"`
}
