package models

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking records a stay and the funds escrowed for it. TotalAmount is always
// HostPayout + PlatformFee; EscrowedAmount drops to zero once the booking is
// settled either way.
type Booking struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	PropertyID     uint64 `gorm:"index" json:"property_id"`
	Guest          string `gorm:"index;size:128" json:"guest"`
	Host           string `gorm:"index;size:128" json:"host"`
	CheckIn        uint64 `json:"check_in"`
	CheckOut       uint64 `json:"check_out"`
	TotalAmount    uint64 `json:"total_amount"`
	PlatformFee    uint64 `json:"platform_fee"`
	HostPayout     uint64 `json:"host_payout"`
	Status         string `gorm:"size:16" json:"status"`
	CreatedAt      uint64 `json:"created_at"`
	EscrowedAmount uint64 `json:"escrowed_amount"`
}
