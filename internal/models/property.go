package models

// Property is a listing owned by a host principal. Prices are denominated in
// microSTX per night. Listings are never deleted; inactive listings simply
// stop accepting bookings.
type Property struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Owner         string `gorm:"index;size:128" json:"owner"`
	PricePerNight uint64 `json:"price_per_night"`
	LocationTag   uint64 `json:"location_tag"`
	MetadataURI   string `gorm:"size:256" json:"metadata_uri"`
	Active        bool   `json:"active"`
	CreatedAt     uint64 `json:"created_at"` // tick height at listing time
}
