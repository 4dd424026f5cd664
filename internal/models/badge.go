package models

// Badge type identifiers. The catalog is static; users never create types.
const (
	BadgeFirstBooking     uint64 = 1
	BadgeFirstListing     uint64 = 2
	BadgeSuperhost        uint64 = 3
	BadgeFrequentTraveler uint64 = 4
	BadgeEarlyAdopter     uint64 = 5
	BadgePerfectHost      uint64 = 6
	BadgeGlobeTrotter     uint64 = 7
	BadgeTopEarner        uint64 = 8
)

// Badge is a non-fungible achievement record. A principal can hold at most
// one badge of each type.
type Badge struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BadgeType   uint64 `gorm:"uniqueIndex:idx_badge_owner_type" json:"badge_type"`
	Owner       string `gorm:"uniqueIndex:idx_badge_owner_type;size:128" json:"owner"`
	EarnedAt    uint64 `json:"earned_at"`
	MetadataURI string `gorm:"size:256" json:"metadata_uri"`
}

// BadgeTypeInfo is a catalog entry describing one badge type.
type BadgeTypeInfo struct {
	BadgeType   uint64 `gorm:"primaryKey;autoIncrement:false" json:"badge_type"`
	Name        string `gorm:"size:64" json:"name"`
	Description string `gorm:"size:256" json:"description"`
	ImageURI    string `gorm:"size:256" json:"image_uri"`
	Active      bool   `json:"active"`
}

// UserBadge is the lookup result for get-user-badge.
type UserBadge struct {
	BadgeID uint64 `json:"badge_id"`
	Earned  bool   `json:"earned"`
}
