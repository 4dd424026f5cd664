package models

// Review is a single rating left by one principal about another for a
// booking. A reviewer may review a booking once.
type Review struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BookingID uint64 `gorm:"uniqueIndex:idx_review_booking_reviewer" json:"booking_id"`
	Reviewer  string `gorm:"uniqueIndex:idx_review_booking_reviewer;size:128" json:"reviewer"`
	Reviewee  string `gorm:"index;size:128" json:"reviewee"`
	Rating    uint64 `json:"rating"`
	Comment   string `gorm:"size:500" json:"comment"`
	CreatedAt uint64 `json:"created_at"`
}

// UserStats is the rolling reputation of a principal. AverageRating carries
// two implied decimals: 466 means 4.66.
type UserStats struct {
	Owner          string `gorm:"primaryKey;size:128" json:"owner"`
	TotalReviews   uint64 `json:"total_reviews"`
	TotalRatingSum uint64 `json:"total_rating_sum"`
	AverageRating  uint64 `json:"average_rating"`
}
