package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/models"
)

const (
	minRating = 1
	maxRating = 5
)

// ReputationService records reviews and keeps rolling per-principal rating
// statistics. Averages are fixed-point with two implied decimals and floor
// rounding: ratings {5,4,5} give an average of 466.
type ReputationService struct {
	store *ledger.Store
	clock ledger.Clock
}

func NewReputationService(store *ledger.Store, clock ledger.Clock) *ReputationService {
	return &ReputationService{store: store, clock: clock}
}

// SubmitReview stores a review and folds the rating into the reviewee's
// stats in the same transaction. One review per (booking, reviewer); no
// self-reviews.
func (rs *ReputationService) SubmitReview(caller string, bookingID uint64, reviewee string, rating uint64, comment string) (uint64, error) {
	if rating < minRating || rating > maxRating {
		return 0, fmt.Errorf("%w: %d", ledger.ErrInvalidRating, rating)
	}
	if caller == reviewee {
		return 0, fmt.Errorf("%w: cannot review yourself", ledger.ErrNotAuthorized)
	}
	now := rs.clock.Now()

	var id uint64
	err := rs.store.Update(func(tx *gorm.DB) error {
		var existing models.Review
		err := tx.Where("booking_id = ? AND reviewer = ?", bookingID, caller).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: booking %d", ledger.ErrAlreadyReviewed, bookingID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, err = ledger.NextID(tx, ledger.CounterReviews)
		if err != nil {
			return err
		}
		if err := tx.Create(&models.Review{
			ID:        id,
			BookingID: bookingID,
			Reviewer:  caller,
			Reviewee:  reviewee,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: now,
		}).Error; err != nil {
			return err
		}
		return rs.applyRating(tx, reviewee, rating)
	})
	return id, err
}

func (rs *ReputationService) applyRating(tx *gorm.DB, reviewee string, rating uint64) error {
	var stats models.UserStats
	err := tx.Where("owner = ?", reviewee).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.UserStats{Owner: reviewee}
	} else if err != nil {
		return err
	}
	stats.TotalReviews++
	stats.TotalRatingSum += rating
	stats.AverageRating = stats.TotalRatingSum * 100 / stats.TotalReviews
	return tx.Save(&stats).Error
}

// GetUserStats returns the rolling stats, or nil for a principal that has
// never been reviewed.
func (rs *ReputationService) GetUserStats(owner string) (*models.UserStats, error) {
	var stats models.UserStats
	err := rs.store.View(func(tx *gorm.DB) error {
		return tx.Where("owner = ?", owner).First(&stats).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetUserAverageRating returns the fixed-point average, or 0 for a principal
// that has never been reviewed.
func (rs *ReputationService) GetUserAverageRating(owner string) (uint64, error) {
	stats, err := rs.GetUserStats(owner)
	if err != nil {
		return 0, err
	}
	if stats == nil {
		return 0, nil
	}
	return stats.AverageRating, nil
}

// HasReviewed reports whether reviewer has already reviewed the booking.
func (rs *ReputationService) HasReviewed(bookingID uint64, reviewer string) (bool, error) {
	var review models.Review
	err := rs.store.View(func(tx *gorm.DB) error {
		return tx.Where("booking_id = ? AND reviewer = ?", bookingID, reviewer).First(&review).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetReview returns the review or nil when the id was never assigned.
func (rs *ReputationService) GetReview(id uint64) (*models.Review, error) {
	var review models.Review
	err := rs.store.View(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&review).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewCount reports how many reviews have ever been submitted.
func (rs *ReputationService) GetReviewCount() (uint64, error) {
	var count uint64
	err := rs.store.View(func(tx *gorm.DB) error {
		var err error
		count, err = ledger.CounterValue(tx, ledger.CounterReviews)
		return err
	})
	return count, err
}
