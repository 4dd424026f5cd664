package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/models"
)

// BadgeService mints achievement records against the static badge catalog.
// Minting is reserved to the registry owner; the decision that a milestone
// was met comes from outside.
type BadgeService struct {
	store *ledger.Store
	clock ledger.Clock
	owner string
}

func NewBadgeService(store *ledger.Store, clock ledger.Clock, owner string) *BadgeService {
	return &BadgeService{store: store, clock: clock, owner: owner}
}

// EnsureCatalog seeds or refreshes the badge type catalog. Called once at
// startup; catalog rows are keyed by type so reruns are idempotent.
func (bs *BadgeService) EnsureCatalog(entries []config.BadgeTypeEntry) error {
	return bs.store.Update(func(tx *gorm.DB) error {
		for _, entry := range entries {
			info := models.BadgeTypeInfo{
				BadgeType:   entry.Type,
				Name:        entry.Name,
				Description: entry.Description,
				ImageURI:    entry.ImageURI,
				Active:      entry.Active,
			}
			if err := tx.Save(&info).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MintBadge issues a badge of the given type to recipient. One badge per
// (recipient, type), ever.
func (bs *BadgeService) MintBadge(caller, recipient string, badgeType uint64, metadataURI string) (uint64, error) {
	if caller != bs.owner {
		return 0, fmt.Errorf("%w: only the registry owner mints badges", ledger.ErrNotAuthorized)
	}
	now := bs.clock.Now()

	var id uint64
	err := bs.store.Update(func(tx *gorm.DB) error {
		var info models.BadgeTypeInfo
		err := tx.Where("badge_type = ?", badgeType).First(&info).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: badge type %d", ledger.ErrNotFound, badgeType)
		}
		if err != nil {
			return err
		}
		var existing models.Badge
		err = tx.Where("owner = ? AND badge_type = ?", recipient, badgeType).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: %s already holds badge type %d", ledger.ErrAlreadyMinted, recipient, badgeType)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, err = ledger.NextID(tx, ledger.CounterBadges)
		if err != nil {
			return err
		}
		return tx.Create(&models.Badge{
			ID:          id,
			BadgeType:   badgeType,
			Owner:       recipient,
			EarnedAt:    now,
			MetadataURI: metadataURI,
		}).Error
	})
	return id, err
}

// GetBadgeMetadata returns the badge record or nil when the id was never
// assigned.
func (bs *BadgeService) GetBadgeMetadata(id uint64) (*models.Badge, error) {
	var badge models.Badge
	err := bs.store.View(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&badge).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

// GetOwner returns the holder of a badge, or empty when the badge does not
// exist. Absence is not an error here.
func (bs *BadgeService) GetOwner(id uint64) (string, error) {
	badge, err := bs.GetBadgeMetadata(id)
	if err != nil {
		return "", err
	}
	if badge == nil {
		return "", nil
	}
	return badge.Owner, nil
}

// HasBadge reports whether owner holds a badge of the given type.
func (bs *BadgeService) HasBadge(owner string, badgeType uint64) (bool, error) {
	badge, err := bs.userBadge(owner, badgeType)
	if err != nil {
		return false, err
	}
	return badge != nil, nil
}

// GetUserBadge returns the badge id held by owner for the given type, or nil
// when none was earned.
func (bs *BadgeService) GetUserBadge(owner string, badgeType uint64) (*models.UserBadge, error) {
	badge, err := bs.userBadge(owner, badgeType)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, nil
	}
	return &models.UserBadge{BadgeID: badge.ID, Earned: true}, nil
}

func (bs *BadgeService) userBadge(owner string, badgeType uint64) (*models.Badge, error) {
	var badge models.Badge
	err := bs.store.View(func(tx *gorm.DB) error {
		return tx.Where("owner = ? AND badge_type = ?", owner, badgeType).First(&badge).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

// GetBadgeTypeInfo returns the catalog entry or nil for an unknown type.
func (bs *BadgeService) GetBadgeTypeInfo(badgeType uint64) (*models.BadgeTypeInfo, error) {
	var info models.BadgeTypeInfo
	err := bs.store.View(func(tx *gorm.DB) error {
		return tx.Where("badge_type = ?", badgeType).First(&info).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetTotalBadges reports how many badges have ever been minted.
func (bs *BadgeService) GetTotalBadges() (uint64, error) {
	var count uint64
	err := bs.store.View(func(tx *gorm.DB) error {
		var err error
		count, err = ledger.CounterValue(tx, ledger.CounterBadges)
		return err
	})
	return count, err
}

// GetTokenURI returns the stored metadata URI, or a flat NotFound error when
// the badge does not exist.
func (bs *BadgeService) GetTokenURI(id uint64) (string, error) {
	badge, err := bs.GetBadgeMetadata(id)
	if err != nil {
		return "", err
	}
	if badge == nil {
		return "", fmt.Errorf("%w: badge %d", ledger.ErrNotFound, id)
	}
	return badge.MetadataURI, nil
}
