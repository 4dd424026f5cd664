package services

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/models"
)

// EscrowService owns the property registry and the booking escrow. Every
// mutating call executes as one store transaction: the fund movement and the
// record mutation commit together or not at all.
type EscrowService struct {
	store    *ledger.Store
	bank     *ledger.Bank
	clock    ledger.Clock
	policy   *config.Policy
	treasury string
}

func NewEscrowService(store *ledger.Store, bank *ledger.Bank, clock ledger.Clock, policy *config.Policy, treasury string) *EscrowService {
	return &EscrowService{
		store:    store,
		bank:     bank,
		clock:    clock,
		policy:   policy,
		treasury: treasury,
	}
}

// ListProperty registers a new listing for owner and returns its id.
func (es *EscrowService) ListProperty(owner string, pricePerNight, locationTag uint64, metadataURI string) (uint64, error) {
	if pricePerNight == 0 {
		return 0, fmt.Errorf("%w: price per night must be positive", ledger.ErrInvalidAmount)
	}
	now := es.clock.Now()

	var id uint64
	err := es.store.Update(func(tx *gorm.DB) error {
		var err error
		id, err = ledger.NextID(tx, ledger.CounterProperties)
		if err != nil {
			return err
		}
		return tx.Create(&models.Property{
			ID:            id,
			Owner:         owner,
			PricePerNight: pricePerNight,
			LocationTag:   locationTag,
			MetadataURI:   metadataURI,
			Active:        true,
			CreatedAt:     now,
		}).Error
	})
	return id, err
}

// BookProperty creates a confirmed booking and escrows the full amount from
// the guest. Fee math is integer floor division in basis points of 10000.
func (es *EscrowService) BookProperty(guest string, propertyID, checkIn, checkOut, numNights uint64) (uint64, error) {
	now := es.clock.Now()

	var id uint64
	err := es.store.Update(func(tx *gorm.DB) error {
		var property models.Property
		err := tx.Where("id = ?", propertyID).First(&property).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !property.Active) {
			return fmt.Errorf("%w: property %d", ledger.ErrNotFound, propertyID)
		}
		if err != nil {
			return err
		}
		if checkOut <= checkIn || numNights == 0 {
			return fmt.Errorf("%w: invalid stay window", ledger.ErrInvalidAmount)
		}
		if guest == property.Owner {
			return fmt.Errorf("%w: host cannot book own property", ledger.ErrNotAuthorized)
		}

		baseCost := property.PricePerNight * numNights
		if baseCost/numNights != property.PricePerNight {
			return fmt.Errorf("%w: stay cost overflows", ledger.ErrInvalidAmount)
		}
		if es.policy.PlatformFeeBPS != 0 && baseCost > math.MaxUint64/es.policy.PlatformFeeBPS {
			return fmt.Errorf("%w: stay cost overflows", ledger.ErrInvalidAmount)
		}
		platformFee := baseCost * es.policy.PlatformFeeBPS / 10000
		totalAmount := baseCost + platformFee
		if totalAmount < baseCost {
			return fmt.Errorf("%w: stay cost overflows", ledger.ErrInvalidAmount)
		}

		id, err = ledger.NextID(tx, ledger.CounterBookings)
		if err != nil {
			return err
		}
		if err := tx.Create(&models.Booking{
			ID:             id,
			PropertyID:     propertyID,
			Guest:          guest,
			Host:           property.Owner,
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			TotalAmount:    totalAmount,
			PlatformFee:    platformFee,
			HostPayout:     baseCost,
			Status:         models.BookingStatusConfirmed,
			CreatedAt:      now,
			EscrowedAmount: totalAmount,
		}).Error; err != nil {
			return err
		}
		return es.bank.Transfer(tx, guest, ledger.EscrowPrincipal, totalAmount)
	})
	return id, err
}

// ReleasePayment settles a confirmed booking at or after check-in, paying
// the host and the platform treasury. A second release is rejected, not a
// no-op.
func (es *EscrowService) ReleasePayment(caller string, bookingID uint64) error {
	now := es.clock.Now()

	return es.store.Update(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Where("id = ?", bookingID).First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: booking %d", ledger.ErrNotFound, bookingID)
		}
		if err != nil {
			return err
		}
		if caller != booking.Guest && caller != booking.Host {
			return fmt.Errorf("%w: caller is not party to booking %d", ledger.ErrNotAuthorized, bookingID)
		}
		if booking.Status != models.BookingStatusConfirmed || now < booking.CheckIn {
			return fmt.Errorf("%w: booking %d not releasable", ledger.ErrNotAuthorized, bookingID)
		}

		if err := es.bank.Transfer(tx, ledger.EscrowPrincipal, booking.Host, booking.HostPayout); err != nil {
			return err
		}
		if err := es.bank.Transfer(tx, ledger.EscrowPrincipal, es.treasury, booking.PlatformFee); err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(map[string]interface{}{
			"status":          models.BookingStatusCompleted,
			"escrowed_amount": 0,
		}).Error
	})
}

// CancelBooking cancels a confirmed booking before check-in and refunds the
// guest according to the tier for the remaining distance. A zero refund is
// still a successful cancellation.
func (es *EscrowService) CancelBooking(caller string, bookingID uint64) (uint64, error) {
	now := es.clock.Now()

	var refund uint64
	err := es.store.Update(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Where("id = ?", bookingID).First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: booking %d", ledger.ErrNotFound, bookingID)
		}
		if err != nil {
			return err
		}
		if caller != booking.Guest && caller != booking.Host {
			return fmt.Errorf("%w: caller is not party to booking %d", ledger.ErrNotAuthorized, bookingID)
		}
		if booking.Status != models.BookingStatusConfirmed || now >= booking.CheckIn {
			return fmt.Errorf("%w: booking %d not cancellable", ledger.ErrNotAuthorized, bookingID)
		}

		distance := booking.CheckIn - now
		percent := es.policy.RefundPercent(distance)
		refund = booking.EscrowedAmount * percent / 100
		remainder := booking.EscrowedAmount - refund

		if err := es.bank.Transfer(tx, ledger.EscrowPrincipal, booking.Guest, refund); err != nil {
			return err
		}
		switch es.policy.CancellationRemainder {
		case config.RemainderHost:
			err = es.bank.Transfer(tx, ledger.EscrowPrincipal, booking.Host, remainder)
		case config.RemainderTreasury:
			err = es.bank.Transfer(tx, ledger.EscrowPrincipal, es.treasury, remainder)
		default:
			// remainder stays in the escrow account
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(map[string]interface{}{
			"status":          models.BookingStatusCancelled,
			"escrowed_amount": 0,
		}).Error
	})
	return refund, err
}

// GetProperty returns the property or nil when the id was never assigned.
func (es *EscrowService) GetProperty(id uint64) (*models.Property, error) {
	var property models.Property
	err := es.store.View(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&property).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetBooking returns the booking or nil when the id was never assigned.
func (es *EscrowService) GetBooking(id uint64) (*models.Booking, error) {
	var booking models.Booking
	err := es.store.View(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&booking).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListProperties returns a page of listings plus the total listed count.
func (es *EscrowService) ListProperties(offset, limit int) ([]models.Property, int, error) {
	var properties []models.Property
	var total uint64
	err := es.store.View(func(tx *gorm.DB) error {
		var err error
		total, err = ledger.CounterValue(tx, ledger.CounterProperties)
		if err != nil {
			return err
		}
		return tx.Order("id").Offset(offset).Limit(limit).Find(&properties).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return properties, int(total), nil
}

// GetPropertyCount reports how many properties have ever been listed.
func (es *EscrowService) GetPropertyCount() (uint64, error) {
	var count uint64
	err := es.store.View(func(tx *gorm.DB) error {
		var err error
		count, err = ledger.CounterValue(tx, ledger.CounterProperties)
		return err
	})
	return count, err
}

// GetBookingCount reports how many bookings have ever been created.
func (es *EscrowService) GetBookingCount() (uint64, error) {
	var count uint64
	err := es.store.View(func(tx *gorm.DB) error {
		var err error
		count, err = ledger.CounterValue(tx, ledger.CounterBookings)
		return err
	})
	return count, err
}

// GetBalance reports a principal's spendable balance.
func (es *EscrowService) GetBalance(principal string) (uint64, error) {
	var balance uint64
	err := es.store.View(func(tx *gorm.DB) error {
		var err error
		balance, err = es.bank.Balance(tx, principal)
		return err
	})
	return balance, err
}
