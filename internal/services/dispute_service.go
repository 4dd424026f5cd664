package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/models"
)

// DisputeService records conflicts against bookings and lets the designated
// arbiter resolve them. It reads bookings only to authorize callers; it
// never mutates escrow state unless the enforce payout mode is configured.
type DisputeService struct {
	store   *ledger.Store
	bank    *ledger.Bank
	clock   ledger.Clock
	policy  *config.Policy
	arbiter string
}

func NewDisputeService(store *ledger.Store, bank *ledger.Bank, clock ledger.Clock, policy *config.Policy, arbiter string) *DisputeService {
	return &DisputeService{
		store:   store,
		bank:    bank,
		clock:   clock,
		policy:  policy,
		arbiter: arbiter,
	}
}

// RaiseDispute opens a dispute on a booking. Only the guest or host may
// raise one, and each booking gets at most one ever.
func (ds *DisputeService) RaiseDispute(caller string, bookingID uint64, reason, evidence string) (uint64, error) {
	now := ds.clock.Now()

	var id uint64
	err := ds.store.Update(func(tx *gorm.DB) error {
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
		var existing models.Dispute
		err = tx.Where("booking_id = ?", bookingID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: booking %d", ledger.ErrAlreadyExists, bookingID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, err = ledger.NextID(tx, ledger.CounterDisputes)
		if err != nil {
			return err
		}
		return tx.Create(&models.Dispute{
			ID:        id,
			BookingID: bookingID,
			RaisedBy:  caller,
			Reason:    reason,
			Evidence:  evidence,
			Status:    models.DisputeStatusPending,
			CreatedAt: now,
		}).Error
	})
	return id, err
}

// ResolveDispute records the arbiter's decision. Under the advisory payout
// mode the resolution is a pure record; under enforce, any escrow still held
// for the disputed booking is split by the refund percentage.
func (ds *DisputeService) ResolveDispute(caller string, disputeID uint64, resolution string, refundPercentage uint64) error {
	now := ds.clock.Now()

	return ds.store.Update(func(tx *gorm.DB) error {
		if caller != ds.arbiter {
			return fmt.Errorf("%w: only the arbiter resolves disputes", ledger.ErrNotAuthorized)
		}
		var dispute models.Dispute
		err := tx.Where("id = ?", disputeID).First(&dispute).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: dispute %d", ledger.ErrNotFound, disputeID)
		}
		if err != nil {
			return err
		}
		if dispute.Status == models.DisputeStatusResolved {
			return fmt.Errorf("%w: dispute %d", ledger.ErrAlreadyResolved, disputeID)
		}
		if refundPercentage > 100 {
			return fmt.Errorf("%w: %d", ledger.ErrInvalidRefund, refundPercentage)
		}

		if ds.policy.DisputePayout == config.DisputePayoutEnforce {
			if err := ds.enforcePayout(tx, dispute.BookingID, refundPercentage); err != nil {
				return err
			}
		}
		return tx.Model(&models.Dispute{}).Where("id = ?", disputeID).Updates(map[string]interface{}{
			"status":            models.DisputeStatusResolved,
			"resolution":        resolution,
			"refund_percentage": refundPercentage,
			"resolved_at":       now,
		}).Error
	})
}

// enforcePayout splits a still-escrowed booking by the ruled percentage:
// that share back to the guest, the rest to the host. Settled bookings are
// left alone.
func (ds *DisputeService) enforcePayout(tx *gorm.DB, bookingID, refundPercentage uint64) error {
	var booking models.Booking
	err := tx.Where("id = ?", bookingID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if booking.Status != models.BookingStatusConfirmed || booking.EscrowedAmount == 0 {
		return nil
	}

	refund := booking.EscrowedAmount * refundPercentage / 100
	if err := ds.bank.Transfer(tx, ledger.EscrowPrincipal, booking.Guest, refund); err != nil {
		return err
	}
	if err := ds.bank.Transfer(tx, ledger.EscrowPrincipal, booking.Host, booking.EscrowedAmount-refund); err != nil {
		return err
	}
	return tx.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(map[string]interface{}{
		"status":          models.BookingStatusCancelled,
		"escrowed_amount": 0,
	}).Error
}

// GetDispute returns the dispute or nil when the id was never assigned.
func (ds *DisputeService) GetDispute(id uint64) (*models.Dispute, error) {
	var dispute models.Dispute
	err := ds.store.View(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&dispute).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

// GetDisputeStatus returns the status string, or NotFound for an absent
// dispute. This is the one dispute lookup that errors instead of returning
// an empty value.
func (ds *DisputeService) GetDisputeStatus(id uint64) (string, error) {
	dispute, err := ds.GetDispute(id)
	if err != nil {
		return "", err
	}
	if dispute == nil {
		return "", fmt.Errorf("%w: dispute %d", ledger.ErrNotFound, id)
	}
	return dispute.Status, nil
}

// IsDisputeResolved reports whether the dispute exists and is resolved.
func (ds *DisputeService) IsDisputeResolved(id uint64) (bool, error) {
	dispute, err := ds.GetDispute(id)
	if err != nil {
		return false, err
	}
	return dispute != nil && dispute.Status == models.DisputeStatusResolved, nil
}

// GetBookingDispute returns the dispute attached to a booking, or nil when
// the booking has none.
func (ds *DisputeService) GetBookingDispute(bookingID uint64) (*models.BookingDispute, error) {
	var dispute models.Dispute
	err := ds.store.View(func(tx *gorm.DB) error {
		return tx.Where("booking_id = ?", bookingID).First(&dispute).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.BookingDispute{DisputeID: dispute.ID, Exists: true}, nil
}

// GetDisputeCount reports how many disputes have ever been raised.
func (ds *DisputeService) GetDisputeCount() (uint64, error) {
	var count uint64
	err := ds.store.View(func(tx *gorm.DB) error {
		var err error
		count, err = ledger.CounterValue(tx, ledger.CounterDisputes)
		return err
	})
	return count, err
}
