package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/models"
)

// EscrowPrincipal is the reserved account that custodies booking funds
// between debit and settlement.
const EscrowPrincipal = "stackstay.escrow"

// Bank moves microSTX between principal accounts. All movements happen
// inside the caller's transaction, so a failed validation later in the same
// entrypoint also rolls the transfer back.
//
// Accounts are created on first touch with the configured opening balance,
// which stands in for the external wallet balances the hosting ledger
// maintained. An opening balance of zero disables that.
type Bank struct {
	openingBalance uint64
}

func NewBank(openingBalance uint64) *Bank {
	return &Bank{openingBalance: openingBalance}
}

func (b *Bank) account(tx *gorm.DB, principal string) (*models.Account, error) {
	var acct models.Account
	err := tx.Where("principal = ?", principal).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		opening := b.openingBalance
		if principal == EscrowPrincipal {
			opening = 0
		}
		acct = models.Account{Principal: principal, Balance: opening}
		if err := tx.Create(&acct).Error; err != nil {
			return nil, err
		}
		return &acct, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// Transfer moves amount from one principal to another. A zero amount or a
// transfer to self is a no-op so settlement paths don't special-case empty
// payouts; both reads against the same row would otherwise let the credit
// write clobber the debit.
func (b *Bank) Transfer(tx *gorm.DB, from, to string, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	src, err := b.account(tx, from)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from, src.Balance, amount)
	}
	dst, err := b.account(tx, to)
	if err != nil {
		return err
	}
	if err := tx.Model(&models.Account{}).Where("principal = ?", from).
		Update("balance", src.Balance-amount).Error; err != nil {
		return err
	}
	return tx.Model(&models.Account{}).Where("principal = ?", to).
		Update("balance", dst.Balance+amount).Error
}

// Balance reports a principal's spendable balance. An untouched account
// reports the opening balance it would be created with, without writing.
func (b *Bank) Balance(tx *gorm.DB, principal string) (uint64, error) {
	var acct models.Account
	err := tx.Where("principal = ?", principal).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if principal == EscrowPrincipal {
			return 0, nil
		}
		return b.openingBalance, nil
	}
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}
