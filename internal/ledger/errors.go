package ledger

import "errors"

// Failure kinds shared by every settlement entrypoint. Each call returns
// exactly one success value or one of these; callers match with errors.Is.
// All of them are deterministic consequences of the caller's input or
// identity, so nothing here is ever worth retrying.
var (
	ErrNotAuthorized     = errors.New("not authorized")
	ErrNotFound          = errors.New("not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidRating     = errors.New("rating out of range")
	ErrInvalidRefund     = errors.New("refund percentage out of range")
	ErrAlreadyExists     = errors.New("dispute already exists")
	ErrAlreadyMinted     = errors.New("badge already minted")
	ErrAlreadyReviewed   = errors.New("booking already reviewed")
	ErrAlreadyResolved   = errors.New("dispute already resolved")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
