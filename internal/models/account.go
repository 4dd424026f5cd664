package models

// Account holds the spendable balance of a principal in microSTX. The escrow
// account and the platform treasury are ordinary rows under reserved
// principals.
type Account struct {
	Principal string `gorm:"primaryKey;size:128" json:"principal"`
	Balance   uint64 `json:"balance"`
}

// Counter is the per-store "next id" state. Ids start at 0 and are never
// reused; the counter is bumped inside the same transaction that creates the
// record it numbers.
type Counter struct {
	Name string `gorm:"primaryKey;size:32" json:"name"`
	Next uint64 `json:"next"`
}
