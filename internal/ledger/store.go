package ledger

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/models"
)

// Counter names, one id sequence per record store.
const (
	CounterProperties = "properties"
	CounterBookings   = "bookings"
	CounterDisputes   = "disputes"
	CounterReviews    = "reviews"
	CounterBadges     = "badges"
)

// Store is the single-writer transactional substrate underneath the
// settlement services. Every mutating entrypoint runs inside Update, which
// holds a process-wide lock for the whole read-validate-mutate-transfer
// sequence and commits or rolls back as one unit. That reproduces the
// serialized, all-or-nothing execution the hosting ledger provided.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Update runs fn inside a write transaction under the global writer lock.
func (s *Store) Update(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Transaction(fn)
}

// View runs fn against the store for read-only lookups. Readers never
// observe an uncommitted write because writers commit atomically.
func (s *Store) View(fn func(tx *gorm.DB) error) error {
	return fn(s.db)
}

// NextID allocates the next sequential id for the named store, starting at
// zero. It must be called inside the transaction that creates the record so
// the bump and the insert commit together.
func NextID(tx *gorm.DB, name string) (uint64, error) {
	var c models.Counter
	err := tx.Where("name = ?", name).First(&c).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c = models.Counter{Name: name, Next: 0}
		if err := tx.Create(&c).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	}
	id := c.Next
	if err := tx.Model(&models.Counter{}).Where("name = ?", name).Update("next", id+1).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// CounterValue reads how many records the named store has ever created.
func CounterValue(tx *gorm.DB, name string) (uint64, error) {
	var c models.Counter
	err := tx.Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Next, nil
}
