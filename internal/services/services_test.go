package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/connect"
	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/services"
)

// Principals used across the service tests. The platform principal doubles
// as arbiter, treasury and badge registry owner, as it does on chain.
const (
	arbiter = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	hostA   = "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5"
	guestA  = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
	guestB  = "ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC"
)

type testEnv struct {
	policy     *config.Policy
	clock      *ledger.ManualClock
	escrow     *services.EscrowService
	dispute    *services.DisputeService
	reputation *services.ReputationService
	badge      *services.BadgeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithPolicy(t, config.DefaultPolicy())
}

func newTestEnvWithPolicy(t *testing.T, policy *config.Policy) *testEnv {
	t.Helper()

	db, err := connect.Open(filepath.Join(t.TempDir(), "settlement.db"))
	require.NoError(t, err)
	require.NoError(t, connect.Migrate(db))

	store := ledger.NewStore(db)
	bank := ledger.NewBank(policy.OpeningBalance)
	// Start a few ticks in so cancellation distances can straddle the
	// refund tier boundaries.
	clock := ledger.NewManualClock(5)

	env := &testEnv{
		policy:     policy,
		clock:      clock,
		escrow:     services.NewEscrowService(store, bank, clock, policy, arbiter),
		dispute:    services.NewDisputeService(store, bank, clock, policy, arbiter),
		reputation: services.NewReputationService(store, clock),
		badge:      services.NewBadgeService(store, clock, arbiter),
	}
	require.NoError(t, env.badge.EnsureCatalog(policy.BadgeCatalog))
	return env
}

// listAndBook lists a 1 STX/night property for hostA and books five nights
// for guestA with the given check-in.
func (env *testEnv) listAndBook(t *testing.T, checkIn uint64) uint64 {
	t.Helper()

	propertyID, err := env.escrow.ListProperty(hostA, 1_000_000, 1, "ipfs://test")
	require.NoError(t, err)
	bookingID, err := env.escrow.BookProperty(guestA, propertyID, checkIn, checkIn+5, 5)
	require.NoError(t, err)
	return bookingID
}
