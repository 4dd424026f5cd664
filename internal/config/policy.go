package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Remainder destinations for the portion of an escrow a cancellation tier
// does not refund.
const (
	RemainderEscrow   = "escrow"
	RemainderHost     = "host"
	RemainderTreasury = "treasury"
)

// Dispute payout modes. Advisory resolutions record the arbiter's decision
// without moving funds; enforce applies the refund split to any escrow the
// disputed booking still holds.
const (
	DisputePayoutAdvisory = "advisory"
	DisputePayoutEnforce  = "enforce"
)

// RefundTier grants Percent of the escrowed amount back when the booking is
// cancelled at least MinDistance ticks before check-in.
type RefundTier struct {
	MinDistance uint64 `yaml:"min_distance"`
	Percent     uint64 `yaml:"percent"`
}

// BadgeTypeEntry is one row of the static badge catalog.
type BadgeTypeEntry struct {
	Type        uint64 `yaml:"type"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ImageURI    string `yaml:"image_uri"`
	Active      bool   `yaml:"active"`
}

// Policy is the settlement rulebook. The defaults match the StacksStay
// contract parameters; a YAML policy file may override any part of it.
type Policy struct {
	PlatformFeeBPS        uint64           `yaml:"platform_fee_bps"`
	RefundTiers           []RefundTier     `yaml:"refund_tiers"`
	CancellationRemainder string           `yaml:"cancellation_remainder"`
	DisputePayout         string           `yaml:"dispute_payout"`
	OpeningBalance        uint64           `yaml:"opening_balance"`
	BadgeCatalog          []BadgeTypeEntry `yaml:"badge_catalog"`
}

// DefaultPolicy returns the standard settlement rules: 2% platform fee,
// 100/50/0 refund tiers at 7 and 3 days, remainder held in escrow, advisory
// dispute resolutions, and the standard eight-badge catalog.
func DefaultPolicy() *Policy {
	return &Policy{
		PlatformFeeBPS: 200,
		RefundTiers: []RefundTier{
			{MinDistance: 1008, Percent: 100}, // >= 7 days out
			{MinDistance: 432, Percent: 50},   // 3-7 days out
		},
		CancellationRemainder: RemainderEscrow,
		DisputePayout:         DisputePayoutAdvisory,
		OpeningBalance:        100_000_000_000_000, // 100M STX, the simnet wallet allotment
		BadgeCatalog: []BadgeTypeEntry{
			{Type: 1, Name: "First Booking", Description: "Completed your first booking on StacksStay", ImageURI: "ipfs://QmFirstBooking...", Active: true},
			{Type: 2, Name: "First Listing", Description: "Listed your first property on StacksStay", ImageURI: "ipfs://QmFirstListing...", Active: true},
			{Type: 3, Name: "Superhost", Description: "Achieved 5-star rating with 10+ reviews", ImageURI: "ipfs://QmSuperhost...", Active: true},
			{Type: 4, Name: "Frequent Traveler", Description: "Completed 10+ bookings as a guest", ImageURI: "ipfs://QmFrequentTraveler...", Active: true},
			{Type: 5, Name: "Early Adopter", Description: "Joined StacksStay during its launch period", ImageURI: "ipfs://QmEarlyAdopter...", Active: true},
			{Type: 6, Name: "Perfect Host", Description: "Maintained a 5-star rating across 25+ stays", ImageURI: "ipfs://QmPerfectHost...", Active: true},
			{Type: 7, Name: "Globe Trotter", Description: "Booked properties in 5+ locations", ImageURI: "ipfs://QmGlobeTrotter...", Active: true},
			{Type: 8, Name: "Top Earner", Description: "Earned 100+ STX from hosting", ImageURI: "ipfs://QmTopEarner...", Active: true},
		},
	}
}

// LoadPolicy reads a YAML policy file over the defaults. An empty path
// returns the defaults unchanged.
func LoadPolicy(path string) (*Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	if err := yaml.Unmarshal(raw, policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

func (p *Policy) Validate() error {
	if p.PlatformFeeBPS > 10000 {
		return fmt.Errorf("platform_fee_bps must be at most 10000, got %d", p.PlatformFeeBPS)
	}
	switch p.CancellationRemainder {
	case RemainderEscrow, RemainderHost, RemainderTreasury:
	default:
		return fmt.Errorf("cancellation_remainder must be escrow, host or treasury, got %q", p.CancellationRemainder)
	}
	switch p.DisputePayout {
	case DisputePayoutAdvisory, DisputePayoutEnforce:
	default:
		return fmt.Errorf("dispute_payout must be advisory or enforce, got %q", p.DisputePayout)
	}
	for i, tier := range p.RefundTiers {
		if tier.Percent > 100 {
			return fmt.Errorf("refund tier %d: percent must be at most 100, got %d", i, tier.Percent)
		}
		if i > 0 && tier.MinDistance >= p.RefundTiers[i-1].MinDistance {
			return fmt.Errorf("refund tiers must be sorted by descending min_distance")
		}
	}
	return nil
}

// RefundPercent maps ticks-until-check-in onto a refund percentage.
func (p *Policy) RefundPercent(distance uint64) uint64 {
	for _, tier := range p.RefundTiers {
		if distance >= tier.MinDistance {
			return tier.Percent
		}
	}
	return 0
}
