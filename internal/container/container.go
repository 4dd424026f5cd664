package container

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *ledger.Store
	Bank   *ledger.Bank
	Clock  ledger.Clock

	EscrowService     *services.EscrowService
	DisputeService    *services.DisputeService
	ReputationService *services.ReputationService
	BadgeService      *services.BadgeService
}

// NewContainer wires the settlement services onto a migrated database. The
// badge catalog is seeded here so every process starts with the full set of
// badge types.
func NewContainer(cfg *config.Config, logger *slog.Logger, db *gorm.DB, clock ledger.Clock) (*Container, error) {
	store := ledger.NewStore(db)
	bank := ledger.NewBank(cfg.Policy.OpeningBalance)

	escrowService := services.NewEscrowService(store, bank, clock, cfg.Policy, cfg.PlatformPrincipal)
	disputeService := services.NewDisputeService(store, bank, clock, cfg.Policy, cfg.PlatformPrincipal)
	reputationService := services.NewReputationService(store, clock)
	badgeService := services.NewBadgeService(store, clock, cfg.PlatformPrincipal)

	if err := badgeService.EnsureCatalog(cfg.Policy.BadgeCatalog); err != nil {
		return nil, err
	}

	return &Container{
		Config:            cfg,
		Logger:            logger,
		Store:             store,
		Bank:              bank,
		Clock:             clock,
		EscrowService:     escrowService,
		DisputeService:    disputeService,
		ReputationService: reputationService,
		BadgeService:      badgeService,
	}, nil
}
