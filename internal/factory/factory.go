package factory

import (
	"fmt"
	"log/slog"

	"github.com/matchpoint-gg/matchpoint/internal/dependencies/clock"
	"github.com/matchpoint-gg/matchpoint/internal/dependencies/random"
	"github.com/matchpoint-gg/matchpoint/internal/registry"
	"github.com/matchpoint-gg/matchpoint/internal/services/settlement"
	"github.com/matchpoint-gg/matchpoint/internal/services/stats"
	"github.com/matchpoint-gg/matchpoint/internal/storage"
	memorystorage "github.com/matchpoint-gg/matchpoint/internal/storage/memory"
	redisstorage "github.com/matchpoint-gg/matchpoint/internal/storage/redis"
	"github.com/matchpoint-gg/matchpoint/internal/ws"
)

// StorageType identifies which storage backend to use
type StorageType string

const (
	StorageMemory StorageType = "memory"
	StorageRedis  StorageType = "redis"
)

// Config holds the options for assembling an App
type Config struct {
	Logger      *slog.Logger
	StorageType StorageType
	Redis       redisstorage.Config
}

// App holds the wired application components
type App struct {
	Storage          storage.Storage
	Clock            clock.Clock
	Random           random.Random
	Registry         *registry.Registry
	Gateway          *ws.Gateway
	SettlementEngine *settlement.Engine
	StatsService     *stats.Service
}

// New assembles the application from the given config
func New(cfg Config) (*App, error) {
	clk := clock.New()
	rnd := random.New()

	store, err := newStorage(cfg, clk)
	if err != nil {
		return nil, err
	}

	reg := registry.New()

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		Registry:         reg,
		Gateway:          ws.NewGateway(reg, cfg.Logger),
		SettlementEngine: settlement.NewEngine(store, rnd, cfg.Logger),
		StatsService:     stats.New(store, cfg.Logger),
	}, nil
}

func newStorage(cfg Config, clk clock.Clock) (storage.Storage, error) {
	switch cfg.StorageType {
	case StorageMemory, "":
		return memorystorage.New(clk), nil
	case StorageRedis:
		store, err := redisstorage.New(cfg.Redis, clk)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.StorageType)
	}
}
