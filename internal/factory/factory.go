package factory

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shadowgame/impostor-server/internal/dependencies/clock"
	"github.com/shadowgame/impostor-server/internal/dependencies/random"
	"github.com/shadowgame/impostor-server/internal/services/claim"
	"github.com/shadowgame/impostor-server/internal/services/ledger"
	"github.com/shadowgame/impostor-server/internal/services/resolve"
	"github.com/shadowgame/impostor-server/internal/services/result"
	"github.com/shadowgame/impostor-server/internal/services/roles"
	"github.com/shadowgame/impostor-server/internal/services/room"
	"github.com/shadowgame/impostor-server/internal/services/signer"
	"github.com/shadowgame/impostor-server/internal/services/stats"
	"github.com/shadowgame/impostor-server/internal/sse"
	"github.com/shadowgame/impostor-server/internal/storage"
	"github.com/shadowgame/impostor-server/internal/storage/memory"
	redisstorage "github.com/shadowgame/impostor-server/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// DefaultAttestationTTL bounds how long issued claim attestations stay redeemable
const DefaultAttestationTTL = 72 * time.Hour

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RolesService   *roles.Service
	LedgerService  *ledger.Service
	StatsRecorder  stats.Recorder
	ResolveService *resolve.Service
	ResultBuilder  *result.Builder
	Signer         signer.Signer
	ClaimService   *claim.Service
	RoomController *room.Controller
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SignerSeed is the 32-byte seed the attestation signing key derives from.
	// If empty, an ephemeral random seed is generated; attestations then stop
	// verifying across restarts, which is fine for development only.
	SignerSeed []byte
	// AttestationTTL is how long issued attestations remain redeemable (optional)
	// If zero, defaults to DefaultAttestationTTL
	AttestationTTL time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	seed := cfg.SignerSeed
	if len(seed) == 0 {
		seed = make([]byte, signer.SeedLength)
		if _, err := rand.Read(seed); err != nil {
			return nil, fmt.Errorf("generating ephemeral signer seed: %w", err)
		}
		logger.Warn("no signer seed configured, using ephemeral key")
	}

	ttl := cfg.AttestationTTL
	if ttl == 0 {
		ttl = DefaultAttestationTTL
	}

	attestationSigner, err := signer.NewNaclSigner(seed, clk, ttl)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clk, rnd, attestationSigner, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, attestationSigner signer.Signer, logger *slog.Logger) *App {
	// Create services
	rolesService := roles.NewService(rnd)
	ledgerService := ledger.NewService(store, clk)
	statsRecorder := stats.NewRecorder(store, logger)
	resolveService := resolve.NewService(store, statsRecorder, logger)
	resultBuilder := result.NewBuilder(store, clk, rnd)
	claimService := claim.NewService(store, attestationSigner, clk, logger)
	roomController := room.NewController(store, rolesService, ledgerService, resolveService, resultBuilder, clk, rnd, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, roomController, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		RolesService:   rolesService,
		LedgerService:  ledgerService,
		StatsRecorder:  statsRecorder,
		ResolveService: resolveService,
		ResultBuilder:  resultBuilder,
		Signer:         attestationSigner,
		ClaimService:   claimService,
		RoomController: roomController,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
