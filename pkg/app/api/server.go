// Package api composes the mint API server from configuration: database,
// cache, pinning client, ledger client, service and HTTP router.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	apphttp "github.com/veridlabs/biomint-middleware/pkg/app/http"
	"github.com/veridlabs/biomint-middleware/pkg/auth"
	"github.com/veridlabs/biomint-middleware/pkg/config"
	"github.com/veridlabs/biomint-middleware/pkg/ethereum"
	"github.com/veridlabs/biomint-middleware/pkg/fingerprintstore"
	"github.com/veridlabs/biomint-middleware/pkg/keys"
	"github.com/veridlabs/biomint-middleware/pkg/mint/service"
	"github.com/veridlabs/biomint-middleware/pkg/pgutil"
	"github.com/veridlabs/biomint-middleware/pkg/pinner"
	"github.com/veridlabs/biomint-middleware/pkg/redisutil"
)

const healthCheckTimeout = 5 * time.Second

// Server runs the mint HTTP API.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServer creates an API server from loaded configuration.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
	}
}

// Run wires up all dependencies and serves until interrupted.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgutil.ConnectDB(&s.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	s.logger.Info("Connected to database",
		zap.String("host", s.cfg.Database.Host),
		zap.String("database", s.cfg.Database.Database))

	var store fingerprintstore.Store = fingerprintstore.NewStore(db)

	redisClient, err := redisutil.New(&s.cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = fingerprintstore.NewCachedStore(store, redisClient.Client, s.logger)
		s.logger.Info("Fingerprint cache enabled")
	}

	pin := pinner.NewClient(&s.cfg.Pinata)

	ethCfg, err := s.resolveMinterKey()
	if err != nil {
		return err
	}
	ledger, err := ethereum.NewClient(ethCfg, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create ledger client: %w", err)
	}
	defer ledger.Close()

	svc := service.NewLog(service.NewService(store, pin, ledger, s.logger), s.logger)

	validator := auth.NewValidator(&s.cfg.Auth)
	if validator == nil {
		s.logger.Warn("JWT validation disabled, mint endpoints are unauthenticated")
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", s.handleHealth(db, redisClient, ledger))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(validator))
		service.NewHandler(svc, s.cfg.Server.MaxUploadBytes).RegisterRoutes(r)
	})

	return apphttp.ServeAndWait(ctx, r, s.logger, &s.cfg.Server)
}

// resolveMinterKey returns the ethereum config with the minter key in the
// clear. A sealed key takes precedence over the plain one and is opened with
// the master key from the environment.
func (s *Server) resolveMinterKey() (*config.EthereumConfig, error) {
	ethCfg := s.cfg.Ethereum
	if ethCfg.MinterKeySealed == "" {
		return &ethCfg, nil
	}

	masterKey, err := keys.MasterKeyFromBase64(os.Getenv(ethCfg.MasterKeyEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to load master key from %s: %w", ethCfg.MasterKeyEnv, err)
	}
	plain, err := keys.Open(ethCfg.MinterKeySealed, masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open sealed minter key: %w", err)
	}
	ethCfg.MinterPrivateKey = string(plain)
	return &ethCfg, nil
}

func (s *Server) handleHealth(db *bun.DB, redisClient *redisutil.Client, ledger *ethereum.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		checks := make(map[string]string)
		healthy := true

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if err := ledger.Health(ctx); err != nil {
			checks["ethereum"] = err.Error()
			healthy = false
		} else {
			checks["ethereum"] = "ok"
		}

		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		overall := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		apphttp.WriteJSON(w, status, map[string]any{
			"status": overall,
			"checks": checks,
		})
	}
}
