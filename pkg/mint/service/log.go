package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/veridlabs/biomint-middleware/pkg/mint"
)

const serviceName = "MintService"

// logService wraps Service with automatic logging of all method calls.
// Identity numbers and fingerprints never reach the logs.
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the mint Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) Mint(ctx context.Context, req *mint.Request) (res *mint.Result, err error) {
	start := time.Now()

	ls.logger.Info("Mint started",
		zap.String("service", serviceName),
		zap.String("method", "Mint"),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Mint failed",
				zap.String("service", serviceName),
				zap.String("method", "Mint"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}

		ls.logger.Info("Mint completed",
			zap.String("service", serviceName),
			zap.String("method", "Mint"),
			zap.Duration("duration", duration),
			zap.String("tx_hash", res.TxHash),
			zap.String("uri", res.URI),
		)
	}()

	return ls.svc.Mint(ctx, req)
}

func (ls *logService) HasMinted(ctx context.Context, wallet string) (minted bool, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("HasMinted failed",
				zap.String("service", serviceName),
				zap.String("method", "HasMinted"),
				zap.String("wallet", wallet),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}

		ls.logger.Info("HasMinted completed",
			zap.String("service", serviceName),
			zap.String("method", "HasMinted"),
			zap.String("wallet", wallet),
			zap.Bool("has_minted", minted),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.HasMinted(ctx, wallet)
}
