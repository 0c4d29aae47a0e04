package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veridlabs/biomint-middleware/internal/metrics"
	apperrors "github.com/veridlabs/biomint-middleware/pkg/app/errors"
	"github.com/veridlabs/biomint-middleware/pkg/ethereum"
	"github.com/veridlabs/biomint-middleware/pkg/fingerprint"
	"github.com/veridlabs/biomint-middleware/pkg/fingerprintstore"
	"github.com/veridlabs/biomint-middleware/pkg/metadata"
	"github.com/veridlabs/biomint-middleware/pkg/mint"
)

// Store is the narrow uniqueness-index interface for the mint service.
type Store interface {
	Exists(ctx context.Context, identityHash, photoHash, fingerprintHash string) (bool, error)
	Record(ctx context.Context, identityHash, photoHash, fingerprintHash string) error
}

// Pinner stages artifacts on IPFS.
type Pinner interface {
	PinFile(ctx context.Context, name string, content io.Reader) (string, error)
	PinJSON(ctx context.Context, name string, document any) (string, error)
}

// Ledger submits and confirms mint transactions.
type Ledger interface {
	MintAttestation(ctx context.Context, uri string) (*ethereum.Receipt, error)
	HasMinted(ctx context.Context, wallet common.Address) (bool, error)
}

// Service defines the mint business logic
type Service interface {
	Mint(ctx context.Context, req *mint.Request) (*mint.Result, error)
	HasMinted(ctx context.Context, wallet string) (bool, error)
}

type mintService struct {
	store  Store
	pinner Pinner
	ledger Ledger
	logger *zap.Logger
}

// NewService creates a new mint service
func NewService(store Store, pinner Pinner, ledger Ledger, logger *zap.Logger) Service {
	return &mintService{
		store:  store,
		pinner: pinner,
		ledger: ledger,
		logger: logger,
	}
}

// Mint runs the full identity mint pipeline: fingerprint the inputs, reject
// duplicates, stage the artifacts and metadata on IPFS, submit the mint
// transaction, and record the identity once the chain confirmed it.
func (s *mintService) Mint(ctx context.Context, req *mint.Request) (*mint.Result, error) {
	start := time.Now()
	status := "failed"
	defer func() {
		metrics.MintsTotal.WithLabelValues(status).Inc()
		metrics.MintDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	logger := s.logger.With(zap.String("request_id", uuid.NewString()))

	// Hash everything before any external call. A failure here costs nothing.
	fps, err := hashRequest(req)
	if err != nil {
		status = "input_error"
		return nil, apperrors.BadRequestError(err, "failed to read uploaded content")
	}

	// Advisory check. Side-effect free, so rejected duplicates leave no
	// trace on IPFS or the chain.
	exists, err := s.store.Exists(ctx, fps.Identity, fps.Photo, fps.Biometric)
	if err != nil {
		return nil, fmt.Errorf("failed to check identity uniqueness: %w", err)
	}
	if exists {
		status = "duplicate"
		metrics.DuplicatesRejected.Inc()
		return nil, apperrors.ConflictError(mint.ErrDuplicateIdentity, "identity already minted")
	}

	refs, err := s.stageArtifacts(ctx, req)
	if err != nil {
		status = "staging_error"
		return nil, apperrors.DependencyError(err, "failed to stage identity artifacts")
	}

	doc := metadata.Build(fps.Identity, *refs)
	metadataCID, err := s.pinner.PinJSON(ctx, mint.ArtifactMetadata, doc)
	if err != nil {
		status = "staging_error"
		return nil, apperrors.DependencyError(err, "failed to stage attestation metadata")
	}
	uri := metadata.URI(metadataCID)

	// The caller hanging up must not orphan a transaction that is already
	// on its way to the chain, so submission and persistence run detached.
	detached := context.WithoutCancel(ctx)

	receipt, err := s.ledger.MintAttestation(detached, uri)
	if err != nil {
		status = classifySubmitFailure(err)
		return nil, convertSubmitFailure(err)
	}

	logger.Info("Mint transaction confirmed",
		zap.String("tx_hash", receipt.TxHash.Hex()),
		zap.Uint64("gas_used", receipt.GasUsed),
		zap.String("uri", uri))

	if err := s.store.Record(detached, fps.Identity, fps.Photo, fps.Biometric); err != nil {
		// The token is on chain either way; surface the inconsistency to
		// operators instead of failing the caller.
		if errors.Is(err, fingerprintstore.ErrDuplicateRecord) {
			metrics.PersistenceRaces.Inc()
			logger.Error("Identity recorded concurrently after confirmed mint",
				zap.String("tx_hash", receipt.TxHash.Hex()))
		} else {
			logger.Error("Failed to record identity after confirmed mint",
				zap.String("tx_hash", receipt.TxHash.Hex()),
				zap.Error(err))
		}
	}

	status = "confirmed"
	return &mint.Result{
		TxHash: receipt.TxHash.Hex(),
		URI:    uri,
		Status: string(receipt.Status),
	}, nil
}

// HasMinted reports whether a wallet already holds a minted identity.
func (s *mintService) HasMinted(ctx context.Context, wallet string) (bool, error) {
	if !common.IsHexAddress(wallet) {
		return false, apperrors.BadRequestError(fmt.Errorf("invalid wallet address %q", wallet), "invalid wallet address")
	}
	minted, err := s.ledger.HasMinted(ctx, common.HexToAddress(wallet))
	if err != nil {
		return false, apperrors.DependencyError(err, "failed to query ledger")
	}
	return minted, nil
}

// hashRequest derives the three fingerprints from the raw inputs, rewinding
// each upload so it can be staged afterwards.
func hashRequest(req *mint.Request) (*mint.Fingerprints, error) {
	identity := fingerprint.HashText(req.AadhaarNumber + req.VoterNumber)

	photo, err := fingerprint.HashReader(req.Photo.Content)
	if err != nil {
		return nil, fmt.Errorf("photo: %w", err)
	}
	biometric, err := fingerprint.HashReader(req.Fingerprint.Content)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	return &mint.Fingerprints{
		Identity:  identity,
		Photo:     photo,
		Biometric: biometric,
	}, nil
}

// stageArtifacts pins the four uploads concurrently. Any single failure
// cancels the rest and aborts the request.
func (s *mintService) stageArtifacts(ctx context.Context, req *mint.Request) (*metadata.Refs, error) {
	var refs metadata.Refs

	g, gctx := errgroup.WithContext(ctx)
	pin := func(upload mint.Upload, dst *string) {
		g.Go(func() error {
			cid, err := s.pinner.PinFile(gctx, upload.Name, upload.Content)
			if err != nil {
				return err
			}
			*dst = cid
			return nil
		})
	}

	pin(req.Aadhaar, &refs.AadhaarCID)
	pin(req.Voter, &refs.VoterCID)
	pin(req.Photo, &refs.PhotoCID)
	pin(req.Fingerprint, &refs.FingerprintCID)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &refs, nil
}

func classifySubmitFailure(err error) string {
	var estimation *ethereum.EstimationError
	var submission *ethereum.SubmissionError
	switch {
	case errors.As(err, &estimation):
		return "estimation_error"
	case errors.As(err, &submission):
		return "submission_error"
	case errors.Is(err, ethereum.ErrConfirmationTimeout):
		return "timeout"
	case errors.Is(err, ethereum.ErrConfirmedFailure):
		return "reverted"
	default:
		return "failed"
	}
}

func convertSubmitFailure(err error) error {
	var estimation *ethereum.EstimationError
	var submission *ethereum.SubmissionError
	switch {
	case errors.As(err, &estimation):
		return apperrors.BadRequestError(err, "mint transaction would revert")
	case errors.As(err, &submission):
		return apperrors.DependencyError(err, "failed to submit mint transaction")
	case errors.Is(err, ethereum.ErrConfirmationTimeout):
		return apperrors.TimeoutError(err, "mint transaction confirmation timed out")
	case errors.Is(err, ethereum.ErrConfirmedFailure):
		return apperrors.DependencyError(err, "mint transaction failed on chain")
	default:
		return fmt.Errorf("failed to mint attestation: %w", err)
	}
}
