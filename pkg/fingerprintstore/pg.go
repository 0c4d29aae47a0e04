package fingerprintstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the uniqueness index
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) Exists(ctx context.Context, identityHash, photoHash, fingerprintHash string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*IdentityRecordDao)(nil)).
		Where("identity_hash = ?", identityHash).
		WhereOr("photo_hash = ?", photoHash).
		WhereOr("fingerprint_hash = ?", fingerprintHash).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check identity record exists: %w", err)
	}
	return exists, nil
}

func (s *pgStore) Record(ctx context.Context, identityHash, photoHash, fingerprintHash string) error {
	dao := &IdentityRecordDao{
		IdentityHash:    identityHash,
		PhotoHash:       photoHash,
		FingerprintHash: fingerprintHash,
	}

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return ErrDuplicateRecord
		}
		return fmt.Errorf("failed to record identity: %w", err)
	}

	return nil
}
