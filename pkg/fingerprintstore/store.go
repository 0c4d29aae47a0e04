package fingerprintstore

import (
	"context"
	"errors"
)

// ErrDuplicateRecord is returned by Record when any of the three hashes is
// already present in the index. The database unique constraints arbitrate
// concurrent inserts, so this is the authoritative duplicate signal.
var ErrDuplicateRecord = errors.New("identity record already exists")

// Store defines the uniqueness index over identity fingerprints.
// Exists is an advisory fast path only; Record is the authority.
type Store interface {
	Exists(ctx context.Context, identityHash, photoHash, fingerprintHash string) (bool, error)
	Record(ctx context.Context, identityHash, photoHash, fingerprintHash string) error
}
