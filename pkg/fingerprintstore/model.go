package fingerprintstore

import (
	"time"

	"github.com/uptrace/bun"
)

// IdentityRecordDao is a data access object that maps directly to the
// 'identity_records' table in PostgreSQL. Each of the three hash columns
// carries its own unique constraint: a new identity must be unique on every
// axis independently.
type IdentityRecordDao struct {
	bun.BaseModel   `bun:"table:identity_records,alias:ir"`
	ID              int64     `bun:"id,pk,autoincrement"`
	IdentityHash    string    `bun:"identity_hash,unique,notnull,type:varchar(64)"`
	PhotoHash       string    `bun:"photo_hash,unique,notnull,type:varchar(64)"`
	FingerprintHash string    `bun:"fingerprint_hash,unique,notnull,type:varchar(64)"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}
