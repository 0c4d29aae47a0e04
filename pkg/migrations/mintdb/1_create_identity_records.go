package mintdb

import (
	"context"
	"log"

	"github.com/veridlabs/biomint-middleware/pkg/fingerprintstore"
	mghelper "github.com/veridlabs/biomint-middleware/pkg/pgutil/migrations"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating identity_records table...")
		if err := mghelper.CreateSchema(ctx, db, &fingerprintstore.IdentityRecordDao{}); err != nil {
			return err
		}
		// Unique on every hash axis independently
		return mghelper.CreateModelUniqueIndexes(ctx, db, &fingerprintstore.IdentityRecordDao{},
			"identity_hash", "photo_hash", "fingerprint_hash")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping identity_records table...")
		return mghelper.DropTables(ctx, db, &fingerprintstore.IdentityRecordDao{})
	})
}
