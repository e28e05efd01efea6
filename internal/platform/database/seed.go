package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"blockstream/internal/platform/fixtures"
	"blockstream/internal/platform/repositories"
)

// Seed loads the fixture records. Rows that already exist are left alone, so
// running it twice is harmless.
func Seed(ctx context.Context, db *sql.DB) error {
	set := repositories.NewSQLSet(db)

	for _, w := range fixtures.Webhooks() {
		if err := set.Webhooks.Create(ctx, w); err != nil && !errors.Is(err, repositories.ErrDuplicateKey) {
			return err
		}
	}
	for _, c := range fixtures.IndexingConfigs() {
		if err := set.Indexing.Create(ctx, c); err != nil && !errors.Is(err, repositories.ErrDuplicateKey) {
			return err
		}
	}
	for _, b := range fixtures.NFTBids() {
		if err := repositories.InsertNFTBid(ctx, db, b); err != nil {
			return err
		}
	}
	for _, p := range fixtures.TokenPrices() {
		if err := repositories.InsertTokenPrice(ctx, db, p); err != nil {
			return err
		}
	}

	if _, err := set.Database.Get(ctx); errors.Is(err, repositories.ErrNotFound) {
		if err := set.Database.Save(ctx, fixtures.DatabaseConfig()); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if _, err := set.Status.Get(ctx); errors.Is(err, repositories.ErrNotFound) {
		if err := set.Status.Save(ctx, fixtures.SystemStatus()); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	log.Info().Msg("fixtures seeded")
	return nil
}
