package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type signingKeysRepo struct {
	q *gen.Queries
}

func (r *signingKeysRepo) CreateSigningKey(ctx context.Context, key domain.SigningKey) error {
	return mapConstraint(r.q.CreateSigningKey(ctx, gen.CreateSigningKeyParams{
		ID:                  key.ID,
		Kid:                 key.Kid,
		Algorithm:           key.Algorithm,
		PrivateKeyEncrypted: key.PrivateKeyEncrypted,
		CreatedAt:           key.CreatedAt.UTC(),
		RetiredAt:           mapOptionalTime(key.RetiredAt),
		ExpiresAt:           key.ExpiresAt.UTC(),
	}))
}

func (r *signingKeysRepo) ListSigningKeys(ctx context.Context, now time.Time) ([]domain.SigningKey, error) {
	rows, err := r.q.ListSigningKeys(ctx, now.UTC())
	if err != nil {
		return nil, err
	}

	keys := make([]domain.SigningKey, len(rows))
	for i, row := range rows {
		keys[i] = mapSigningKey(row)
	}
	return keys, nil
}

func (r *signingKeysRepo) DeleteExpiredSigningKeys(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSigningKeys(ctx, now.UTC())
}
