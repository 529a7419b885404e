package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PgStore хранит снимки бакетов в одной таблице buckets (key -> jsonb)
type PgStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPgStore(pool *pgxpool.Pool, logger *zap.Logger) *PgStore {
	return &PgStore{pool: pool, logger: logger}
}

func (s *PgStore) Load(ctx context.Context, bucket string, dest any) bool {
	query := `
		SELECT value
		FROM buckets
		WHERE key = $1
	`

	var raw []byte
	err := s.pool.QueryRow(ctx, query, bucket).Scan(&raw)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Warn("Bucket load failed, falling back to default",
				zap.String("bucket", bucket),
				zap.Error(err),
			)
		}
		return true
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("Bucket snapshot is corrupt, falling back to default",
			zap.String("bucket", bucket),
			zap.Error(err),
		)
		return true
	}

	return false
}

func (s *PgStore) Save(ctx context.Context, bucket string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal bucket %s: %w", bucket, err)
	}

	query := `
		INSERT INTO buckets (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, bucket, raw); err != nil {
		return fmt.Errorf("save bucket %s: %w", bucket, err)
	}

	return nil
}

func (s *PgStore) Delete(ctx context.Context, bucket string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM buckets WHERE key = $1`, bucket); err != nil {
		return fmt.Errorf("delete bucket %s: %w", bucket, err)
	}
	return nil
}
