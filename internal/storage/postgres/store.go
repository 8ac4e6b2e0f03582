package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerscope/internal/model"
)

// Store provides Postgres persistence for classification results.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertTransactionTypes inserts or updates one row per classified
// transaction type of the report. Re-running the classifier is idempotent:
// ids are pure functions of the transaction and match position.
func (s *Store) UpsertTransactionTypes(ctx context.Context, reports []*model.EventStore) error {
	if len(reports) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	queued := 0
	for _, report := range reports {
		for _, txnType := range report.TransactionTypes {
			fields, err := json.Marshal(txnType.Fields)
			if err != nil {
				return fmt.Errorf("marshal fields: %w", err)
			}
			batch.Queue(`
				INSERT INTO transaction_types (
					transaction_type_id, tx_hash, block_number, ts,
					transaction_type, bundle_count, fields, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
				ON CONFLICT (transaction_type_id)
				DO UPDATE SET
					transaction_type = EXCLUDED.transaction_type,
					bundle_count = EXCLUDED.bundle_count,
					fields = EXCLUDED.fields,
					updated_at = now()
			`,
				txnType.TransactionTypeID,
				report.TxHash.Hex(),
				int64(report.BlockNumber),
				int64(report.Timestamp),
				txnType.Name,
				txnType.EndBundle-txnType.StartBundle,
				fields,
			)
			queued++
		}
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
