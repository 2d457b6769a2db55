package store

import (
	"context"
	"fmt"

	"github.com/roach88/unsei/internal/ir"
)

// BeginBatch records the start of a precomputation run and returns its
// id. The batch stays open (result_count NULL) until FinishBatch.
func (s *Store) BeginBatch(ctx context.Context, from, to ir.CalendarDate, workers int, seq int64) (string, error) {
	id := s.idGen.Generate()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO batches
		(id, seq, from_date, to_date, workers, engine_version)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		id,
		seq,
		from.String(),
		to.String(),
		workers,
		ir.EngineVersion,
	)
	if err != nil {
		return "", fmt.Errorf("begin batch: %w", err)
	}
	return id, nil
}

// FinishBatch closes a batch with the number of results it produced.
func (s *Store) FinishBatch(ctx context.Context, id string, count int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE batches SET result_count = ? WHERE id = ?
	`, count, id)
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish batch: unknown batch %q", id)
	}
	return nil
}

// WriteResult inserts a record keyed by its content-addressed id.
// Uses ON CONFLICT DO NOTHING for idempotency: writing the same birth date
// again is silently ignored and reported as inserted=false.
//
// batchID may be empty for results written outside a batch.
func (s *Store) WriteResult(ctx context.Context, rec ir.Record, batchID string, seq int64) (inserted bool, err error) {
	id, err := ir.ResultID(rec)
	if err != nil {
		return false, fmt.Errorf("write result: %w", err)
	}
	recordJSON, err := marshalRecord(rec)
	if err != nil {
		return false, fmt.Errorf("write result: %w", err)
	}

	var batch any
	if batchID != "" {
		batch = batchID
	}

	// ON CONFLICT DO NOTHING covers both the id and the birth_date
	// constraint, so a record recomputed under a different engine version
	// does not replace the stored one.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO results
		(id, birth_date, record, kin, sukuyo, star, seq, batch_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		id,
		rec.BirthDate,
		recordJSON,
		rec.Kin,
		rec.Sukuyo,
		rec.Star,
		seq,
		batch,
	)
	if err != nil {
		return false, fmt.Errorf("write result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write result: %w", err)
	}
	return n > 0, nil
}
