package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/unsei/internal/ir"
)

// Batch is one stored precomputation run.
type Batch struct {
	ID            string
	Seq           int64
	From          string
	To            string
	Workers       int
	Count         int  // valid when Finished
	Finished      bool // result_count has been set
	EngineVersion string
}

// ReadResult returns the stored record for date.
// The bool is false when no record exists.
func (s *Store) ReadResult(ctx context.Context, date ir.CalendarDate) (ir.Record, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT record FROM results WHERE birth_date = ?
	`, date.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Record{}, false, nil
	}
	if err != nil {
		return ir.Record{}, false, fmt.Errorf("read result %s: %w", date, err)
	}
	rec, err := unmarshalRecord(data)
	if err != nil {
		return ir.Record{}, false, fmt.Errorf("read result %s: %w", date, err)
	}
	return rec, true, nil
}

// ReadRange returns the stored records with from <= birth_date <= to,
// ordered by birth_date.
//
// Returns an empty slice (not nil) if nothing is stored in the range.
func (s *Store) ReadRange(ctx context.Context, from, to ir.CalendarDate) ([]ir.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM results
		WHERE birth_date BETWEEN ? AND ?
		ORDER BY birth_date ASC
	`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	return scanRecords(rows)
}

// FindByKin returns every stored record with the given kin, ordered by
// birth_date.
func (s *Store) FindByKin(ctx context.Context, kin int) ([]ir.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM results
		WHERE kin = ?
		ORDER BY birth_date ASC
	`, kin)
	if err != nil {
		return nil, fmt.Errorf("query kin: %w", err)
	}
	return scanRecords(rows)
}

// CountResults returns the number of stored records.
func (s *Store) CountResults(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// ReadBatch returns the batch with id.
func (s *Store) ReadBatch(ctx context.Context, id string) (Batch, bool, error) {
	var (
		b     Batch
		count sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, from_date, to_date, workers, result_count, engine_version
		FROM batches WHERE id = ?
	`, id).Scan(&b.ID, &b.Seq, &b.From, &b.To, &b.Workers, &count, &b.EngineVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return Batch{}, false, nil
	}
	if err != nil {
		return Batch{}, false, fmt.Errorf("read batch %s: %w", id, err)
	}
	b.Count = int(count.Int64)
	b.Finished = count.Valid
	return b, true, nil
}

func scanRecords(rows *sql.Rows) ([]ir.Record, error) {
	defer rows.Close()

	records := []ir.Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := unmarshalRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
