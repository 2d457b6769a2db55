package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/roach88/unsei/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a record with the fields the store indexes.
func createTestRecord(date string, kin int, sukuyo, star string) ir.Record {
	return ir.Record{
		BirthDate:     date,
		Kin:           kin,
		Glyph:         "赤い空歩く人",
		Tone:          2,
		ToneName:      "月(2)",
		Wavespell:     "黄色い人",
		LifePath:      "5",
		Sign:          "蠍座",
		Stem:          "癸",
		Star:          star,
		DayPillar:     "癸巳",
		MonthPillar:   "乙亥",
		YearPillar:    "己未",
		HiddenStem:    "壬",
		Sukuyo:        sukuyo,
		LunarYear:     1979,
		LunarMonth:    10,
		LunarDay:      3,
		EngineVersion: ir.EngineVersion,
	}
}

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}
