package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/unsei/internal/ir"
)

// marshalRecord converts a record to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON so the stored text hashes to the row id.
func marshalRecord(rec ir.Record) (string, error) {
	data, err := ir.MarshalCanonical(rec.Object())
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(data), nil
}

// unmarshalRecord parses stored JSON TEXT back into a record.
func unmarshalRecord(data string) (ir.Record, error) {
	var rec ir.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return ir.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
