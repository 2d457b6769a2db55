// Package harness runs regression scenarios against the engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: known_values
//	description: "What this scenario validates"
//	cases:
//	  - date: "1979-11-22"
//	    expect:
//	      kin: 93
//	      sukuyo: 箕宿
//	      lunar_month: 10
//	properties:
//	  - type: lunar_day_monotonic
//	    from: "2023-01-01"
//	    to: "2023-12-31"
//
// Expectation keys are the field names of ir.Record and are matched as a
// subset. Files are decoded strictly (unknown keys are errors) and then
// checked against an embedded CUE schema that bounds the values.
//
// # Properties
//
//   - lunar_day_monotonic: consecutive days advance the lunar day by one
//     or start a new month at day 1
//   - determinism: computing a date twice gives identical results
//   - range: kin, tones, glyphs, mansions, life path and lunar fields stay
//     in their domains
//
// # Golden Files
//
// Run stores every case in a fresh in-memory store and reads it back.
// The resulting records, with their content-addressed ids, are serialized
// as canonical JSON and compared with testdata/golden/{name}.golden.
package harness
