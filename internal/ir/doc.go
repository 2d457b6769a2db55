// Package ir provides the value types shared by every unsei package.
//
// This package contains type definitions, name tables, canonical JSON and
// content-addressed ids only. All other internal packages import ir; ir
// imports nothing internal.
//
// Key design constraints:
//   - All types are immutable values; nothing here carries identity beyond
//     its field values
//   - Name tables (stems, branches, glyphs, tones, mansions, signs, stars)
//     are fixed arrays indexed by small integers
//   - Records never contain floats, so their canonical JSON is stable
//   - All JSON tags use snake_case
package ir
