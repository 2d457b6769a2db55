// Package engine composes the calculation packages into one FortuneResult
// per birth date.
//
// Compute is synchronous and pure: it performs no I/O, keeps no state and
// returns the same result for the same date on every call. It validates
// the date first and reports failures as *RuntimeError with one of:
//
//   - INVALID_DATE: the date does not exist (checked before any astronomy)
//   - DID_NOT_CONVERGE: a solar-term or new-moon root finder gave up
//   - UNMAPPED_LUNAR_MONTH: an internal invariant of the lunisolar
//     converter was broken
//
// Batch is the only concurrent code. It fans a date range out over a
// bounded errgroup and hands results back in date order, so callers that
// persist them (see the store package) remain single writers. Clock
// stamps those writes with a logical sequence.
package engine
