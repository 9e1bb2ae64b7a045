// Package engine implements inventory reconciliation.
//
// Reconciliation decides, for each incoming candidate record, whether to
// insert it, overwrite the stored record with the same name, or discard it.
// The decision is last-write-wins keyed on the calendar date only; there is
// no secondary tie-break.
//
// Two entry points share one procedure and differ only in the date rule:
//
//   - ImportBatch (feed rows): the candidate wins only if the stored date is
//     strictly earlier. Re-importing the same feed is a no-op.
//   - UpsertInteractive (operator entry, dated today): the candidate wins if
//     the stored date is on or before today, so a live correction beats a
//     same-day import.
//
// A batch is not atomic. Each single-record decision is applied on its own;
// a store failure partway through leaves earlier rows committed.
//
// Discarded candidates are dropped without a log line.
package engine
