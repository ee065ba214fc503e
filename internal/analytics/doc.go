// Package analytics derives dashboard views from a snapshot of tasks and time
// entries: status counts, per-user and per-task time, filtered task lists and
// the daily activity trend.
//
// Every function is pure. Callers load the snapshot and pass it in, so the
// results depend only on the arguments (and on the supplied clock for the
// trend).
package analytics
