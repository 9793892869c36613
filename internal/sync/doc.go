// Package sync keeps the low-latency edge cache consistent with the
// authoritative store of redirect records.
//
// The subsystem is built around four pieces:
//
//   - DirtyTracker: a process-wide flag marking that the authoritative store
//     may have diverged from the edge cache since the last fully-successful
//     sync. Mutations set it; only a sync with zero write failures clears it.
//
//   - Syncer: performs one full-snapshot reconciliation attempt. When the
//     tracker is clean it records a skipped attempt and returns without
//     touching either store. When dirty, it fetches every redirect record,
//     maps each to a compact cache entry, writes the entries to the edge
//     store in bounded batches, and tallies successes and failures.
//
//   - History: a bounded, newest-first in-memory log of recent attempts. It
//     exists for observability only and is intentionally volatile: it resets
//     on process restart.
//
//   - DeriveHealth: a pure function turning the raw history into a
//     dashboard-ready status summary.
//
// The engine never retries failed entries within an attempt. Cache writes are
// idempotent overwrites keyed by slug, so a full re-sync on the next trigger
// is the retry mechanism. For the same reason, overlapping attempts from
// different trigger surfaces are tolerated without mutual exclusion: two
// concurrent full syncs converge to the same cache contents.
//
// The Scheduler is an optional in-process trigger for long-lived deployments;
// serverless deployments drive the engine through the cron HTTP endpoint
// instead.
package sync
