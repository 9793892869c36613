package sync

import (
	"math"
	"time"
)

// HealthStatus is a dashboard-ready summary derived from the sync history.
// It is computed on demand and never persisted.
type HealthStatus struct {
	History            []HistoryEntry `json:"history"`
	LastSyncTime       *time.Time     `json:"lastSyncTime"`
	ApproxCacheSize    *int           `json:"approxCacheSize"`
	SuccessRatePercent *int           `json:"successRatePercent"`
}

// DeriveHealth turns raw sync history into an operational status summary.
//
// LastSyncTime and ApproxCacheSize come from the most recent "success" entry,
// even when newer "error" or "skipped" entries exist ahead of it. The success
// rate counts skipped attempts against the denominator but never the
// numerator, so a long run of legitimately-skipped syncs lowers the reported
// rate. That is an accepted property of the design, not something to correct
// here.
func DeriveHealth(history []HistoryEntry) HealthStatus {
	status := HealthStatus{History: history}
	if history == nil {
		status.History = []HistoryEntry{}
	}

	for i := range history {
		if history[i].Status == StatusSuccess {
			ts := history[i].Timestamp
			size := history[i].Total
			status.LastSyncTime = &ts
			status.ApproxCacheSize = &size
			break
		}
	}

	if len(history) > 0 {
		successes := 0
		for i := range history {
			if history[i].Status == StatusSuccess {
				successes++
			}
		}
		rate := int(math.Round(100 * float64(successes) / float64(len(history))))
		status.SuccessRatePercent = &rate
	}

	return status
}
