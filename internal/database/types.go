package database

import "time"

// Status values persisted in probe_results.status
const (
	statusGood = "GOOD"
	statusBad  = "BAD"
)

// RunStats aggregates one stored run
type RunStats struct {
	RunID       string         `json:"run_id"`
	Total       int            `json:"total"`
	Good        int            `json:"good"`
	Bad         int            `json:"bad"`
	AvgLatency  time.Duration  `json:"avg_latency"`
	ByAnonymity map[string]int `json:"by_anonymity"`
}
