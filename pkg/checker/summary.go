package checker

import "time"

// Summary aggregates the outcome of one run.
type Summary struct {
	Total          int
	Good           int
	Bad            int
	SuccessRatePct float64
	AvgLatency     time.Duration
	Elapsed        time.Duration
}

func Summarize(results []ProbeResult, elapsed time.Duration) Summary {
	s := Summary{
		Total:   len(results),
		Elapsed: elapsed,
	}

	var latencySum time.Duration
	for _, r := range results {
		if !r.Good() {
			s.Bad++
			continue
		}
		s.Good++
		latencySum += r.ResponseTime
	}

	if s.Good > 0 {
		s.AvgLatency = (latencySum / time.Duration(s.Good)).Round(time.Millisecond)
	}
	if s.Total > 0 {
		s.SuccessRatePct = float64(s.Good) / float64(s.Total) * 100.0
	}
	return s
}
