package database

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	. "github.com/go-jet/jet/v2/sqlite"

	"proxyrank/internal/database/models/model"
	"proxyrank/internal/database/models/table"
	"proxyrank/internal/logger"
	"proxyrank/pkg/checker"
)

// Service handles run history persistence
type Service struct {
	db     *DB
	logger *logger.Logger
}

// NewService creates a new database service
func NewService(db *DB) *Service {
	return &Service{db: db, logger: logger.New("database")}
}

// SaveRun stores every result of a run, GOOD and BAD, in submission order.
func (s *Service) SaveRun(ctx context.Context, runID string, proxyType checker.ProxyType, results []checker.ProbeResult) error {
	if len(results) == 0 {
		return nil
	}

	ordered := slices.Clone(results)
	slices.SortFunc(ordered, func(a, b checker.ProbeResult) int {
		return cmp.Compare(a.Index, b.Index)
	})

	rows := make([]model.ProbeResults, len(ordered))
	for i, r := range ordered {
		rows[i] = toModel(runID, proxyType, r)
	}

	stmt := table.ProbeResults.INSERT(
		table.ProbeResults.MutableColumns,
	).MODELS(rows)

	if _, err := stmt.ExecContext(ctx, s.db); err != nil {
		return fmt.Errorf("failed to save run %s: %w", runID, err)
	}

	s.logger.Debug("run stored", "run", runID, "rows", len(rows))
	return nil
}

// GoodProxies returns the GOOD rows of a run, fastest first. Equal response
// times keep submission order.
func (s *Service) GoodProxies(ctx context.Context, runID string) ([]model.ProbeResults, error) {
	stmt := SELECT(
		table.ProbeResults.AllColumns,
	).FROM(
		table.ProbeResults,
	).WHERE(
		table.ProbeResults.RunID.EQ(String(runID)).
			AND(table.ProbeResults.Status.EQ(String(statusGood))),
	).ORDER_BY(
		table.ProbeResults.ResponseTimeMs.ASC(),
		table.ProbeResults.ID.ASC(),
	)

	var proxies []model.ProbeResults
	if err := stmt.QueryContext(ctx, s.db, &proxies); err != nil {
		return nil, fmt.Errorf("failed to get good proxies: %w", err)
	}

	return proxies, nil
}

// RunStats returns aggregate counts for a stored run
func (s *Service) RunStats(ctx context.Context, runID string) (RunStats, error) {
	stats := RunStats{RunID: runID, ByAnonymity: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM probe_results WHERE run_id = ?", runID,
	).Scan(&stats.Total)
	if err != nil {
		return stats, fmt.Errorf("failed to count results: %w", err)
	}

	var avgMs float64
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(AVG(response_time_ms), 0) FROM probe_results WHERE run_id = ? AND status = ?",
		runID, statusGood,
	).Scan(&stats.Good, &avgMs)
	if err != nil {
		return stats, fmt.Errorf("failed to count good results: %w", err)
	}
	stats.Bad = stats.Total - stats.Good
	stats.AvgLatency = time.Duration(avgMs * float64(time.Millisecond)).Round(time.Millisecond)

	rows, err := s.db.QueryContext(ctx,
		"SELECT anonymity, COUNT(*) FROM probe_results WHERE run_id = ? AND status = ? GROUP BY anonymity",
		runID, statusGood,
	)
	if err != nil {
		return stats, fmt.Errorf("failed to group by anonymity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var anonymity string
		var count int
		if err := rows.Scan(&anonymity, &count); err != nil {
			return stats, fmt.Errorf("failed to scan anonymity row: %w", err)
		}
		stats.ByAnonymity[anonymity] = count
	}

	return stats, rows.Err()
}

func toModel(runID string, proxyType checker.ProxyType, r checker.ProbeResult) model.ProbeResults {
	row := model.ProbeResults{
		RunID:          runID,
		Proxy:          r.Proxy,
		ProxyType:      proxyType.String(),
		Status:         statusBad,
		Anonymity:      string(r.Anonymity),
		ResponseTimeMs: r.ResponseTime.Milliseconds(),
		Speed:          string(r.Speed),
		CheckedAt:      r.CheckedAt,
	}
	if r.Good() {
		row.Status = statusGood
	}
	if r.Country != "" {
		country := r.Country
		row.Country = &country
	}
	if r.Err != nil {
		msg := r.Err.Error()
		row.ErrorMessage = &msg
	}
	return row
}
