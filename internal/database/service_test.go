package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxyrank/pkg/checker"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(db)
}

func sampleResults(now time.Time) []checker.ProbeResult {
	return []checker.ProbeResult{
		{Index: 2, Proxy: "3.3.3.3:80", Status: checker.StatusGood, Anonymity: checker.AnonymityAnonymous, ResponseTime: 400 * time.Millisecond, Speed: checker.SpeedAcceptable, CheckedAt: now},
		{Index: 1, Proxy: "2.2.2.2:80", Status: checker.StatusBad, Anonymity: checker.AnonymityUnknown, Speed: checker.SpeedNA, CheckedAt: now, Err: errors.New("connection refused")},
		{Index: 0, Proxy: "1.1.1.1:80", Status: checker.StatusGood, Anonymity: checker.AnonymityElite, ResponseTime: 50 * time.Millisecond, Speed: checker.SpeedExcellent, Country: "AU", CheckedAt: now},
		{Index: 3, Proxy: "4.4.4.4:80", Status: checker.StatusGood, Anonymity: checker.AnonymityElite, ResponseTime: 400 * time.Millisecond, Speed: checker.SpeedAcceptable, CheckedAt: now},
	}
}

func TestService_SaveRunAndGoodProxies(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.SaveRun(ctx, "run-1", checker.ProxyHTTP, sampleResults(now)))
	require.NoError(t, s.SaveRun(ctx, "run-2", checker.ProxyHTTP, sampleResults(now)[:1]))

	good, err := s.GoodProxies(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, good, 3)

	proxies := make([]string, len(good))
	for i, row := range good {
		proxies[i] = row.Proxy
		assert.Equal(t, "run-1", row.RunID)
		assert.Equal(t, "http", row.ProxyType)
		assert.Equal(t, statusGood, row.Status)
		assert.Nil(t, row.ErrorMessage)
		assert.WithinDuration(t, now, row.CheckedAt, time.Second)
	}
	assert.Equal(t, []string{"1.1.1.1:80", "3.3.3.3:80", "4.4.4.4:80"}, proxies)
	assert.Equal(t, int64(50), good[0].ResponseTimeMs)
	require.NotNil(t, good[0].Country)
	assert.Equal(t, "AU", *good[0].Country)
	assert.Nil(t, good[1].Country)
}

func TestService_RunStats(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	require.NoError(t, s.SaveRun(ctx, "run-1", checker.ProxySOCKS5, sampleResults(time.Now())))

	stats, err := s.RunStats(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Good)
	assert.Equal(t, 1, stats.Bad)
	assert.Equal(t, 283*time.Millisecond, stats.AvgLatency)
	assert.Equal(t, map[string]int{"Elite": 2, "Anonymous": 1}, stats.ByAnonymity)

	empty, err := s.RunStats(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.ByAnonymity)
}

func TestService_SaveRunEmpty(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.SaveRun(context.Background(), "run-1", checker.ProxyHTTP, nil))

	good, err := s.GoodProxies(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Empty(t, good)
}
