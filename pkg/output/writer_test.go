package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxyrank/internal/database"
	"proxyrank/internal/database/models/model"
	"proxyrank/pkg/checker"
)

func ranked() []checker.ProbeResult {
	return []checker.ProbeResult{
		{Proxy: "1.1.1.1:80", Status: checker.StatusGood, Anonymity: checker.AnonymityElite, ResponseTime: 50 * time.Millisecond, Speed: checker.SpeedExcellent, Country: "DE"},
		{Proxy: " 3.3.3.3:8080:user:pass ", Status: checker.StatusGood, Anonymity: checker.AnonymityAnonymous, ResponseTime: 400 * time.Millisecond, Speed: checker.SpeedAcceptable},
	}
}

func TestEnvLine(t *testing.T) {
	assert.Equal(t, `NAME="1.1.1.1:80,3.3.3.3:8080:user:pass"`, EnvLine("NAME", ranked()))
	assert.Equal(t, `NAME=""`, EnvLine("NAME", nil))
}

func TestWriteEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "good_proxies.json")

	require.NoError(t, WriteEnvFile(path, "FACEBOOK_PROXIES", ranked()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FACEBOOK_PROXIES=\"1.1.1.1:80,3.3.3.3:8080:user:pass\"\n", string(data))
}

func TestPrintRanked(t *testing.T) {
	var buf bytes.Buffer
	PrintRanked(&buf, ranked())

	out := buf.String()
	assert.Contains(t, out, "1.  1.1.1.1:80")
	assert.Contains(t, out, "0.050s")
	assert.Contains(t, out, "Acceptable")
	assert.Contains(t, out, "DE")

	buf.Reset()
	PrintRanked(&buf, nil)
	assert.Contains(t, buf.String(), "No working proxies")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, checker.Summary{Total: 3, Good: 2, Bad: 1, SuccessRatePct: 66.666, AvgLatency: 225 * time.Millisecond, Elapsed: 1500 * time.Millisecond})

	assert.Contains(t, buf.String(), "2 of 3 proxies good (66.7%)")
	assert.Contains(t, buf.String(), "0.225s")
}

func TestPrintStoredRun(t *testing.T) {
	country := "NL"
	rows := []model.ProbeResults{
		{Proxy: "1.1.1.1:80", ProxyType: "http", Status: "GOOD", Anonymity: "Elite", ResponseTimeMs: 80, Speed: "Excellent", Country: &country, CheckedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Proxy: "2.2.2.2:80", ProxyType: "http", Status: "GOOD", Anonymity: "Anonymous", ResponseTimeMs: 450, Speed: "Acceptable"},
	}
	stats := database.RunStats{RunID: "run-1", Total: 3, Good: 2, Bad: 1, AvgLatency: 265 * time.Millisecond}

	var buf bytes.Buffer
	PrintStoredRun(&buf, stats, rows)

	out := buf.String()
	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "1.1.1.1:80")
	assert.Contains(t, out, "0.080s")
	assert.Contains(t, out, "NL")
	assert.Contains(t, out, "2026-01-02 03:04:05")
	assert.Contains(t, out, "2 of 3 proxies good")
	assert.Contains(t, out, "Average response time: 0.265s")
}

func TestPrintStoredRun_NoGoodProxies(t *testing.T) {
	var buf bytes.Buffer
	PrintStoredRun(&buf, database.RunStats{RunID: "run-2", Total: 1, Bad: 1}, nil)

	assert.Contains(t, buf.String(), "No working proxies found.")
	assert.NotContains(t, buf.String(), "Average")
}
