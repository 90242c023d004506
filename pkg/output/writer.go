package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"proxyrank/internal/database"
	"proxyrank/internal/database/models/model"
	"proxyrank/pkg/checker"
)

// CleanProxy returns the host:port[:user:pass] form persisted for a result.
func CleanProxy(proxy string) string {
	return strings.TrimSpace(proxy)
}

// EnvLine renders NAME="p1,p2,..." for the ranked proxies, fastest first.
func EnvLine(name string, ranked []checker.ProbeResult) string {
	cleaned := make([]string, len(ranked))
	for i, r := range ranked {
		cleaned[i] = CleanProxy(r.Proxy)
	}
	return fmt.Sprintf(`%s="%s"`, name, strings.Join(cleaned, ","))
}

// WriteEnvFile replaces path with a single env line.
func WriteEnvFile(path, name string, ranked []checker.ProbeResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(EnvLine(name, ranked)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// PrintRanked prints one numbered row per good proxy.
func PrintRanked(w io.Writer, ranked []checker.ProbeResult) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No working proxies found.")
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROXY\tANONYMITY\tSPEED\tTIME\tCOUNTRY")
	for i, r := range ranked {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\t%.3fs\t%s\n",
			i+1,
			CleanProxy(r.Proxy),
			r.Anonymity,
			r.Speed,
			r.Seconds(),
			dashIfEmpty(r.Country),
		)
	}
	tw.Flush()
}

// PrintSummary prints the aggregate counts of a run.
func PrintSummary(w io.Writer, s checker.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d of %d proxies good (%.1f%%)\n", s.Good, s.Total, s.SuccessRatePct)
	if s.Good > 0 {
		fmt.Fprintf(w, "Average response time: %.3fs\n", s.AvgLatency.Seconds())
	}
	fmt.Fprintf(w, "Checked in %.2fs\n", s.Elapsed.Seconds())
}

// PrintStoredRun prints the good proxies of a run read back from history.
func PrintStoredRun(w io.Writer, stats database.RunStats, rows []model.ProbeResults) {
	fmt.Fprintf(w, "Run %s\n", stats.RunID)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No working proxies found.")
	} else {
		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tPROXY\tTYPE\tANONYMITY\tSPEED\tTIME\tCOUNTRY\tCHECKED")
		for i, row := range rows {
			country := ""
			if row.Country != nil {
				country = *row.Country
			}
			fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\t%s\t%.3fs\t%s\t%s\n",
				i+1,
				CleanProxy(row.Proxy),
				row.ProxyType,
				row.Anonymity,
				row.Speed,
				float64(row.ResponseTimeMs)/1000,
				dashIfEmpty(country),
				row.CheckedAt.Format(time.DateTime),
			)
		}
		tw.Flush()
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d of %d proxies good\n", stats.Good, stats.Total)
	if stats.Good > 0 {
		fmt.Fprintf(w, "Average response time: %.3fs\n", stats.AvgLatency.Seconds())
	}
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
