package checker

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/sourcegraph/conc/pool"

	"proxyrank/internal/logger"
)

const DefaultConcurrency = 30

// Prober is the unit of work the dispatcher fans out.
type Prober interface {
	Probe(ctx context.Context, proxy, connectionURL string) ProbeResult
}

type DispatcherConfig struct {
	ProxyType   ProxyType
	Concurrency int
}

// Dispatcher runs probes over a bounded worker pool and ranks the outcome.
type Dispatcher struct {
	prober      Prober
	proxyType   ProxyType
	concurrency int
	logger      *logger.Logger
}

func NewDispatcher(prober Prober, config DispatcherConfig) *Dispatcher {
	proxyType := config.ProxyType
	if proxyType == "" {
		proxyType = ProxyHTTP
	}
	return &Dispatcher{
		prober:      prober,
		proxyType:   proxyType,
		concurrency: config.Concurrency,
		logger:      logger.New("dispatch"),
	}
}

// CheckProxies probes every descriptor exactly once with at most the
// configured number of probes in flight. Results are returned in completion
// order, each tagged with its submission index.
func (d *Dispatcher) CheckProxies(ctx context.Context, descriptors []string) ([]ProbeResult, error) {
	if len(descriptors) == 0 {
		return []ProbeResult{}, nil
	}
	if d.concurrency < 1 {
		return nil, ErrInvalidConcurrency
	}

	start := time.Now()
	p := pool.NewWithResults[ProbeResult]().WithMaxGoroutines(d.concurrency)

	// Go blocks once the pool is saturated, so submission stays FIFO.
	for i, raw := range descriptors {
		i, raw := i, raw
		connectionURL := BuildConnectionURL(d.proxyType, raw)
		p.Go(func() ProbeResult {
			result := d.prober.Probe(ctx, raw, connectionURL)
			result.Index = i
			return result
		})
	}

	results := p.Wait()

	d.logger.Debug("probes finished",
		"total", len(results),
		"good", countGood(results),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return results, nil
}

// RankProxies probes the descriptors and returns the GOOD results fastest
// first.
func (d *Dispatcher) RankProxies(ctx context.Context, descriptors []string) ([]ProbeResult, error) {
	results, err := d.CheckProxies(ctx, descriptors)
	if err != nil {
		return nil, err
	}
	return Rank(results), nil
}

// Rank filters results to GOOD and sorts them by ascending response time.
// Equal response times keep submission order.
func Rank(results []ProbeResult) []ProbeResult {
	ranked := make([]ProbeResult, 0, len(results))
	for _, r := range results {
		if r.Good() {
			ranked = append(ranked, r)
		}
	}

	slices.SortFunc(ranked, func(a, b ProbeResult) int {
		return a.Index - b.Index
	})
	slices.SortStableFunc(ranked, func(a, b ProbeResult) int {
		return cmp.Compare(a.ResponseTime, b.ResponseTime)
	})
	return ranked
}

func countGood(results []ProbeResult) int {
	count := 0
	for _, r := range results {
		if r.Good() {
			count++
		}
	}
	return count
}
