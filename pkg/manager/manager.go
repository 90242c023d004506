package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"proxyrank/internal/logger"
	"proxyrank/pkg/checker"
	"proxyrank/pkg/output"
	"proxyrank/pkg/source"
)

// Store persists the results of a run.
type Store interface {
	SaveRun(ctx context.Context, runID string, proxyType checker.ProxyType, results []checker.ProbeResult) error
}

// Recorder receives run metrics and flushes them to a textfile.
type Recorder interface {
	Observe(results []checker.ProbeResult, summary checker.Summary)
	WriteTextfile(path string) error
}

type Config struct {
	ProxyType   checker.ProxyType
	OutputPath  string
	Variable    string
	MetricsFile string
}

// Report describes one finished run.
type Report struct {
	RunID     string
	ProxyType checker.ProxyType
	Results   []checker.ProbeResult
	Ranked    []checker.ProbeResult
	Summary   checker.Summary
}

// Manager runs a single load, probe, rank and write cycle.
type Manager struct {
	source     source.Source
	dispatcher *checker.Dispatcher
	config     Config
	store      Store
	recorder   Recorder
	logger     *logger.Logger
}

type Option func(*Manager)

// WithStore enables run history.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithRecorder enables the metrics textfile.
func WithRecorder(recorder Recorder) Option {
	return func(m *Manager) { m.recorder = recorder }
}

func NewManager(src source.Source, dispatcher *checker.Dispatcher, config Config, opts ...Option) *Manager {
	m := &Manager{
		source:     src,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger.New("manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loads the descriptors, probes them and writes the ranked env line.
// Input and output failures abort the run; history and metrics failures are
// logged and the run carries on.
func (m *Manager) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	log := m.logger.WithRun(runID)

	descriptors, err := m.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load proxies from %s: %w", m.source.Name(), err)
	}
	log.Info("proxies loaded", "source", m.source.Name(), "count", len(descriptors), "type", m.config.ProxyType)

	start := time.Now()
	results, err := m.dispatcher.CheckProxies(ctx, descriptors)
	if err != nil {
		return nil, fmt.Errorf("failed to check proxies: %w", err)
	}
	ranked := checker.Rank(results)
	summary := checker.Summarize(results, time.Since(start))

	log.Info("proxies checked",
		"good", summary.Good,
		"bad", summary.Bad,
		"elapsed", summary.Elapsed.Round(time.Millisecond),
	)

	if m.store != nil {
		if err := m.store.SaveRun(ctx, runID, m.config.ProxyType, results); err != nil {
			log.Warn("failed to store run history", "err", err)
		} else {
			log.Info("run history stored", "rows", len(results))
		}
	}

	if m.recorder != nil {
		m.recorder.Observe(results, summary)
		if m.config.MetricsFile != "" {
			if err := m.recorder.WriteTextfile(m.config.MetricsFile); err != nil {
				log.Warn("failed to write metrics", "err", err)
			}
		}
	}

	if err := output.WriteEnvFile(m.config.OutputPath, m.config.Variable, ranked); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}
	log.Info("results written", "path", m.config.OutputPath, "count", len(ranked))

	return &Report{
		RunID:     runID,
		ProxyType: m.config.ProxyType,
		Results:   results,
		Ranked:    ranked,
		Summary:   summary,
	}, nil
}
