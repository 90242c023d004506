package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"proxyrank/internal/logger"
)

var (
	// ErrNoInput is returned when a run has no source configured.
	ErrNoInput = errors.New("no proxy source configured")
	// ErrInvalidProxyType is returned when the prompt runs out of input
	// before a valid proxy type was entered.
	ErrInvalidProxyType = errors.New("no valid proxy type entered")
)

// Source supplies raw proxy strings in the order they should be probed.
// Lines are trimmed and blank lines dropped; nothing else is validated.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]string, error)
}

type SourceConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// Multi concatenates several sources in order.
type Multi struct {
	sources []Source
	logger  *logger.Logger
}

func NewMulti(sources ...Source) *Multi {
	return &Multi{
		sources: sources,
		logger:  logger.New("source"),
	}
}

func (m *Multi) Name() string {
	names := make([]string, len(m.sources))
	for i, s := range m.sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

func (m *Multi) Load(ctx context.Context) ([]string, error) {
	if len(m.sources) == 0 {
		return nil, ErrNoInput
	}
	all := []string{}
	for _, s := range m.sources {
		proxies, err := s.Load(ctx)
		if err != nil {
			return nil, err
		}
		m.logger.Info("source loaded", "source", s.Name(), "count", len(proxies))
		all = append(all, proxies...)
	}
	return all, nil
}

// readLines returns the trimmed non-empty lines of r.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}
