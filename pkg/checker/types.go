package checker

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidConcurrency is returned when the worker pool cannot be sized.
	ErrInvalidConcurrency = errors.New("concurrency limit must be at least 1")
	// ErrUnsupportedScheme marks a connection URL no transport can dial.
	ErrUnsupportedScheme = errors.New("unsupported proxy scheme")
)

// ProxyType selects the scheme used to build connection URLs for a run.
type ProxyType string

const (
	ProxyHTTP   ProxyType = "http"
	ProxyHTTPS  ProxyType = "https"
	ProxySOCKS4 ProxyType = "socks4"
	ProxySOCKS5 ProxyType = "socks5"
)

// ProxyTypes lists the supported types in prompt order.
var ProxyTypes = []ProxyType{ProxyHTTP, ProxyHTTPS, ProxySOCKS4, ProxySOCKS5}

// ParseProxyType accepts a type name in any case.
func ParseProxyType(s string) (ProxyType, error) {
	candidate := ProxyType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range ProxyTypes {
		if candidate == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown proxy type %q", s)
}

func (t ProxyType) String() string {
	return string(t)
}

type ProxyStatus int

const (
	StatusBad ProxyStatus = iota
	StatusGood
)

func (s ProxyStatus) String() string {
	switch s {
	case StatusGood:
		return "GOOD"
	default:
		return "BAD"
	}
}

type Anonymity string

const (
	AnonymityUnknown     Anonymity = "Unknown"
	AnonymityTransparent Anonymity = "Transparent"
	AnonymityAnonymous   Anonymity = "Anonymous"
	AnonymityElite       Anonymity = "Elite"
)

type SpeedCategory string

const (
	SpeedExcellent  SpeedCategory = "Excellent"
	SpeedGood       SpeedCategory = "Good"
	SpeedAcceptable SpeedCategory = "Acceptable"
	SpeedSlow       SpeedCategory = "Slow"
	SpeedPoor       SpeedCategory = "Poor"
	SpeedNA         SpeedCategory = "N/A"
)

// ProbeResult is the outcome of probing one proxy. It is built once and never
// mutated afterwards.
type ProbeResult struct {
	// Index is the submission position of the proxy within its run.
	Index int
	// Proxy is the descriptor exactly as supplied by the caller.
	Proxy     string
	Status    ProxyStatus
	Anonymity Anonymity
	// ResponseTime is rounded to the millisecond and zero for BAD results.
	ResponseTime time.Duration
	Speed        SpeedCategory
	// Country is the ISO code of the proxy host, when a locator is configured.
	Country   string
	CheckedAt time.Time
	// Err keeps the failure cause of a BAD result for diagnostics only.
	Err error
}

func (r ProbeResult) Good() bool {
	return r.Status == StatusGood
}

// Seconds reports the response time as fractional seconds.
func (r ProbeResult) Seconds() float64 {
	return r.ResponseTime.Seconds()
}

func badResult(proxy string, checkedAt time.Time, err error) ProbeResult {
	return ProbeResult{
		Proxy:     proxy,
		Status:    StatusBad,
		Anonymity: AnonymityUnknown,
		Speed:     SpeedNA,
		CheckedAt: checkedAt,
		Err:       err,
	}
}
