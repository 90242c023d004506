package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTestURL   = "http://httpbin.org/ip"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	maxEchoBody = 64 << 10
)

// Locator resolves the country of a proxy host. Implementations return an
// empty string when the host is unknown.
type Locator interface {
	Country(host string) string
}

// Checker probes a single proxy against a fixed target URL.
type Checker struct {
	testURL   string
	timeout   time.Duration
	userAgent string
	locator   Locator
}

type CheckerConfig struct {
	TestURL   string
	Timeout   time.Duration
	UserAgent string
	Locator   Locator
}

func NewChecker() *Checker {
	return &Checker{
		testURL:   DefaultTestURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
}

func NewCheckerWithConfig(config CheckerConfig) *Checker {
	c := NewChecker()
	if config.TestURL != "" {
		c.testURL = config.TestURL
	}
	if config.Timeout > 0 {
		c.timeout = config.Timeout
	}
	if config.UserAgent != "" {
		c.userAgent = config.UserAgent
	}
	c.locator = config.Locator
	return c
}

// Probe issues one GET to the configured target through the proxy at
// connectionURL. Failures of any kind are reported as a BAD result; Probe
// never returns an error and never retries.
func Probe(ctx context.Context, connectionURL, targetURL string, timeout time.Duration) ProbeResult {
	c := NewCheckerWithConfig(CheckerConfig{TestURL: targetURL, Timeout: timeout})
	return c.Probe(ctx, connectionURL, connectionURL)
}

// Probe checks the proxy described by proxy, reached through connectionURL.
func (c *Checker) Probe(ctx context.Context, proxy, connectionURL string) ProbeResult {
	checkedAt := time.Now()

	transport, err := newTransport(connectionURL, c.timeout)
	if err != nil {
		return badResult(proxy, checkedAt, err)
	}
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.testURL, nil)
	if err != nil {
		return badResult(proxy, checkedAt, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("Connection", "close")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return badResult(proxy, checkedAt, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEchoBody))
	if err != nil {
		return badResult(proxy, checkedAt, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return badResult(proxy, checkedAt, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	responseTime, speed := measure(time.Since(start))

	anonymity := AnonymityUnknown
	var echo echoResponse
	if err := json.Unmarshal(body, &echo); err == nil {
		anonymity = ClassifyAnonymity(echo.Origin)
	}

	result := ProbeResult{
		Proxy:        proxy,
		Status:       StatusGood,
		Anonymity:    anonymity,
		ResponseTime: responseTime,
		Speed:        speed,
		CheckedAt:    checkedAt,
	}

	if c.locator != nil {
		if d := ParseDescriptor(proxy); d.Valid {
			result.Country = c.locator.Country(d.Host)
		}
	}

	return result
}
