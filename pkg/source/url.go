package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"proxyrank/internal/logger"
)

// URLSource downloads a plaintext proxy list, one entry per line. Lines
// starting with '#' are comments. Entries in URL form are rewritten to the
// host:port[:user:pass] form; the run's proxy type decides the scheme.
type URLSource struct {
	url       string
	client    *http.Client
	userAgent string
	logger    *logger.Logger
}

func NewURLSource(url string, config SourceConfig) *URLSource {
	return &URLSource{
		url: url,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		userAgent: config.UserAgent,
		logger:    logger.New("url"),
	}
}

func (u *URLSource) Name() string {
	return "url"
}

func (u *URLSource) Load(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	if u.userAgent != "" {
		req.Header.Set("User-Agent", u.userAgent)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch proxy list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch proxy list: HTTP %d", resp.StatusCode)
	}

	lines, err := readLines(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read proxy list: %w", err)
	}

	proxies := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, normalizeEntry(line))
	}

	u.logger.Debug("proxy list downloaded", "url", u.url, "count", len(proxies))
	return proxies, nil
}

// normalizeEntry drops a scheme and moves user:pass@ credentials behind the
// address. Anything else is returned untouched.
func normalizeEntry(line string) string {
	if _, rest, ok := strings.Cut(line, "://"); ok {
		line = rest
	}

	at := strings.LastIndex(line, "@")
	if at < 0 {
		return line
	}
	userinfo, hostport := line[:at], line[at+1:]
	user, pass, _ := strings.Cut(userinfo, ":")
	return hostport + ":" + user + ":" + pass
}
