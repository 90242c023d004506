package checker

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	netproxy "golang.org/x/net/proxy"
)

// newTransport builds a single-use transport that routes both plain and TLS
// requests through the proxy at connectionURL.
func newTransport(connectionURL string, timeout time.Duration) (*http.Transport, error) {
	proxyURL, err := url.Parse(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection url: %w", err)
	}
	if proxyURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, connectionURL)
	}

	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 0,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		DisableKeepAlives:     true,
		MaxIdleConns:          0,
		IdleConnTimeout:       1 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		// Free proxies rarely present a trusted certificate; only reachability
		// is judged here.
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	switch proxyURL.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(proxyURL)

	case "socks5", "socks5h":
		socksDialer, err := netproxy.FromURL(proxyURL, dialer)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		if cd, ok := socksDialer.(netproxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return socksDialer.Dial(network, addr)
			}
		}

	case "socks4", "socks4a":
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialSOCKS4(ctx, dialer, proxyURL, addr)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, proxyURL.Scheme)
	}

	return transport, nil
}

const (
	socks4Version    = 0x04
	socks4Connect    = 0x01
	socks4Granted    = 0x5A
	socks4ReplyBytes = 8
)

// dialSOCKS4 opens a tunnel to target through a SOCKS4 proxy. Hostnames that
// are not IPv4 literals are sent with the SOCKS4a extension.
func dialSOCKS4(ctx context.Context, dialer *net.Dialer, proxyURL *url.URL, target string) (net.Conn, error) {
	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid target port %q", portStr)
	}

	conn, err := dialer.DialContext(ctx, "tcp", proxyURL.Host)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if dialer.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(dialer.Timeout))
	}

	var domain string
	ip := net.ParseIP(host).To4()
	if ip == nil {
		ip = net.IPv4(0, 0, 0, 1).To4()
		domain = host
	}

	userID := ""
	if proxyURL.User != nil {
		userID = proxyURL.User.Username()
		if pass, ok := proxyURL.User.Password(); ok && pass != "" {
			userID += ":" + pass
		}
	}

	req := []byte{socks4Version, socks4Connect, byte(port >> 8), byte(port)}
	req = append(req, ip...)
	req = append(req, userID...)
	req = append(req, 0x00)
	if domain != "" {
		req = append(req, domain...)
		req = append(req, 0x00)
	}

	if _, err := conn.Write(req); err != nil {
		_ = conn.Close()
		return nil, err
	}

	resp := make([]byte, socks4ReplyBytes)
	if _, err := io.ReadFull(conn, resp); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if resp[1] != socks4Granted {
		_ = conn.Close()
		return nil, fmt.Errorf("socks4 connect failed with code %#x", resp[1])
	}

	_ = conn.SetDeadline(time.Time{})
	return conn, nil
}
