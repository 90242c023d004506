// Package geo resolves proxy hosts to ISO country codes using a MaxMind
// GeoIP2 or GeoLite2 database.
package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Locator looks up countries for IP literals. Hostnames are not resolved.
type Locator struct {
	reader *geoip2.Reader
}

func Open(path string) (*Locator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Locator{reader: reader}, nil
}

// Country returns the ISO code for host, or "" when host is not an IP
// address or is missing from the database.
func (l *Locator) Country(host string) string {
	if l == nil || l.reader == nil {
		return ""
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return ""
	}
	record, err := l.reader.Country(ip)
	if err != nil {
		return ""
	}
	return record.Country.IsoCode
}

func (l *Locator) Close() error {
	if l == nil || l.reader == nil {
		return nil
	}
	return l.reader.Close()
}
