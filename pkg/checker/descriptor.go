package checker

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Descriptor is a proxy as supplied by the operator, either host:port or
// host:port:username:password.
type Descriptor struct {
	Raw      string
	Host     string
	Port     int
	Username string
	Password string
	// Valid is false for strings with neither 2 nor 4 colon-separated fields
	// or with a non-numeric port.
	Valid bool
}

// ParseDescriptor splits a raw proxy string into its fields. Malformed input
// is returned with Valid unset rather than as an error; it is still probed.
func ParseDescriptor(raw string) Descriptor {
	d := Descriptor{Raw: raw}

	fields := strings.Split(raw, ":")
	if len(fields) != 2 && len(fields) != 4 {
		return d
	}

	port, err := strconv.Atoi(fields[1])
	if err != nil {
		return d
	}

	d.Host = fields[0]
	d.Port = port
	if len(fields) == 4 {
		d.Username = fields[2]
		d.Password = fields[3]
	}
	d.Valid = true
	return d
}

// BuildConnectionURL derives the URL handed to the transport. Strings with
// neither 2 nor 4 fields pass through unchanged so probing rejects them.
// Credentials are percent-encoded.
func BuildConnectionURL(proxyType ProxyType, raw string) string {
	fields := strings.Split(raw, ":")
	u := &url.URL{Scheme: proxyType.String()}
	switch len(fields) {
	case 2:
		u.Host = net.JoinHostPort(fields[0], fields[1])
	case 4:
		u.Host = net.JoinHostPort(fields[0], fields[1])
		u.User = url.UserPassword(fields[2], fields[3])
	default:
		return raw
	}
	return u.String()
}
