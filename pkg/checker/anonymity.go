package checker

import "strings"

// echoResponse matches the fields we read from an httpbin-style /ip endpoint.
type echoResponse struct {
	Origin string `json:"origin"`
}

// ClassifyAnonymity inspects the origin addresses echoed by the target.
//
// A single address means the target only saw the proxy. Several addresses
// mean the proxy forwarded the caller's address; when one of them is
// reported as "unknown" the proxy is treated as transparent. An empty origin
// carries no signal.
func ClassifyAnonymity(origin string) Anonymity {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return AnonymityUnknown
	}

	if !strings.Contains(origin, ",") {
		return AnonymityElite
	}

	if strings.Contains(strings.ToLower(origin), "unknown") {
		return AnonymityTransparent
	}
	return AnonymityAnonymous
}
