package api

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	userAgent       = "storyterm/1.0"
	acceptHeader    = "application/json"
	requestIDHeader = "X-Request-ID"
)

type headerTransport struct {
	base http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", acceptHeader)
	}
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", userAgent)
	}
	if clone.Header.Get(requestIDHeader) == "" {
		clone.Header.Set(requestIDHeader, uuid.New().String())
	}
	return base.RoundTrip(clone)
}
