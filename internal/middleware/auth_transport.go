package middleware

import "net/http"

// TokenSource supplies the current bearer token. An empty string means no
// session is active and the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// AuthTransport is an http.RoundTripper that attaches the session's bearer
// token to every outgoing request. It is the single point where the
// Authorization header is written, so setting or clearing the token on the
// source is immediately reflected on the wire.
type AuthTransport struct {
	Base   http.RoundTripper
	Source TokenSource
}

// NewAuthTransport wraps base with bearer-token injection. A nil base falls
// back to http.DefaultTransport.
func NewAuthTransport(base http.RoundTripper, source TokenSource) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{Base: base, Source: source}
}

// RoundTrip implements http.RoundTripper. The request is cloned before the
// header is set, per the RoundTripper contract.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := ""
	if t.Source != nil {
		token = t.Source.Token()
	}
	if token == "" {
		return t.Base.RoundTrip(req)
	}

	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.Base.RoundTrip(cloned)
}
