package fetch

import (
	"fmt"
	"net/http"
	"net/url"
)

// Override selects how outgoing requests are routed. It is one of
// NoOverride, Proxy or Prebuilt.
type Override interface {
	isOverride()
}

// NoOverride uses a plain client with no proxy.
type NoOverride struct{}

// ProxyAuth holds proxy credentials.
type ProxyAuth struct {
	Username string
	Password string
}

// Proxy routes requests through the proxy at Host (e.g. "http://proxy.example.com:8080").
// Credentials, when set, are embedded into the proxy URL's userinfo.
type Proxy struct {
	Host string
	Auth *ProxyAuth
}

// Prebuilt uses a caller-supplied HTTP client as-is. It takes precedence over
// any proxy settings the caller may also hold.
type Prebuilt struct {
	Client *http.Client
}

func (NoOverride) isOverride() {}
func (Proxy) isOverride()      {}
func (Prebuilt) isOverride()   {}

// URL returns the proxy URL with credentials applied.
func (p Proxy) URL() (*url.URL, error) {
	u, err := url.Parse(p.Host)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy host: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy host %q is not an absolute URL", p.Host)
	}
	if p.Auth != nil {
		u.User = url.UserPassword(p.Auth.Username, p.Auth.Password)
	}
	return u, nil
}

// Response is the status and body text of a completed GET.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
