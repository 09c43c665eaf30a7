package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"

	"github.com/ansel1/merry/v2"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

// Getter issues GET requests with the given headers.
type Getter interface {
	Get(ctx context.Context, rawURL string, header http.Header) (*Response, error)
}

// Client implements Getter on top of resty. Close releases idle
// connections of clients built here; caller-supplied clients are left alone.
type Client struct {
	rc    *resty.Client
	owned bool
}

// New resolves an Override into a ready Client. A nil Override behaves
// like NoOverride.
func New(o Override) (*Client, error) {
	switch o := o.(type) {
	case nil, NoOverride:
		return &Client{rc: newResty(defaultHTTPClient()), owned: true}, nil
	case Prebuilt:
		if o.Client == nil {
			return nil, errors.New("prebuilt transport has no client")
		}
		// Copy so resty's defaults never leak into the caller's client.
		hc := *o.Client
		return &Client{rc: newResty(&hc)}, nil
	case Proxy:
		u, err := o.URL()
		if err != nil {
			return nil, err
		}
		rc := newResty(defaultHTTPClient())
		rc.SetProxy(u.String())
		log.Printf("[fetch] routing requests through proxy %s", u.Redacted())
		return &Client{rc: rc, owned: true}, nil
	default:
		return nil, fmt.Errorf("unsupported transport override %T", o)
	}
}

func defaultHTTPClient() *http.Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{
		Jar:       jar,
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

func newResty(hc *http.Client) *resty.Client {
	rc := resty.NewWithClient(hc)
	rc.SetDisableWarn(true)
	return rc
}

// Get performs the request and returns the raw status and body. Non-2xx
// statuses are not errors here; callers decide what they mean.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) (*Response, error) {
	req := c.rc.R().SetContext(ctx)
	for key := range header {
		req.SetHeader(key, header.Get(key))
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		log.Printf("[fetch] GET %s failed: %v", rawURL, err)
		return nil, merry.Wrap(err, merry.WithHTTPCode(http.StatusBadGateway))
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}, nil
}

// Close drops the idle keep-alive connections of a transport this package
// created. It is a no-op for Prebuilt clients.
func (c *Client) Close() {
	if !c.owned {
		return
	}
	c.rc.GetClient().CloseIdleConnections()
}
