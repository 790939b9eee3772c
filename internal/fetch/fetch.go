// Package fetch abstracts outbound HTTP for the page scraper so tests can
// run against canned responses instead of live hosting providers.
package fetch

import (
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Fetcher abstracts HTTP calls for testability
type Fetcher interface {
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// RealFetcher wraps http.Client for production use
type RealFetcher struct {
	client *http.Client
}

// NewRealFetcher creates a production HTTP fetcher with the given timeout
func NewRealFetcher(timeout time.Duration) Fetcher {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
	return &RealFetcher{client: client}
}

func (f *RealFetcher) Get(url string) (*http.Response, error) {
	return f.client.Get(url)
}

func (f *RealFetcher) Do(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

// ReadBody drains the response body and decodes it according to the
// charset declared in the Content-Type header. Responses without a
// declared charset (or with one Go has no decoder for) are read as-is,
// which is correct for UTF-8 and ASCII pages.
func ReadBody(resp *http.Response) (string, error) {
	var reader io.Reader = resp.Body

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			if name, ok := params["charset"]; ok && !strings.EqualFold(name, "utf-8") {
				if enc, err := htmlindex.Get(name); err == nil && enc != nil {
					reader = transform.NewReader(resp.Body, enc.NewDecoder())
				}
			}
		}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// MockFetcher simulates HTTP responses for testing
type MockFetcher struct {
	responses map[string]*http.Response
	errors    map[string]error
}

// NewMockFetcher creates a mock HTTP fetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		responses: make(map[string]*http.Response),
		errors:    make(map[string]error),
	}
}

// AddResponse registers a mock response for a URL
func (m *MockFetcher) AddResponse(urlStr string, statusCode int, body string) {
	m.AddResponseWithHeader(urlStr, statusCode, body, nil)
}

// AddResponseWithHeader registers a mock response with explicit headers
func (m *MockFetcher) AddResponseWithHeader(urlStr string, statusCode int, body string, header http.Header) {
	if header == nil {
		header = make(http.Header)
	}
	parsedURL, _ := url.Parse(urlStr)
	m.responses[urlStr] = &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
		Request: &http.Request{
			URL: parsedURL,
		},
	}
}

// AddError registers a mock error for a URL
func (m *MockFetcher) AddError(urlStr string, err error) {
	m.errors[urlStr] = err
}

func (m *MockFetcher) Get(urlStr string) (*http.Response, error) {
	if err, ok := m.errors[urlStr]; ok {
		return nil, err
	}
	if resp, ok := m.responses[urlStr]; ok {
		return resp, nil
	}
	// Unknown URLs look like missing pages
	return &http.Response{
		StatusCode: 404,
		Body:       io.NopCloser(strings.NewReader("Not Found")),
		Header:     make(http.Header),
	}, nil
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	return m.Get(req.URL.String())
}
