package fetch

import (
	"errors"
	"net/http"
	"testing"
)

func TestMockFetcherCannedResponse(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddResponse("https://example.com/project", 200, "<html>page</html>")

	resp, err := mock.Get("https://example.com/project")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	body, err := ReadBody(resp)
	if err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if body != "<html>page</html>" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestMockFetcherError(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddError("https://example.com/down", errors.New("connection refused"))

	if _, err := mock.Get("https://example.com/down"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestMockFetcherUnknownURLIs404(t *testing.T) {
	mock := NewMockFetcher()
	resp, err := mock.Get("https://example.com/missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != 404 {
		t.Errorf("expected 404 for unknown URL, got %d", resp.StatusCode)
	}
}

func TestReadBodyDeclaredCharset(t *testing.T) {
	mock := NewMockFetcher()
	header := make(http.Header)
	header.Set("Content-Type", "text/html; charset=iso-8859-1")
	// "café" in Latin-1: caf\xe9
	mock.AddResponseWithHeader("https://example.com/latin1", 200, "caf\xe9", header)

	resp, err := mock.Get("https://example.com/latin1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := ReadBody(resp)
	if err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if body != "café" {
		t.Errorf("expected decoded Latin-1 body %q, got %q", "café", body)
	}
}

func TestReadBodyNoCharsetPassthrough(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddResponse("https://example.com/plain", 200, "plain utf-8 body")

	resp, _ := mock.Get("https://example.com/plain")
	defer func() { _ = resp.Body.Close() }()

	body, err := ReadBody(resp)
	if err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if body != "plain utf-8 body" {
		t.Errorf("unexpected body: %q", body)
	}
}
