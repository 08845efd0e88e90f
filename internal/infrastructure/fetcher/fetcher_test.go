package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept-Language") != acceptLanguage {
			t.Errorf("unexpected accept-language: %s", r.Header.Get("Accept-Language"))
		}
		_, _ = w.Write([]byte("<html><title>ok</title></html>"))
	}))
	defer server.Close()

	f := New(server.Client(), "")
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "<html><title>ok</title></html>" {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	body, err := New(server.Client(), "").Fetch(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "moved" {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := New(server.Client(), "").Fetch(context.Background(), server.URL)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", fe.StatusCode)
	}
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := server.Client()
	client.Timeout = 50 * time.Millisecond

	_, err := New(client, "").Fetch(context.Background(), server.URL)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !fe.IsTimeout() {
		t.Fatalf("expected timeout error, got %v", fe.Err)
	}
}
