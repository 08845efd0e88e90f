package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestPublishDigestPostsForm(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		texts []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottoken/sendMessage" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.Form.Get("chat_id") != "42" || r.Form.Get("parse_mode") != "HTML" {
			t.Errorf("unexpected form: %v", r.Form)
		}
		mu.Lock()
		texts = append(texts, r.Form.Get("text"))
		mu.Unlock()
	}))
	defer server.Close()

	n := NewNotifier("token", "42")
	n.apiBase = server.URL
	n.client = server.Client()

	if err := n.PublishDigest(context.Background(), "- <b>Title</b>\nhttps://go.dev\n\n"); err != nil {
		t.Fatalf("PublishDigest returned error: %v", err)
	}
	if len(texts) != 1 || texts[0] != "- <b>Title</b>\nhttps://go.dev" {
		t.Fatalf("unexpected texts: %q", texts)
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	if err := NewNotifier("", "").PublishDigest(context.Background(), "x"); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}

func TestPublishDigestStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	n := NewNotifier("token", "42")
	n.apiBase = server.URL
	n.client = server.Client()

	if err := n.PublishDigest(context.Background(), "x"); err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSplitDigest(t *testing.T) {
	t.Parallel()

	got := splitDigest("aaaa\n\nbbbb\n\ncc", 10)
	want := []string{"aaaa\n\nbbbb", "cc"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("want %q, got %q", want, got)
	}

	long := splitDigest(strings.Repeat("x", 25), 10)
	if len(long) != 3 || long[2] != "xxxxx" {
		t.Fatalf("unexpected hard split: %q", long)
	}
}
