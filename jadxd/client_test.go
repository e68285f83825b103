package jadxd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/danmuck/jadxdctl/internal/testutil/testlog"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	testlog.Start(t)

	cases := []string{"not a url", "://nope", "/just/a/path"}
	for _, base := range cases {
		if _, err := NewClient(Config{BaseURL: base}); !errors.Is(err, ErrBaseURLRequired) {
			t.Errorf("NewClient(%q) err = %v, want ErrBaseURLRequired", base, err)
		}
	}
}

func TestNewClientDefaults(t *testing.T) {
	testlog.Start(t)

	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("base url = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	testlog.Start(t)

	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:8085/"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()
	if client.BaseURL() != "http://127.0.0.1:8085" {
		t.Errorf("base url = %q", client.BaseURL())
	}
}

func TestHealthRoundTrip(t *testing.T) {
	testlog.Start(t)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/health" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "uptime": "1m", "backend": "jadx", "version": "1.5.0"}`))
	}))

	res, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if res.Status != "ok" || res.Backend != "jadx" {
		t.Errorf("unexpected health result: %+v", res)
	}
}

func TestSessionPostPathAndBody(t *testing.T) {
	testlog.Start(t)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/v1/sessions/s%20id/types" {
			t.Errorf("session id must be path-escaped, got %s", r.URL.EscapedPath())
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.Write([]byte(`{"session_id": "s id", "types": [], "provenance": ` + provenanceJSON + `}`))
	}))

	if _, err := client.ListTypes(context.Background(), "s id"); err != nil {
		t.Fatalf("list types: %v", err)
	}
}

func TestWireErrorClassification(t *testing.T) {
	testlog.Start(t)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"error_code": "TYPE_NOT_FOUND", "message": "type \"LA;\" not found", "details": {"type_id": "LA;"}}}`))
	}))

	_, err := client.ListMethods(context.Background(), "s1", "LA;")
	if err == nil {
		t.Fatalf("expected wire error")
	}
	if !IsNotFoundError(err) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if typed.Code != CodeTypeNotFound || typed.Details["type_id"] != "LA;" {
		t.Errorf("wire fields lost: %+v", typed)
	}
}

func TestWireErrorUnparseableEnvelope(t *testing.T) {
	testlog.Start(t)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.Health(context.Background())
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if typed.Code != CodeUnknown || typed.Kind != KindGeneric {
		t.Errorf("expected UNKNOWN/generic, got %+v", typed)
	}
	if typed.Message != "upstream exploded" {
		t.Errorf("raw body must survive as message, got %q", typed.Message)
	}
}

func TestErrorCodeAuthoritativeOverStatus(t *testing.T) {
	testlog.Start(t)

	// A 500 carrying a session envelope still classifies as a session error.
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"error_code": "SESSION_NOT_FOUND", "message": "gone", "details": {}}}`))
	}))

	_, err := client.ListTypes(context.Background(), "s1")
	if !IsSessionError(err) {
		t.Fatalf("body code must win over HTTP status, got %v", err)
	}
}

func TestConnectionErrorOnUnreachableEndpoint(t *testing.T) {
	testlog.Start(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: base, Timeout: time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	_, err = client.Health(context.Background())
	if !IsConnectionError(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestStructuralSentinels(t *testing.T) {
	testlog.Start(t)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request must reach the wire: %s", r.URL.Path)
	}))
	ctx := context.Background()

	if _, err := client.Load(ctx, "  ", nil); !errors.Is(err, ErrPathRequired) {
		t.Errorf("Load err = %v, want ErrPathRequired", err)
	}
	if _, err := client.ListTypes(ctx, ""); !errors.Is(err, ErrSessionRequired) {
		t.Errorf("ListTypes err = %v, want ErrSessionRequired", err)
	}
	if _, err := client.ListMethods(ctx, "s1", ""); !errors.Is(err, ErrTypeIDRequired) {
		t.Errorf("ListMethods err = %v, want ErrTypeIDRequired", err)
	}
	if _, err := client.DecompileMethod(ctx, "s1", ""); !errors.Is(err, ErrMethodIDRequired) {
		t.Errorf("DecompileMethod err = %v, want ErrMethodIDRequired", err)
	}
	if _, err := client.FieldXrefs(ctx, "s1", ""); !errors.Is(err, ErrFieldIDRequired) {
		t.Errorf("FieldXrefs err = %v, want ErrFieldIDRequired", err)
	}
	if _, err := client.SearchStrings(ctx, "s1", "", false, 0); !errors.Is(err, ErrQueryRequired) {
		t.Errorf("SearchStrings err = %v, want ErrQueryRequired", err)
	}
	if _, err := client.GetResourceContent(ctx, "s1", ""); !errors.Is(err, ErrNameRequired) {
		t.Errorf("GetResourceContent err = %v, want ErrNameRequired", err)
	}
	if _, err := client.Rename(ctx, "s1", "id", ""); !errors.Is(err, ErrAliasRequired) {
		t.Errorf("Rename err = %v, want ErrAliasRequired", err)
	}
	if _, err := client.GetAnnotations(ctx, "s1", AnnotationTarget{}); !errors.Is(err, ErrTargetRequired) {
		t.Errorf("GetAnnotations err = %v, want ErrTargetRequired", err)
	}
	both := AnnotationTarget{TypeID: "LA;", MethodID: "LA;->m()V"}
	if _, err := client.GetAnnotations(ctx, "s1", both); !errors.Is(err, ErrTargetRequired) {
		t.Errorf("GetAnnotations with two ids err = %v, want ErrTargetRequired", err)
	}
}

func TestSearchStringsDefaultsLimit(t *testing.T) {
	testlog.Start(t)

	var gotLimit int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Limit int `json:"limit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotLimit = req.Limit
		w.Write([]byte(`{"session_id": "s1", "query": "x", "matches": [], "total_count": 0, "provenance": ` + provenanceJSON + `}`))
	}))

	if _, err := client.SearchStrings(context.Background(), "s1", "x", false, -5); err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotLimit != DefaultSearchLimit {
		t.Errorf("limit sent = %d, want %d", gotLimit, DefaultSearchLimit)
	}
}
