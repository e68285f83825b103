package mockd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/danmuck/jadxdctl/internal/testutil/testlog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fx, err := SampleFixture()
	if err != nil {
		t.Fatalf("sample fixture: %v", err)
	}
	srv, err := New(Config{Fixtures: map[string]*Fixture{SampleFixturePath: fx}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.HTTPRouter().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type errorBody struct {
	Error struct {
		ErrorCode string            `json:"error_code"`
		Message   string            `json:"message"`
		Details   map[string]string `json:"details"`
	} `json:"error"`
}

func loadSession(t *testing.T, srv *Server) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/v1/load", map[string]any{"path": SampleFixturePath})
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, rec, &res)
	if res.SessionID == "" {
		t.Fatalf("load returned no session id")
	}
	return res.SessionID
}

func TestHealthEndpoint(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &res)
	if res.Status != "ok" {
		t.Errorf("status = %q", res.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
}

func TestLoadUnknownArtifact(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/load", map[string]any{"path": "/nope.apk"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var res errorBody
	decodeBody(t, rec, &res)
	if res.Error.ErrorCode != "LOAD_FAILED" {
		t.Errorf("error_code = %q", res.Error.ErrorCode)
	}
	if res.Error.Details["path"] != "/nope.apk" {
		t.Errorf("details = %v", res.Error.Details)
	}
}

func TestUnknownSessionEnvelope(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/sessions/ghost/types", map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var res errorBody
	decodeBody(t, rec, &res)
	if res.Error.ErrorCode != "SESSION_NOT_FOUND" {
		t.Errorf("error_code = %q", res.Error.ErrorCode)
	}
	if res.Error.Details["session_id"] != "ghost" {
		t.Errorf("details = %v", res.Error.Details)
	}
}

func TestEntityNotFoundCodes(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	sid := loadSession(t, srv)

	cases := []struct {
		path string
		body map[string]any
		code string
	}{
		{"/methods", map[string]any{"type_id": "Lnope;"}, "TYPE_NOT_FOUND"},
		{"/decompile", map[string]any{"method_id": "Lnope;->m()V"}, "METHOD_NOT_FOUND"},
		{"/xrefs/field", map[string]any{"field_id": "Lnope;->f:I"}, "FIELD_NOT_FOUND"},
		{"/resources/content", map[string]any{"name": "missing.bin"}, "RESOURCE_NOT_FOUND"},
	}
	for _, tc := range cases {
		rec := doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sid+tc.path, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d", tc.path, rec.Code)
			continue
		}
		var res errorBody
		decodeBody(t, rec, &res)
		if res.Error.ErrorCode != tc.code {
			t.Errorf("%s error_code = %q, want %q", tc.path, res.Error.ErrorCode, tc.code)
		}
	}
}

func TestManifestUnavailable(t *testing.T) {
	testlog.Start(t)

	gin.SetMode(gin.TestMode)
	fx, err := ParseFixture([]byte("name: bare\ntypes: []\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	srv, err := New(Config{Fixtures: map[string]*Fixture{"/bare.dex": fx}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := doJSON(t, srv, http.MethodPost, "/v1/load", map[string]any{"path": "/bare.dex"})
	var loaded struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, rec, &loaded)

	rec = doJSON(t, srv, http.MethodPost, "/v1/sessions/"+loaded.SessionID+"/manifest", map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var res errorBody
	decodeBody(t, rec, &res)
	if res.Error.ErrorCode != "MANIFEST_UNAVAILABLE" {
		t.Errorf("error_code = %q", res.Error.ErrorCode)
	}
}

func TestLoadEchoesSettings(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/load", map[string]any{
		"path": SampleFixturePath,
		"settings": map[string]any{
			"deobfuscation":          true,
			"inline_methods":         false,
			"show_inconsistent_code": true,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res struct {
		Provenance struct {
			Settings struct {
				Deobfuscation bool `json:"deobfuscation"`
				InlineMethods bool `json:"inline_methods"`
			} `json:"settings"`
		} `json:"provenance"`
	}
	decodeBody(t, rec, &res)
	if !res.Provenance.Settings.Deobfuscation || res.Provenance.Settings.InlineMethods {
		t.Errorf("settings not echoed: %+v", res.Provenance.Settings)
	}
}

func TestInvalidRegexRejected(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	sid := loadSession(t, srv)
	rec := doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sid+"/strings",
		map[string]any{"query": "([", "regex": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var res errorBody
	decodeBody(t, rec, &res)
	if res.Error.ErrorCode != "INVALID_REGEX" {
		t.Errorf("error_code = %q", res.Error.ErrorCode)
	}
}

func TestCloseDestroysSession(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	sid := loadSession(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sid+"/close", map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("close status = %d", rec.Code)
	}
	var res struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &res)
	if res.Status != "closed" {
		t.Errorf("status = %q", res.Status)
	}

	rec = doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sid+"/close", map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("double close status = %d", rec.Code)
	}
}

func TestRenameAcceptsUnknownID(t *testing.T) {
	testlog.Start(t)

	srv := newTestServer(t)
	sid := loadSession(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sid+"/rename",
		map[string]any{"id": "Lmystery;->x()V", "alias": "decoded"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/v1/sessions/"+sid+"/renames", map[string]any{})
	var res struct {
		Renames []struct {
			OriginalID string `json:"original_id"`
			EntityKind string `json:"entity_kind"`
		} `json:"renames"`
	}
	decodeBody(t, rec, &res)
	if len(res.Renames) != 1 || res.Renames[0].EntityKind != "unknown" {
		t.Errorf("renames = %+v", res.Renames)
	}
}
