package jadxd

import (
	"strings"
	"testing"

	"github.com/danmuck/jadxdctl/internal/testutil/testlog"
)

const provenanceJSON = `{"backend": "jadx", "backend_version": "1.5.0", "settings": {}}`

func TestDecodeResultDefaultsCollections(t *testing.T) {
	testlog.Start(t)

	raw := []byte(`{"session_id": "s1", "provenance": ` + provenanceJSON + `}`)
	var out TypeListResult
	if err := decodeResult("types", raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Types == nil {
		t.Fatalf("absent types must decode to empty slice, not nil")
	}
	if out.Warnings == nil {
		t.Fatalf("absent warnings must decode to empty slice, not nil")
	}
}

func TestDecodeResultRejectsMissingRequiredField(t *testing.T) {
	testlog.Start(t)

	raw := []byte(`{"types": [], "provenance": ` + provenanceJSON + `}`)
	var out TypeListResult
	err := decodeResult("types", raw, &out)
	if err == nil {
		t.Fatalf("expected decode failure for missing session_id")
	}
	if !IsDecodeError(err) {
		t.Fatalf("expected decode kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "session_id") {
		t.Errorf("error must name the missing field: %v", err)
	}
	if !strings.Contains(err.Error(), "types") {
		t.Errorf("error must name the operation: %v", err)
	}
}

func TestDecodeResultRejectsMalformedJSON(t *testing.T) {
	testlog.Start(t)

	var out HealthResult
	err := decodeResult("health", []byte(`{"status": `), &out)
	if err == nil || !IsDecodeError(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDecodeResultRejectsInvalidNestedEntity(t *testing.T) {
	testlog.Start(t)

	// The nested method is missing its name; the whole payload must fail.
	raw := []byte(`{
		"session_id": "s1",
		"type_id": "LA;",
		"methods": [{"id": "LA;->m()V"}],
		"provenance": ` + provenanceJSON + `
	}`)
	var out MethodListResult
	if err := decodeResult("methods", raw, &out); err == nil {
		t.Fatalf("expected failure for invalid nested method")
	}
}

func TestLoadResultValidate(t *testing.T) {
	testlog.Start(t)

	raw := []byte(`{
		"session_id": "s1",
		"artifact_hash": "abc",
		"input_type": "apk",
		"class_count": 3,
		"provenance": ` + provenanceJSON + `
	}`)
	var out LoadResult
	if err := decodeResult("load", raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Warnings == nil {
		t.Fatalf("warnings must default to empty")
	}
	if out.ClassCount != 3 {
		t.Errorf("class_count = %d, want 3", out.ClassCount)
	}
}

func TestProvenanceBackendDefaults(t *testing.T) {
	testlog.Start(t)

	p := Provenance{BackendVersion: "1.5.0"}
	if err := p.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if p.Backend != "jadx" {
		t.Errorf("backend = %q, want %q", p.Backend, "jadx")
	}

	missing := Provenance{Backend: "jadx"}
	if err := missing.validate(); err == nil {
		t.Fatalf("expected failure for missing backend_version")
	}
}

func TestRequireFieldsIsDeterministic(t *testing.T) {
	testlog.Start(t)

	fields := map[string]string{"zeta": "", "alpha": "", "mid": ""}
	for i := 0; i < 10; i++ {
		err := requireFields(fields)
		if err == nil {
			t.Fatalf("expected error")
		}
		// Sorted key order: alpha always reports first.
		if !strings.Contains(err.Error(), `"alpha"`) {
			t.Fatalf("expected alpha reported first, got %v", err)
		}
	}
}

func TestDecompiledMethodDefaultsKind(t *testing.T) {
	testlog.Start(t)

	raw := []byte(`{"id": "LA;->m()V", "provenance": ` + provenanceJSON + `}`)
	var out DecompiledMethod
	if err := decodeResult("decompile", raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != "decompiled_method" {
		t.Errorf("kind = %q", out.Kind)
	}
	if out.Java != nil || out.Smali != nil {
		t.Errorf("absent renderings must stay nil")
	}
	if out.Locations == nil {
		t.Errorf("locations must default to empty map")
	}
}

func TestStringSearchResultDefaultsNestedLocations(t *testing.T) {
	testlog.Start(t)

	raw := []byte(`{
		"session_id": "s1",
		"query": "http",
		"matches": [{"value": "http://x"}],
		"total_count": 1,
		"provenance": ` + provenanceJSON + `
	}`)
	var out StringSearchResult
	if err := decodeResult("strings", raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Matches[0].Locations == nil {
		t.Fatalf("match locations must default to empty")
	}
}
