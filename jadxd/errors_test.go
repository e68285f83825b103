package jadxd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/danmuck/jadxdctl/internal/testutil/testlog"
)

func TestClassifyCode(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		code string
		want ErrorKind
	}{
		{CodeSessionNotFound, KindSession},
		{CodeTypeNotFound, KindNotFound},
		{CodeMethodNotFound, KindNotFound},
		{CodeFieldNotFound, KindNotFound},
		{CodeResourceNotFound, KindNotFound},
		{CodeManifestUnavailable, KindNotFound},
		{CodeConnectionError, KindConnection},
		{CodeDecodeError, KindDecode},
		{" SESSION_NOT_FOUND ", KindSession},
		{"DECOMPILE_EXPLODED", KindGeneric},
		{"", KindGeneric},
	}
	for _, tc := range cases {
		if got := ClassifyCode(tc.code); got != tc.want {
			t.Errorf("ClassifyCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	testlog.Start(t)

	sessionErr := wireError(CodeSessionNotFound, "session gone", nil)
	if !IsSessionError(sessionErr) {
		t.Fatalf("expected session error: %v", sessionErr)
	}
	if IsNotFoundError(sessionErr) {
		t.Fatalf("session error misclassified as not-found")
	}

	wrapped := fmt.Errorf("during walkthrough: %w", sessionErr)
	if !IsSessionError(wrapped) {
		t.Fatalf("predicate must see through wrapping: %v", wrapped)
	}

	if !IsNotFoundError(wireError(CodeTypeNotFound, "no such type", nil)) {
		t.Fatalf("type-not-found must classify as not-found")
	}
	if !IsConnectionError(connectionError("http://127.0.0.1:1", errors.New("refused"))) {
		t.Fatalf("connection failure must classify as connection")
	}
	if !IsDecodeError(decodeFailure("types", errors.New("bad json"))) {
		t.Fatalf("decode failure must classify as decode")
	}
	if IsSessionError(errors.New("plain")) {
		t.Fatalf("untyped error must not classify")
	}
}

func TestErrorPreservesWireFields(t *testing.T) {
	testlog.Start(t)

	err := wireError("RESOURCE_NOT_FOUND", "resource missing", map[string]string{"name": "assets/x"})
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatalf("errors.As failed on %v", err)
	}
	if typed.Code != CodeResourceNotFound {
		t.Errorf("code = %q, want %q", typed.Code, CodeResourceNotFound)
	}
	if typed.Message != "resource missing" {
		t.Errorf("message = %q", typed.Message)
	}
	if typed.Details["name"] != "assets/x" {
		t.Errorf("details lost: %v", typed.Details)
	}
	if typed.Kind != KindNotFound {
		t.Errorf("kind = %v, want %v", typed.Kind, KindNotFound)
	}
}

func TestConnectionErrorUnwrap(t *testing.T) {
	testlog.Start(t)

	cause := errors.New("dial tcp: connection refused")
	err := connectionError("http://127.0.0.1:1", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("connection error must unwrap to its cause")
	}
}

func TestErrorKindString(t *testing.T) {
	testlog.Start(t)

	cases := map[ErrorKind]string{
		KindGeneric:    "generic",
		KindSession:    "session",
		KindNotFound:   "not_found",
		KindConnection: "connection",
		KindDecode:     "decode",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
