package jadxd

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBaseURLRequired  = errors.New("jadxd: base url required")
	ErrPathRequired     = errors.New("jadxd: artifact path required")
	ErrSessionRequired  = errors.New("jadxd: session_id required")
	ErrTypeIDRequired   = errors.New("jadxd: type_id required")
	ErrMethodIDRequired = errors.New("jadxd: method_id required")
	ErrFieldIDRequired  = errors.New("jadxd: field_id required")
	ErrNameRequired     = errors.New("jadxd: name required")
	ErrQueryRequired    = errors.New("jadxd: query required")
	ErrAliasRequired    = errors.New("jadxd: alias required")
	ErrTargetRequired   = errors.New("jadxd: annotation target id required")
)

// ErrorKind is the stable taxonomy a caller dispatches on. The wire carries
// many error codes; the kind table collapses them into the few outcomes that
// change caller behavior (re-load, fix the id, check the service, give up).
type ErrorKind int

const (
	// KindGeneric is the declared fallback for every unrecognized code.
	KindGeneric ErrorKind = iota
	// KindSession marks a stale or unknown session; the caller must re-load.
	KindSession
	// KindNotFound marks a missing type/method/field/resource/manifest.
	KindNotFound
	// KindConnection marks a transport-level failure; no envelope exists and
	// no server-side state change occurred.
	KindConnection
	// KindDecode marks a response payload the client could not validate.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindNotFound:
		return "not_found"
	case KindConnection:
		return "connection"
	case KindDecode:
		return "decode"
	default:
		return "generic"
	}
}

// Error codes reported by the jadxd service, plus the two synthesized
// client-side (CONNECTION_ERROR, DECODE_ERROR).
const (
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeTypeNotFound        = "TYPE_NOT_FOUND"
	CodeMethodNotFound      = "METHOD_NOT_FOUND"
	CodeFieldNotFound       = "FIELD_NOT_FOUND"
	CodeManifestUnavailable = "MANIFEST_UNAVAILABLE"
	CodeResourceNotFound    = "RESOURCE_NOT_FOUND"
	CodeConnectionError     = "CONNECTION_ERROR"
	CodeDecodeError         = "DECODE_ERROR"
	CodeUnknown             = "UNKNOWN"
)

// kindByCode is the single source of truth for wire classification. Codes the
// service grows later fall through to KindGeneric; classification never fails.
var kindByCode = map[string]ErrorKind{
	CodeSessionNotFound:     KindSession,
	CodeTypeNotFound:        KindNotFound,
	CodeMethodNotFound:      KindNotFound,
	CodeFieldNotFound:       KindNotFound,
	CodeManifestUnavailable: KindNotFound,
	CodeResourceNotFound:    KindNotFound,
	CodeConnectionError:     KindConnection,
	CodeDecodeError:         KindDecode,
}

// ClassifyCode maps one wire error code to its kind, defaulting to
// KindGeneric for anything the table does not name.
func ClassifyCode(code string) ErrorKind {
	if kind, ok := kindByCode[strings.TrimSpace(code)]; ok {
		return kind
	}
	return KindGeneric
}

// Error is the typed failure surfaced for every non-success outcome. It keeps
// the original wire code, message and details so nothing is downgraded on the
// way to the caller.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]string

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("jadxd: [%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func wireError(code, message string, details map[string]string) *Error {
	if details == nil {
		details = map[string]string{}
	}
	return &Error{
		Kind:    ClassifyCode(code),
		Code:    code,
		Message: message,
		Details: details,
	}
}

func connectionError(baseURL string, cause error) *Error {
	return &Error{
		Kind:    KindConnection,
		Code:    CodeConnectionError,
		Message: fmt.Sprintf("cannot reach jadxd at %s: %v", baseURL, cause),
		Details: map[string]string{},
		cause:   cause,
	}
}

func decodeFailure(op string, cause error) *Error {
	return &Error{
		Kind:    KindDecode,
		Code:    CodeDecodeError,
		Message: fmt.Sprintf("decode %s response: %v", op, cause),
		Details: map[string]string{},
		cause:   cause,
	}
}

func staleSessionError(sessionID string) *Error {
	return &Error{
		Kind:    KindSession,
		Code:    CodeSessionNotFound,
		Message: fmt.Sprintf("session %q is not ready", sessionID),
		Details: map[string]string{},
	}
}

func errorKindIs(err error, kind ErrorKind) bool {
	var typed *Error
	if !errors.As(err, &typed) {
		return false
	}
	return typed.Kind == kind
}

// IsSessionError reports whether err classifies as a stale/unknown session.
func IsSessionError(err error) bool { return errorKindIs(err, KindSession) }

// IsNotFoundError reports whether err classifies as a missing entity.
func IsNotFoundError(err error) bool { return errorKindIs(err, KindNotFound) }

// IsConnectionError reports whether err is a transport-level failure.
func IsConnectionError(err error) bool { return errorKindIs(err, KindConnection) }

// IsDecodeError reports whether err is a client-side decoding failure.
func IsDecodeError(err error) bool { return errorKindIs(err, KindDecode) }
