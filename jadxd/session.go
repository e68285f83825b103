package jadxd

import (
	"context"
	"errors"
)

var (
	ErrSessionBusy   = errors.New("jadxd: session load already in progress")
	ErrSessionLoaded = errors.New("jadxd: session already loaded")
)

// SessionState is the client-held lifecycle of one Session handle.
type SessionState int

const (
	SessionUnloaded SessionState = iota
	SessionLoading
	SessionReady
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionReady:
		return "ready"
	case SessionClosed:
		return "closed"
	default:
		return "unloaded"
	}
}

// Session is a thin client-held token around one server-side session: the
// opaque id plus lifecycle state. It mirrors no entity data — every query is
// answered by the service at call time. The handle is owned by one caller;
// it provides no coordination for concurrent mutation of its state.
type Session struct {
	client *Client
	state  SessionState

	id           string
	artifactHash string
	inputType    string
	classCount   int
}

// NewSession binds an unloaded handle to a client.
func NewSession(client *Client) *Session {
	return &Session{client: client, state: SessionUnloaded}
}

// Open is the one-call path: load path on a fresh handle and return it Ready.
func Open(ctx context.Context, client *Client, path string, settings *DecompileSettings) (*Session, *LoadResult, error) {
	s := NewSession(client)
	res, err := s.Load(ctx, path, settings)
	if err != nil {
		return nil, nil, err
	}
	return s, res, nil
}

// State reports the handle lifecycle state.
func (s *Session) State() SessionState { return s.state }

// ID is the opaque server-issued session id; empty until Ready.
func (s *Session) ID() string { return s.id }

// ArtifactHash is the content fingerprint of the loaded input.
func (s *Session) ArtifactHash() string { return s.artifactHash }

// InputType reports what kind of artifact was loaded (apk, dex, ...).
func (s *Session) InputType() string { return s.inputType }

// ClassCount reports how many classes the artifact declared at load time.
func (s *Session) ClassCount() int { return s.classCount }

// Load transitions Unloaded → Ready. Failure leaves the handle Unloaded: no
// session was created. A Closed handle may load again; that always starts a
// fresh session with a new id — a closed session is never resurrected.
func (s *Session) Load(ctx context.Context, path string, settings *DecompileSettings) (*LoadResult, error) {
	switch s.state {
	case SessionLoading:
		return nil, ErrSessionBusy
	case SessionReady:
		return nil, ErrSessionLoaded
	}
	s.state = SessionLoading
	res, err := s.client.Load(ctx, path, settings)
	if err != nil {
		s.state = SessionUnloaded
		return nil, err
	}
	s.id = res.SessionID
	s.artifactHash = res.ArtifactHash
	s.inputType = res.InputType
	s.classCount = res.ClassCount
	s.state = SessionReady
	return res, nil
}

// Close transitions Ready → Closed. Closing a handle that is not Ready
// surfaces a session error without a round trip; the server reports the same
// for an unknown id.
func (s *Session) Close(ctx context.Context) (*CloseResult, error) {
	if s.state != SessionReady {
		return nil, staleSessionError(s.id)
	}
	res, err := s.client.CloseSession(ctx, s.id)
	if err != nil {
		// A session error means the server already forgot us; the handle is
		// equally dead either way.
		if IsSessionError(err) {
			s.state = SessionClosed
		}
		return nil, err
	}
	s.state = SessionClosed
	return res, nil
}

// ready guards every query: anything but Ready is a session-not-found
// condition, reported without touching the wire.
func (s *Session) ready() error {
	if s.state != SessionReady {
		return staleSessionError(s.id)
	}
	return nil
}

func (s *Session) ListTypes(ctx context.Context) (*TypeListResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListTypes(ctx, s.id)
}

func (s *Session) ListMethods(ctx context.Context, typeID string) (*MethodListResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListMethods(ctx, s.id, typeID)
}

func (s *Session) ListMethodsDetail(ctx context.Context, typeID string) (*MethodDetailResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListMethodsDetail(ctx, s.id, typeID)
}

func (s *Session) ListFields(ctx context.Context, typeID string) (*FieldListResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListFields(ctx, s.id, typeID)
}

func (s *Session) DecompileClass(ctx context.Context, typeID string) (*ClassDecompileResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.DecompileClass(ctx, s.id, typeID)
}

func (s *Session) GetHierarchy(ctx context.Context, typeID string) (*ClassHierarchyResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.GetHierarchy(ctx, s.id, typeID)
}

func (s *Session) DecompileMethod(ctx context.Context, methodID string) (*DecompiledMethod, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.DecompileMethod(ctx, s.id, methodID)
}

func (s *Session) XrefsTo(ctx context.Context, methodID string) (*XrefResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.XrefsTo(ctx, s.id, methodID)
}

func (s *Session) XrefsFrom(ctx context.Context, methodID string) (*XrefResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.XrefsFrom(ctx, s.id, methodID)
}

func (s *Session) FieldXrefs(ctx context.Context, fieldID string) (*XrefResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.FieldXrefs(ctx, s.id, fieldID)
}

func (s *Session) ClassXrefs(ctx context.Context, typeID string) (*XrefResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ClassXrefs(ctx, s.id, typeID)
}

func (s *Session) Overrides(ctx context.Context, methodID string) (*OverrideResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.Overrides(ctx, s.id, methodID)
}

func (s *Session) UnresolvedRefs(ctx context.Context, methodID string) (*UnresolvedRefsResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.UnresolvedRefs(ctx, s.id, methodID)
}

func (s *Session) SearchStrings(ctx context.Context, query string, regex bool, limit int) (*StringSearchResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.SearchStrings(ctx, s.id, query, regex, limit)
}

func (s *Session) GetManifest(ctx context.Context) (*ManifestResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.GetManifest(ctx, s.id)
}

func (s *Session) ListResources(ctx context.Context) (*ResourceListResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListResources(ctx, s.id)
}

func (s *Session) GetResourceContent(ctx context.Context, name string) (*ResourceContentResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.GetResourceContent(ctx, s.id, name)
}

func (s *Session) Rename(ctx context.Context, id, alias string) (*RenameResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.Rename(ctx, s.id, id, alias)
}

func (s *Session) RemoveRename(ctx context.Context, id string) (*RenameResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.RemoveRename(ctx, s.id, id)
}

func (s *Session) ListRenames(ctx context.Context) (*RenameListResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListRenames(ctx, s.id)
}

func (s *Session) ErrorReport(ctx context.Context) (*ErrorReportResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ErrorReport(ctx, s.id)
}

func (s *Session) GetAnnotations(ctx context.Context, target AnnotationTarget) (*AnnotationResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.GetAnnotations(ctx, s.id, target)
}

func (s *Session) GetDependencies(ctx context.Context, typeID string) (*DependencyResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.GetDependencies(ctx, s.id, typeID)
}

func (s *Session) ListPackages(ctx context.Context) (*PackageListResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListPackages(ctx, s.id)
}
