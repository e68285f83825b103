package jadxd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is where a locally started jadxd daemon listens.
	DefaultBaseURL = "http://127.0.0.1:8085"
	// DefaultTimeout bounds one request/response exchange. Large artifacts
	// decompile slowly on first touch.
	DefaultTimeout = 300 * time.Second

	// DefaultSearchLimit caps string search results when the caller passes a
	// non-positive limit.
	DefaultSearchLimit = 200
)

// Config carries the client transport settings.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the transport when set; Timeout is ignored then.
	HTTPClient *http.Client
	// Logger receives per-request debug events. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns the daemon defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client issues synchronous request/response exchanges against one jadxd
// endpoint. It is safe for concurrent use; ordering between concurrent calls
// on one session is the service's concern, not the client's.
type Client struct {
	baseURL string
	http    *http.Client
	ownHTTP bool
	log     zerolog.Logger
}

// NewClient validates cfg and binds a transport. Zero-value fields fall back
// to DefaultConfig values.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrBaseURLRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	ownHTTP := false
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
		ownHTTP = true
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Client{
		baseURL: base,
		http:    httpClient,
		ownHTTP: ownHTTP,
		log:     logger,
	}, nil
}

// BaseURL reports the endpoint this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the transport. Idle connections are dropped immediately so
// no socket outlives the client on any exit path.
func (c *Client) Close() error {
	if c.ownHTTP {
		c.http.CloseIdleConnections()
	}
	return nil
}

// ── Operations ─────────────────────────────────────────────────────────────

// Health probes daemon liveness without touching any session.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	out := &HealthResult{}
	if err := c.get(ctx, "health", "/v1/health", out); err != nil {
		return nil, err
	}
	return out, nil
}

type loadRequest struct {
	Path     string             `json:"path"`
	Settings *DecompileSettings `json:"settings,omitempty"`
}

// Load submits one artifact path for decompilation and opens a fresh session.
// A nil settings uses the daemon defaults. On failure no session exists.
func (c *Client) Load(ctx context.Context, path string, settings *DecompileSettings) (*LoadResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	out := &LoadResult{}
	if err := c.post(ctx, "load", "/v1/load", loadRequest{Path: path, Settings: settings}, out); err != nil {
		return nil, err
	}
	return out, nil
}

type emptyRequest struct{}

type typeIDRequest struct {
	TypeID string `json:"type_id"`
}

type methodIDRequest struct {
	MethodID string `json:"method_id"`
}

type fieldIDRequest struct {
	FieldID string `json:"field_id"`
}

// ListTypes lists every type in the loaded artifact.
func (c *Client) ListTypes(ctx context.Context, sessionID string) (*TypeListResult, error) {
	out := &TypeListResult{}
	if err := c.sessionPost(ctx, "types", sessionID, "/types", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMethods lists method summaries declared by typeID.
func (c *Client) ListMethods(ctx context.Context, sessionID, typeID string) (*MethodListResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &MethodListResult{}
	if err := c.sessionPost(ctx, "methods", sessionID, "/methods", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMethodsDetail lists full method signatures declared by typeID.
func (c *Client) ListMethodsDetail(ctx context.Context, sessionID, typeID string) (*MethodDetailResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &MethodDetailResult{}
	if err := c.sessionPost(ctx, "methods/detail", sessionID, "/methods/detail", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFields lists fields declared by typeID.
func (c *Client) ListFields(ctx context.Context, sessionID, typeID string) (*FieldListResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &FieldListResult{}
	if err := c.sessionPost(ctx, "fields", sessionID, "/fields", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompileClass renders one whole class as Java source.
func (c *Client) DecompileClass(ctx context.Context, sessionID, typeID string) (*ClassDecompileResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &ClassDecompileResult{}
	if err := c.sessionPost(ctx, "decompile/class", sessionID, "/decompile/class", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHierarchy reports supertype, interfaces and inner classes of typeID.
func (c *Client) GetHierarchy(ctx context.Context, sessionID, typeID string) (*ClassHierarchyResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &ClassHierarchyResult{}
	if err := c.sessionPost(ctx, "hierarchy", sessionID, "/hierarchy", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompileMethod renders one method as Java and/or Smali. Missing renderings
// are reported through Warnings, never as a hard failure.
func (c *Client) DecompileMethod(ctx context.Context, sessionID, methodID string) (*DecompiledMethod, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, ErrMethodIDRequired
	}
	out := &DecompiledMethod{}
	if err := c.sessionPost(ctx, "decompile", sessionID, "/decompile", methodIDRequest{MethodID: methodID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// XrefsTo lists what calls or reaches methodID.
func (c *Client) XrefsTo(ctx context.Context, sessionID, methodID string) (*XrefResult, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, ErrMethodIDRequired
	}
	out := &XrefResult{}
	if err := c.sessionPost(ctx, "xrefs/to", sessionID, "/xrefs/to", methodIDRequest{MethodID: methodID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// XrefsFrom lists what methodID calls or reaches.
func (c *Client) XrefsFrom(ctx context.Context, sessionID, methodID string) (*XrefResult, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, ErrMethodIDRequired
	}
	out := &XrefResult{}
	if err := c.sessionPost(ctx, "xrefs/from", sessionID, "/xrefs/from", methodIDRequest{MethodID: methodID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// FieldXrefs lists methods reading or writing fieldID.
func (c *Client) FieldXrefs(ctx context.Context, sessionID, fieldID string) (*XrefResult, error) {
	if strings.TrimSpace(fieldID) == "" {
		return nil, ErrFieldIDRequired
	}
	out := &XrefResult{}
	if err := c.sessionPost(ctx, "xrefs/field", sessionID, "/xrefs/field", fieldIDRequest{FieldID: fieldID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassXrefs lists program elements referencing typeID.
func (c *Client) ClassXrefs(ctx context.Context, sessionID, typeID string) (*XrefResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &XrefResult{}
	if err := c.sessionPost(ctx, "xrefs/class", sessionID, "/xrefs/class", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overrides lists the supertype methods methodID overrides.
func (c *Client) Overrides(ctx context.Context, sessionID, methodID string) (*OverrideResult, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, ErrMethodIDRequired
	}
	out := &OverrideResult{}
	if err := c.sessionPost(ctx, "overrides", sessionID, "/overrides", methodIDRequest{MethodID: methodID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnresolvedRefs lists call targets within methodID the decompiler could not
// bind to a declaration.
func (c *Client) UnresolvedRefs(ctx context.Context, sessionID, methodID string) (*UnresolvedRefsResult, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, ErrMethodIDRequired
	}
	out := &UnresolvedRefsResult{}
	if err := c.sessionPost(ctx, "unresolved", sessionID, "/unresolved", methodIDRequest{MethodID: methodID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

type stringSearchRequest struct {
	Query string `json:"query"`
	Regex bool   `json:"regex"`
	Limit int    `json:"limit"`
}

// SearchStrings runs a literal or pattern search over all string constants.
// A non-positive limit falls back to DefaultSearchLimit.
func (c *Client) SearchStrings(ctx context.Context, sessionID, query string, regex bool, limit int) (*StringSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrQueryRequired
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	out := &StringSearchResult{}
	req := stringSearchRequest{Query: query, Regex: regex, Limit: limit}
	if err := c.sessionPost(ctx, "strings", sessionID, "/strings", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetManifest fetches the raw manifest text. Artifacts without one surface a
// not-found error, never an empty manifest.
func (c *Client) GetManifest(ctx context.Context, sessionID string) (*ManifestResult, error) {
	out := &ManifestResult{}
	if err := c.sessionPost(ctx, "manifest", sessionID, "/manifest", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListResources lists packaged resources by name, type and size.
func (c *Client) ListResources(ctx context.Context, sessionID string) (*ResourceListResult, error) {
	out := &ResourceListResult{}
	if err := c.sessionPost(ctx, "resources", sessionID, "/resources", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

type resourceContentRequest struct {
	Name string `json:"name"`
}

// GetResourceContent fetches one resource by name.
func (c *Client) GetResourceContent(ctx context.Context, sessionID, name string) (*ResourceContentResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	out := &ResourceContentResult{}
	if err := c.sessionPost(ctx, "resources/content", sessionID, "/resources/content", resourceContentRequest{Name: name}, out); err != nil {
		return nil, err
	}
	return out, nil
}

type renameRequest struct {
	ID    string `json:"id"`
	Alias string `json:"alias,omitempty"`
}

// Rename registers a cosmetic alias for one identifier, stored server-side
// for this session only. No other query's identifiers change.
func (c *Client) Rename(ctx context.Context, sessionID, id, alias string) (*RenameResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrTargetRequired
	}
	if strings.TrimSpace(alias) == "" {
		return nil, ErrAliasRequired
	}
	out := &RenameResult{}
	if err := c.sessionPost(ctx, "rename", sessionID, "/rename", renameRequest{ID: id, Alias: alias}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveRename drops a previously registered alias.
func (c *Client) RemoveRename(ctx context.Context, sessionID, id string) (*RenameResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrTargetRequired
	}
	out := &RenameResult{}
	if err := c.sessionPost(ctx, "rename/remove", sessionID, "/rename/remove", renameRequest{ID: id}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRenames lists every alias registered in this session.
func (c *Client) ListRenames(ctx context.Context, sessionID string) (*RenameListResult, error) {
	out := &RenameListResult{}
	if err := c.sessionPost(ctx, "renames", sessionID, "/renames", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ErrorReport summarizes decompiler error and warning counts for the session.
func (c *Client) ErrorReport(ctx context.Context, sessionID string) (*ErrorReportResult, error) {
	out := &ErrorReportResult{}
	if err := c.sessionPost(ctx, "errors", sessionID, "/errors", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnnotationTarget selects the entity whose annotations are requested.
// Exactly one id must be set.
type AnnotationTarget struct {
	TypeID   string `json:"type_id,omitempty"`
	MethodID string `json:"method_id,omitempty"`
	FieldID  string `json:"field_id,omitempty"`
}

// GetAnnotations fetches annotations attached to one type, method or field.
func (c *Client) GetAnnotations(ctx context.Context, sessionID string, target AnnotationTarget) (*AnnotationResult, error) {
	set := 0
	for _, id := range []string{target.TypeID, target.MethodID, target.FieldID} {
		if strings.TrimSpace(id) != "" {
			set++
		}
	}
	if set != 1 {
		return nil, ErrTargetRequired
	}
	out := &AnnotationResult{}
	if err := c.sessionPost(ctx, "annotations", sessionID, "/annotations", target, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDependencies lists type-level dependencies of typeID.
func (c *Client) GetDependencies(ctx context.Context, sessionID, typeID string) (*DependencyResult, error) {
	if strings.TrimSpace(typeID) == "" {
		return nil, ErrTypeIDRequired
	}
	out := &DependencyResult{}
	if err := c.sessionPost(ctx, "dependencies", sessionID, "/dependencies", typeIDRequest{TypeID: typeID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPackages returns the package tree of the loaded artifact.
func (c *Client) ListPackages(ctx context.Context, sessionID string) (*PackageListResult, error) {
	out := &PackageListResult{}
	if err := c.sessionPost(ctx, "packages", sessionID, "/packages", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CloseSession destroys server-side session state. Closing an unknown or
// already-closed session surfaces a session error, not a crash.
func (c *Client) CloseSession(ctx context.Context, sessionID string) (*CloseResult, error) {
	out := &CloseResult{}
	if err := c.sessionPost(ctx, "close", sessionID, "/close", emptyRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Transport ──────────────────────────────────────────────────────────────

func (c *Client) sessionPost(ctx context.Context, op, sessionID, suffix string, body any, out payload) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}
	return c.post(ctx, op, "/v1/sessions/"+url.PathEscape(sessionID)+suffix, body, out)
}

func (c *Client) post(ctx context.Context, op, path string, body any, out payload) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return decodeFailure(op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return connectionError(c.baseURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	raw, err := c.roundTrip(op, req)
	if err != nil {
		return err
	}
	return decodeResult(op, raw, out)
}

func (c *Client) get(ctx context.Context, op, path string, out payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return connectionError(c.baseURL, err)
	}
	raw, err := c.roundTrip(op, req)
	if err != nil {
		return err
	}
	return decodeResult(op, raw, out)
}

// roundTrip performs one exchange. Transport failures (including timeouts)
// classify as connection errors and are never retried here; retry policy
// belongs to the caller. The body error_code is authoritative over the HTTP
// status.
func (c *Client) roundTrip(op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("op", op).Err(err).Msg("jadxd_request_failed")
		return nil, connectionError(c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError(c.baseURL, err)
	}
	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("jadxd_request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, decodeWireError(raw)
}

type errorEnvelope struct {
	Error struct {
		ErrorCode string            `json:"error_code"`
		Message   string            `json:"message"`
		Details   map[string]string `json:"details"`
	} `json:"error"`
}

func decodeWireError(raw []byte) *Error {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error.ErrorCode == "" {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = "unclassified server failure"
		}
		return wireError(CodeUnknown, msg, nil)
	}
	return wireError(env.Error.ErrorCode, env.Error.Message, env.Error.Details)
}
