package jadxd

// Entity model for everything the jadxd service returns. All types are value
// objects produced by the response decoder; the client never mutates them
// after construction. Identifiers are opaque, unique and stable within one
// session only — never carry one session's ids into another.

// DecompileSettings controls decompiler behavior for one load. It is sent on
// load and echoed back verbatim through Provenance.
type DecompileSettings struct {
	Deobfuscation        bool `json:"deobfuscation"`
	InlineMethods        bool `json:"inline_methods"`
	ShowInconsistentCode bool `json:"show_inconsistent_code"`
}

// DefaultDecompileSettings returns the daemon's defaults.
func DefaultDecompileSettings() DecompileSettings {
	return DecompileSettings{
		Deobfuscation:        false,
		InlineMethods:        true,
		ShowInconsistentCode: true,
	}
}

// Provenance records which backend build and settings produced a result, so
// callers can reason about reproducibility across decompiler versions.
type Provenance struct {
	Backend        string            `json:"backend"`
	BackendVersion string            `json:"backend_version"`
	Settings       DecompileSettings `json:"settings"`
}

func (p *Provenance) validate() error {
	if p.Backend == "" {
		p.Backend = "jadx"
	}
	return requireField("backend_version", p.BackendVersion)
}

// HealthResult reports daemon liveness; the only unauthenticated,
// session-free query besides load.
type HealthResult struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Backend string `json:"backend"`
	Version string `json:"version"`
}

func (r *HealthResult) validate() error {
	return requireField("status", r.Status)
}

// LoadResult is the outcome of loading one artifact: the session handle
// token plus the artifact fingerprint and non-fatal load warnings.
type LoadResult struct {
	SessionID    string     `json:"session_id"`
	ArtifactHash string     `json:"artifact_hash"`
	InputType    string     `json:"input_type"`
	ClassCount   int        `json:"class_count"`
	Provenance   Provenance `json:"provenance"`
	Warnings     []string   `json:"warnings"`
}

func (r *LoadResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if err := requireFields(map[string]string{
		"session_id":    r.SessionID,
		"artifact_hash": r.ArtifactHash,
		"input_type":    r.InputType,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// TypeInfo is one declared type in the loaded artifact.
type TypeInfo struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Package     string   `json:"package"`
	AccessFlags []string `json:"access_flags"`
}

func (t *TypeInfo) validate() error {
	t.AccessFlags = emptyIfNilStrings(t.AccessFlags)
	return requireFields(map[string]string{
		"id":   t.ID,
		"kind": t.Kind,
		"name": t.Name,
	})
}

// TypeListResult lists every type in one session's artifact.
type TypeListResult struct {
	SessionID  string     `json:"session_id"`
	Types      []TypeInfo `json:"types"`
	Provenance Provenance `json:"provenance"`
	Warnings   []string   `json:"warnings"`
}

func (r *TypeListResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Types == nil {
		r.Types = []TypeInfo{}
	}
	if err := requireField("session_id", r.SessionID); err != nil {
		return err
	}
	for i := range r.Types {
		if err := r.Types[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// MethodSummary is the cheap per-method listing; MethodDetail carries the
// full signature.
type MethodSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AccessFlags []string `json:"access_flags"`
}

func (m *MethodSummary) validate() error {
	m.AccessFlags = emptyIfNilStrings(m.AccessFlags)
	return requireFields(map[string]string{"id": m.ID, "name": m.Name})
}

// MethodListResult lists methods declared by one type.
type MethodListResult struct {
	SessionID  string          `json:"session_id"`
	TypeID     string          `json:"type_id"`
	Methods    []MethodSummary `json:"methods"`
	Provenance Provenance      `json:"provenance"`
	Warnings   []string        `json:"warnings"`
}

func (r *MethodListResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Methods == nil {
		r.Methods = []MethodSummary{}
	}
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"type_id":    r.TypeID,
	}); err != nil {
		return err
	}
	for i := range r.Methods {
		if err := r.Methods[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// MethodDetail carries the full signature of one method. Its ID round-trips
// into decompile and xref calls.
type MethodDetail struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	AccessFlags       []string `json:"access_flags"`
	Arguments         []string `json:"arguments"`
	ReturnType        string   `json:"return_type"`
	IsConstructor     bool     `json:"is_constructor"`
	IsClassInit       bool     `json:"is_class_init"`
	Throws            []string `json:"throws"`
	GenericArguments  []string `json:"generic_arguments"`
	GenericReturnType *string  `json:"generic_return_type"`
}

func (m *MethodDetail) validate() error {
	m.AccessFlags = emptyIfNilStrings(m.AccessFlags)
	m.Arguments = emptyIfNilStrings(m.Arguments)
	m.Throws = emptyIfNilStrings(m.Throws)
	m.GenericArguments = emptyIfNilStrings(m.GenericArguments)
	return requireFields(map[string]string{
		"id":          m.ID,
		"name":        m.Name,
		"return_type": m.ReturnType,
	})
}

// MethodDetailResult lists full method signatures for one type.
type MethodDetailResult struct {
	SessionID  string         `json:"session_id"`
	TypeID     string         `json:"type_id"`
	Methods    []MethodDetail `json:"methods"`
	Provenance Provenance     `json:"provenance"`
	Warnings   []string       `json:"warnings"`
}

func (r *MethodDetailResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Methods == nil {
		r.Methods = []MethodDetail{}
	}
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"type_id":    r.TypeID,
	}); err != nil {
		return err
	}
	for i := range r.Methods {
		if err := r.Methods[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// FieldInfo is one declared field.
type FieldInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	AccessFlags []string `json:"access_flags"`
}

func (f *FieldInfo) validate() error {
	f.AccessFlags = emptyIfNilStrings(f.AccessFlags)
	return requireFields(map[string]string{
		"id":   f.ID,
		"name": f.Name,
		"type": f.Type,
	})
}

// FieldListResult lists fields declared by one type.
type FieldListResult struct {
	SessionID  string      `json:"session_id"`
	TypeID     string      `json:"type_id"`
	Fields     []FieldInfo `json:"fields"`
	Provenance Provenance  `json:"provenance"`
	Warnings   []string    `json:"warnings"`
}

func (r *FieldListResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Fields == nil {
		r.Fields = []FieldInfo{}
	}
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"type_id":    r.TypeID,
	}); err != nil {
		return err
	}
	for i := range r.Fields {
		if err := r.Fields[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// ClassHierarchyResult describes one type's place in the type graph.
// SuperClass is nil only for the root type.
type ClassHierarchyResult struct {
	SessionID         string     `json:"session_id"`
	TypeID            string     `json:"type_id"`
	SuperClass        *string    `json:"super_class"`
	Interfaces        []string   `json:"interfaces"`
	InnerClasses      []string   `json:"inner_classes"`
	AccessFlags       []string   `json:"access_flags"`
	GenericParameters []string   `json:"generic_parameters"`
	GenericSuperClass *string    `json:"generic_super_class"`
	GenericInterfaces []string   `json:"generic_interfaces"`
	Provenance        Provenance `json:"provenance"`
	Warnings          []string   `json:"warnings"`
}

func (r *ClassHierarchyResult) validate() error {
	r.Interfaces = emptyIfNilStrings(r.Interfaces)
	r.InnerClasses = emptyIfNilStrings(r.InnerClasses)
	r.AccessFlags = emptyIfNilStrings(r.AccessFlags)
	r.GenericParameters = emptyIfNilStrings(r.GenericParameters)
	r.GenericInterfaces = emptyIfNilStrings(r.GenericInterfaces)
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"type_id":    r.TypeID,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// ClassDecompileResult is one whole-class Java rendering. Java is nil when
// the decompiler could not produce it; the reason lands in Warnings.
type ClassDecompileResult struct {
	SessionID  string     `json:"session_id"`
	TypeID     string     `json:"type_id"`
	Java       *string    `json:"java"`
	Provenance Provenance `json:"provenance"`
	Warnings   []string   `json:"warnings"`
}

func (r *ClassDecompileResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"type_id":    r.TypeID,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// DecompiledMethod is one method's Java and/or Smali rendering. Either form
// may be nil when the decompiler degraded; that is a warning, never an error.
// Locations maps named program points to line numbers.
type DecompiledMethod struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Java       *string        `json:"java"`
	Smali      *string        `json:"smali"`
	Locations  map[string]int `json:"locations"`
	Provenance Provenance     `json:"provenance"`
	Warnings   []string       `json:"warnings"`
}

func (r *DecompiledMethod) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Locations == nil {
		r.Locations = map[string]int{}
	}
	if r.Kind == "" {
		r.Kind = "decompiled_method"
	}
	if err := requireField("id", r.ID); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// XrefEntry is one endpoint of a directed cross-reference edge.
type XrefEntry struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	DeclaringType string `json:"declaring_type"`
}

func (e *XrefEntry) validate() error {
	return requireFields(map[string]string{"id": e.ID, "kind": e.Kind, "name": e.Name})
}

// Xref directions. For methods A and B, B in XrefsFrom(A) iff A in
// XrefsTo(B): the two views describe a single directed edge set.
const (
	XrefDirectionTo   = "to"
	XrefDirectionFrom = "from"
)

// XrefResult is the directed edge set incident to one program element,
// oriented by Direction.
type XrefResult struct {
	ID         string      `json:"id"`
	Kind       string      `json:"kind"`
	Direction  string      `json:"direction"`
	Refs       []XrefEntry `json:"refs"`
	Provenance Provenance  `json:"provenance"`
	Warnings   []string    `json:"warnings"`
}

func (r *XrefResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Refs == nil {
		r.Refs = []XrefEntry{}
	}
	if r.Kind == "" {
		r.Kind = "xrefs"
	}
	if err := requireFields(map[string]string{
		"id":        r.ID,
		"direction": r.Direction,
	}); err != nil {
		return err
	}
	for i := range r.Refs {
		if err := r.Refs[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// OverrideEntry is one supertype method overridden by the queried method.
type OverrideEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DeclaringType string `json:"declaring_type"`
}

func (e *OverrideEntry) validate() error {
	return requireFields(map[string]string{"id": e.ID, "name": e.Name})
}

// OverrideResult is the override chain upward from one method. Callers
// wanting overriders must query from the supertype method.
type OverrideResult struct {
	ID         string          `json:"id"`
	Overrides  []OverrideEntry `json:"overrides"`
	Provenance Provenance      `json:"provenance"`
	Warnings   []string        `json:"warnings"`
}

func (r *OverrideResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Overrides == nil {
		r.Overrides = []OverrideEntry{}
	}
	if err := requireField("id", r.ID); err != nil {
		return err
	}
	for i := range r.Overrides {
		if err := r.Overrides[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// UnresolvedRef is a call target the decompiler could not bind to a concrete
// declaration. It carries shape only — there is no id because no resolved
// target exists.
type UnresolvedRef struct {
	ParentClass string   `json:"parent_class"`
	ArgTypes    []string `json:"arg_types"`
	ReturnType  string   `json:"return_type"`
}

func (u *UnresolvedRef) validate() error {
	u.ArgTypes = emptyIfNilStrings(u.ArgTypes)
	return requireFields(map[string]string{
		"parent_class": u.ParentClass,
		"return_type":  u.ReturnType,
	})
}

// UnresolvedRefsResult lists unresolved references within one method.
type UnresolvedRefsResult struct {
	ID         string          `json:"id"`
	Refs       []UnresolvedRef `json:"refs"`
	Provenance Provenance      `json:"provenance"`
	Warnings   []string        `json:"warnings"`
}

func (r *UnresolvedRefsResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Refs == nil {
		r.Refs = []UnresolvedRef{}
	}
	if err := requireField("id", r.ID); err != nil {
		return err
	}
	for i := range r.Refs {
		if err := r.Refs[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// StringLocation is one program point containing a matched string constant.
// MethodID is nil when the constant sits outside any method body.
type StringLocation struct {
	TypeID   string  `json:"type_id"`
	MethodID *string `json:"method_id"`
}

// StringMatch is one literal string value plus every location carrying it.
type StringMatch struct {
	Value     string           `json:"value"`
	Locations []StringLocation `json:"locations"`
}

// StringSearchResult reports a literal or pattern search over all string
// constants. TotalCount is the true match count even when Matches was
// truncated at the request limit; len(Matches) <= limit always holds.
type StringSearchResult struct {
	SessionID  string        `json:"session_id"`
	Query      string        `json:"query"`
	IsRegex    bool          `json:"is_regex"`
	Matches    []StringMatch `json:"matches"`
	TotalCount int           `json:"total_count"`
	Provenance Provenance    `json:"provenance"`
	Warnings   []string      `json:"warnings"`
}

func (r *StringSearchResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Matches == nil {
		r.Matches = []StringMatch{}
	}
	for i := range r.Matches {
		if r.Matches[i].Locations == nil {
			r.Matches[i].Locations = []StringLocation{}
		}
	}
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"query":      r.Query,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// ManifestResult is the raw manifest text. Artifacts without a manifest
// surface MANIFEST_UNAVAILABLE instead — never an empty string.
type ManifestResult struct {
	SessionID  string     `json:"session_id"`
	Kind       string     `json:"kind"`
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	Warnings   []string   `json:"warnings"`
}

func (r *ManifestResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Kind == "" {
		r.Kind = "manifest"
	}
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"text":       r.Text,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// ResourceEntry is one packaged resource. Size is nil when unknown.
type ResourceEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size *int64 `json:"size"`
}

func (e *ResourceEntry) validate() error {
	return requireFields(map[string]string{"name": e.Name, "type": e.Type})
}

// ResourceListResult lists packaged resources by name and type.
type ResourceListResult struct {
	SessionID  string          `json:"session_id"`
	Resources  []ResourceEntry `json:"resources"`
	Provenance Provenance      `json:"provenance"`
	Warnings   []string        `json:"warnings"`
}

func (r *ResourceListResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Resources == nil {
		r.Resources = []ResourceEntry{}
	}
	if err := requireField("session_id", r.SessionID); err != nil {
		return err
	}
	for i := range r.Resources {
		if err := r.Resources[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}

// ResourceContentResult is one resource fetched by name. Text is nil for
// binary resources; DataType discriminates.
type ResourceContentResult struct {
	SessionID  string     `json:"session_id"`
	Name       string     `json:"name"`
	DataType   string     `json:"data_type"`
	Text       *string    `json:"text"`
	Provenance Provenance `json:"provenance"`
	Warnings   []string   `json:"warnings"`
}

func (r *ResourceContentResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"name":       r.Name,
		"data_type":  r.DataType,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// RenameEntry is one cosmetic alias stored server-side for this session. It
// never alters underlying program identifiers.
type RenameEntry struct {
	OriginalID string `json:"original_id"`
	EntityKind string `json:"entity_kind"`
	Alias      string `json:"alias"`
}

func (e *RenameEntry) validate() error {
	return requireFields(map[string]string{
		"original_id": e.OriginalID,
		"alias":       e.Alias,
	})
}

// RenameResult acknowledges one rename or rename removal.
type RenameResult struct {
	ID     string `json:"id"`
	Alias  string `json:"alias"`
	Status string `json:"status"`
}

func (r *RenameResult) validate() error {
	return requireFields(map[string]string{"id": r.ID, "status": r.Status})
}

// RenameListResult lists every alias registered in this session.
type RenameListResult struct {
	SessionID string        `json:"session_id"`
	Renames   []RenameEntry `json:"renames"`
}

func (r *RenameListResult) validate() error {
	if r.Renames == nil {
		r.Renames = []RenameEntry{}
	}
	if err := requireField("session_id", r.SessionID); err != nil {
		return err
	}
	for i := range r.Renames {
		if err := r.Renames[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// ErrorReportResult summarizes decompiler-side error and warning counts for
// the whole session.
type ErrorReportResult struct {
	SessionID     string     `json:"session_id"`
	ErrorsCount   int        `json:"errors_count"`
	WarningsCount int        `json:"warnings_count"`
	Provenance    Provenance `json:"provenance"`
}

func (r *ErrorReportResult) validate() error {
	if err := requireField("session_id", r.SessionID); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// CloseResult acknowledges session teardown.
type CloseResult struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

func (r *CloseResult) validate() error {
	return requireFields(map[string]string{
		"session_id": r.SessionID,
		"status":     r.Status,
	})
}

// DependencyResult lists type-level dependencies of one type.
type DependencyResult struct {
	SessionID      string     `json:"session_id"`
	TypeID         string     `json:"type_id"`
	Dependencies   []string   `json:"dependencies"`
	TotalDepsCount int        `json:"total_deps_count"`
	Provenance     Provenance `json:"provenance"`
	Warnings       []string   `json:"warnings"`
}

func (r *DependencyResult) validate() error {
	r.Dependencies = emptyIfNilStrings(r.Dependencies)
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if err := requireFields(map[string]string{
		"session_id": r.SessionID,
		"type_id":    r.TypeID,
	}); err != nil {
		return err
	}
	return r.Provenance.validate()
}

// PackageInfo is one node of the package tree. IsLeaf is true iff the node
// has no subpackages.
type PackageInfo struct {
	FullName    string   `json:"full_name"`
	ClassCount  int      `json:"class_count"`
	SubPackages []string `json:"sub_packages"`
	ClassIDs    []string `json:"class_ids"`
	IsLeaf      bool     `json:"is_leaf"`
}

func (p *PackageInfo) validate() error {
	p.SubPackages = emptyIfNilStrings(p.SubPackages)
	p.ClassIDs = emptyIfNilStrings(p.ClassIDs)
	return requireField("full_name", p.FullName)
}

// PackageListResult is the package tree of the loaded artifact.
type PackageListResult struct {
	SessionID     string        `json:"session_id"`
	Packages      []PackageInfo `json:"packages"`
	TotalPackages int           `json:"total_packages"`
	Provenance    Provenance    `json:"provenance"`
	Warnings      []string      `json:"warnings"`
}

func (r *PackageListResult) validate() error {
	r.Warnings = emptyIfNilStrings(r.Warnings)
	if r.Packages == nil {
		r.Packages = []PackageInfo{}
	}
	if err := requireField("session_id", r.SessionID); err != nil {
		return err
	}
	for i := range r.Packages {
		if err := r.Packages[i].validate(); err != nil {
			return err
		}
	}
	return r.Provenance.validate()
}
