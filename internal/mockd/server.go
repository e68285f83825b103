package mockd

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/jadxdctl/internal/observability"
	"github.com/danmuck/jadxdctl/jadxd"
)

const serviceName = "mockd"

// Config wires one mock daemon instance.
type Config struct {
	Addr        string
	CorsOrigins []string
	// Fixtures maps loadable artifact paths to their program graphs.
	Fixtures map[string]*Fixture
}

// Server is the mock jadxd daemon: the protocol surface of the real service
// over canned fixture graphs.
type Server struct {
	addr     string
	fixtures map[string]*graph
	registry *Registry
	router   *gin.Engine
	started  time.Time
}

// New indexes the configured fixtures and builds the HTTP surface. A config
// without fixtures still serves health and session errors.
func New(cfg Config) (*Server, error) {
	observability.RegisterMetrics()

	fixtures := make(map[string]*graph, len(cfg.Fixtures))
	for path, fx := range cfg.Fixtures {
		g, err := buildGraph(fx)
		if err != nil {
			return nil, err
		}
		fixtures[path] = g
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(serviceName))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		addr:     cfg.Addr,
		fixtures: fixtures,
		registry: NewRegistry(),
		router:   r,
		started:  time.Now(),
	}
	s.registerRoutes()
	return s, nil
}

// HTTPRouter exposes the engine for httptest-style embedding.
func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Serve blocks on the configured address.
func (s *Server) Serve() error {
	return s.router.Run(s.addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, jadxd.HealthResult{
			Status:  "ok",
			Uptime:  time.Since(s.started).String(),
			Backend: "jadx-mock",
			Version: "0.0.1",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/v1/load", s.handleLoad)

	sessions := s.router.Group("/v1/sessions/:sid")
	sessions.POST("/types", s.withSession(s.handleTypes))
	sessions.POST("/methods", s.withSession(s.handleMethods))
	sessions.POST("/methods/detail", s.withSession(s.handleMethodsDetail))
	sessions.POST("/fields", s.withSession(s.handleFields))
	sessions.POST("/decompile", s.withSession(s.handleDecompileMethod))
	sessions.POST("/decompile/class", s.withSession(s.handleDecompileClass))
	sessions.POST("/hierarchy", s.withSession(s.handleHierarchy))
	sessions.POST("/xrefs/to", s.withSession(s.handleXrefsTo))
	sessions.POST("/xrefs/from", s.withSession(s.handleXrefsFrom))
	sessions.POST("/xrefs/field", s.withSession(s.handleFieldXrefs))
	sessions.POST("/xrefs/class", s.withSession(s.handleClassXrefs))
	sessions.POST("/overrides", s.withSession(s.handleOverrides))
	sessions.POST("/unresolved", s.withSession(s.handleUnresolved))
	sessions.POST("/strings", s.withSession(s.handleStrings))
	sessions.POST("/manifest", s.withSession(s.handleManifest))
	sessions.POST("/resources", s.withSession(s.handleResources))
	sessions.POST("/resources/content", s.withSession(s.handleResourceContent))
	sessions.POST("/rename", s.withSession(s.handleRename))
	sessions.POST("/rename/remove", s.withSession(s.handleRemoveRename))
	sessions.POST("/renames", s.withSession(s.handleListRenames))
	sessions.POST("/errors", s.withSession(s.handleErrorReport))
	sessions.POST("/annotations", s.withSession(s.handleAnnotations))
	sessions.POST("/dependencies", s.withSession(s.handleDependencies))
	sessions.POST("/packages", s.withSession(s.handlePackages))
	sessions.POST("/close", s.handleClose)
}

// ── Envelope helpers ───────────────────────────────────────────────────────

func respondError(c *gin.Context, status int, code, message string, details map[string]string) {
	if details == nil {
		details = map[string]string{}
	}
	c.JSON(status, gin.H{"error": gin.H{
		"error_code": code,
		"message":    message,
		"details":    details,
	}})
}

func sessionNotFound(c *gin.Context, sid string) {
	respondError(c, http.StatusNotFound, jadxd.CodeSessionNotFound,
		fmt.Sprintf("session %q not found", sid), map[string]string{"session_id": sid})
}

func (s *Server) withSession(handler func(*gin.Context, *session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.Param("sid")
		sess, ok := s.registry.get(sid)
		if !ok {
			sessionNotFound(c, sid)
			return
		}
		handler(c, sess)
	}
}

func provenance(sess *session) jadxd.Provenance {
	return jadxd.Provenance{
		Backend:        sess.graph.fx.Backend,
		BackendVersion: sess.graph.fx.BackendVersion,
		Settings:       sess.settings,
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// ── Handlers ───────────────────────────────────────────────────────────────

type loadBody struct {
	Path     string                   `json:"path"`
	Settings *jadxd.DecompileSettings `json:"settings"`
}

func (s *Server) handleLoad(c *gin.Context) {
	var body loadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	g, ok := s.fixtures[body.Path]
	if !ok {
		observability.RecordSessionLoad("failed")
		respondError(c, http.StatusNotFound, "LOAD_FAILED",
			fmt.Sprintf("cannot load artifact %q", body.Path), map[string]string{"path": body.Path})
		return
	}
	settings := jadxd.DefaultDecompileSettings()
	if body.Settings != nil {
		settings = *body.Settings
	}
	sess := s.registry.create(g, body.Path, settings)
	observability.RecordSessionLoad("ok")
	observability.SetActiveSessions(s.registry.count())

	c.JSON(http.StatusOK, jadxd.LoadResult{
		SessionID:    sess.id,
		ArtifactHash: sess.hash,
		InputType:    g.fx.InputType,
		ClassCount:   len(g.fx.Types),
		Provenance:   provenance(sess),
		Warnings:     copyStrings(g.fx.Warnings),
	})
}

func (s *Server) handleClose(c *gin.Context) {
	sid := c.Param("sid")
	if !s.registry.remove(sid) {
		sessionNotFound(c, sid)
		return
	}
	observability.SetActiveSessions(s.registry.count())
	c.JSON(http.StatusOK, jadxd.CloseResult{SessionID: sid, Status: "closed"})
}

func (s *Server) handleTypes(c *gin.Context, sess *session) {
	g := sess.graph
	types := make([]jadxd.TypeInfo, 0, len(g.fx.Types))
	for i := range g.fx.Types {
		types = append(types, g.typeInfo(&g.fx.Types[i]))
	}
	c.JSON(http.StatusOK, jadxd.TypeListResult{
		SessionID:  sess.id,
		Types:      types,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

type typeIDBody struct {
	TypeID string `json:"type_id"`
}

func (s *Server) bindType(c *gin.Context, sess *session) (*FixtureType, bool) {
	var body typeIDBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return nil, false
	}
	ft, ok := sess.graph.typesByID[body.TypeID]
	if !ok {
		respondError(c, http.StatusNotFound, jadxd.CodeTypeNotFound,
			fmt.Sprintf("type %q not found", body.TypeID), map[string]string{"type_id": body.TypeID})
		return nil, false
	}
	return ft, true
}

func (s *Server) handleMethods(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	methods := make([]jadxd.MethodSummary, 0, len(ft.Methods))
	for i := range ft.Methods {
		methods = append(methods, sess.graph.methodSummary(&ft.Methods[i]))
	}
	c.JSON(http.StatusOK, jadxd.MethodListResult{
		SessionID:  sess.id,
		TypeID:     ft.ID,
		Methods:    methods,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

func (s *Server) handleMethodsDetail(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	methods := make([]jadxd.MethodDetail, 0, len(ft.Methods))
	for i := range ft.Methods {
		methods = append(methods, sess.graph.methodDetail(&ft.Methods[i]))
	}
	c.JSON(http.StatusOK, jadxd.MethodDetailResult{
		SessionID:  sess.id,
		TypeID:     ft.ID,
		Methods:    methods,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

func (s *Server) handleFields(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	fields := make([]jadxd.FieldInfo, 0, len(ft.Fields))
	for i := range ft.Fields {
		fields = append(fields, sess.graph.fieldInfo(&ft.Fields[i]))
	}
	c.JSON(http.StatusOK, jadxd.FieldListResult{
		SessionID:  sess.id,
		TypeID:     ft.ID,
		Fields:     fields,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

func (s *Server) handleDecompileClass(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	warnings := []string{}
	java := optional(ft.Java)
	if java == nil {
		warnings = append(warnings, fmt.Sprintf("no java rendering for %s", ft.ID))
	}
	c.JSON(http.StatusOK, jadxd.ClassDecompileResult{
		SessionID:  sess.id,
		TypeID:     ft.ID,
		Java:       java,
		Provenance: provenance(sess),
		Warnings:   warnings,
	})
}

func (s *Server) handleHierarchy(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, jadxd.ClassHierarchyResult{
		SessionID:    sess.id,
		TypeID:       ft.ID,
		SuperClass:   optional(ft.SuperClass),
		Interfaces:   copyStrings(ft.Interfaces),
		InnerClasses: copyStrings(ft.InnerClasses),
		AccessFlags:  copyStrings(ft.AccessFlags),
		Provenance:   provenance(sess),
		Warnings:     []string{},
	})
}

type methodIDBody struct {
	MethodID string `json:"method_id"`
}

func (s *Server) bindMethod(c *gin.Context, sess *session) (*FixtureMethod, bool) {
	var body methodIDBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return nil, false
	}
	fm, ok := sess.graph.methodsByID[body.MethodID]
	if !ok {
		respondError(c, http.StatusNotFound, jadxd.CodeMethodNotFound,
			fmt.Sprintf("method %q not found", body.MethodID), map[string]string{"method_id": body.MethodID})
		return nil, false
	}
	return fm, true
}

func (s *Server) handleDecompileMethod(c *gin.Context, sess *session) {
	fm, ok := s.bindMethod(c, sess)
	if !ok {
		return
	}
	locations := fm.Locations
	if locations == nil {
		locations = map[string]int{}
	}
	c.JSON(http.StatusOK, jadxd.DecompiledMethod{
		ID:         fm.ID,
		Kind:       "decompiled_method",
		Java:       optional(fm.Java),
		Smali:      optional(fm.Smali),
		Locations:  locations,
		Provenance: provenance(sess),
		Warnings:   copyStrings(fm.Warnings),
	})
}

func (s *Server) xrefResult(sess *session, id, direction string, refs []jadxd.XrefEntry) jadxd.XrefResult {
	return jadxd.XrefResult{
		ID:         id,
		Kind:       "xrefs",
		Direction:  direction,
		Refs:       refs,
		Provenance: provenance(sess),
		Warnings:   []string{},
	}
}

func (s *Server) handleXrefsTo(c *gin.Context, sess *session) {
	fm, ok := s.bindMethod(c, sess)
	if !ok {
		return
	}
	callers := sess.graph.callersOf[fm.ID]
	refs := make([]jadxd.XrefEntry, 0, len(callers))
	for _, id := range callers {
		refs = append(refs, sess.graph.methodXrefEntry(id))
	}
	c.JSON(http.StatusOK, s.xrefResult(sess, fm.ID, jadxd.XrefDirectionTo, refs))
}

func (s *Server) handleXrefsFrom(c *gin.Context, sess *session) {
	fm, ok := s.bindMethod(c, sess)
	if !ok {
		return
	}
	refs := make([]jadxd.XrefEntry, 0, len(fm.Calls))
	for _, id := range fm.Calls {
		refs = append(refs, sess.graph.methodXrefEntry(id))
	}
	c.JSON(http.StatusOK, s.xrefResult(sess, fm.ID, jadxd.XrefDirectionFrom, refs))
}

type fieldIDBody struct {
	FieldID string `json:"field_id"`
}

func (s *Server) handleFieldXrefs(c *gin.Context, sess *session) {
	var body fieldIDBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	ff, ok := sess.graph.fieldsByID[body.FieldID]
	if !ok {
		respondError(c, http.StatusNotFound, jadxd.CodeFieldNotFound,
			fmt.Sprintf("field %q not found", body.FieldID), map[string]string{"field_id": body.FieldID})
		return
	}
	refs := make([]jadxd.XrefEntry, 0, len(ff.ReadBy))
	for _, id := range ff.ReadBy {
		refs = append(refs, sess.graph.methodXrefEntry(id))
	}
	c.JSON(http.StatusOK, s.xrefResult(sess, ff.ID, jadxd.XrefDirectionTo, refs))
}

func (s *Server) handleClassXrefs(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	refs := make([]jadxd.XrefEntry, 0, len(ft.UsedBy))
	for _, id := range ft.UsedBy {
		refs = append(refs, sess.graph.methodXrefEntry(id))
	}
	c.JSON(http.StatusOK, s.xrefResult(sess, ft.ID, jadxd.XrefDirectionTo, refs))
}

func (s *Server) handleOverrides(c *gin.Context, sess *session) {
	fm, ok := s.bindMethod(c, sess)
	if !ok {
		return
	}
	overrides := make([]jadxd.OverrideEntry, 0, len(fm.Overrides))
	for _, node := range fm.Overrides {
		overrides = append(overrides, jadxd.OverrideEntry{
			ID:            node.ID,
			Name:          node.Name,
			DeclaringType: node.DeclaringType,
		})
	}
	c.JSON(http.StatusOK, jadxd.OverrideResult{
		ID:         fm.ID,
		Overrides:  overrides,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

func (s *Server) handleUnresolved(c *gin.Context, sess *session) {
	fm, ok := s.bindMethod(c, sess)
	if !ok {
		return
	}
	refs := make([]jadxd.UnresolvedRef, 0, len(fm.Unresolved))
	for _, node := range fm.Unresolved {
		refs = append(refs, jadxd.UnresolvedRef{
			ParentClass: node.ParentClass,
			ArgTypes:    copyStrings(node.ArgTypes),
			ReturnType:  node.ReturnType,
		})
	}
	c.JSON(http.StatusOK, jadxd.UnresolvedRefsResult{
		ID:         fm.ID,
		Refs:       refs,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

type stringsBody struct {
	Query string `json:"query"`
	Regex bool   `json:"regex"`
	Limit int    `json:"limit"`
}

func (s *Server) handleStrings(c *gin.Context, sess *session) {
	var body stringsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if body.Limit <= 0 {
		body.Limit = jadxd.DefaultSearchLimit
	}
	match := func(v string) bool { return strings.Contains(v, body.Query) }
	if body.Regex {
		re, err := regexp.Compile(body.Query)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REGEX", err.Error(), nil)
			return
		}
		match = re.MatchString
	}

	matches := []jadxd.StringMatch{}
	total := 0
	for _, fs := range sess.graph.fx.Strings {
		if !match(fs.Value) {
			continue
		}
		total++
		if len(matches) >= body.Limit {
			continue
		}
		locations := make([]jadxd.StringLocation, 0, len(fs.Locations))
		for _, loc := range fs.Locations {
			locations = append(locations, jadxd.StringLocation{
				TypeID:   loc.TypeID,
				MethodID: optional(loc.MethodID),
			})
		}
		matches = append(matches, jadxd.StringMatch{Value: fs.Value, Locations: locations})
	}
	c.JSON(http.StatusOK, jadxd.StringSearchResult{
		SessionID:  sess.id,
		Query:      body.Query,
		IsRegex:    body.Regex,
		Matches:    matches,
		TotalCount: total,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

func (s *Server) handleManifest(c *gin.Context, sess *session) {
	if sess.graph.fx.Manifest == "" {
		respondError(c, http.StatusNotFound, jadxd.CodeManifestUnavailable,
			fmt.Sprintf("artifact %q carries no manifest", sess.graph.fx.Name), nil)
		return
	}
	c.JSON(http.StatusOK, jadxd.ManifestResult{
		SessionID:  sess.id,
		Kind:       "manifest",
		Text:       sess.graph.fx.Manifest,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

func (s *Server) handleResources(c *gin.Context, sess *session) {
	resources := make([]jadxd.ResourceEntry, 0, len(sess.graph.fx.Resources))
	for _, res := range sess.graph.fx.Resources {
		size := res.Size
		resources = append(resources, jadxd.ResourceEntry{
			Name: res.Name,
			Type: res.Type,
			Size: &size,
		})
	}
	c.JSON(http.StatusOK, jadxd.ResourceListResult{
		SessionID:  sess.id,
		Resources:  resources,
		Provenance: provenance(sess),
		Warnings:   []string{},
	})
}

type resourceBody struct {
	Name string `json:"name"`
}

func (s *Server) handleResourceContent(c *gin.Context, sess *session) {
	var body resourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	for _, res := range sess.graph.fx.Resources {
		if res.Name != body.Name {
			continue
		}
		var text *string
		if res.DataType == "text" {
			text = optional(res.Text)
		}
		c.JSON(http.StatusOK, jadxd.ResourceContentResult{
			SessionID:  sess.id,
			Name:       res.Name,
			DataType:   res.DataType,
			Text:       text,
			Provenance: provenance(sess),
			Warnings:   []string{},
		})
		return
	}
	respondError(c, http.StatusNotFound, jadxd.CodeResourceNotFound,
		fmt.Sprintf("resource %q not found", body.Name), map[string]string{"name": body.Name})
}

type renameBody struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
}

// entityKind classifies what a rename target points at; unknown ids are still
// accepted since the alias table is purely cosmetic.
func entityKind(g *graph, id string) string {
	if _, ok := g.typesByID[id]; ok {
		return "class"
	}
	if _, ok := g.methodsByID[id]; ok {
		return "method"
	}
	if _, ok := g.fieldsByID[id]; ok {
		return "field"
	}
	return "unknown"
}

func (s *Server) handleRename(c *gin.Context, sess *session) {
	var body renameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if body.ID == "" || body.Alias == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "id and alias are required", nil)
		return
	}
	s.registry.rename(sess.id, jadxd.RenameEntry{
		OriginalID: body.ID,
		EntityKind: entityKind(sess.graph, body.ID),
		Alias:      body.Alias,
	})
	c.JSON(http.StatusOK, jadxd.RenameResult{ID: body.ID, Alias: body.Alias, Status: "renamed"})
}

func (s *Server) handleRemoveRename(c *gin.Context, sess *session) {
	var body renameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if body.ID == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "id is required", nil)
		return
	}
	s.registry.removeRename(sess.id, body.ID)
	c.JSON(http.StatusOK, jadxd.RenameResult{ID: body.ID, Alias: "", Status: "removed"})
}

func (s *Server) handleListRenames(c *gin.Context, sess *session) {
	renames := s.registry.listRenames(sess.id)
	if renames == nil {
		renames = []jadxd.RenameEntry{}
	}
	c.JSON(http.StatusOK, jadxd.RenameListResult{SessionID: sess.id, Renames: renames})
}

func (s *Server) handleErrorReport(c *gin.Context, sess *session) {
	warnings := len(sess.graph.fx.Warnings)
	for _, ft := range sess.graph.fx.Types {
		for _, fm := range ft.Methods {
			warnings += len(fm.Warnings)
		}
	}
	c.JSON(http.StatusOK, jadxd.ErrorReportResult{
		SessionID:     sess.id,
		ErrorsCount:   0,
		WarningsCount: warnings,
		Provenance:    provenance(sess),
	})
}

type annotationsBody struct {
	TypeID   string `json:"type_id"`
	MethodID string `json:"method_id"`
	FieldID  string `json:"field_id"`
}

func (s *Server) handleAnnotations(c *gin.Context, sess *session) {
	var body annotationsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	g := sess.graph
	switch {
	case body.TypeID != "":
		ft, ok := g.typesByID[body.TypeID]
		if !ok {
			respondError(c, http.StatusNotFound, jadxd.CodeTypeNotFound,
				fmt.Sprintf("type %q not found", body.TypeID), nil)
			return
		}
		c.JSON(http.StatusOK, jadxd.AnnotationResult{
			ID:          ft.ID,
			Kind:        "class",
			Annotations: annotationInfos(ft.Annotations),
			Provenance:  provenance(sess),
			Warnings:    []string{},
		})
	case body.MethodID != "":
		fm, ok := g.methodsByID[body.MethodID]
		if !ok {
			respondError(c, http.StatusNotFound, jadxd.CodeMethodNotFound,
				fmt.Sprintf("method %q not found", body.MethodID), nil)
			return
		}
		params := make([][]jadxd.AnnotationInfo, len(fm.ParamAnnotations))
		for i, slot := range fm.ParamAnnotations {
			params[i] = annotationInfos(slot)
		}
		c.JSON(http.StatusOK, jadxd.AnnotationResult{
			ID:                   fm.ID,
			Kind:                 "method",
			Annotations:          annotationInfos(fm.Annotations),
			ParameterAnnotations: params,
			Provenance:           provenance(sess),
			Warnings:             []string{},
		})
	case body.FieldID != "":
		ff, ok := g.fieldsByID[body.FieldID]
		if !ok {
			respondError(c, http.StatusNotFound, jadxd.CodeFieldNotFound,
				fmt.Sprintf("field %q not found", body.FieldID), nil)
			return
		}
		c.JSON(http.StatusOK, jadxd.AnnotationResult{
			ID:          ff.ID,
			Kind:        "field",
			Annotations: annotationInfos(ff.Annotations),
			Provenance:  provenance(sess),
			Warnings:    []string{},
		})
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"one of type_id, method_id, field_id is required", nil)
	}
}

func (s *Server) handleDependencies(c *gin.Context, sess *session) {
	ft, ok := s.bindType(c, sess)
	if !ok {
		return
	}
	deps := copyStrings(ft.Dependencies)
	c.JSON(http.StatusOK, jadxd.DependencyResult{
		SessionID:      sess.id,
		TypeID:         ft.ID,
		Dependencies:   deps,
		TotalDepsCount: len(deps),
		Provenance:     provenance(sess),
		Warnings:       []string{},
	})
}

func (s *Server) handlePackages(c *gin.Context, sess *session) {
	packages := sess.graph.packages
	if packages == nil {
		packages = []jadxd.PackageInfo{}
	}
	c.JSON(http.StatusOK, jadxd.PackageListResult{
		SessionID:     sess.id,
		Packages:      packages,
		TotalPackages: len(packages),
		Provenance:    provenance(sess),
		Warnings:      []string{},
	})
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
