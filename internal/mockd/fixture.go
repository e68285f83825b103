package mockd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danmuck/jadxdctl/jadxd"
)

// Fixture is one canned artifact: the program graph a real daemon would
// derive by decompiling it.
type Fixture struct {
	Name           string            `yaml:"name"`
	InputType      string            `yaml:"input_type"`
	Backend        string            `yaml:"backend"`
	BackendVersion string            `yaml:"backend_version"`
	Manifest       string            `yaml:"manifest"`
	Warnings       []string          `yaml:"warnings"`
	Types          []FixtureType     `yaml:"types"`
	Resources      []FixtureResource `yaml:"resources"`
	Strings        []FixtureString   `yaml:"strings"`
}

type FixtureType struct {
	ID           string           `yaml:"id"`
	Kind         string           `yaml:"kind"`
	Name         string           `yaml:"name"`
	Package      string           `yaml:"package"`
	AccessFlags  []string         `yaml:"access_flags"`
	SuperClass   string           `yaml:"super_class"`
	Interfaces   []string         `yaml:"interfaces"`
	InnerClasses []string         `yaml:"inner_classes"`
	Java         string           `yaml:"java"`
	Dependencies []string         `yaml:"dependencies"`
	UsedBy       []string         `yaml:"used_by"`
	Annotations  []AnnotationNode `yaml:"annotations"`
	Methods      []FixtureMethod  `yaml:"methods"`
	Fields       []FixtureField   `yaml:"fields"`
}

type FixtureMethod struct {
	ID               string             `yaml:"id"`
	Name             string             `yaml:"name"`
	AccessFlags      []string           `yaml:"access_flags"`
	Arguments        []string           `yaml:"arguments"`
	ReturnType       string             `yaml:"return_type"`
	Constructor      bool               `yaml:"constructor"`
	ClassInit        bool               `yaml:"class_init"`
	Throws           []string           `yaml:"throws"`
	Java             string             `yaml:"java"`
	Smali            string             `yaml:"smali"`
	Locations        map[string]int     `yaml:"locations"`
	Calls            []string           `yaml:"calls"`
	Overrides        []OverrideNode     `yaml:"overrides"`
	Unresolved       []UnresolvedNode   `yaml:"unresolved"`
	Annotations      []AnnotationNode   `yaml:"annotations"`
	ParamAnnotations [][]AnnotationNode `yaml:"param_annotations"`
	Warnings         []string           `yaml:"warnings"`
}

type FixtureField struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	AccessFlags []string         `yaml:"access_flags"`
	ReadBy      []string         `yaml:"read_by"`
	Annotations []AnnotationNode `yaml:"annotations"`
}

type FixtureResource struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Size     int64  `yaml:"size"`
	DataType string `yaml:"data_type"`
	Text     string `yaml:"text"`
}

type FixtureString struct {
	Value     string            `yaml:"value"`
	Locations []FixtureLocation `yaml:"locations"`
}

type FixtureLocation struct {
	TypeID   string `yaml:"type_id"`
	MethodID string `yaml:"method_id"`
}

// OverrideNode is one supertype method a fixture method overrides.
type OverrideNode struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	DeclaringType string `yaml:"declaring_type"`
}

// UnresolvedNode is a shape-only call target; no id exists by design.
type UnresolvedNode struct {
	ParentClass string   `yaml:"parent_class"`
	ArgTypes    []string `yaml:"arg_types"`
	ReturnType  string   `yaml:"return_type"`
}

// AnnotationNode mirrors the recursive annotation wire shape in yaml.
type AnnotationNode struct {
	Class      string               `yaml:"class"`
	Visibility string               `yaml:"visibility"`
	Values     map[string]ValueNode `yaml:"values"`
}

// ValueNode is one annotation member value: scalar, array or nested.
type ValueNode struct {
	Type       string          `yaml:"type"`
	Value      string          `yaml:"value"`
	Values     []ValueNode     `yaml:"values"`
	Annotation *AnnotationNode `yaml:"annotation"`
}

// LoadFixtureFile reads one fixture graph from disk.
func LoadFixtureFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture load failed (%s): %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and sanity-checks one yaml fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("fixture parse failed: %w", err)
	}
	if strings.TrimSpace(fx.Name) == "" {
		return nil, fmt.Errorf("fixture missing name")
	}
	if fx.InputType == "" {
		fx.InputType = "apk"
	}
	if fx.Backend == "" {
		fx.Backend = "jadx"
	}
	if fx.BackendVersion == "" {
		fx.BackendVersion = "1.5.0-mock"
	}
	return &fx, nil
}

// graph is one fixture indexed for query serving, with the call edge set
// stored once and viewed in both directions.
type graph struct {
	fx *Fixture

	typesByID   map[string]*FixtureType
	methodsByID map[string]*FixtureMethod
	fieldsByID  map[string]*FixtureField
	declaring   map[string]string
	callersOf   map[string][]string
	packages    []jadxd.PackageInfo
}

func buildGraph(fx *Fixture) (*graph, error) {
	g := &graph{
		fx:          fx,
		typesByID:   map[string]*FixtureType{},
		methodsByID: map[string]*FixtureMethod{},
		fieldsByID:  map[string]*FixtureField{},
		declaring:   map[string]string{},
		callersOf:   map[string][]string{},
	}
	for i := range fx.Types {
		ft := &fx.Types[i]
		if ft.ID == "" {
			return nil, fmt.Errorf("fixture %s: type[%d] missing id", fx.Name, i)
		}
		if _, dup := g.typesByID[ft.ID]; dup {
			return nil, fmt.Errorf("fixture %s: duplicate type id %q", fx.Name, ft.ID)
		}
		g.typesByID[ft.ID] = ft
		for j := range ft.Methods {
			fm := &ft.Methods[j]
			if fm.ID == "" {
				return nil, fmt.Errorf("fixture %s: type %q method[%d] missing id", fx.Name, ft.ID, j)
			}
			if _, dup := g.methodsByID[fm.ID]; dup {
				return nil, fmt.Errorf("fixture %s: duplicate method id %q", fx.Name, fm.ID)
			}
			g.methodsByID[fm.ID] = fm
			g.declaring[fm.ID] = ft.ID
		}
		for j := range ft.Fields {
			ff := &ft.Fields[j]
			if ff.ID == "" {
				return nil, fmt.Errorf("fixture %s: type %q field[%d] missing id", fx.Name, ft.ID, j)
			}
			g.fieldsByID[ff.ID] = ff
			g.declaring[ff.ID] = ft.ID
		}
	}
	// The call graph is declared on the caller side only; the inverse view is
	// derived so the two directions can never disagree.
	for id, fm := range g.methodsByID {
		for _, callee := range fm.Calls {
			if _, ok := g.methodsByID[callee]; !ok {
				return nil, fmt.Errorf("fixture %s: method %q calls unknown method %q", fx.Name, id, callee)
			}
			g.callersOf[callee] = append(g.callersOf[callee], id)
		}
	}
	// used_by and read_by name methods too; a dangling id would blow up at
	// query time, so reject it at load.
	for _, ft := range g.typesByID {
		for _, id := range ft.UsedBy {
			if _, ok := g.methodsByID[id]; !ok {
				return nil, fmt.Errorf("fixture %s: type %q used by unknown method %q", fx.Name, ft.ID, id)
			}
		}
	}
	for _, ff := range g.fieldsByID {
		for _, id := range ff.ReadBy {
			if _, ok := g.methodsByID[id]; !ok {
				return nil, fmt.Errorf("fixture %s: field %q read by unknown method %q", fx.Name, ff.ID, id)
			}
		}
	}
	for _, callers := range g.callersOf {
		sort.Strings(callers)
	}
	g.packages = buildPackageTree(fx)
	return g, nil
}

// buildPackageTree derives the package nodes from declared type packages,
// including intermediate packages that declare no classes themselves.
func buildPackageTree(fx *Fixture) []jadxd.PackageInfo {
	classIDs := map[string][]string{}
	known := map[string]bool{}
	for i := range fx.Types {
		pkg := fx.Types[i].Package
		if pkg == "" {
			continue
		}
		classIDs[pkg] = append(classIDs[pkg], fx.Types[i].ID)
		for p := pkg; p != ""; p = parentPackage(p) {
			known[p] = true
		}
	}
	children := map[string]map[string]bool{}
	for pkg := range known {
		if parent := parentPackage(pkg); parent != "" {
			if children[parent] == nil {
				children[parent] = map[string]bool{}
			}
			children[parent][pkg] = true
		}
	}
	names := make([]string, 0, len(known))
	for pkg := range known {
		names = append(names, pkg)
	}
	sort.Strings(names)

	out := make([]jadxd.PackageInfo, 0, len(names))
	for _, pkg := range names {
		subs := make([]string, 0, len(children[pkg]))
		for sub := range children[pkg] {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		ids := append([]string{}, classIDs[pkg]...)
		sort.Strings(ids)
		out = append(out, jadxd.PackageInfo{
			FullName:    pkg,
			ClassCount:  len(ids),
			SubPackages: subs,
			ClassIDs:    ids,
			IsLeaf:      len(subs) == 0,
		})
	}
	return out
}

func parentPackage(pkg string) string {
	idx := strings.LastIndex(pkg, ".")
	if idx < 0 {
		return ""
	}
	return pkg[:idx]
}

// ── Conversions to wire entities ───────────────────────────────────────────

func (g *graph) typeInfo(ft *FixtureType) jadxd.TypeInfo {
	return jadxd.TypeInfo{
		ID:          ft.ID,
		Kind:        ft.Kind,
		Name:        ft.Name,
		Package:     ft.Package,
		AccessFlags: copyStrings(ft.AccessFlags),
	}
}

func (g *graph) methodSummary(fm *FixtureMethod) jadxd.MethodSummary {
	return jadxd.MethodSummary{
		ID:          fm.ID,
		Name:        fm.Name,
		AccessFlags: copyStrings(fm.AccessFlags),
	}
}

func (g *graph) methodDetail(fm *FixtureMethod) jadxd.MethodDetail {
	return jadxd.MethodDetail{
		ID:               fm.ID,
		Name:             fm.Name,
		AccessFlags:      copyStrings(fm.AccessFlags),
		Arguments:        copyStrings(fm.Arguments),
		ReturnType:       fm.ReturnType,
		IsConstructor:    fm.Constructor,
		IsClassInit:      fm.ClassInit,
		Throws:           copyStrings(fm.Throws),
		GenericArguments: []string{},
	}
}

func (g *graph) fieldInfo(ff *FixtureField) jadxd.FieldInfo {
	return jadxd.FieldInfo{
		ID:          ff.ID,
		Name:        ff.Name,
		Type:        ff.Type,
		AccessFlags: copyStrings(ff.AccessFlags),
	}
}

// methodXrefEntry renders one method endpoint of an xref edge.
func (g *graph) methodXrefEntry(id string) jadxd.XrefEntry {
	fm := g.methodsByID[id]
	return jadxd.XrefEntry{
		ID:            id,
		Kind:          "method",
		Name:          fm.Name,
		DeclaringType: g.declaring[id],
	}
}

func annotationInfo(node AnnotationNode) jadxd.AnnotationInfo {
	values := make(map[string]jadxd.AnnotationValue, len(node.Values))
	for name, v := range node.Values {
		values[name] = annotationValue(v)
	}
	return jadxd.AnnotationInfo{
		AnnotationClass: node.Class,
		Visibility:      node.Visibility,
		Values:          values,
	}
}

func annotationValue(node ValueNode) jadxd.AnnotationValue {
	out := jadxd.AnnotationValue{Type: node.Type, Value: node.Value}
	if node.Values != nil {
		out.Values = make([]jadxd.AnnotationValue, len(node.Values))
		for i, item := range node.Values {
			out.Values[i] = annotationValue(item)
		}
	}
	if node.Annotation != nil {
		nested := annotationInfo(*node.Annotation)
		out.Annotation = &nested
	}
	return out
}

func annotationInfos(nodes []AnnotationNode) []jadxd.AnnotationInfo {
	out := make([]jadxd.AnnotationInfo, len(nodes))
	for i, node := range nodes {
		out[i] = annotationInfo(node)
	}
	return out
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
