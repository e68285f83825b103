package mockd

import (
	"strings"
	"testing"

	"github.com/danmuck/jadxdctl/internal/testutil/testlog"
	"github.com/danmuck/jadxdctl/jadxd"
)

func TestParseFixtureDefaults(t *testing.T) {
	testlog.Start(t)

	fx, err := ParseFixture([]byte("name: tiny\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fx.InputType != "apk" || fx.Backend != "jadx" || fx.BackendVersion != "1.5.0-mock" {
		t.Errorf("defaults not applied: %+v", fx)
	}
}

func TestParseFixtureRequiresName(t *testing.T) {
	testlog.Start(t)

	if _, err := ParseFixture([]byte("input_type: apk\n")); err == nil {
		t.Fatalf("expected missing name error")
	}
}

func TestSampleFixtureBuildsGraph(t *testing.T) {
	testlog.Start(t)

	fx, err := SampleFixture()
	if err != nil {
		t.Fatalf("sample fixture: %v", err)
	}
	g, err := buildGraph(fx)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	if len(g.typesByID) != 3 {
		t.Fatalf("types = %d, want 3", len(g.typesByID))
	}
	if len(g.methodsByID) != 3 {
		t.Fatalf("methods = %d, want 3", len(g.methodsByID))
	}
	if len(g.fieldsByID) != 1 {
		t.Fatalf("fields = %d, want 1", len(g.fieldsByID))
	}
}

func TestBuildGraphDerivesCallers(t *testing.T) {
	testlog.Start(t)

	fx, err := ParseFixture([]byte(`
name: callgraph
types:
  - id: "LA;"
    kind: class
    name: A
    package: p
    methods:
      - id: "LA;->a()V"
        name: a
        return_type: V
        calls: ["LB;->b()V"]
  - id: "LB;"
    kind: class
    name: B
    package: p
    methods:
      - id: "LB;->b()V"
        name: b
        return_type: V
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	g, err := buildGraph(fx)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	callers := g.callersOf["LB;->b()V"]
	if len(callers) != 1 || callers[0] != "LA;->a()V" {
		t.Fatalf("callers of b = %v", callers)
	}
	if len(g.callersOf["LA;->a()V"]) != 0 {
		t.Fatalf("a has no callers, got %v", g.callersOf["LA;->a()V"])
	}
	if g.declaring["LA;->a()V"] != "LA;" {
		t.Errorf("declaring type lost")
	}
}

func TestBuildGraphRejectsBrokenReferences(t *testing.T) {
	testlog.Start(t)

	cases := map[string]string{
		"duplicate type": `
name: dup
types:
  - id: "LA;"
    kind: class
    name: A
  - id: "LA;"
    kind: class
    name: A2
`,
		"duplicate method": `
name: dupm
types:
  - id: "LA;"
    kind: class
    name: A
    methods:
      - id: "LA;->m()V"
        name: m
        return_type: V
      - id: "LA;->m()V"
        name: m2
        return_type: V
`,
		"missing type id": `
name: noid
types:
  - kind: class
    name: A
`,
		"unknown callee": `
name: dangling
types:
  - id: "LA;"
    kind: class
    name: A
    methods:
      - id: "LA;->m()V"
        name: m
        return_type: V
        calls: ["LB;->gone()V"]
`,
		"unknown used_by": `
name: danglinguse
types:
  - id: "LA;"
    kind: class
    name: A
    used_by: ["LB;->gone()V"]
`,
		"unknown read_by": `
name: danglingread
types:
  - id: "LA;"
    kind: class
    name: A
    fields:
      - id: "LA;->f:I"
        name: f
        type: I
        read_by: ["LB;->gone()V"]
`,
	}
	for label, doc := range cases {
		fx, err := ParseFixture([]byte(doc))
		if err != nil {
			t.Fatalf("%s: parse: %v", label, err)
		}
		if _, err := buildGraph(fx); err == nil {
			t.Errorf("%s: expected graph validation error", label)
		}
	}
}

func TestBuildPackageTreeIncludesIntermediates(t *testing.T) {
	testlog.Start(t)

	fx, err := ParseFixture([]byte(`
name: pkgs
types:
  - id: "LA;"
    kind: class
    name: A
    package: com.example.deep.leaf
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pkgs := buildPackageTree(fx)
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.FullName
	}
	want := []string{"com", "com.example", "com.example.deep", "com.example.deep.leaf"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("packages = %v, want %v", names, want)
	}
	leaf := pkgs[3]
	if !leaf.IsLeaf || leaf.ClassCount != 1 || leaf.ClassIDs[0] != "LA;" {
		t.Errorf("leaf package: %+v", leaf)
	}
	mid := pkgs[2]
	if mid.IsLeaf || mid.ClassCount != 0 || len(mid.SubPackages) != 1 {
		t.Errorf("intermediate package: %+v", mid)
	}
}

func TestArtifactHashDeterminism(t *testing.T) {
	testlog.Start(t)

	s1 := jadxd.DefaultDecompileSettings()
	s2 := s1
	s2.Deobfuscation = true
	a := artifactHash("/a.apk", s1)
	if a != artifactHash("/a.apk", s1) {
		t.Fatalf("hash must be deterministic")
	}
	if a == artifactHash("/b.apk", s1) {
		t.Fatalf("hash must depend on path")
	}
	if a == artifactHash("/a.apk", s2) {
		t.Fatalf("hash must depend on settings")
	}
}
