package mockd

import (
	"testing"

	"github.com/danmuck/jadxdctl/internal/testutil/testlog"
	"github.com/danmuck/jadxdctl/jadxd"
)

func TestRegistryLifecycle(t *testing.T) {
	testlog.Start(t)

	fx, err := SampleFixture()
	if err != nil {
		t.Fatalf("sample fixture: %v", err)
	}
	g, err := buildGraph(fx)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	r := NewRegistry()
	a := r.create(g, "/a.apk", jadxd.DefaultDecompileSettings())
	b := r.create(g, "/a.apk", jadxd.DefaultDecompileSettings())
	if a.id == b.id {
		t.Fatalf("session ids must be unique")
	}
	if a.hash != b.hash {
		t.Fatalf("same input must fingerprint identically")
	}
	if r.count() != 2 {
		t.Fatalf("count = %d", r.count())
	}

	if _, ok := r.get(a.id); !ok {
		t.Fatalf("created session must be retrievable")
	}
	if !r.remove(a.id) {
		t.Fatalf("remove must succeed once")
	}
	if r.remove(a.id) {
		t.Fatalf("remove must fail twice")
	}
	if _, ok := r.get(a.id); ok {
		t.Fatalf("removed session must be gone")
	}
}

func TestRegistryRenamesSortedAndIsolated(t *testing.T) {
	testlog.Start(t)

	fx, err := SampleFixture()
	if err != nil {
		t.Fatalf("sample fixture: %v", err)
	}
	g, err := buildGraph(fx)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	r := NewRegistry()
	a := r.create(g, "/a.apk", jadxd.DefaultDecompileSettings())
	b := r.create(g, "/a.apk", jadxd.DefaultDecompileSettings())

	r.rename(a.id, jadxd.RenameEntry{OriginalID: "zz", EntityKind: "method", Alias: "last"})
	r.rename(a.id, jadxd.RenameEntry{OriginalID: "aa", EntityKind: "class", Alias: "first"})

	got := r.listRenames(a.id)
	if len(got) != 2 || got[0].OriginalID != "aa" || got[1].OriginalID != "zz" {
		t.Fatalf("renames = %+v, want sorted by original id", got)
	}
	if len(r.listRenames(b.id)) != 0 {
		t.Fatalf("renames must not leak across sessions")
	}

	r.removeRename(a.id, "aa")
	got = r.listRenames(a.id)
	if len(got) != 1 || got[0].OriginalID != "zz" {
		t.Fatalf("renames after removal = %+v", got)
	}

	if r.listRenames("ghost") != nil {
		t.Fatalf("unknown session must list nil")
	}
}
