package mockd

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/danmuck/jadxdctl/jadxd"
)

// session is one live loaded artifact. Rename entries are per session and
// vanish with it.
type session struct {
	id       string
	graph    *graph
	settings jadxd.DecompileSettings
	hash     string
	renames  map[string]jadxd.RenameEntry
}

// Registry holds live sessions. Mutation is serialized; the real daemon makes
// the same promise for concurrent renames.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*session{}}
}

func (r *Registry) create(g *graph, path string, settings jadxd.DecompileSettings) *session {
	s := &session{
		id:       newSessionID(),
		graph:    g,
		settings: settings,
		hash:     artifactHash(path, settings),
		renames:  map[string]jadxd.RenameEntry{},
	}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) get(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

func (r *Registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) rename(id string, entry jadxd.RenameEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// id is the session id here; entry.OriginalID keys the alias table.
	if s, ok := r.sessions[id]; ok {
		s.renames[entry.OriginalID] = entry
	}
}

func (r *Registry) removeRename(id, originalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		delete(s.renames, originalID)
	}
}

func (r *Registry) listRenames(id string) []jadxd.RenameEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(s.renames))
	for k := range s.renames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]jadxd.RenameEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.renames[k])
	}
	return out
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("mockd: session id entropy: %v", err))
	}
	return hex.EncodeToString(buf)
}

// artifactHash is deterministic for identical input path and settings, like
// the real daemon's content fingerprint.
func artifactHash(path string, settings jadxd.DecompileSettings) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%t|%t|%t",
		path, settings.Deobfuscation, settings.InlineMethods, settings.ShowInconsistentCode))
	return hex.EncodeToString(sum[:])
}
