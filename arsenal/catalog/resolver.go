package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"barrage/server/arsenal/contract"
)

type source interface {
	Load() ([]byte, error)
	Path() string
}

type fileSource struct {
	path string
}

func (f fileSource) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f fileSource) Path() string {
	return f.path
}

type memorySource struct {
	name string
	data []byte
}

func (m memorySource) Load() ([]byte, error) { return m.data, nil }
func (m memorySource) Path() string          { return m.name }

// DefaultPaths returns the canonical weapon catalog locations relative to the
// server module root.
func DefaultPaths() []string {
	return []string{
		filepath.Join("config", "weapons", "definitions.json"),
	}
}

// Resolver merges the built-in arsenal with designer-authored JSON overlays
// into a stable weapon lookup. Call Reload to pick up on-disk changes during
// development; lookups are safe to run concurrently with a reload.
type Resolver struct {
	mu      sync.RWMutex
	base    contract.Registry
	sources []source
	weapons map[string]contract.Definition
	ids     []string
}

// Load constructs a Resolver over the built-in registry plus the given
// catalog file paths. Missing files are skipped so a fresh checkout runs on
// the built-ins alone.
func Load(base contract.Registry, paths ...string) (*Resolver, error) {
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		sources = append(sources, fileSource{path: trimmed})
	}
	return newResolver(base, sources...)
}

func newResolver(base contract.Registry, sources ...source) (*Resolver, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: invalid base registry: %w", err)
	}
	r := &Resolver{
		base:    append(contract.Registry(nil), base...),
		sources: append([]source(nil), sources...),
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses every catalog source. Later sources override earlier ones
// and every source overrides the built-ins, keyed by weapon id.
func (r *Resolver) Reload() error {
	if r == nil {
		return nil
	}

	merged := r.base.Index()

	for _, src := range r.sources {
		data, err := src.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("catalog: failed loading %s: %w", src.Path(), err)
		}
		var overlay []contract.Definition
		if err := json.Unmarshal(data, &overlay); err != nil {
			return fmt.Errorf("catalog: failed parsing %s: %w", src.Path(), err)
		}
		seen := make(map[string]struct{}, len(overlay))
		for _, def := range overlay {
			id := strings.TrimSpace(def.ID)
			if id == "" {
				return fmt.Errorf("catalog: entry missing id in %s", src.Path())
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("catalog: duplicate id %q in %s", id, src.Path())
			}
			seen[id] = struct{}{}
			merged[id] = def
		}
	}

	flat := make(contract.Registry, 0, len(merged))
	for _, def := range merged {
		flat = append(flat, def)
	}
	if err := flat.Validate(); err != nil {
		return fmt.Errorf("catalog: merged catalog invalid: %w", err)
	}

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	r.mu.Lock()
	r.weapons = merged
	r.ids = ids
	r.mu.Unlock()
	return nil
}

// Weapon returns the definition for id. The bool follows the map convention.
func (r *Resolver) Weapon(id string) (contract.Definition, bool) {
	if r == nil {
		return contract.Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.weapons[id]
	return def, ok
}

// IDs returns every weapon id in sorted order, for shop listings and
// deterministic broadcast payloads.
func (r *Resolver) IDs() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Definitions returns a snapshot of every weapon, sorted by id.
func (r *Resolver) Definitions() []contract.Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]contract.Definition, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.weapons[id])
	}
	return out
}
