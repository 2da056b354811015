package asset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tilecraft/sceneimport"
	"github.com/tilecraft/sceneimport/bundle"
)

// Registry deduplicates resolved locations to Assets. Registration is
// idempotent: the first reference to a location creates its Asset and
// every later reference returns the same one.
type Registry struct {
	mu     sync.RWMutex
	assets map[sceneimport.Url]*Asset
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{assets: make(map[sceneimport.Url]*Asset)}
}

// GetOrCreate returns the Asset registered for resolved, creating it on
// first reference:
//
//   - An empty base marks a root document. zipData, when present, is
//     opened as a fresh archive the Asset extracts relative from.
//   - An absolute relative lies outside any enclosing bundle, even when
//     its importer was bundled, and gets a plain Asset.
//   - Otherwise relative names an entry inside the base's bundle; the
//     new Asset shares the base Asset's archive.
//
// The returned error is advisory: a failed archive open degrades the
// Asset to a plain one and is reported so the caller can log it.
func (r *Registry) GetOrCreate(resolved, relative, base sceneimport.Url, zipData []byte) (*Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.assets[resolved]; ok {
		return a, nil
	}

	a := &Asset{name: resolved}
	var err error

	switch {
	case base.IsEmpty():
		if len(zipData) > 0 {
			archive, openErr := bundle.Open(zipData)
			if openErr != nil {
				err = fmt.Errorf("asset %s: %w", resolved, openErr)
			} else {
				a.archive = archive
				a.path = relative.String()
			}
		}
	case relative.IsAbsolute():
		// Plain asset; not part of the importer's bundle.
	default:
		if parent, ok := r.assets[base]; ok && parent.archive != nil {
			a.archive = parent.archive
			a.path = relative.String()
		}
	}

	r.assets[resolved] = a
	return a, err
}

// Get returns the Asset registered for the given resolved location, or
// nil if none exists.
func (r *Registry) Get(resolved sceneimport.Url) *Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[resolved]
}

// Len returns the number of registered Assets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}

// Names returns the sorted resolved locations of all registered Assets.
func (r *Registry) Names() []sceneimport.Url {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]sceneimport.Url, 0, len(r.assets))
	for name := range r.assets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
