// Package asset tracks the resources a resolved scene refers to. Each
// distinct resolved location gets exactly one Asset, registered the
// first time it is referenced; an Asset reads either straight from the
// platform or from an entry inside a shared bundle archive.
package asset

import (
	"github.com/tilecraft/sceneimport"
	"github.com/tilecraft/sceneimport/bundle"
)

// Asset is a registered handle to a resource's bytes. It is immutable
// after creation.
type Asset struct {
	name    sceneimport.Url
	path    string
	archive *bundle.Archive
}

// Name returns the resolved Url the Asset was registered under.
func (a *Asset) Name() sceneimport.Url { return a.name }

// Path returns the Asset's entry path within its bundle, or "" for a
// non-bundled Asset.
func (a *Asset) Path() string { return a.path }

// Archive returns the bundle the Asset reads from, or nil. The archive
// is shared with every other Asset extracted from the same blob.
func (a *Asset) Archive() *bundle.Archive { return a.archive }

// ReadBytes returns the Asset's bytes, extracted from its bundle when
// it has one and read from the platform otherwise. Failures yield nil.
func (a *Asset) ReadBytes(platform sceneimport.Platform) []byte {
	if a.archive != nil {
		data, err := a.archive.Extract(a.path)
		if err != nil {
			return nil
		}
		return data
	}
	data, err := platform.ReadBytes(a.name)
	if err != nil {
		return nil
	}
	return data
}

// ReadString returns the Asset's bytes as a string, or "" on failure.
func (a *Asset) ReadString(platform sceneimport.Platform) string {
	return string(a.ReadBytes(platform))
}
