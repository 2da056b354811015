// Package bundle reads scene asset bundles: zip archives held fully in
// memory, opened once and extracted from on demand.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Archive is an opened in-memory zip bundle. It owns the decode state
// for the blob it was opened from and a name->entry index built once at
// open time, so repeated extracts avoid a linear directory scan.
//
// An Archive is shared by pointer between every asset extracted from
// the same blob; it holds no OS resources, so its lifetime is simply
// that of the last referencing asset.
type Archive struct {
	reader *zip.Reader
	index  map[string]*zip.File
}

// Open parses the central directory of the given blob and builds the
// entry index. It fails if the blob is not a valid zip archive.
func Open(data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	index := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		index[f.Name] = f
	}
	return &Archive{reader: r, index: index}, nil
}

// Contains reports whether the archive holds an entry with the given name.
func (a *Archive) Contains(entry string) bool {
	_, ok := a.index[entry]
	return ok
}

// Entries returns the sorted names of all entries in the archive.
func (a *Archive) Entries() []string {
	names := make([]string, 0, len(a.index))
	for name := range a.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract decompresses the named entry into a fresh buffer. A missing
// entry or a decompression error is reported as an error; callers treat
// either as an empty read.
func (a *Archive) Extract(entry string) ([]byte, error) {
	f, ok := a.index[entry]
	if !ok {
		return nil, fmt.Errorf("bundle entry %q not found", entry)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open bundle entry %q: %w", entry, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("extract bundle entry %q: %w", entry, err)
	}
	return data, nil
}
