// Package sceneimport resolves hierarchical scene documents that import
// other documents by reference, producing a single deep-merged document
// and a deduplicated registry of the assets it refers to.
//
// The package root holds the primitives shared by every subpackage: the
// Url location type and the Platform I/O abstraction. The resolution
// engine itself lives in the importer subpackage.
package sceneimport

import (
	"net/url"
	"path"
	"strings"
)

// Url identifies a scene document or resource. It is an opaque,
// comparable value usable as a map key; equality of two Urls is plain
// string equality of their normalized forms.
//
// A Url may be absolute (carrying a scheme, or rooted at "/") or
// relative to some base Url.
type Url string

// String returns the Url's textual form.
func (u Url) String() string { return string(u) }

// IsEmpty reports whether the Url has no content.
func (u Url) IsEmpty() bool { return u == "" }

// Scheme returns the Url's scheme, or "" if it has none.
func (u Url) Scheme() string {
	s := string(u)
	i := strings.Index(s, ":")
	if i <= 0 {
		return ""
	}
	scheme := s[:i]
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return ""
		}
	}
	// A scheme must start with a letter.
	c := scheme[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return ""
	}
	return strings.ToLower(scheme)
}

// IsAbsolute reports whether the Url carries a scheme or is rooted at "/".
func (u Url) IsAbsolute() bool {
	return u.Scheme() != "" || strings.HasPrefix(string(u), "/")
}

// HasHTTPScheme reports whether the Url addresses a remote HTTP(S) resource.
func (u Url) HasHTTPScheme() bool {
	s := u.Scheme()
	return s == "http" || s == "https"
}

// HasZipExtension reports whether the Url's path names a zip bundle.
func (u Url) HasZipExtension() bool {
	return strings.HasSuffix(u.pathPart(), ".zip")
}

// pathPart returns the path component of the Url, excluding any query
// or fragment, without percent-decoding.
func (u Url) pathPart() string {
	s := string(u)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if parsed, err := url.Parse(s); err == nil && parsed.Path != "" {
		return parsed.Path
	}
	return s
}

// BaseName returns the last path segment of the Url, without any
// directory prefix.
func (u Url) BaseName() string {
	return path.Base(u.pathPart())
}

// Resolved resolves u against base per RFC 3986 reference resolution.
// An absolute u is returned unchanged; an empty u resolves to base.
// Scheme-less bases keep their relativity: resolving "tex.png" against
// "scenes/a.yaml" yields "scenes/tex.png", not a rooted path.
// Urls that fail to parse are returned as-is.
func (u Url) Resolved(base Url) Url {
	if u.IsEmpty() {
		return base
	}
	if base.IsEmpty() || u.IsAbsolute() {
		return u.normalized()
	}
	if base.Scheme() == "" {
		// net/url forces resolved paths to start with "/", which would
		// turn relative cache keys into rooted ones. Splice at the last
		// path separator instead.
		dir := ""
		if i := strings.LastIndex(string(base), "/"); i >= 0 {
			dir = string(base)[:i+1]
		}
		return Url(path.Clean(dir + string(u)))
	}
	refURL, err := url.Parse(string(u))
	if err != nil {
		return u
	}
	baseURL, err := url.Parse(string(base))
	if err != nil {
		return u
	}
	return Url(baseURL.ResolveReference(refURL).String())
}

// normalized removes dot segments from the Url's path so that two
// spellings of the same location compare equal as cache keys.
func (u Url) normalized() Url {
	parsed, err := url.Parse(string(u))
	if err != nil || parsed.Path == "" {
		return u
	}
	cleaned := path.Clean(parsed.Path)
	if strings.HasSuffix(parsed.Path, "/") && cleaned != "/" {
		cleaned += "/"
	}
	if cleaned == parsed.Path {
		return u
	}
	parsed.Path = cleaned
	return Url(parsed.String())
}
