package sceneimport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Platform supplies the byte-level I/O the resolver depends on. Local
// reads are synchronous; remote reads are dispatched asynchronously and
// deliver their payload through a completion callback. Implementations
// signal a failed fetch with a nil or empty payload.
type Platform interface {
	// ReadBytes performs a synchronous local read of the given location.
	ReadBytes(location Url) ([]byte, error)

	// FetchAsync starts an asynchronous remote read. onComplete is
	// invoked exactly once, from an arbitrary goroutine, with the
	// payload (nil on any failure).
	FetchAsync(ctx context.Context, location Url, onComplete func(data []byte))

	// ResolveLocalPath maps a resolved Url to a platform-addressable
	// path. Used for datasource URLs that stay local.
	ResolveLocalPath(location Url) Url
}

// OSPlatform is the default Platform: local reads go through the OS
// filesystem, remote reads through a shared HTTP client.
type OSPlatform struct {
	// Client performs remote fetches. Defaults to a client with
	// DefaultFetchTimeout when nil.
	Client *http.Client

	// LocalRoot, when set, is prepended to relative locations passed
	// to ResolveLocalPath.
	LocalRoot string
}

// DefaultFetchTimeout bounds a single remote fetch.
const DefaultFetchTimeout = 30 * time.Second

// NewOSPlatform returns an OSPlatform with a default HTTP client.
func NewOSPlatform() *OSPlatform {
	return &OSPlatform{
		Client: &http.Client{Timeout: DefaultFetchTimeout},
	}
}

// ReadBytes reads a local file. A "file://" prefix is stripped; every
// other scheme-less location is treated as a filesystem path.
func (p *OSPlatform) ReadBytes(location Url) ([]byte, error) {
	name := strings.TrimPrefix(location.String(), "file://")
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

// FetchAsync performs an HTTP GET on its own goroutine and hands the
// body to onComplete. Any transport error or non-2xx status yields a
// nil payload.
func (p *OSPlatform) FetchAsync(ctx context.Context, location Url, onComplete func(data []byte)) {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	go func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location.String(), nil)
		if err != nil {
			onComplete(nil)
			return
		}
		resp, err := client.Do(req)
		if err != nil {
			onComplete(nil)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			onComplete(nil)
			return
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			onComplete(nil)
			return
		}
		onComplete(data)
	}()
}

// ResolveLocalPath maps a relative location under LocalRoot. Absolute
// locations are returned unchanged.
func (p *OSPlatform) ResolveLocalPath(location Url) Url {
	if p.LocalRoot == "" || location.IsAbsolute() {
		return location
	}
	return Url(filepath.ToSlash(filepath.Join(p.LocalRoot, location.String())))
}
