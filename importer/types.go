package importer

import (
	"gopkg.in/yaml.v3"

	"github.com/tilecraft/sceneimport/asset"
)

// Options configures scene resolution behavior.
type Options struct {
	// MaxActiveDownloads bounds the number of fetches in flight at any
	// instant. Remote fetches dominate latency and connection cost, so
	// nested imports must not fan out into unbounded simultaneous
	// requests (default: 4).
	MaxActiveDownloads int

	// Logging configuration
	LogLevel string // Log level: "error", "warn", "info", "debug" (default: "warn")
	Logger   Logger // Overrides LogLevel when set; nil selects the default stderr logger.
}

// Result contains the merged document and the assets it references.
type Result struct {
	// Document is the deep-merged scene tree: import directives removed,
	// recognized resource URLs rewritten to absolute form.
	Document *yaml.Node

	// Assets maps each resolved location referenced by the scene to its
	// registered Asset.
	Assets *asset.Registry
}

// DefaultOptions returns the default configuration for scene resolution.
func DefaultOptions() Options {
	return Options{
		MaxActiveDownloads: 4,
		LogLevel:           "warn",
	}
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return NewLogger(ParseLogLevel(o.LogLevel), nil)
}
