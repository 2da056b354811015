package importer

import (
	"context"
	"errors"

	"github.com/tilecraft/sceneimport"
)

// Resolve fetches the scene at rootLocation together with every scene
// it transitively imports, deep-merges them into a single document, and
// registers every referenced resource as an asset.
//
// Per-document problems (missing files, unreachable URLs, malformed
// YAML, corrupt bundles, cyclic imports) are logged and degrade the
// result rather than failing the run; the worst outcome is a merged
// document missing some imported fields.
//
// Example:
//
//	platform := sceneimport.NewOSPlatform()
//	result, err := importer.Resolve(context.Background(), platform, "scene.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d assets registered\n", result.Assets.Len())
func Resolve(ctx context.Context, platform sceneimport.Platform, rootLocation sceneimport.Url, opts ...Options) (*Result, error) {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if platform == nil {
		return nil, errors.New("platform cannot be nil")
	}
	if rootLocation.IsEmpty() {
		return nil, errors.New("root location cannot be empty")
	}
	if opt.MaxActiveDownloads < 1 {
		opt.MaxActiveDownloads = DefaultOptions().MaxActiveDownloads
	}

	im := newImporter(opt, platform)
	return im.run(ctx, rootLocation), nil
}
