// Package importer drives scene import resolution: a bounded-concurrency
// fetch scheduler that discovers transitively imported documents, and a
// cycle-safe recursive merge pass that folds them into one document with
// resource URLs rewritten to absolute, registry-backed form.
package importer

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/tilecraft/sceneimport"
	"github.com/tilecraft/sceneimport/asset"
)

const (
	importKey      = "import"
	zipExtension   = ".zip"
	sceneExtension = ".yaml"
)

type importer struct {
	opts     Options
	logger   Logger
	platform sceneimport.Platform
	registry *asset.Registry

	// mu guards queue and scenes. Fetch completion callbacks reacquire
	// it, mutate, release, then broadcast; the decrement of inflight
	// happens inside the critical section so the coordinator cannot
	// miss a wakeup between evaluating its wait condition and sleeping.
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []sceneimport.Url
	scenes   map[sceneimport.Url]*yaml.Node
	inflight atomic.Int32
}

func newImporter(opts Options, platform sceneimport.Platform) *importer {
	im := &importer{
		opts:     opts,
		logger:   opts.logger(),
		platform: platform,
		registry: asset.NewRegistry(),
		scenes:   make(map[sceneimport.Url]*yaml.Node),
	}
	im.cond = sync.NewCond(&im.mu)
	return im
}

// bundledSceneName derives the expected scene entry inside a zip bundle
// from the bundle's own filename: the base name with the zip extension
// swapped for the scene extension ("scenes/demo.zip" -> "demo.yaml").
// This is a naming convention, not a manifest lookup; bundles carry no
// entry-point declaration, so a bundle whose scene is named differently
// will not be found.
func bundledSceneName(bundle sceneimport.Url) string {
	return strings.TrimSuffix(bundle.BaseName(), zipExtension) + sceneExtension
}

// bundledScenePath addresses the bundled scene as a location of its own,
// below the bundle's url.
func bundledScenePath(bundle sceneimport.Url, entry string) sceneimport.Url {
	return sceneimport.Url(bundle.String() + "/" + entry)
}

// sceneKey maps a location to its document cache key. Zip bundles are
// cached under their bundled scene path, so the fetch phase and the
// merge phase agree on the key no matter which form names the scene.
func sceneKey(u sceneimport.Url) sceneimport.Url {
	if u.HasZipExtension() {
		return bundledScenePath(u, bundledSceneName(u))
	}
	return u
}

// run drains the import graph rooted at rootLocation, then merges it.
func (im *importer) run(ctx context.Context, rootLocation sceneimport.Url) *Result {
	rootPath := rootLocation.Resolved("")

	im.queue = append(im.queue, rootPath)

	for im.fetchNext(ctx) {
	}

	root := newMappingNode()
	var stack []sceneimport.Url
	im.importScenesRecursive(root, rootPath, &stack)

	return &Result{Document: root, Assets: im.registry}
}

// fetchNext blocks until there is either capacity for more work or
// nothing left to do. It dispatches at most one fetch and reports
// whether the scheduler should keep going.
func (im *importer) fetchNext(ctx context.Context) bool {
	im.mu.Lock()

	for {
		if len(im.queue) == 0 {
			if im.inflight.Load() == 0 {
				// Terminal: no pending work, nothing in flight.
				im.mu.Unlock()
				return false
			}
		} else if int(im.inflight.Load()) < im.opts.MaxActiveDownloads {
			break
		}
		im.cond.Wait()
	}

	// LIFO pop; discovery order within one document is preserved well
	// enough and the cache makes ordering immaterial for correctness.
	path := im.queue[len(im.queue)-1]
	im.queue = im.queue[:len(im.queue)-1]

	scenePath := sceneKey(path)
	var bundled string
	zipped := path.HasZipExtension()
	if zipped {
		bundled = bundledSceneName(path)
	}

	if _, ok := im.scenes[scenePath]; ok {
		im.mu.Unlock()
		return true
	}

	if path.HasHTTPScheme() {
		im.inflight.Add(1)
		im.mu.Unlock()
		im.platform.FetchAsync(ctx, path, func(data []byte) {
			im.mu.Lock()
			if len(data) > 0 {
				im.loadFetched(path, scenePath, bundled, zipped, data)
			} else {
				im.logger.Errorf("Empty response fetching scene %q", path)
			}
			im.inflight.Add(-1)
			im.mu.Unlock()
			im.cond.Broadcast()
		})
		return true
	}

	// Local scenes load synchronously on the coordinating goroutine.
	// The read goes through the asset so that a scene addressed inside
	// an already-open bundle is extracted rather than read from disk.
	var text string
	if zipped {
		data, err := im.platform.ReadBytes(path)
		if err != nil || len(data) == 0 {
			im.logger.Errorf("Failed to read scene bundle %q: %v", path, err)
			im.mu.Unlock()
			return true
		}
		a := im.createSceneAsset(scenePath, sceneimport.Url(bundled), "", data)
		text = a.ReadString(im.platform)
	} else {
		a := im.createSceneAsset(scenePath, "", "", nil)
		text = a.ReadString(im.platform)
	}
	if text == "" {
		im.logger.Errorf("Failed to read scene %q", scenePath)
		im.mu.Unlock()
		return true
	}
	im.processScene(scenePath, text)
	im.mu.Unlock()
	return true
}

// loadFetched registers a fetched scene's asset and parses its text.
// For a zip bundle the payload is the archive itself and the scene text
// is extracted through the freshly opened bundle; otherwise the payload
// is the scene text. Called with im.mu held.
func (im *importer) loadFetched(path, scenePath sceneimport.Url, bundled string, zipped bool, data []byte) {
	var text string
	if zipped {
		a := im.createSceneAsset(scenePath, sceneimport.Url(bundled), "", data)
		text = a.ReadString(im.platform)
		if text == "" {
			im.logger.Errorf("Bundle %q has no readable scene entry %q", path, bundled)
			return
		}
	} else {
		im.createSceneAsset(scenePath, "", "", nil)
		text = string(data)
	}
	im.processScene(scenePath, text)
}

// processScene parses scene text into the document cache and enqueues
// the imports it declares. Called with im.mu held.
func (im *importer) processScene(scenePath sceneimport.Url, text string) {
	im.logger.Debugf("Process scene %q", scenePath)

	// Don't load imports twice.
	if _, ok := im.scenes[scenePath]; ok {
		return
	}

	node, err := parseScene(text)
	if err != nil {
		im.logger.Errorf("Parsing scene config %q: %v", scenePath, err)
		return
	}

	im.scenes[scenePath] = node

	for _, imported := range im.getResolvedImportURLs(node, scenePath) {
		if _, ok := im.scenes[sceneKey(imported)]; ok {
			continue
		}
		im.queue = append(im.queue, imported)
	}
}

// getResolvedImportURLs returns the scene's import directives resolved
// against base, registering each as an asset. The import field may be a
// single scalar or a sequence of scalars.
func (im *importer) getResolvedImportURLs(scene *yaml.Node, base sceneimport.Url) []sceneimport.Url {
	var imports []sceneimport.Url

	imported := mapGet(scene, importKey)
	if imported == nil {
		return nil
	}

	switch imported.Kind {
	case yaml.ScalarNode:
		relative := sceneimport.Url(imported.Value)
		resolved := relative.Resolved(base)
		im.createSceneAsset(resolved, relative, base, nil)
		imports = append(imports, resolved)
	case yaml.SequenceNode:
		for _, entry := range imported.Content {
			if entry.Kind != yaml.ScalarNode {
				continue
			}
			relative := sceneimport.Url(entry.Value)
			resolved := relative.Resolved(base)
			im.createSceneAsset(resolved, relative, base, nil)
			imports = append(imports, resolved)
		}
	}

	return imports
}

// createSceneAsset registers an asset, logging a degraded archive open.
func (im *importer) createSceneAsset(resolved, relative, base sceneimport.Url, zipData []byte) *asset.Asset {
	a, err := im.registry.GetOrCreate(resolved, relative, base, zipData)
	if err != nil {
		im.logger.Errorf("Could not open bundle archive: %v", err)
	}
	return a
}

// importScenesRecursive merges the import graph depth-first into root.
// Each document's own imports are merged before the document itself, so
// later (more specific) documents win scalar and sequence conflicts
// while nested maps still deep-merge. stack carries the locations on
// the current descent; an import already on it would recurse forever
// and is dropped.
func (im *importer) importScenesRecursive(root *yaml.Node, scenePath sceneimport.Url, stack *[]sceneimport.Url) {
	scenePath = sceneKey(scenePath)

	im.logger.Debugf("Starting importing scene %q", scenePath)

	for _, s := range *stack {
		if s == scenePath {
			im.logger.Errorf("%q will cause a cyclic import. Stopping this scene from being imported", scenePath)
			return
		}
	}

	scene, ok := im.scenes[scenePath]
	if !ok || isNull(scene) || scene.Kind != yaml.MappingNode {
		return
	}

	*stack = append(*stack, scenePath)

	imports := im.getResolvedImportURLs(scene, scenePath)

	// Import directives must not leak into the merged document.
	mapDelete(scene, importKey)

	for _, imported := range imports {
		im.importScenesRecursive(root, imported, stack)
	}

	*stack = (*stack)[:len(*stack)-1]

	im.mergeMapFields(root, scene)

	im.resolveSceneURLs(root, scenePath)
}
