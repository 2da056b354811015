package importer

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tilecraft/sceneimport"
)

// globalPrefix marks references into the scene's global namespace;
// such values are never treated as URLs.
const globalPrefix = "global."

// materialProperties are the material slots that may carry a texture.
var materialProperties = []string{"emission", "ambient", "diffuse", "specular", "normal"}

// nodeIsPotentialURL reports whether a node can be treated as a URL at
// all: a non-null scalar that is not a global reference.
func nodeIsPotentialURL(n *yaml.Node) bool {
	if isNull(n) || n.Kind != yaml.ScalarNode {
		return false
	}
	return !strings.HasPrefix(n.Value, globalPrefix)
}

// nodeIsTextureURL additionally rejects booleans, numbers, and names of
// textures already declared in the scene.
func nodeIsTextureURL(n, textures *yaml.Node) bool {
	if !nodeIsPotentialURL(n) {
		return false
	}
	if scalarIsBoolOrNumber(n) {
		return false
	}
	return mapGet(textures, n.Value) == nil
}

// resolveTexture rewrites a texture reference in place to its absolute
// form and registers it as an asset.
func (im *importer) resolveTexture(n *yaml.Node, base sceneimport.Url) {
	relative := sceneimport.Url(n.Value)
	resolved := relative.Resolved(base)
	setScalar(n, resolved.String())
	im.createSceneAsset(resolved, relative, base, nil)
}

// resolveSceneURLs sweeps the accumulated root for the known resource
// sections and rewrites each qualifying URL against the given base.
// The sweep runs once per merged document, with that document's own
// location as base; resolving an already-absolute URL a second time is
// a no-op, so repeated sweeps over earlier sections are harmless.
func (im *importer) resolveSceneURLs(root *yaml.Node, base sceneimport.Url) {

	textures := mapGet(root, "textures")

	// Top-level texture URLs.
	if textures != nil && textures.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(textures.Content); i += 2 {
			texture := textures.Content[i+1]
			if urlNode := mapGet(texture, "url"); urlNode != nil && nodeIsPotentialURL(urlNode) {
				im.resolveTexture(urlNode, base)
			}
		}
	}

	// Inline texture references within styles.
	if styles := mapGet(root, "styles"); styles != nil && styles.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(styles.Content); i += 2 {
			style := styles.Content[i+1]
			if style.Kind != yaml.MappingNode {
				continue
			}

			if texture := mapGet(style, "texture"); texture != nil && nodeIsTextureURL(texture, textures) {
				im.resolveTexture(texture, base)
			}

			if material := mapGet(style, "material"); material != nil && material.Kind == yaml.MappingNode {
				for _, prop := range materialProperties {
					propNode := mapGet(material, prop)
					if propNode == nil || propNode.Kind != yaml.MappingNode {
						continue
					}
					if texture := mapGet(propNode, "texture"); texture != nil && nodeIsTextureURL(texture, textures) {
						im.resolveTexture(texture, base)
					}
				}
			}

			shaders := mapGet(style, "shaders")
			if shaders == nil || shaders.Kind != yaml.MappingNode {
				continue
			}
			uniforms := mapGet(shaders, "uniforms")
			if uniforms == nil || uniforms.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(uniforms.Content); j += 2 {
				value := uniforms.Content[j+1]
				switch {
				case nodeIsTextureURL(value, textures):
					im.resolveTexture(value, base)
				case value.Kind == yaml.SequenceNode:
					for _, elem := range value.Content {
						if nodeIsTextureURL(elem, textures) {
							im.resolveTexture(elem, base)
						}
					}
				}
			}
		}
	}

	// Datasource URLs. Non-absolute results stay local and are mapped
	// through the platform's path resolution.
	if sources := mapGet(root, "sources"); sources != nil && sources.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(sources.Content); i += 2 {
			source := sources.Content[i+1]
			if source.Kind != yaml.MappingNode {
				continue
			}
			urlNode := mapGet(source, "url")
			if urlNode == nil || !nodeIsPotentialURL(urlNode) {
				continue
			}
			relative := sceneimport.Url(urlNode.Value)
			resolved := relative.Resolved(base)
			if resolved.IsAbsolute() {
				setScalar(urlNode, resolved.String())
			} else {
				setScalar(urlNode, im.platform.ResolveLocalPath(resolved).String())
			}
			im.createSceneAsset(resolved, relative, base, nil)
		}
	}

	// Font URLs: a font entry is either a map with a url or a sequence
	// of such maps.
	if fonts := mapGet(root, "fonts"); fonts != nil && fonts.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(fonts.Content); i += 2 {
			font := fonts.Content[i+1]
			switch font.Kind {
			case yaml.MappingNode:
				if urlNode := mapGet(font, "url"); urlNode != nil && nodeIsPotentialURL(urlNode) {
					im.resolveTexture(urlNode, base)
				}
			case yaml.SequenceNode:
				for _, face := range font.Content {
					if urlNode := mapGet(face, "url"); urlNode != nil && nodeIsPotentialURL(urlNode) {
						im.resolveTexture(urlNode, base)
					}
				}
			}
		}
	}
}
