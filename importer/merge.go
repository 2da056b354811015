package importer

import "gopkg.in/yaml.v3"

func kindName(n *yaml.Node) string {
	if isNull(n) {
		return "null"
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "map"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// mergeMapFields merges source into target key by key. Keys absent from
// the target adopt the source value; scalar and sequence collisions are
// overwritten by the source (last writer wins); map/map collisions
// recurse. A kind mismatch is unusual but not an error: it is logged
// and the source value wins.
func (im *importer) mergeMapFields(target, source *yaml.Node) {
	if source == nil || source.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(source.Content); i += 2 {
		key := source.Content[i].Value
		src := source.Content[i+1]

		dest := mapGet(target, key)
		if dest == nil {
			mapSet(target, key, src)
			continue
		}

		if dest.Kind != src.Kind {
			im.logger.Warnf("Merging different node kinds at %q: %s <== %s",
				key, kindName(dest), kindName(src))
			mapSet(target, key, src)
			continue
		}

		switch dest.Kind {
		case yaml.MappingNode:
			im.mergeMapFields(dest, src)
		default:
			mapSet(target, key, src)
		}
	}
}
