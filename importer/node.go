package importer

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Helpers for working with yaml.Node trees. A MappingNode stores its
// content as alternating key/value pairs; all lookups below walk that
// layout directly so merges preserve document order.

// parseScene parses scene text into its root node.
func parseScene(text string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}
	// Empty input parses to a zero node.
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}, nil
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// mapGet returns the value node for key within a MappingNode, or nil.
func mapGet(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// mapSet replaces the value for key, or appends a new pair when the key
// is absent.
func mapSet(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	m.Content = append(m.Content, k, value)
}

// mapDelete removes the key and its value from a MappingNode.
func mapDelete(m *yaml.Node, key string) {
	if m == nil || m.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
	}
}

// setScalar rewrites a scalar node's value in place.
func setScalar(n *yaml.Node, value string) {
	n.Value = value
	n.Tag = "!!str"
	n.Style = 0
}

// scalarIsBoolOrNumber reports whether a scalar parses as a boolean or
// a number. The resolved yaml tag answers for parsed documents; the
// strconv fallback covers nodes built without tag resolution.
func scalarIsBoolOrNumber(n *yaml.Node) bool {
	switch n.Tag {
	case "!!bool", "!!int", "!!float":
		return true
	case "", "!!str":
	default:
		return false
	}
	if n.Tag == "!!str" && n.Style != 0 {
		// Quoted scalars are strings no matter what they spell.
		return false
	}
	v := strings.TrimSpace(n.Value)
	if _, err := strconv.ParseBool(v); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	return false
}
