package importer

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMapAccessors(t *testing.T) {
	m := mustParse(t, "a: 1\nb: 2")

	if n := mapGet(m, "a"); n == nil || n.Value != "1" {
		t.Errorf("mapGet(a) = %v", n)
	}
	if n := mapGet(m, "missing"); n != nil {
		t.Errorf("mapGet(missing) = %v, want nil", n)
	}

	mapSet(m, "b", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "20"})
	if n := mapGet(m, "b"); n.Value != "20" {
		t.Errorf("mapGet(b) after set = %q, want 20", n.Value)
	}

	mapSet(m, "c", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "3"})
	if n := mapGet(m, "c"); n == nil || n.Value != "3" {
		t.Errorf("mapGet(c) after append = %v", n)
	}

	mapDelete(m, "a")
	if n := mapGet(m, "a"); n != nil {
		t.Errorf("mapGet(a) after delete = %v, want nil", n)
	}
	if got := len(m.Content); got != 4 {
		t.Errorf("mapping has %d content nodes after delete, want 4", got)
	}
}

func TestParseSceneEmptyInput(t *testing.T) {
	n, err := parseScene("")
	if err != nil {
		t.Fatalf("parseScene(\"\") failed: %v", err)
	}
	if !isNull(n) {
		t.Errorf("empty input should parse to a null node, got kind %v", n.Kind)
	}
}

func TestScalarIsBoolOrNumber(t *testing.T) {
	doc := mustParse(t, `
flag: true
count: 42
scale: 1.5
name: tex.png
quoted: "42"
`)

	tests := []struct {
		key  string
		want bool
	}{
		{"flag", true},
		{"count", true},
		{"scale", true},
		{"name", false},
		{"quoted", false},
	}
	for _, tt := range tests {
		if got := scalarIsBoolOrNumber(mapGet(doc, tt.key)); got != tt.want {
			t.Errorf("scalarIsBoolOrNumber(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}

	// Nodes built without tag resolution fall back to parsing the value.
	if !scalarIsBoolOrNumber(&yaml.Node{Kind: yaml.ScalarNode, Value: "7"}) {
		t.Error("untagged numeric scalar should count as a number")
	}
	if scalarIsBoolOrNumber(&yaml.Node{Kind: yaml.ScalarNode, Value: "tex.png"}) {
		t.Error("untagged string scalar should not count as a number")
	}
}
