package sceneimport

import "testing"

func TestUrlResolved(t *testing.T) {
	tests := []struct {
		name string
		url  Url
		base Url
		want Url
	}{
		{"relative against file base", "tex.png", "scenes/a.yaml", "scenes/tex.png"},
		{"relative against rooted base", "tex.png", "/scenes/a.yaml", "/scenes/tex.png"},
		{"relative against http base", "tex.png", "https://host/scenes/a.yaml", "https://host/scenes/tex.png"},
		{"parent traversal", "../tex.png", "/scenes/deep/a.yaml", "/scenes/tex.png"},
		{"absolute url ignores base", "https://other/t.png", "https://host/a.yaml", "https://other/t.png"},
		{"rooted path ignores base", "/t.png", "scenes/a.yaml", "/t.png"},
		{"empty resolves to base", "", "scenes/a.yaml", "scenes/a.yaml"},
		{"empty base keeps url", "a.yaml", "", "a.yaml"},
		{"dot segments normalized", "./b/../tex.png", "scenes/a.yaml", "scenes/tex.png"},
		{"bundled base", "tex.png", "scenes/demo.zip/demo.yaml", "scenes/demo.zip/tex.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.url.Resolved(tt.base); got != tt.want {
				t.Errorf("Url(%q).Resolved(%q) = %q, want %q", tt.url, tt.base, got, tt.want)
			}
		})
	}
}

func TestUrlPredicates(t *testing.T) {
	tests := []struct {
		url      Url
		absolute bool
		http     bool
		zip      bool
	}{
		{"https://host/scene.yaml", true, true, false},
		{"http://host/bundle.zip", true, true, true},
		{"file:///scenes/a.yaml", true, false, false},
		{"/scenes/a.yaml", true, false, false},
		{"scenes/a.yaml", false, false, false},
		{"demo.zip", false, false, true},
		{"demo.zip?v=2", false, false, true},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.url), func(t *testing.T) {
			if got := tt.url.IsAbsolute(); got != tt.absolute {
				t.Errorf("IsAbsolute() = %v, want %v", got, tt.absolute)
			}
			if got := tt.url.HasHTTPScheme(); got != tt.http {
				t.Errorf("HasHTTPScheme() = %v, want %v", got, tt.http)
			}
			if got := tt.url.HasZipExtension(); got != tt.zip {
				t.Errorf("HasZipExtension() = %v, want %v", got, tt.zip)
			}
		})
	}
}

func TestUrlScheme(t *testing.T) {
	tests := []struct {
		url  Url
		want string
	}{
		{"https://host/x", "https"},
		{"HTTP://host/x", "http"},
		{"file:///x", "file"},
		{"scenes/a.yaml", ""},
		{"a:b/c.yaml", "a"},
		{"1bad://host", ""},
		{"c:/windows/style", "c"},
	}

	for _, tt := range tests {
		if got := tt.url.Scheme(); got != tt.want {
			t.Errorf("Url(%q).Scheme() = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestUrlBaseName(t *testing.T) {
	tests := []struct {
		url  Url
		want string
	}{
		{"scenes/demo.zip", "demo.zip"},
		{"https://host/path/bundle.zip?v=1", "bundle.zip"},
		{"a.yaml", "a.yaml"},
	}

	for _, tt := range tests {
		if got := tt.url.BaseName(); got != tt.want {
			t.Errorf("Url(%q).BaseName() = %q, want %q", tt.url, got, tt.want)
		}
	}
}
