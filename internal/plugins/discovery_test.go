package plugins

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createPluginDir creates a plugin directory under root, optionally with
// a descriptor file
func createPluginDir(t *testing.T, root, name, descriptor string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create plugin dir: %v", err)
	}
	if descriptor != "" {
		path := filepath.Join(dir, DescriptorFileName)
		if err := os.WriteFile(path, []byte(descriptor), 0644); err != nil {
			t.Fatalf("Failed to write descriptor: %v", err)
		}
	}
}

func TestDiscovery_EmptyRoot(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())

	found, err := discovery.List()
	if err != nil {
		t.Fatalf("Expected no error for empty root, got: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("Expected 0 plugins in empty root, got: %d", len(found))
	}
}

func TestDiscovery_MissingRoot(t *testing.T) {
	discovery := NewDiscovery(filepath.Join(t.TempDir(), "never-created"))

	found, err := discovery.List()
	if err != nil {
		t.Fatalf("A missing root means no plugins yet, got error: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("Expected 0 plugins, got: %d", len(found))
	}
}

func TestDiscovery_WithDescriptor(t *testing.T) {
	root := t.TempDir()
	createPluginDir(t, root, "my-plugin", `{"name": "My Plugin", "description": "Adds X"}`)

	found, err := NewDiscovery(root).List()
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Expected 1 plugin, got: %d", len(found))
	}

	p := found[0]
	if p.Name != "my-plugin" {
		t.Errorf("Expected plugin name 'my-plugin', got: %s", p.Name)
	}
	if p.Description != "Adds X" {
		t.Errorf("Expected description 'Adds X', got: %s", p.Description)
	}
	if !p.HasDescriptor {
		t.Error("Expected HasDescriptor to be true")
	}
}

func TestDiscovery_WithoutDescriptor(t *testing.T) {
	root := t.TempDir()
	createPluginDir(t, root, "bare-plugin", "")

	found, err := NewDiscovery(root).List()
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Expected 1 plugin, got: %d", len(found))
	}
	if found[0].HasDescriptor {
		t.Error("Expected HasDescriptor to be false")
	}
	if found[0].Description != "" {
		t.Errorf("Expected empty description, got: %s", found[0].Description)
	}
}

func TestDiscovery_DescriptorWithoutDescriptionKey(t *testing.T) {
	root := t.TempDir()
	createPluginDir(t, root, "my-plugin", `{"name": "My Plugin"}`)

	found, err := NewDiscovery(root).List()
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}
	if found[0].Description != "" {
		t.Errorf("Expected empty description for missing key, got: %s", found[0].Description)
	}
}

func TestDiscovery_MalformedDescriptorContinues(t *testing.T) {
	root := t.TempDir()
	createPluginDir(t, root, "a-broken", `{"description": "unterminated`)
	createPluginDir(t, root, "b-healthy", `{"description": "Still here"}`)

	var warnings bytes.Buffer
	discovery := NewDiscoveryWithWarnings(root, &warnings)

	found, err := discovery.List()
	if err != nil {
		t.Fatalf("A malformed descriptor must not abort the enumeration, got: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("Expected both plugins listed, got: %d", len(found))
	}

	byName := make(map[string]string)
	for _, p := range found {
		byName[p.Name] = p.Description
	}
	if byName["a-broken"] != "" {
		t.Errorf("Broken descriptor should yield empty description, got: %s", byName["a-broken"])
	}
	if byName["b-healthy"] != "Still here" {
		t.Errorf("Healthy plugin after the broken one should keep its description, got: %s", byName["b-healthy"])
	}
	if !strings.Contains(warnings.String(), "malformed descriptor") {
		t.Errorf("Expected a warning about the malformed descriptor, got: %s", warnings.String())
	}
}

func TestDiscovery_IgnoresPlainFiles(t *testing.T) {
	root := t.TempDir()
	createPluginDir(t, root, "real-plugin", "")
	if err := os.WriteFile(filepath.Join(root, "stray-file.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}

	found, err := NewDiscovery(root).List()
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "real-plugin" {
		t.Fatalf("Expected only the directory to be listed, got: %v", found)
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		want      string
		expectErr bool
	}{
		{name: "WithDescription", data: `{"description": "Adds X"}`, want: "Adds X"},
		{name: "MissingKey", data: `{"name": "p"}`, want: ""},
		{name: "EmptyObject", data: `{}`, want: ""},
		{name: "NonStringDescription", data: `{"description": 42}`, want: "42"},
		{name: "InvalidJSON", data: `{"description": `, expectErr: true},
		{name: "EmptyFile", data: ``, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDescription([]byte(tt.data))
			if tt.expectErr {
				if err == nil {
					t.Fatalf("Expected an error for %q", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
