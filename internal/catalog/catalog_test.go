package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltin(t *testing.T) {
	t.Parallel()

	activities := Builtin()
	if len(activities) != 10 {
		t.Fatalf("Builtin() returned %d activities, want 10", len(activities))
	}

	seen := make(map[string]bool)
	for _, a := range activities {
		if a.Name == "" || a.Description == "" || a.Schedule == "" {
			t.Errorf("activity %+v has empty fields", a)
		}
		if seen[a.Name] {
			t.Errorf("duplicate activity name %q", a.Name)
		}
		seen[a.Name] = true
	}
	if !seen["Basketball"] {
		t.Error("builtin catalog missing Basketball")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `
[activities."Robotics"]
description = "Build and program robots"
schedule = "Friday, 3:30 PM"

[activities."Art Club"]
description = "Draw and paint"
schedule = "Monday, 4:00 PM"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	activities, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("LoadFile() returned %d activities, want 2", len(activities))
	}
	// Sorted by name.
	if activities[0].Name != "Art Club" || activities[1].Name != "Robotics" {
		t.Fatalf("unexpected order: %q, %q", activities[0].Name, activities[1].Name)
	}
	if activities[1].Description != "Build and program robots" {
		t.Errorf("Robotics description = %q", activities[1].Description)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile() on empty catalog should fail")
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("LoadFile() on missing file should fail")
	}
}
