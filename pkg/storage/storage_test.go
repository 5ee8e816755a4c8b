package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thomascamminady/filefocus/pkg/models"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	s, err := New(dataDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer s.Close()

	if s.dataDir != dataDir {
		t.Errorf("Expected dataDir %s, got %s", dataDir, s.dataDir)
	}

	dbFile := filepath.Join(dataDir, "groups.db")
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer s.Close()

	g := &models.Group{
		ID:        "group-1",
		Name:      "backlog",
		Resources: []string{"/z/last.txt", "/a/first.txt", "/m/middle.txt"},
	}

	if err := s.Save(g, true); err != nil {
		t.Fatalf("Failed to save group: %v", err)
	}

	loaded, pinned, err := s.load("group-1")
	if err != nil {
		t.Fatalf("Failed to load group: %v", err)
	}
	if !pinned {
		t.Error("Expected pinned flag to round-trip")
	}
	if loaded.Name != g.Name {
		t.Errorf("Expected name %s, got %s", g.Name, loaded.Name)
	}
	if !reflect.DeepEqual(loaded.Resources, g.Resources) {
		t.Errorf("Expected resource order preserved, got %v", loaded.Resources)
	}

	// Load non-existent
	if _, _, err := s.load("missing"); err == nil {
		t.Error("Expected error when loading missing group")
	}
}

func TestSaveOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer s.Close()

	g := &models.Group{ID: "g", Name: "before", Resources: []string{"/a.txt"}}
	if err := s.Save(g, false); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	g.Name = "after"
	g.Resources = []string{"/b.txt"}
	if err := s.Save(g, true); err != nil {
		t.Fatalf("Failed to re-save: %v", err)
	}

	loaded, pinned, err := s.load("g")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if loaded.Name != "after" || !pinned || len(loaded.Resources) != 1 || loaded.Resources[0] != "/b.txt" {
		t.Errorf("Expected overwritten group, got %+v (pinned=%v)", loaded, pinned)
	}
}

func TestLoadAll(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Save(&models.Group{ID: "a", Name: "alpha", Resources: []string{}}, false); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := s.Save(&models.Group{ID: "b", Name: "beta", Resources: []string{"/x"}}, true); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	groups, pinnedID, err := s.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load all: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if pinnedID != "b" {
		t.Errorf("Expected pinned id b, got %s", pinnedID)
	}
}

func TestDelete(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Save(&models.Group{ID: "a", Name: "alpha", Resources: []string{}}, false); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := s.Delete("a"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, _, err := s.load("a"); err == nil {
		t.Error("Expected error after delete")
	}

	// Deleting a missing group is not an error.
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Unexpected error deleting missing group: %v", err)
	}
}

func TestEmptyResourceList(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Save(&models.Group{ID: "e", Name: "empty"}, false); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	loaded, _, err := s.load("e")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(loaded.Resources) != 0 {
		t.Errorf("Expected no resources, got %v", loaded.Resources)
	}
}
