package organize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cubby/internal/logging"
	"cubby/internal/services"
)

func TestMoverPlaceMovesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	folder := filepath.Join(dir, "Documents")

	resolver := NewResolver()
	mover := NewMover(resolver, logging.NewNop())
	if err := mover.EnsureFolder(folder); err != nil {
		t.Fatalf("EnsureFolder: %v", err)
	}
	resolved, err := resolver.Resolve(folder, "a.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	finalName, err := mover.Place(src, folder, "a.txt", resolved)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if finalName != "a.txt" {
		t.Fatalf("expected a.txt, got %q", finalName)
	}

	content, err := os.ReadFile(filepath.Join(folder, "a.txt"))
	if err != nil {
		t.Fatalf("read moved file: %v", err)
	}
	if string(content) != "payload" {
		t.Fatalf("content mismatch: %q", content)
	}
	if _, err := os.Lstat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source gone, err=%v", err)
	}
}

func TestMoverReresolvesWhenDestinationAppears(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	folder := filepath.Join(dir, "Documents")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	resolver := NewResolver()
	mover := NewMover(resolver, logging.NewNop())
	resolved, err := resolver.Resolve(folder, "a.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved != "a.txt" {
		t.Fatalf("expected a.txt, got %q", resolved)
	}

	// An external writer wins the race for the resolved name.
	if err := os.WriteFile(filepath.Join(folder, "a.txt"), []byte("raced"), 0o644); err != nil {
		t.Fatalf("write racer: %v", err)
	}

	finalName, err := mover.Place(src, folder, "a.txt", resolved)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if finalName != "a_1.txt" {
		t.Fatalf("expected re-resolved a_1.txt, got %q", finalName)
	}

	raced, err := os.ReadFile(filepath.Join(folder, "a.txt"))
	if err != nil {
		t.Fatalf("read racer: %v", err)
	}
	if string(raced) != "raced" {
		t.Fatalf("racer clobbered: %q", raced)
	}
	moved, err := os.ReadFile(filepath.Join(folder, "a_1.txt"))
	if err != nil {
		t.Fatalf("read moved: %v", err)
	}
	if string(moved) != "new" {
		t.Fatalf("moved content mismatch: %q", moved)
	}
}

func TestMoverEnsureFolderBlockedByFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "Documents")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	mover := NewMover(NewResolver(), logging.NewNop())
	err := mover.EnsureFolder(blocker)
	if err == nil {
		t.Fatal("expected error when a file occupies the folder name")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestMoverPlaceMissingSource(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Documents")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	mover := NewMover(NewResolver(), logging.NewNop())
	_, err := mover.Place(filepath.Join(dir, "ghost.txt"), folder, "ghost.txt", "ghost.txt")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestRenameProbedRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	for path, body := range map[string]string{src: "new", dst: "old"} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	err := renameProbed(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	content, readErr := os.ReadFile(dst)
	if readErr != nil {
		t.Fatalf("read dst: %v", readErr)
	}
	if string(content) != "old" {
		t.Fatalf("destination clobbered: %q", content)
	}
}

func TestRenameNoClobberRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	for path, body := range map[string]string{src: "new", dst: "old"} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	err := renameNoClobber(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	if _, err := os.Lstat(src); err != nil {
		t.Fatalf("expected source untouched: %v", err)
	}
}
