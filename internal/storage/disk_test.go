package storage

import (
	"os"
	"path/filepath"
	"testing"
	"unstablenet/internal/config"
)

func TestDiskStore_SaveReturnsPublicURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(config.MediaConfig{Dir: dir, PublicPath: "/media"})
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	url, err := store.Save("covers/footer/logo.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/media/covers/footer/logo.png" {
		t.Errorf("unexpected URL %q", url)
	}

	got, err := os.ReadFile(filepath.Join(dir, "covers", "footer", "logo.png"))
	if err != nil {
		t.Fatalf("file was not written: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("file contents mismatch: %q", got)
	}
}

func TestDiskStore_SaveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(config.MediaConfig{Dir: dir, PublicPath: "/media"})
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	url, err := store.Save("../escape.png", []byte("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/media/escape.png" {
		t.Errorf("traversal was not neutralized: %q", url)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "..", "escape.png")); statErr == nil {
		t.Error("file escaped the media directory")
	}
}
