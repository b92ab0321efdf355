package services

import (
	"strings"
	"testing"
)

func TestMediaStoreSaveSanitizesFilename(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	name, err := store.Save(MediaImage, "my photo (1).png", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if strings.ContainsAny(name, " ()") {
		t.Fatalf("stored name should be sanitized, got %q", name)
	}
	if !strings.HasSuffix(name, "my_photo_1.png") {
		t.Fatalf("unexpected stored name %q", name)
	}

	if _, ok := store.Path(MediaImage, name); !ok {
		t.Fatalf("stored file %q not found on disk", name)
	}
}

func TestMediaStoreRejectsDisallowedExtension(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	if _, err := store.Save(MediaImage, "script.exe", strings.NewReader("x")); err == nil {
		t.Fatal("expected .exe image upload to be rejected")
	}
	if store.Allowed(MediaResume, "resume.docx") {
		t.Fatal("resumes accept PDFs only")
	}
	if !store.Allowed(MediaVideo, "clip.mp4") {
		t.Fatal("mp4 should be an allowed video extension")
	}
}

func TestMediaStorePathRejectsTraversal(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	if _, ok := store.Path(MediaImage, "../../etc/passwd"); ok {
		t.Fatal("traversal path should not resolve")
	}
}

func TestMediaStoreDeleteMissingFile(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	if err := store.Delete(MediaVideo, "never-existed.mp4"); err != nil {
		t.Fatalf("deleting a missing file should be a no-op, got %v", err)
	}
}
