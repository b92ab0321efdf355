package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Media file types and their storage subdirectories.
const (
	MediaImage  = "image"
	MediaVideo  = "video"
	MediaResume = "resume"
)

var mediaDirs = map[string]string{
	MediaImage:  "images",
	MediaVideo:  "videos",
	MediaResume: "resumes",
}

var mediaExtensions = map[string][]string{
	MediaImage:  {".png", ".jpg", ".jpeg", ".gif", ".webp"},
	MediaVideo:  {".mp4", ".webm", ".mov", ".avi"},
	MediaResume: {".pdf"},
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// MediaStore keeps uploaded files on local disk under type-specific
// subdirectories of a root folder.
type MediaStore struct {
	root string
}

// NewMediaStore creates the storage directories under root.
func NewMediaStore(root string) (*MediaStore, error) {
	for _, dir := range mediaDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", dir, err)
		}
	}
	return &MediaStore{root: root}, nil
}

// Dir returns the absolute directory for a media type.
func (s *MediaStore) Dir(fileType string) (string, error) {
	dir, ok := mediaDirs[fileType]
	if !ok {
		return "", fmt.Errorf("unknown media type %q", fileType)
	}
	return filepath.Join(s.root, dir), nil
}

// DirByName resolves a URL path segment (images/videos/resumes) to its
// absolute directory.
func (s *MediaStore) DirByName(name string) (string, bool) {
	for _, dir := range mediaDirs {
		if dir == name {
			return filepath.Join(s.root, dir), true
		}
	}
	return "", false
}

// Allowed reports whether the filename's extension is accepted for the
// media type.
func (s *MediaStore) Allowed(fileType, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range mediaExtensions[fileType] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Save stores the uploaded content under a timestamped, sanitized
// filename and returns the stored name.
func (s *MediaStore) Save(fileType, filename string, content io.Reader) (string, error) {
	dir, err := s.Dir(fileType)
	if err != nil {
		return "", err
	}
	if !s.Allowed(fileType, filename) {
		return "", fmt.Errorf("file extension not allowed for %s uploads", fileType)
	}

	name := sanitizeFilename(filename)
	name = time.Now().Format("20060102_150405_") + name

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

// Path resolves a stored filename to its absolute path, rejecting path
// traversal. The second return is false when the file does not exist.
func (s *MediaStore) Path(fileType, filename string) (string, bool) {
	dir, err := s.Dir(fileType)
	if err != nil {
		return "", false
	}
	name := filepath.Base(filename)
	if name == "." || name == ".." || name == "/" {
		return "", false
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Delete removes a stored file. Missing files are not an error.
func (s *MediaStore) Delete(fileType, filename string) error {
	dir, err := s.Dir(fileType)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	if name == "" {
		name = "upload"
	}
	return name
}
