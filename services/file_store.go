package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"paper-review-api/config"
	"paper-review-api/utils"

	"github.com/google/uuid"
)

// PublicUploadPrefix is the URL prefix under which stored files are served.
const PublicUploadPrefix = "uploads"

// FileStore writes uploaded bytes to a directory and hands back a reference.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	if root == "" {
		root = config.App.UploadPath
	}
	return &FileStore{root: root}
}

// Save copies the upload to disk and returns a URL-friendly reference
// of the form "uploads/<uuid>-<sanitized name>".
func (s *FileStore) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.root, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "-" + utils.SafeFilename(filepath.Base(file.Filename))
	fullPath := filepath.Join(s.root, name)

	dst, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("write stored file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("close stored file: %w", err)
	}

	return path.Join(PublicUploadPrefix, name), nil
}

// Remove deletes the file behind ref. Missing files are not an error.
func (s *FileStore) Remove(ref string) error {
	name := strings.TrimPrefix(ref, PublicUploadPrefix+"/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, `\`) {
		return fmt.Errorf("invalid file reference %q", ref)
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Root is the directory served at /uploads.
func (s *FileStore) Root() string {
	return s.root
}
