// Package media stores uploaded images and resolves stored references to URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/pkg/slug"
)

// Upload directories, one per image field family.
const (
	DirTreatments   = "treatments"
	DirBefore       = "before_after/before"
	DirAfter        = "before_after/after"
	DirTeam         = "team"
	DirTestimonials = "testimonials"
	DirBlog         = "blog"
)

var ErrUnsupportedType = errors.New("unsupported image type")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Supported reports whether filename has an image extension Save accepts.
func Supported(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Storage persists uploaded files and hands back a relative reference such as
// "treatments/3f2a9c1e-hydrafacial.jpg".
type Storage interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}

// LocalStorage keeps files under Root and serves them below BaseURL.
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !Supported(filename) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}
	ref := path.Join(dir, uuid.NewString()[:8]+"-"+base+ext)

	full := filepath.Join(s.Root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return ref, nil
}

func (s *LocalStorage) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	full := filepath.Join(s.Root, filepath.FromSlash(path.Clean("/"+ref)))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

// URL returns the public address of a stored reference, or "" for an empty one.
func (s *LocalStorage) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return s.BaseURL + "/" + strings.TrimLeft(ref, "/")
}
