package objectclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/models"
)

var ErrUnsupportedExtension = errors.New("unsupported file extension")

var _ core.UploadStore = (*LocalStore)(nil)

// LocalStore keeps uploads in a single directory so the extraction backends
// can open them by path.
type LocalStore struct {
	dir     string
	allowed map[string]bool
}

// NewLocalStore creates dir if needed. allowed holds lowercase extensions
// without the leading dot.
func NewLocalStore(dir string, allowed []string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}
	s := &LocalStore{dir: dir, allowed: make(map[string]bool, len(allowed))}
	for _, ext := range allowed {
		s.allowed[strings.ToLower(ext)] = true
	}
	return s, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Allowed reports whether filename carries one of the accepted extensions.
func (s *LocalStore) Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && s.allowed[ext]
}

// Save writes data under a sanitized, uuid-prefixed name and returns the path.
func (s *LocalStore) Save(ctx context.Context, filename string, data io.Reader) (string, error) {
	if !s.Allowed(filename) {
		return "", fmt.Errorf("%q: %w", filename, ErrUnsupportedExtension)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, uuid.NewString()+"_"+SanitizeFilename(filename))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path, nil
}

// Stats counts every regular file in the folder and lists the first limit
// of them by name.
func (s *LocalStore) Stats(limit int) (models.StorageStats, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return models.StorageStats{}, fmt.Errorf("read upload folder: %w", err)
	}

	var stats models.StorageStats
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.FilesCount++
		stats.TotalSize += info.Size()
		stats.Files = append(stats.Files, models.StoredFile{
			Name:    e.Name(),
			Size:    info.Size(),
			Created: info.ModTime(),
		})
	}
	sort.Slice(stats.Files, func(i, j int) bool { return stats.Files[i].Name < stats.Files[j].Name })
	if limit >= 0 && len(stats.Files) > limit {
		stats.Files = stats.Files[:limit]
	}
	return stats, nil
}

// SanitizeFilename drops any directory part and keeps ASCII letters, digits,
// dots, dashes and underscores. Whitespace becomes an underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '\t':
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}
