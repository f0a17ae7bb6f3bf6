package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrInvalidName = errors.New("invalid filename")
	ErrNotFound    = errors.New("blog not found")
)

// reserved filenames never show up in listings even when present on disk.
var reserved = map[string]bool{
	"README.md":              true,
	"task.md":                true,
	"implementation_plan.md": true,
}

// Summary is one listing entry. Title and ModifiedAt are derived from the
// file on every read; nothing is stored besides the markdown itself.
type Summary struct {
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Store keeps generated articles as plain markdown files in one directory.
// There is no locking: concurrent writes to the same filename race and the
// last writer wins.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New builds a store rooted at dir; "" means the working directory.
func New(dir string, logger *zap.Logger) *Store {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Persist writes content to filename, creating or overwriting it.
func (s *Store) Persist(filename, content string) error {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("persist %s: %w", filename, err)
	}
	s.logger.Info("saved article", zap.String("filename", filename), zap.Int("bytes", len(content)))
	return nil
}

// List enumerates stored articles, newest first. Unreadable entries are
// logged and skipped so one bad file cannot sink the whole listing.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	blogs := []Summary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || reserved[name] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("skipping unreadable entry", zap.String("filename", name), zap.Error(err))
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("skipping unreadable entry", zap.String("filename", name), zap.Error(err))
			continue
		}

		blogs = append(blogs, Summary{
			Filename:   name,
			Title:      titleOf(decode(data), name),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].ModifiedAt.After(blogs[j].ModifiedAt)
	})
	return blogs, nil
}

// Get returns the raw text of one stored article. Filenames carrying path
// separators or parent references are rejected before touching the
// filesystem.
func (s *Store) Get(filename string) (string, error) {
	if strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	if !strings.HasSuffix(filename, ".md") {
		return "", fmt.Errorf("%w: only .md files allowed", ErrInvalidName)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return decode(data), nil
}

// decode tolerates broken encodings: invalid UTF-8 sequences become U+FFFD
// instead of failing the read.
func decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}

// titleOf takes the first level-1 heading line, falling back to the
// filename stem.
func titleOf(content, filename string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return strings.TrimSuffix(filename, ".md")
}
