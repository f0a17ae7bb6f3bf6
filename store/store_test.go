package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, zap.NewNop()), dir
}

func TestPersistAndGet(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Persist("real.md", "# T\nbody"))

	content, err := s.Get("real.md")
	require.NoError(t, err)
	assert.Contains(t, content, "# T\nbody")
}

func TestPersistOverwrites(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Persist("post.md", "first"))
	require.NoError(t, s.Persist("post.md", "second"))

	content, err := s.Get("post.md")
	require.NoError(t, err)
	assert.Equal(t, "second", content)
}

func TestGetRejectsUnsafeNames(t *testing.T) {
	s, _ := newTestStore(t)

	for _, name := range []string{
		"../secret.txt",
		"a/b.md",
		`a\b.md`,
		"..%2F.md",
		"notes.txt",
		"plain",
	} {
		_, err := s.Get(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestGetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get("missing.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReplacesInvalidUTF8(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte{'#', ' ', 'A', '\n', 0xff, 0xfe}, 0o644))

	content, err := s.Get("broken.md")
	require.NoError(t, err)
	assert.Contains(t, content, "�")
	assert.Contains(t, content, "# A")
}

func TestListOrderAndTitles(t *testing.T) {
	s, dir := newTestStore(t)

	require.NoError(t, s.Persist("older.md", "# Older Post\ntext"))
	require.NoError(t, s.Persist("newer.md", "no heading here"))
	require.NoError(t, s.Persist("ignored.txt", "not markdown"))

	now := time.Now()
	require.NoError(t, os.Chtimes(filepath.Join(dir, "older.md"), now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "newer.md"), now, now))

	blogs, err := s.List()
	require.NoError(t, err)
	require.Len(t, blogs, 2)

	assert.Equal(t, "newer.md", blogs[0].Filename)
	assert.Equal(t, "newer", blogs[0].Title) // stem fallback, no heading
	assert.Equal(t, "older.md", blogs[1].Filename)
	assert.Equal(t, "Older Post", blogs[1].Title)
	assert.True(t, blogs[0].ModifiedAt.After(blogs[1].ModifiedAt))
}

func TestListExcludesReserved(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Persist("README.md", "# Readme"))
	require.NoError(t, s.Persist("task.md", "# Task"))
	require.NoError(t, s.Persist("implementation_plan.md", "# Plan"))
	require.NoError(t, s.Persist("kept.md", "# Kept"))

	blogs, err := s.List()
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "kept.md", blogs[0].Filename)
}

func TestListSkipsUnreadableEntries(t *testing.T) {
	s, dir := newTestStore(t)

	require.NoError(t, s.Persist("good.md", "# Good"))
	// A directory with a .md name is unreadable as a file and must not
	// abort the listing.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.md"), 0o755))

	blogs, err := s.List()
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "good.md", blogs[0].Filename)
}
