package watch

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	changed []string
	removed []string
}

func (r *recorder) Changed(path string) { r.changed = append(r.changed, path) }
func (r *recorder) Removed(path string) { r.removed = append(r.removed, path) }

func (r *recorder) reset() {
	r.changed = nil
	r.removed = nil
}

func writeFile(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	a := filepath.Join(dir, "a.arith")
	b := filepath.Join(dir, "sub", "b.arith")
	require.NoError(t, os.MkdirAll(filepath.Dir(b), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))
	writeFile(t, a, "1;\n", base)
	writeFile(t, b, "2;\n", base)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x", base)
	writeFile(t, filepath.Join(dir, ".hidden", "c.arith"), "3;\n", base)

	rec := &recorder{}
	w := New(dir, rec, time.Second)

	w.Scan()
	sort.Strings(rec.changed)
	assert.Equal(t, []string{a, b}, rec.changed)
	assert.Empty(t, rec.removed)

	rec.reset()
	w.Scan()
	assert.Empty(t, rec.changed, "unchanged files reported again")

	writeFile(t, a, "4;\n", base.Add(time.Minute))
	require.NoError(t, os.Remove(b))

	rec.reset()
	w.Scan()
	assert.Equal(t, []string{a}, rec.changed)
	assert.Equal(t, []string{b}, rec.removed)
}

func TestScanSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	writeFile(t, path, "1;\n", time.Now().Add(-time.Hour))

	rec := &recorder{}
	New(path, rec, 0).Scan()

	assert.Equal(t, []string{path}, rec.changed)
}

func TestStartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.arith")
	writeFile(t, path, "1;\n", time.Now().Add(-time.Hour))

	rec := &recorder{}
	w := New(path, rec, time.Hour)
	w.Start()
	w.Stop()
	w.Stop()

	assert.Equal(t, []string{path}, rec.changed)
}
