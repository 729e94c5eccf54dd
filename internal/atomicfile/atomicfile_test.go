package atomicfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")

	f, err := Create(target)
	require.NoError(t, err)
	assert.Equal(t, target, f.Target())

	_, err = f.Write([]byte("xxxxworld"))
	require.NoError(t, err)
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = f.Write([]byte("hell"))
	require.NoError(t, err)

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "target must not exist before commit")

	require.NoError(t, f.Commit())
	require.NoError(t, f.Discard(), "discard after commit is a no-op")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hellworld", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}

func TestCommitReplacesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(target, []byte("old content that is longer"), 0o644))

	f, err := Create(target)
	require.NoError(t, err)
	_, err = f.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o644))

	f, err := Create(target)
	require.NoError(t, err)
	_, err = f.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, f.Discard())

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.ErrorIs(t, f.Commit(), os.ErrClosed)
}

func TestCreateMissingDir(t *testing.T) {
	t.Parallel()

	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.bin"))
	assert.Error(t, err)
}

func TestCommitModeFollowsUmask(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.bin")
	pf, err := os.Create(plain)
	require.NoError(t, err)
	require.NoError(t, pf.Close())
	want, err := os.Stat(plain)
	require.NoError(t, err)

	target := filepath.Join(dir, "staged.bin")
	f, err := Create(target)
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	got, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, want.Mode().Perm(), got.Mode().Perm())
}

func TestCreateUniqueNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")

	a, err := Create(target)
	require.NoError(t, err)
	defer a.Discard() //nolint:errcheck // test cleanup
	b, err := Create(target)
	require.NoError(t, err)
	defer b.Discard() //nolint:errcheck // test cleanup

	assert.NotEqual(t, a.Name(), b.Name())
	assert.True(t, strings.HasPrefix(filepath.Base(a.Name()), tempPrefix))
}
