// Package testutil provides fixtures shared by flatpack tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// Record is a container entry assembled by hand, independently of Pack.
type Record struct {
	Name string
	Data []byte
}

// EncodeContainer lays out records in container format. The header holds
// the true total size.
func EncodeContainer(records ...Record) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 8))
	for _, r := range records {
		buf.WriteString(r.Name)
		buf.WriteByte(0)
		_ = binary.Write(&buf, binary.BigEndian, uint64(len(r.Data))) //nolint:errcheck // bytes.Buffer never fails
		buf.Write(r.Data)
	}
	out := buf.Bytes()
	binary.BigEndian.PutUint64(out[:8], uint64(len(out)))
	return out
}

// WriteFiles creates files under dir from a name to content map and returns
// their paths in sorted order. Names may contain slashes; parent directories
// are created.
func WriteFiles(tb testing.TB, dir string, files map[string]string) []string {
	tb.Helper()

	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(tb, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// ReadFiles returns the regular files directly inside dir as a name to
// content map.
func ReadFiles(tb testing.TB, dir string) map[string]string {
	tb.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(tb, err)

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(tb, err)
		files[e.Name()] = string(data)
	}
	return files
}

// WriteContainer writes a hand-built container to dir/name and returns its path.
func WriteContainer(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, data, 0o644))
	return path
}
