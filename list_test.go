package flatpack

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/flatpack/internal/testutil"
)

func TestList(t *testing.T) {
	t.Parallel()

	archive := packFiles(t, map[string]string{"a.txt": "hi", "b.txt": ""})

	entries, err := List(context.Background(), archive)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "a.txt", Size: 2, Offset: 22},
		{Name: "b.txt", Size: 0, Offset: 38},
	}, entries)
}

func TestListEmpty(t *testing.T) {
	t.Parallel()

	archive := packFiles(t, nil)

	entries, err := List(context.Background(), archive)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMatchesPackOrder(t *testing.T) {
	t.Parallel()

	archive := packFiles(t, map[string]string{
		"c.txt": "ccc",
		"a.txt": "a",
		"b.txt": "bb",
	})

	entries, err := List(context.Background(), archive)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, names)
}

func TestListTruncated(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	data := testutil.EncodeContainer(testutil.Record{Name: "a.txt", Data: []byte("some data")})
	src := testutil.WriteContainer(t, tmp, "cut.arch", data[:len(data)-3])

	_, err := List(context.Background(), src)
	assert.ErrorIs(t, err, ErrMalformedArchive)
}

func TestListMissing(t *testing.T) {
	t.Parallel()

	_, err := List(context.Background(), filepath.Join(t.TempDir(), "missing.arch"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestListCollisionPolicy(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := testutil.WriteContainer(t, tmp, "dup.arch", testutil.EncodeContainer(
		testutil.Record{Name: "same.txt", Data: []byte("first")},
		testutil.Record{Name: "same.txt", Data: []byte("second")},
	))

	entries, err := List(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = List(context.Background(), src, UnpackWithCollisionPolicy(CollisionReject))
	require.ErrorIs(t, err, ErrNameCollision)

	err = Unpack(context.Background(), src, filepath.Join(tmp, "out"), UnpackWithCollisionPolicy(CollisionReject))
	assert.ErrorIs(t, err, ErrNameCollision)
}
