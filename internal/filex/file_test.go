package filex

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return buf.Bytes()
}

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "vault", "data", "paperroost.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "x.db")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir("bare.db"))
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "vault")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "paperroost.db"))
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestReadAttachment(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "scan.png")
	want := writePNG(t, path)

	name, data, err := ReadAttachment(path, 0)
	require.NoError(t, err)
	require.Equal(t, "scan.png", name)
	require.Equal(t, want, data)
}

func TestReadAttachment_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	data := writePNG(t, path)

	_, _, err := ReadAttachment(path, int64(len(data)-1))
	require.ErrorIs(t, err, ErrTooLarge)

	_, _, err = ReadAttachment(path, int64(len(data)))
	require.NoError(t, err, "exactly the limit is fine")
}

func TestReadAttachment_NotImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	_, _, err := ReadAttachment(path, 0)
	require.ErrorIs(t, err, ErrNotImage)
}

func TestReadAttachment_Missing(t *testing.T) {
	_, _, err := ReadAttachment(filepath.Join(t.TempDir(), "absent.png"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}
