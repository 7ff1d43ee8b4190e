package disk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yasohm/formulaire/internal/intake/blob"
	"github.com/yasohm/formulaire/internal/intake/blob/drivers/disk"
)

func TestPutAndDeleteRelative(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := disk.New(dir, "")
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	ref, err := s.Put(context.Background(), blob.Object{
		Name:        "photo-1-abc.png",
		ContentType: "image/png",
		Data:        []byte("png"),
	})
	require.NoError(t, err)
	require.Equal(t, "uploads/photo-1-abc.png", ref)

	got, err := os.ReadFile(filepath.Join(dir, "photo-1-abc.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("png"), got)

	require.NoError(t, s.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, "photo-1-abc.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	// Already gone.
	require.NoError(t, s.Delete(context.Background(), ref))
}

func TestPutWithBaseURL(t *testing.T) {
	s, err := disk.New(t.TempDir(), "http://localhost:3000/")
	require.NoError(t, err)

	ref, err := s.Put(context.Background(), blob.Object{Name: "certificat-1-x.pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000/uploads/certificat-1-x.pdf", ref)

	require.NoError(t, s.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(s.Dir(), "certificat-1-x.pdf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPutNeverOverwrites(t *testing.T) {
	s, err := disk.New(t.TempDir(), "")
	require.NoError(t, err)

	obj := blob.Object{Name: "photo-1-dup.png", Data: []byte("first")}
	_, err = s.Put(context.Background(), obj)
	require.NoError(t, err)

	obj.Data = []byte("second")
	_, err = s.Put(context.Background(), obj)
	require.ErrorIs(t, err, blob.ErrExists)

	got, err := os.ReadFile(filepath.Join(s.Dir(), "photo-1-dup.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("first"), got)
}

func TestRejectsUnsafeNamesAndRefs(t *testing.T) {
	s, err := disk.New(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), blob.Object{Name: "../escape.png"})
	require.Error(t, err)

	err = s.Delete(context.Background(), "https://cdn.example/other/photo.png")
	require.ErrorIs(t, err, blob.ErrForeignRef)
}
