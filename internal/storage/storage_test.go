package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("avatars", "JPG")
	assert.True(t, strings.HasPrefix(name, "avatars/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, name, ObjectName("avatars", ".jpg"))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/media/")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "avatars/a.jpg", []byte("data"), "image/jpeg"))
	got, err := os.ReadFile(filepath.Join(dir, "avatars", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	assert.Equal(t, "/media/avatars/a.jpg", s.URL("avatars/a.jpg"))

	require.NoError(t, s.Delete(ctx, "avatars/a.jpg"))
	require.NoError(t, s.Delete(ctx, "avatars/a.jpg"))
}

func TestLocalStoreStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/media")

	require.NoError(t, s.Save(context.Background(), "../../escape.txt", []byte("x"), "text/plain"))
	_, err := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestNormalizeImageFitsAndKeepsPNG(t *testing.T) {
	img, err := NormalizeImage(bytes.NewReader(encodePNG(t, 400, 200)), "photo.png", 100)
	require.NoError(t, err)

	assert.Equal(t, ".png", img.Ext)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, 100, img.Width)
	assert.Equal(t, 50, img.Height)
}

func TestNormalizeImageReencodesOthersAsJPEG(t *testing.T) {
	img, err := NormalizeImage(bytes.NewReader(encodePNG(t, 40, 40)), "upload.gif", 100)
	require.NoError(t, err)

	assert.Equal(t, ".jpg", img.Ext)
	assert.Equal(t, 40, img.Width)
}

func TestNormalizeImageRejectsGarbage(t *testing.T) {
	_, err := NormalizeImage(strings.NewReader("not an image"), "x.png", 100)
	assert.ErrorIs(t, err, ErrNotAnImage)
}
