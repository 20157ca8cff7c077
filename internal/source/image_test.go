package source

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

func TestImageSourceDetectsFormatByContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(12, 8)))

	// The extension lies; the content is BMP.
	path := writeFile(t, "frames.png", buf.Bytes())
	src, err := NewImageSource(path)
	require.NoError(t, err)
	require.Equal(t, path, src.Path())

	w, h, format, err := src.Dimensions()
	require.NoError(t, err)
	require.Equal(t, 12, w)
	require.Equal(t, 8, h)
	require.Equal(t, "bmp", format)

	img, format, err := src.Decode()
	require.NoError(t, err)
	require.Equal(t, "bmp", format)
	require.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())
	r, g, _, _ := img.At(5, 3).RGBA()
	require.Equal(t, uint32(5), r>>8)
	require.Equal(t, uint32(3), g>>8)
}

func TestImageSourcePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(4, 4)))
	src, err := NewImageSource(writeFile(t, "in", buf.Bytes()))
	require.NoError(t, err)

	_, format, err := src.Decode()
	require.NoError(t, err)
	require.Equal(t, "png", format)
}

func TestImageSourceUnknownFormat(t *testing.T) {
	src, err := NewImageSource(writeFile(t, "notes.png", []byte("definitely not an image")))
	require.NoError(t, err)

	_, _, err = src.Decode()
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, _, _, err = src.Dimensions()
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewImageSourceMissing(t *testing.T) {
	_, err := NewImageSource(filepath.Join(t.TempDir(), "absent.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewImageSource(t.TempDir())
	require.ErrorContains(t, err, "is a directory")
}
