package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when no registered decoder recognises the input.
var ErrUnknownFormat = errors.New("unrecognised image format")

// Source is a single raster the frames are cut from.
type Source interface {
	Path() string
	Dimensions() (width, height int, format string, err error)
	Decode() (image.Image, string, error)
}

// ImageSource decodes a file whose format is detected from its content, not its name.
type ImageSource struct {
	path string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &ImageSource{path: path}, nil
}

func (s *ImageSource) Path() string {
	return s.path
}

// Dimensions reads only the image header.
func (s *ImageSource) Dimensions() (int, int, string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", decodeError(s.path, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

func (s *ImageSource) Decode() (image.Image, string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return DecodeReader(f)
}

// DecodeReader decodes r with every registered codec.
func DecodeReader(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", decodeError("", err)
	}
	return img, format, nil
}

func decodeError(path string, err error) error {
	if errors.Is(err, image.ErrFormat) {
		err = ErrUnknownFormat
	}
	if path == "" {
		return fmt.Errorf("decode image: %w", err)
	}
	return fmt.Errorf("decode %s: %w", path, err)
}
