// Package output persists the assembled canvas, choosing the encoder from the file
// extension.
package output

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output extensions without an encoder.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// JPEGQuality is used for .jpg and .jpeg outputs.
const JPEGQuality = 90

type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".gif": func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// EncoderFor returns the encoder matching path's extension.
func EncoderFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		if ext == "" {
			return nil, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return enc, nil
}

// Save encodes img to path. The image is written to a temporary file in the same
// directory and renamed into place, so a failed save leaves no partial output.
func Save(path string, img image.Image) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}

	pending, err := Stage(path, func(w io.Writer) error {
		if err := enc(w, img); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return pending.Commit()
}

// Pending is a fully written temporary file that has not yet been renamed to its
// final path.
type Pending struct {
	path    string
	tmpPath string
	done    bool
}

// Stage writes the contents of path to a temporary file beside it. Nothing appears at
// path until Commit; Discard removes the temporary file.
func Stage(path string, write func(w io.Writer) error) (*Pending, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	p := &Pending{path: path, tmpPath: tmp.Name()}

	if err := write(tmp); err != nil {
		tmp.Close()
		p.Discard()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		p.Discard()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(p.tmpPath, 0o644); err != nil {
		p.Discard()
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return p, nil
}

// StageBytes stages data for path.
func StageBytes(path string, data []byte) (*Pending, error) {
	return Stage(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Path is the final destination.
func (p *Pending) Path() string { return p.path }

// Commit renames the temporary file into place. Calling it twice is a no-op.
func (p *Pending) Commit() error {
	if p.done {
		return nil
	}
	if err := os.Rename(p.tmpPath, p.path); err != nil {
		p.Discard()
		return fmt.Errorf("replace %s: %w", p.path, err)
	}
	p.done = true
	return nil
}

// Discard removes an uncommitted temporary file. It is safe after Commit.
func (p *Pending) Discard() {
	if p.done {
		return
	}
	p.done = true
	os.Remove(p.tmpPath)
}
