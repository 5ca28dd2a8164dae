// Package images ingests uploaded artwork: uploads are written under a
// single directory with randomized filenames, center-cropped to the poster
// aspect ratio and served back by URL.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// PublicPrefix is the URL prefix ingested images are served under.
const PublicPrefix = "/static/images"

// Posters are cropped to a fixed 2:3 width:height ratio.
const (
	ratioWidth  = 2
	ratioHeight = 3
)

// ErrUnsupportedImage is returned for uploads that are not decodable JPEG,
// PNG or GIF data.
var ErrUnsupportedImage = errors.New("unsupported or unreadable image")

// Store writes derived image files below a root directory on the given
// filesystem. Filenames carry a random component, so concurrent uploads
// never collide and no locking is needed.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore creates the root directory if needed and returns a store rooted
// there.
func NewStore(fs afero.Fs, root string) (*Store, error) {
	if err := fs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}
	return &Store{fs: fs, root: root}, nil
}

// SaveUpload persists the uploaded image, crops it in place to the poster
// ratio and returns the public URL path of the stored file. A failed crop
// removes the file so no record can reference a broken image.
func (s *Store) SaveUpload(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	mt := mimetype.Detect(data)
	if !mt.Is("image/jpeg") && !mt.Is("image/png") && !mt.Is("image/gif") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}

	name := uuid.New().String() + "_" + safeName(originalName, mt.Extension())
	fullPath := filepath.Join(s.root, name)

	if err := afero.WriteFile(s.fs, fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	if err := s.cropStored(fullPath); err != nil {
		s.fs.Remove(fullPath)
		return "", err
	}

	return PublicPrefix + "/" + name, nil
}

// cropStored re-reads the stored file, center-crops it to the poster ratio
// and overwrites it in the same format.
func (s *Store) cropStored(fullPath string) error {
	data, err := afero.ReadFile(s.fs, fullPath)
	if err != nil {
		return fmt.Errorf("read stored image: %w", err)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	cropped := centerCrop(src)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(&buf, cropped)
	case "gif":
		err = gif.Encode(&buf, cropped, nil)
	default:
		return fmt.Errorf("%w: format %q", ErrUnsupportedImage, format)
	}
	if err != nil {
		return fmt.Errorf("encode cropped image: %w", err)
	}

	if err := afero.WriteFile(s.fs, fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("overwrite image: %w", err)
	}
	return nil
}

// centerCrop trims the longer dimension symmetrically until the image
// matches the poster ratio. Wider than 2:3 trims width, narrower trims
// height; an exact match passes through untouched.
func centerCrop(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var rect image.Rectangle
	if w*ratioHeight > h*ratioWidth {
		newW := h * ratioWidth / ratioHeight
		x0 := bounds.Min.X + (w-newW)/2
		rect = image.Rect(x0, bounds.Min.Y, x0+newW, bounds.Min.Y+h)
	} else {
		newH := w * ratioHeight / ratioWidth
		y0 := bounds.Min.Y + (h-newH)/2
		rect = image.Rect(bounds.Min.X, y0, bounds.Min.X+w, y0+newH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}

// safeName reduces an uploaded filename to a flat, space-free base name,
// falling back to a generic name plus the sniffed extension.
func safeName(name, ext string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	base = strings.ReplaceAll(base, " ", "-")
	if base == "" || base == "." || base == "/" {
		return "upload" + ext
	}
	return base
}
