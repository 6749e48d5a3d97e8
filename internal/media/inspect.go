package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned by Inspect for content that is not a supported raster image.
var ErrNotImage = errors.New("file is not a supported image")

// Info is what Inspect learns from the file bytes.
type Info struct {
	ContentType string
	Extension   string
	Width       int
	Height      int
}

var rasterTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Inspect sniffs the real content type of data and decodes the image
// dimensions. The declared type of an upload is never trusted.
func Inspect(data []byte) (Info, error) {
	mt := mimetype.Detect(data)
	contentType := mt.String()
	for m := mt; m != nil; m = m.Parent() {
		if rasterTypes[m.String()] {
			contentType = m.String()
			break
		}
	}
	if !rasterTypes[contentType] {
		return Info{ContentType: mt.String()}, ErrNotImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{ContentType: contentType}, ErrNotImage
	}

	return Info{
		ContentType: contentType,
		Extension:   mt.Extension(),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
