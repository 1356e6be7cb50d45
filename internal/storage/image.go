package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

var ErrNotAnImage = errors.New("file is not a supported image")

// Image is an upload that has been decoded, oriented and resized.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
	Width       int
	Height      int
}

// NormalizeImage decodes r, applies EXIF orientation and fits it inside a
// maxDim square. PNG input stays PNG; everything else is re-encoded as JPEG.
func NormalizeImage(r io.Reader, filename string, maxDim int) (*Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	if maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		}
	}

	out := &bytes.Buffer{}
	result := &Image{}
	if format, ferr := imaging.FormatFromFilename(filename); ferr == nil && format == imaging.PNG {
		err = imaging.Encode(out, img, imaging.PNG)
		result.Ext, result.ContentType = ".png", "image/png"
	} else {
		err = imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(90))
		result.Ext, result.ContentType = ".jpg", "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	result.Data = out.Bytes()
	result.Width = img.Bounds().Dx()
	result.Height = img.Bounds().Dy()
	return result, nil
}
