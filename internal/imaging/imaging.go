// Package imaging normalises uploaded asset photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

const (
	// PhotoDimension bounds the width and height of a stored photo.
	PhotoDimension = 1024
	// ThumbDimension bounds the width and height of a thumbnail.
	ThumbDimension = 256
	// JPEGQuality is the compression quality for JPEG output.
	JPEGQuality = 85
	// MIME is the type of every processed image.
	MIME = "image/jpeg"
)

// MaxUploadSize caps how many bytes Process reads.
const MaxUploadSize = 10 << 20

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a processed upload: a bounded photo and its thumbnail, both JPEG.
type Photo struct {
	Full  []byte
	Thumb []byte
}

// Process sniffs the format from the bytes (JPEG and PNG only), then
// produces a photo of at most PhotoDimension and a thumbnail of at most
// ThumbDimension. Smaller images are never upscaled.
func Process(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("image larger than %d bytes", MaxUploadSize)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	full, err := encode(fit(img, PhotoDimension))
	if err != nil {
		return nil, err
	}
	thumb, err := encode(fit(img, ThumbDimension))
	if err != nil {
		return nil, err
	}
	return &Photo{Full: full, Thumb: thumb}, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales img down with Catmull-Rom so neither side exceeds maxDim,
// keeping the aspect ratio.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
