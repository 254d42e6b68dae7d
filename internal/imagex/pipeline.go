// Package imagex renders user-selected images into the fixed-size slots a
// card stores: free-form crop, optional rotation/flip, resample into a fixed
// target box, lossy encode. Output size is bounded regardless of input
// resolution.
package imagex

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ItemType selects the output canvas for a slot.
type ItemType string

const (
	// ItemPhoto is a square envelope photo.
	ItemPhoto ItemType = "photo"
	// ItemEvent is a 3:4 portrait memory card.
	ItemEvent ItemType = "event"
)

const (
	photoSize   = 800
	eventWidth  = 800
	eventHeight = 1066
	jpegQuality = 85
)

// Options adjust the rendering of a single image.
type Options struct {
	// Crop is the source rectangle after rotation/flip, in pixels. The zero
	// rectangle means the whole image.
	Crop image.Rectangle
	// Rotation is in degrees clockwise. Defaults to none.
	Rotation float64
	FlipH    bool
	FlipV    bool
}

// TargetSize returns the fixed output dimensions for an item type. Unknown
// types render as photos.
func TargetSize(t ItemType) (w, h int) {
	if t == ItemEvent {
		return eventWidth, eventHeight
	}
	return photoSize, photoSize
}

// Render decodes raw, applies rotation/flip, crops, resamples into the fixed
// target box for itemType and encodes the result as JPEG.
//
// Failures degrade to a nil result rather than an error, so callers can
// treat any unusable input as "no image".
func Render(raw []byte, itemType ItemType, opts Options) []byte {
	src, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil
	}

	img := imaging.Clone(src)
	if opts.Rotation != 0 {
		img = imaging.Rotate(img, -opts.Rotation, color.White)
	}
	if opts.FlipH {
		img = imaging.FlipH(img)
	}
	if opts.FlipV {
		img = imaging.FlipV(img)
	}

	crop := opts.Crop
	if crop.Empty() {
		crop = img.Bounds()
	}
	crop = crop.Intersect(img.Bounds())
	if crop.Empty() {
		return nil
	}
	img = imaging.Crop(img, crop)

	w, h := TargetSize(itemType)
	img = imaging.Resize(img, w, h, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil
	}
	return buf.Bytes()
}

// DataURL wraps a rendered JPEG as an inline data URL, the form the creation
// flow stores in card slots before upload.
func DataURL(jpegBytes []byte) string {
	if len(jpegBytes) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes)
}
