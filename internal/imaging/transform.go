// Package imaging turns uploaded pictures into the bounded JPEG data URLs
// stored with flashcards.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// DataURLPrefix starts every URL produced by Transform.
const DataURLPrefix = "data:image/jpeg;base64,"

// Transformer downsizes and re-encodes images within the bounds of an
// ImageConfig.
type Transformer struct {
	opts types.ImageConfig
}

// NewTransformer returns a Transformer for opts. Zero fields take the
// defaults of types.DefaultImageConfig.
func NewTransformer(opts types.ImageConfig) *Transformer {
	def := types.DefaultImageConfig()
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = def.MaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = def.MaxHeight
	}
	if opts.Quality <= 0 || opts.Quality > 1 {
		opts.Quality = def.Quality
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = def.MaxBytes
	}
	return &Transformer{opts: opts}
}

// Options returns the effective bounds.
func (t *Transformer) Options() types.ImageConfig {
	return t.opts
}

// Transform reads raw, fits it within MaxWidth x MaxHeight and returns it
// as a JPEG data URL. Errors wrap types.ErrTooLarge or
// types.ErrUnsupportedFormat when the input is at fault.
func (t *Transformer) Transform(raw types.RawImage) (string, error) {
	if raw.Size() > t.opts.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", types.ErrTooLarge, raw.Size(), t.opts.MaxBytes)
	}

	rc, err := raw.Open()
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, t.opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > t.opts.MaxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", types.ErrTooLarge, t.opts.MaxBytes)
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, detected.String())
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", types.ErrUnsupportedFormat, detected.String(), err)
	}

	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), t.opts.MaxWidth, t.opts.MaxHeight)

	// JPEG has no alpha; flatten onto white.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	quality := int(math.Round(t.opts.Quality * 100))
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encoding jpeg: %w", err)
	}

	return DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FitWithin returns the size of a w x h image scaled down to fit
// maxW x maxH with its aspect ratio kept. Width is bounded first, then
// height. Images already within bounds are returned unchanged.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w > maxW {
		h = int(math.Round(float64(h) * float64(maxW) / float64(w)))
		w = maxW
	}
	if h > maxH {
		w = int(math.Round(float64(w) * float64(maxH) / float64(h)))
		h = maxH
	}
	return max(w, 1), max(h, 1)
}
