// Package imaging derives the resized and watermarked renditions of an
// uploaded photo.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

type Variant string

const (
	VariantThumbnail   Variant = "thumbnail"
	VariantMedium      Variant = "medium"
	VariantLarge       Variant = "large"
	VariantWatermarked Variant = "watermarked"
)

const (
	ThumbnailBound = 400
	MediumBound    = 1024
	LargeBound     = 2048

	jpegQuality = 85

	// DefaultMaxPixels bounds decoded images at 50 megapixels.
	DefaultMaxPixels = 50_000_000
)

var (
	ErrDecode        = errors.New("unable to decode image")
	ErrTooManyPixels = errors.New("image dimensions too large")
)

// Rendition is one encoded derivative of the original.
type Rendition struct {
	Variant     Variant
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

type Processor struct {
	watermarkText string
	maxPixels     int64
}

type Option func(*Processor)

// WithMaxPixels sets the largest width*height Decode accepts. Non-positive
// values keep the default.
func WithMaxPixels(n int64) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxPixels = n
		}
	}
}

func NewProcessor(watermarkText string, opts ...Option) *Processor {
	p := &Processor{watermarkText: watermarkText, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decode returns the image and its format name ("jpeg", "png", "gif", "webp").
// The header is checked first so oversized images are never allocated.
func (p *Processor) Decode(r io.Reader) (image.Image, string, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("%w: empty image", ErrDecode)
	}
	if int64(cfg.Width)*int64(cfg.Height) > p.maxPixels {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooManyPixels, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// Renditions produces thumbnail, medium, large and watermarked JPEGs.
// Images smaller than a bound are not upscaled.
func (p *Processor) Renditions(img image.Image) ([]Rendition, error) {
	flat := flatten(img)

	bounds := []struct {
		variant Variant
		max     uint
	}{
		{VariantThumbnail, ThumbnailBound},
		{VariantMedium, MediumBound},
		{VariantLarge, LargeBound},
	}

	out := make([]Rendition, 0, len(bounds)+1)
	var large image.Image
	for _, b := range bounds {
		scaled := resize.Thumbnail(b.max, b.max, flat, resize.Lanczos3)
		r, err := encode(b.variant, scaled)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		if b.variant == VariantLarge {
			large = scaled
		}
	}

	r, err := encode(VariantWatermarked, p.Watermark(large))
	if err != nil {
		return nil, err
	}
	return append(out, r), nil
}

// Thumbnail encodes only the thumbnail rendition, used for video posters.
func (p *Processor) Thumbnail(img image.Image) (Rendition, error) {
	return encode(VariantThumbnail, resize.Thumbnail(ThumbnailBound, ThumbnailBound, flatten(img), resize.Lanczos3))
}

// Watermark draws a translucent band across the bottom of img with the
// configured text centred in it.
func (p *Processor) Watermark(img image.Image) image.Image {
	dst := flatten(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if p.watermarkText == "" || w == 0 || h == 0 {
		return dst
	}

	bandH := max(h/12, 16)
	if bandH > h {
		bandH = h
	}
	band := image.Rect(0, h-bandH, w, h)
	draw.Draw(dst, band, image.NewUniform(color.NRGBA{A: 110}), image.Point{}, draw.Over)

	glyphs := renderText(p.watermarkText)
	gw, gh := glyphs.Bounds().Dx(), glyphs.Bounds().Dy()

	scale := float64(bandH) * 0.7 / float64(gh)
	if limit := float64(w) * 0.9 / float64(gw); scale > limit {
		scale = limit
	}
	sw, sh := uint(float64(gw)*scale), uint(float64(gh)*scale)
	if sw == 0 || sh == 0 {
		return dst
	}

	scaled := resize.Resize(sw, sh, glyphs, resize.Bilinear)
	sb := scaled.Bounds()
	x := (w - sb.Dx()) / 2
	y := band.Min.Y + (bandH-sb.Dy())/2
	draw.Draw(dst, image.Rect(x, y, x+sb.Dx(), y+sb.Dy()), scaled, sb.Min, draw.Over)

	return dst
}

func renderText(text string) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	canvas := image.NewRGBA(image.Rect(0, 0, width+4, face.Height+4))

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 210}),
		Face: face,
		Dot:  fixed.P(2, 2+face.Ascent),
	}
	d.DrawString(text)
	return canvas
}

// flatten copies img onto an opaque white canvas so JPEG encoding never
// turns transparency black.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func encode(variant Variant, img image.Image) (Rendition, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Rendition{}, fmt.Errorf("failed to encode %s: %w", variant, err)
	}
	return Rendition{
		Variant:     variant,
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}
