package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(10, 6, color.RGBA{R: 200, A: 255})))

	img, format, err := NewProcessor("").Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h RGBA
// pixels, with no image data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 6, 0, 0, 0)

	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecode_RejectsOversizedDimensions(t *testing.T) {
	_, _, err := NewProcessor("").Decode(bytes.NewReader(pngHeader(30000, 30000)))
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestDecode_MaxPixelsOption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(10, 6, color.White)))
	data := buf.Bytes()

	_, _, err := NewProcessor("", WithMaxPixels(59)).Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTooManyPixels)

	img, _, err := NewProcessor("", WithMaxPixels(60)).Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())

	_, _, err = NewProcessor("", WithMaxPixels(0)).Decode(bytes.NewReader(data))
	assert.NoError(t, err, "non-positive limit keeps the default")
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := NewProcessor("").Decode(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRenditions_Downscales(t *testing.T) {
	p := NewProcessor("STUDIO")
	out, err := p.Renditions(solid(3000, 1500, color.RGBA{G: 120, A: 255}))
	require.NoError(t, err)
	require.Len(t, out, 4)

	byVariant := map[Variant]Rendition{}
	for _, r := range out {
		byVariant[r.Variant] = r
		assert.Equal(t, "image/jpeg", r.ContentType)
		_, err := jpeg.Decode(bytes.NewReader(r.Data))
		assert.NoError(t, err, r.Variant)
	}

	assert.Equal(t, ThumbnailBound, byVariant[VariantThumbnail].Width)
	assert.Equal(t, ThumbnailBound/2, byVariant[VariantThumbnail].Height)
	assert.Equal(t, MediumBound, byVariant[VariantMedium].Width)
	assert.Equal(t, LargeBound, byVariant[VariantLarge].Width)
	assert.Equal(t, byVariant[VariantLarge].Width, byVariant[VariantWatermarked].Width)
	assert.Equal(t, byVariant[VariantLarge].Height, byVariant[VariantWatermarked].Height)
}

func TestRenditions_DoesNotUpscale(t *testing.T) {
	out, err := NewProcessor("").Renditions(solid(120, 80, color.White))
	require.NoError(t, err)

	for _, r := range out {
		assert.Equal(t, 120, r.Width, r.Variant)
		assert.Equal(t, 80, r.Height, r.Variant)
	}
}

func TestWatermark_DarkensBottomBand(t *testing.T) {
	src := solid(600, 400, color.White)
	marked := NewProcessor("STUDIO").Watermark(src)

	top := color.RGBAModel.Convert(marked.At(5, 5)).(color.RGBA)
	bottomEdge := color.RGBAModel.Convert(marked.At(2, 398)).(color.RGBA)

	assert.Equal(t, uint8(255), top.R)
	assert.Less(t, bottomEdge.R, uint8(255))
}

func TestWatermark_NoTextReturnsCopy(t *testing.T) {
	src := solid(50, 50, color.White)
	marked := NewProcessor("").Watermark(src)

	c := color.RGBAModel.Convert(marked.At(25, 49)).(color.RGBA)
	assert.Equal(t, uint8(255), c.R)
}

func TestFlatten_TransparentBecomesWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	flat := flatten(src)

	c := flat.RGBAAt(1, 1)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)
}

func TestThumbnail(t *testing.T) {
	r, err := NewProcessor("STUDIO").Thumbnail(solid(1600, 900, color.RGBA{G: 120, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, VariantThumbnail, r.Variant)
	assert.Equal(t, "image/jpeg", r.ContentType)
	assert.Equal(t, ThumbnailBound, r.Width)
	assert.Equal(t, 225, r.Height)
}
