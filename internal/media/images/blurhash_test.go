package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG renders a small two-tone image and encodes it as PNG.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 30, G: 30, B: 200, A: 255})
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestComputeBlurHash(t *testing.T) {
	hash, err := ComputeBlurHash(testPNG(t, 40, 60))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// 4x3 components produce a fixed-length hash.
	assert.Len(t, hash, 28)
}

func TestComputeBlurHash_Deterministic(t *testing.T) {
	data := testPNG(t, 40, 60)

	h1, err := ComputeBlurHash(data)
	require.NoError(t, err)
	h2, err := ComputeBlurHash(data)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestComputeBlurHash_LargeImageResized(t *testing.T) {
	// Larger than blurHashSize on both axes; exercises the resize path.
	hash, err := ComputeBlurHash(testPNG(t, 300, 450))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestComputeBlurHash_InvalidData(t *testing.T) {
	_, err := ComputeBlurHash([]byte("not an image"))
	assert.Error(t, err)
}

func TestResizeForBlurHash_AspectRatio(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	small := resizeForBlurHash(img)

	bounds := small.Bounds()
	assert.Equal(t, 64, bounds.Dx())
	assert.Equal(t, 32, bounds.Dy())
}

func TestResizeForBlurHash_SmallImageUntouched(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 48))
	assert.Equal(t, img, resizeForBlurHash(img))
}

func TestDimensions(t *testing.T) {
	width, height, err := Dimensions(testPNG(t, 120, 80))
	require.NoError(t, err)
	assert.Equal(t, 120, width)
	assert.Equal(t, 80, height)
}

func TestDimensions_InvalidData(t *testing.T) {
	_, _, err := Dimensions([]byte("not an image"))
	assert.Error(t, err)
}
