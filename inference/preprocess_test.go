package inference

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 51, A: 255})
		}
	}

	const size = 32
	dst := make([]float32, 3*size*size)
	require.NoError(t, PrepareInput(img, dst, size))

	plane := size * size
	assert.InDelta(t, 1.0, dst[0], 0.01)
	assert.InDelta(t, 0.0, dst[plane], 0.01)
	assert.InDelta(t, 0.2, dst[2*plane], 0.01)
	assert.InDelta(t, 1.0, dst[plane-1], 0.01)
}

func TestPrepareInputShortTensor(t *testing.T) {
	err := PrepareInput(image.NewRGBA(image.Rect(0, 0, 4, 4)), make([]float32, 10), 32)
	assert.Error(t, err)
}
