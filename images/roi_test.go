package images

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseROI(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *ROI
		wantErr bool
	}{
		{name: "empty", raw: ""},
		{name: "null", raw: "null"},
		{name: "valid", raw: `{"x":10,"y":20,"width":100,"height":50}`, want: &ROI{10, 20, 100, 50}},
		{name: "fractional truncated", raw: `{"x":10.9,"y":0.2,"width":100.7,"height":50.1}`, want: &ROI{10, 0, 100, 50}},
		{name: "not json", raw: `{x:1}`, wantErr: true},
		{name: "array", raw: `[1,2,3,4]`, wantErr: true},
		{name: "missing height", raw: `{"x":1,"y":2,"width":3}`, wantErr: true},
		{name: "string field", raw: `{"x":"1","y":2,"width":3,"height":4}`, wantErr: true},
		{name: "zero width", raw: `{"x":1,"y":2,"width":0,"height":4}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseROI(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestROIClamp(t *testing.T) {
	size := image.Pt(640, 480)
	tests := []struct {
		name string
		roi  ROI
		want image.Rectangle
		ok   bool
	}{
		{name: "inside", roi: ROI{10, 20, 100, 50}, want: image.Rect(10, 20, 110, 70), ok: true},
		{name: "overflows right and bottom", roi: ROI{600, 400, 100, 100}, want: image.Rect(600, 400, 640, 480), ok: true},
		{name: "negative origin", roi: ROI{-50, -10, 100, 100}, want: image.Rect(0, 0, 100, 100), ok: true},
		{name: "starts at right edge", roi: ROI{640, 10, 50, 50}, ok: false},
		{name: "starts past bottom", roi: ROI{10, 900, 50, 50}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.roi.Clamp(size)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out := Crop(img, image.Rect(10, 20, 40, 60))
	assert.Equal(t, image.Rect(0, 0, 30, 40), out.Bounds())
}
