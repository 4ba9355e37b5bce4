//go:build gocv

package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Annotate draws labelled boxes on a copy of img with OpenCV and returns it JPEG-encoded.
func Annotate(img image.Image, anns []Annotation) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert image to mat")
	}
	defer mat.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, a := range anns {
		gocv.Rectangle(&mat, a.Box, a.Color, 2)

		size := gocv.GetTextSize(a.Label, gocv.FontHersheySimplex, 0.5, 1)
		origin := image.Pt(a.Box.Min.X, a.Box.Min.Y-4)
		if origin.Y-size.Y < 0 {
			origin.Y = a.Box.Min.Y + size.Y + 4
		}
		bg := image.Rect(origin.X, origin.Y-size.Y-2, origin.X+size.X+4, origin.Y+4)
		gocv.Rectangle(&mat, bg, a.Color, -1)
		gocv.PutText(&mat, a.Label, image.Pt(origin.X+2, origin.Y), gocv.FontHersheySimplex, 0.5, white, 1)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode annotated image")
	}
	defer buf.Close()
	return append([]byte(nil), buf.GetBytes()...), nil
}
