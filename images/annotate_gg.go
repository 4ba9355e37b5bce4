//go:build !gocv

package images

import (
	"bytes"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	annotationLineWidth = 2
	annotationFontSize  = 14
)

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

// newLabelFace returns a face for drawing labels. A face caches glyphs and must not be shared
// between goroutines, so each call gets its own over the once-parsed font.
func newLabelFace() (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
		labelFontErr = errors.Wrap(labelFontErr, "failed to parse label font")
	})
	if labelFontErr != nil {
		return nil, labelFontErr
	}
	return truetype.NewFace(labelFont, &truetype.Options{Size: annotationFontSize}), nil
}

// Annotate draws labelled boxes on a copy of img and returns it JPEG-encoded.
//
// Arguments:
//   - img: The source image, left unmodified.
//   - anns: The boxes to draw, in original image coordinates.
//
// Returns:
//   - []byte: The JPEG bytes.
//   - error: An error if the font cannot be loaded or encoding fails.
func Annotate(img image.Image, anns []Annotation) ([]byte, error) {
	face, err := newLabelFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(face)
	dc.SetLineWidth(annotationLineWidth)
	for _, a := range anns {
		r := a.Box
		dc.SetColor(a.Color)
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Stroke()

		tw, th := dc.MeasureString(a.Label)
		ty := float64(r.Min.Y) - 4
		if ty-th < 0 {
			ty = float64(r.Min.Y) + th + 4
		}
		dc.DrawRectangle(float64(r.Min.X), ty-th-2, tw+4, th+4)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawString(a.Label, float64(r.Min.X)+2, ty)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, errors.Wrap(err, "failed to encode annotated image")
	}
	return buf.Bytes(), nil
}
