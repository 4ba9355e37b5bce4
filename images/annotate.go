package images

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Annotation is one labelled box drawn onto an image.
type Annotation struct {
	Box   image.Rectangle
	Label string
	Color color.RGBA
}

// NewAnnotation formats a label with its confidence.
func NewAnnotation(box image.Rectangle, label string, score float64, c color.RGBA) Annotation {
	return Annotation{Box: box, Label: fmt.Sprintf("%s %.2f", label, score), Color: c}
}

// AnnotateTo draws anns onto img and writes the result to w as JPEG.
func AnnotateTo(w io.Writer, img image.Image, anns []Annotation) error {
	data, err := Annotate(img, anns)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
