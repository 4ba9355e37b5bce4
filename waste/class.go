// Package waste - Waste-monitoring semantics on top of generic object detections.
package waste

import (
	"encoding/json"
	"image/color"

	"github.com/pkg/errors"
)

// Class is a domain category assigned to a detection.
type Class int

const (
	// Discarded marks a detection that is dropped from the report.
	Discarded Class = iota
	// Person is a human with no nearby waste.
	Person
	// PersonLittering is a person detected close to a bin, litter or an overloaded container.
	PersonLittering
	// Bin is a waste container.
	Bin
	// Litter is loose waste.
	Litter
	// ContainerOverload is an overflowing container.
	ContainerOverload
)

var classNames = map[Class]string{
	Discarded:         "discarded",
	Person:            "person",
	PersonLittering:   "person_littering",
	Bin:               "bin",
	Litter:            "litter",
	ContainerOverload: "container_overload",
}

// String returns the wire name of the class.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsTrash reports whether the class counts as waste for littering inference.
func (c Class) IsTrash() bool {
	return c == Bin || c == Litter || c == ContainerOverload
}

// Color returns the annotation colour for the class.
func (c Class) Color() color.RGBA {
	switch c {
	case Person:
		return color.RGBA{R: 0, G: 160, B: 255, A: 255}
	case PersonLittering:
		return color.RGBA{R: 255, G: 0, B: 0, A: 255}
	case Bin:
		return color.RGBA{R: 0, G: 200, B: 0, A: 255}
	case Litter:
		return color.RGBA{R: 255, G: 165, B: 0, A: 255}
	case ContainerOverload:
		return color.RGBA{R: 200, G: 0, B: 200, A: 255}
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
}

// MarshalJSON encodes the class as its wire name. Discarded detections never reach the wire.
func (c Class) MarshalJSON() ([]byte, error) {
	if c == Discarded {
		return nil, errors.New("discarded detections cannot be encoded")
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a wire name.
func (c *Class) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Wrap(err, "class must be a string")
	}
	for k, v := range classNames {
		if v == name && k != Discarded {
			*c = k
			return nil
		}
	}
	return errors.Errorf("unknown class %q", name)
}
