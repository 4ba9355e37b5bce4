package waste

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClose(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{name: "overlapping", a: BBox{0, 0, 10, 10}, b: BBox{5, 5, 10, 10}, want: true},
		{name: "far apart", a: BBox{0, 0, 10, 10}, b: BBox{1000, 1000, 10, 10}, want: false},
		{name: "just inside threshold", a: BBox{0, 0, 10, 10}, b: BBox{19.9, 0, 10, 10}, want: true},
		{name: "exactly at threshold", a: BBox{0, 0, 10, 10}, b: BBox{20, 0, 10, 10}, want: false},
		{name: "large boxes reach further", a: BBox{0, 0, 100, 100}, b: BBox{150, 0, 100, 100}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Close(tt.a, tt.b))
			assert.Equal(t, tt.want, Close(tt.b, tt.a))
		})
	}
}

func TestPromoteLittering(t *testing.T) {
	person := Detection{Class: Person, Confidence: 0.9, Box: BBox{0, 0, 10, 10}, OriginalLabel: "person"}

	t.Run("near litter", func(t *testing.T) {
		in := []Detection{person, {Class: Litter, Box: BBox{5, 5, 10, 10}}}
		out := PromoteLittering(in)
		assert.Equal(t, PersonLittering, out[0].Class)
		assert.Equal(t, Litter, out[1].Class)
		assert.Equal(t, Person, in[0].Class, "input must not be mutated")
	})

	t.Run("far from litter", func(t *testing.T) {
		out := PromoteLittering([]Detection{person, {Class: Litter, Box: BBox{1000, 1000, 10, 10}}})
		assert.Equal(t, Person, out[0].Class)
	})

	t.Run("near bin and overload", func(t *testing.T) {
		for _, c := range []Class{Bin, ContainerOverload} {
			out := PromoteLittering([]Detection{{Class: c, Box: BBox{8, 0, 10, 10}}, person})
			assert.Equal(t, PersonLittering, out[1].Class, c.String())
		}
	})

	t.Run("persons are not trash", func(t *testing.T) {
		other := person
		other.Box = BBox{2, 2, 10, 10}
		out := PromoteLittering([]Detection{person, other})
		assert.Equal(t, Person, out[0].Class)
		assert.Equal(t, Person, out[1].Class)
	})

	t.Run("keeps confidence and box", func(t *testing.T) {
		out := PromoteLittering([]Detection{person, {Class: Litter, Box: BBox{5, 5, 10, 10}}})
		assert.Equal(t, person.Box, out[0].Box)
		assert.Equal(t, person.Confidence, out[0].Confidence)
		assert.Equal(t, "person", out[0].OriginalLabel)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, PromoteLittering(nil))
	})
}
