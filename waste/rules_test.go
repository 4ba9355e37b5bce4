package waste

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		label      string
		confidence float64
		want       Class
		rule       string
	}{
		{name: "garbage can above gate", label: "garbage can", confidence: 0.6, want: Bin, rule: "container"},
		{name: "trash can mixed case", label: "Trash Can", confidence: 0.41, want: Bin, rule: "container"},
		{name: "container at gate falls through", label: "container", confidence: 0.4, want: Litter, rule: "default"},
		{name: "bucket below gate", label: "bucket", confidence: 0.4, want: Litter, rule: "default"},
		{name: "bucket at gate", label: "bucket", confidence: 0.5, want: Litter, rule: "default"},
		{name: "bucket above gate", label: "bucket", confidence: 0.51, want: Bin, rule: "bucket"},
		{name: "banana at tiny confidence", label: "banana", confidence: 0.01, want: Litter, rule: "food"},
		{name: "hot dog", label: "hot dog", confidence: 0.2, want: Litter, rule: "food"},
		{name: "bicycle low", label: "bicycle", confidence: 0.01, want: Discarded, rule: "vehicle"},
		{name: "bicycle high", label: "bicycle", confidence: 0.99, want: Discarded, rule: "vehicle"},
		{name: "truck", label: "truck", confidence: 0.8, want: Discarded, rule: "vehicle"},
		{name: "carrot shadowed by car", label: "carrot", confidence: 0.9, want: Discarded, rule: "vehicle"},
		{name: "person standing", label: "person standing", confidence: 0.9, want: Person, rule: "person"},
		{name: "person beats food and vehicle", label: "person eating pizza by a car", confidence: 0.9, want: Person, rule: "person"},
		{name: "person at zero confidence", label: "PERSON", confidence: 0, want: Person, rule: "person"},
		{name: "bench", label: "bench", confidence: 0.9, want: Discarded, rule: "infrastructure"},
		{name: "fire hydrant", label: "fire hydrant", confidence: 0.9, want: Discarded, rule: "infrastructure"},
		{name: "bottle defaults to litter", label: "bottle", confidence: 0.05, want: Litter, rule: "default"},
		{name: "refrigerator is not a bin", label: "refrigerator", confidence: 0.9, want: Litter, rule: "default"},
	}

	engine := NewRuleEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, rule := engine.Classify(tt.label, tt.confidence)
			assert.Equal(t, tt.want, class)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	names := make([]string, 0, 7)
	for _, r := range NewRuleEngine().Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"person", "vehicle", "food", "container", "bucket", "infrastructure", "default"}, names)
}

func TestCustomRules(t *testing.T) {
	engine := NewRuleEngine(
		Rule{Name: "overflow", Match: Above(0.3, ContainsAny("overflow")), Class: ContainerOverload},
	)

	class, rule := engine.Classify("Overflowing bin", 0.5)
	assert.Equal(t, ContainerOverload, class)
	assert.Equal(t, "overflow", rule)

	class, rule = engine.Classify("cup", 0.5)
	assert.Equal(t, Discarded, class)
	assert.Empty(t, rule)
}

func TestApply(t *testing.T) {
	raw := []RawDetection{
		{Label: "car", Confidence: 0.9, Box: BBox{X: 0, Y: 0, Width: 5, Height: 5}},
		{Label: "bottle", Confidence: 0.3, Box: BBox{X: 1, Y: 2, Width: 3, Height: 4}},
		{Label: "person", Confidence: 0.8, Box: BBox{X: 10, Y: 10, Width: 5, Height: 20}},
	}

	dets := NewRuleEngine().Apply(raw, image.Pt(100, 50))
	require.Len(t, dets, 2)

	assert.Equal(t, Detection{
		Class:         Litter,
		Confidence:    0.3,
		Box:           BBox{X: 101, Y: 52, Width: 3, Height: 4},
		OriginalLabel: "bottle",
	}, dets[0])
	assert.Equal(t, Person, dets[1].Class)
	assert.Equal(t, BBox{X: 110, Y: 60, Width: 5, Height: 20}, dets[1].Box)

	assert.NotNil(t, NewRuleEngine().Apply(nil, image.Point{}))
}
