package waste

import (
	"image"
	"strings"
)

const (
	// ContainerConfidence is the minimum confidence for a container-like label to become a Bin.
	ContainerConfidence = 0.4
	// BucketConfidence is the minimum confidence for a bucket to become a Bin.
	BucketConfidence = 0.5
)

var (
	vehicleTerms        = []string{"car", "truck", "bus", "motorcycle", "bicycle", "airplane", "train", "boat"}
	foodTerms           = []string{"banana", "apple", "sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake"}
	containerTerms      = []string{"trash can", "garbage can", "bin", "container"}
	bucketTerms         = []string{"bucket"}
	infrastructureTerms = []string{"traffic light", "fire hydrant", "stop sign", "parking meter", "bench"}
)

// Rule maps a detector label onto a domain class when Match holds.
type Rule struct {
	// Name identifies the rule in logs.
	Name string
	// Match receives the lower-cased label and the detector confidence.
	Match func(label string, confidence float64) bool
	// Class is assigned on match. Discarded drops the detection.
	Class Class
}

// ContainsAny matches when the label contains any of the terms.
func ContainsAny(terms ...string) func(string, float64) bool {
	return func(label string, _ float64) bool {
		for _, term := range terms {
			if strings.Contains(label, term) {
				return true
			}
		}
		return false
	}
}

// Above gates a matcher on a strict confidence lower bound.
func Above(threshold float64, match func(string, float64) bool) func(string, float64) bool {
	return func(label string, confidence float64) bool {
		return confidence > threshold && match(label, confidence)
	}
}

// Always matches every label.
func Always(string, float64) bool { return true }

// DefaultRules returns the production rule table, highest priority first.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "person", Match: ContainsAny("person"), Class: Person},
		{Name: "vehicle", Match: ContainsAny(vehicleTerms...), Class: Discarded},
		{Name: "food", Match: ContainsAny(foodTerms...), Class: Litter},
		{Name: "container", Match: Above(ContainerConfidence, ContainsAny(containerTerms...)), Class: Bin},
		{Name: "bucket", Match: Above(BucketConfidence, ContainsAny(bucketTerms...)), Class: Bin},
		{Name: "infrastructure", Match: ContainsAny(infrastructureTerms...), Class: Discarded},
		{Name: "default", Match: Always, Class: Litter},
	}
}

// RuleEngine classifies detector labels with an ordered, first-match-wins rule list.
type RuleEngine struct {
	rules []Rule
}

// NewRuleEngine creates a rule engine. With no rules it uses DefaultRules.
//
// Arguments:
//   - rules: The ordered rules to evaluate.
//
// Returns:
//   - *RuleEngine: The rule engine.
func NewRuleEngine(rules ...Rule) *RuleEngine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &RuleEngine{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the rule table.
func (e *RuleEngine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Classify maps a label and confidence onto a class.
//
// Arguments:
//   - label: The detector label, matched case-insensitively.
//   - confidence: The detector confidence.
//
// Returns:
//   - Class: The assigned class, Discarded when the detection is dropped or nothing matched.
//   - string: The name of the matching rule, empty when nothing matched.
func (e *RuleEngine) Classify(label string, confidence float64) (Class, string) {
	lower := strings.ToLower(label)
	for _, rule := range e.rules {
		if rule.Match(lower, confidence) {
			return rule.Class, rule.Name
		}
	}
	return Discarded, ""
}

// Apply classifies raw detections in order, drops discarded ones and moves boxes by offset.
//
// Arguments:
//   - raw: The detector output.
//   - offset: The origin of the detector input within the original image.
//
// Returns:
//   - []Detection: The classified detections, never nil.
func (e *RuleEngine) Apply(raw []RawDetection, offset image.Point) []Detection {
	out := make([]Detection, 0, len(raw))
	for _, r := range raw {
		class, _ := e.Classify(r.Label, r.Confidence)
		if class == Discarded {
			continue
		}
		out = append(out, Detection{
			Class:         class,
			Confidence:    r.Confidence,
			Box:           r.Box.Shift(offset),
			OriginalLabel: r.Label,
		})
	}
	return out
}
