// Package models - Class-label tables for supported detectors.
package models

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LabelSet maps detector output indices to class names.
type LabelSet struct {
	// Name identifies the label set.
	Name string
	// Classes holds the class names, indexed by model output index.
	Classes []string
}

// Len returns the number of classes.
func (s LabelSet) Len() int {
	return len(s.Classes)
}

// Label returns the class name for a given index.
// If index is out of range, it returns "class_<idx>".
func (s LabelSet) Label(idx int) string {
	if idx >= 0 && idx < len(s.Classes) {
		return s.Classes[idx]
	}
	return fmt.Sprintf("class_%d", idx)
}

// Index returns the index of a class name.
func (s LabelSet) Index(name string) (int, bool) {
	for i, c := range s.Classes {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// YOLOClasses is the 80 COCO classes in YOLOv5/v8 output order (no background).
var YOLOClasses = LabelSet{
	Name: "coco80",
	Classes: []string{
		"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
		"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat",
		"dog", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
		"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball",
		"kite", "baseball bat", "baseball glove", "skateboard", "surfboard", "tennis racket",
		"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
		"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
		"couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
		"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
		"refrigerator", "book", "clock", "vase", "scissors", "teddy bear", "hair drier",
		"toothbrush",
	},
}

// LoadLabelFile reads one class name per line. Blank lines and lines starting with '#' are skipped.
//
// Arguments:
//   - path: The label file path.
//
// Returns:
//   - LabelSet: The labels, named after the file.
//   - error: An error if the file cannot be read or holds no labels.
func LoadLabelFile(path string) (LabelSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return LabelSet{}, errors.Wrap(err, "failed to open label file")
	}
	defer f.Close()

	set := LabelSet{Name: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.Classes = append(set.Classes, line)
	}
	if err := scanner.Err(); err != nil {
		return LabelSet{}, errors.Wrap(err, "failed to read label file")
	}
	if len(set.Classes) == 0 {
		return LabelSet{}, errors.Errorf("label file %s holds no labels", path)
	}
	return set, nil
}
