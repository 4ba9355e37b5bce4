// Package postprocess - provides Non-Maximum Suppression for detection results.
package postprocess

import (
	"sort"

	"github.com/nvr-ai/wastewatch/images"
)

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	IoUThreshold float32 // Overlap threshold for suppression.
	ClassAware   bool    // If true, suppress only within same class.
}

// ApplyGreedyNMS performs standard greedy Non-Maximum Suppression.
//
// Arguments:
//   - candidates: Detections in any order. The slice is sorted in place by descending score.
//   - config: IoU threshold above which overlapping boxes are suppressed.
//
// Returns:
//   - Filtered slice of detections, highest score first.
func ApplyGreedyNMS(candidates []Candidate, config NMSConfig) []Candidate {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	filtered := make([]Candidate, 0, n)
	used := make([]bool, n)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}

		anchor := candidates[i]
		filtered = append(filtered, anchor)
		used[i] = true

		for j := i + 1; j < n; j++ {
			if used[j] {
				continue
			}
			if config.ClassAware && anchor.Class != candidates[j].Class {
				continue
			}
			if images.CalculateIoU(anchor.Box, candidates[j].Box) > config.IoUThreshold {
				used[j] = true
			}
		}
	}

	return filtered
}
