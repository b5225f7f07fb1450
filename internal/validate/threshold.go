// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

// Threshold computes the batch-wide acceptance threshold and average from
// all credibility scores in one batch. The threshold is the configured
// floor, raised to the batch average when the batch is strong: a batch of
// uniformly good sources raises the bar, while a weak batch never lowers
// it below the floor. It is a pure function of the whole scored
// collection; no running state survives between calls.
func Threshold(scores []float64, floor float64) (threshold, average float64) {
	if len(scores) == 0 {
		return floor, 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	average = sum / float64(len(scores))

	threshold = floor
	if average > floor {
		threshold = average
	}
	return threshold, average
}
