// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import "testing"

func TestThreshold(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		floor     float64
		threshold float64
		average   float64
	}{
		{"weak batch never lowers the floor", []float64{40, 40, 40}, 50, 50, 40},
		{"strong batch raises the bar", []float64{80, 90, 70}, 50, 80, 80},
		{"average equal to floor", []float64{50, 50}, 50, 50, 50},
		{"single record", []float64{65}, 40, 65, 65},
		{"empty batch", nil, 40, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			threshold, average := Threshold(tt.scores, tt.floor)
			if threshold != tt.threshold {
				t.Errorf("threshold = %v, want %v", threshold, tt.threshold)
			}
			if average != tt.average {
				t.Errorf("average = %v, want %v", average, tt.average)
			}
		})
	}
}

func TestThresholdIsBatchRelative(t *testing.T) {
	// Changing one record's score moves the batch average and therefore
	// the threshold applied to every record, including unrelated ones.
	base := []float64{60, 60, 60}
	bumped := []float64{60, 60, 90}

	t1, _ := Threshold(base, 40)
	t2, _ := Threshold(bumped, 40)
	if t1 == t2 {
		t.Errorf("threshold should shift with the batch average, got %v both times", t1)
	}
}
