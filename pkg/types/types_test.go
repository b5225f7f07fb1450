// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Grade
	}{
		{100, GradeA},
		{85, GradeA},
		{84.9, GradeB},
		{70, GradeB},
		{55, GradeC},
		{40, GradeD},
		{39.9, GradeF},
		{0, GradeF},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.score); got != tt.want {
			t.Errorf("GradeFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestCitationCountJSON(t *testing.T) {
	// Zero citations and unknown citations must serialize differently.
	known, err := json.Marshal(Citations(0))
	if err != nil {
		t.Fatal(err)
	}
	if string(known) != "0" {
		t.Errorf("known zero = %s, want 0", known)
	}

	unknown, err := json.Marshal(CitationCount{})
	if err != nil {
		t.Fatal(err)
	}
	if string(unknown) != "null" {
		t.Errorf("unknown = %s, want null", unknown)
	}

	var c CitationCount
	if err := json.Unmarshal([]byte("null"), &c); err != nil {
		t.Fatal(err)
	}
	if c.Known {
		t.Error("null should unmarshal to unknown")
	}
}

func TestDepthApply(t *testing.T) {
	tests := []struct {
		depth      ResearchDepth
		maxSources int
		threshold  float64
	}{
		{DepthQuick, 5, 35},
		{DepthStandard, 10, 40},
		{DepthDeep, 15, 50},
	}
	for _, tt := range tests {
		t.Run(string(tt.depth), func(t *testing.T) {
			cfg := DefaultValidationConfig()
			cfg.Workers = 8
			tt.depth.Apply(&cfg)
			if cfg.MaxSources != tt.maxSources {
				t.Errorf("MaxSources = %d, want %d", cfg.MaxSources, tt.maxSources)
			}
			if cfg.CredibilityThreshold != tt.threshold {
				t.Errorf("CredibilityThreshold = %v, want %v", cfg.CredibilityThreshold, tt.threshold)
			}
			// Depth must not touch anything else.
			if cfg.Workers != 8 {
				t.Errorf("Workers = %d, want 8", cfg.Workers)
			}
		})
	}
}
