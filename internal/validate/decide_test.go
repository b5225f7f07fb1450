// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"strings"
	"testing"

	"github.com/pdiddy/validation-engine/pkg/types"
)

func scoredRecord(score float64, relevant bool, conf types.Confidence) types.ScoredRecord {
	return types.ScoredRecord{
		SourceRecord:     types.SourceRecord{ID: "r1", Title: "T", SourceType: types.SourceWeb},
		CredibilityScore: score,
		Grade:            types.GradeFor(score),
		Relevance:        types.Relevance{IsRelevant: relevant, Confidence: conf, Reason: "test reason"},
	}
}

func TestDecide(t *testing.T) {
	const threshold, margin = 50.0, 10.0

	tests := []struct {
		name     string
		rec      types.ScoredRecord
		accepted bool
		reason   string
	}{
		{
			name:     "irrelevant rejected regardless of score",
			rec:      scoredRecord(99, false, types.ConfidenceHigh),
			accepted: false,
			reason:   "not relevant to query",
		},
		{
			name:     "high confidence at threshold accepted",
			rec:      scoredRecord(50, true, types.ConfidenceHigh),
			accepted: true,
		},
		{
			name:     "high confidence below threshold rejected",
			rec:      scoredRecord(49.9, true, types.ConfidenceHigh),
			accepted: false,
			reason:   "below threshold",
		},
		{
			name:     "medium confidence needs the margin",
			rec:      scoredRecord(55, true, types.ConfidenceMedium),
			accepted: false,
			reason:   "raised threshold",
		},
		{
			name:     "medium confidence above raised bar accepted",
			rec:      scoredRecord(60, true, types.ConfidenceMedium),
			accepted: true,
		},
		{
			name:     "low confidence rejected even with top score",
			rec:      scoredRecord(100, true, types.ConfidenceLow),
			accepted: false,
			reason:   "confidence LOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.rec, threshold, margin)
			if d.Accepted != tt.accepted {
				t.Fatalf("Accepted = %v, want %v (reason %q)", d.Accepted, tt.accepted, d.Reason)
			}
			if tt.reason != "" && !strings.Contains(d.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to mention %q", d.Reason, tt.reason)
			}
			if d.Reason == "" || d.Reason == "rejected" {
				t.Errorf("every decision needs a specific reason, got %q", d.Reason)
			}
		})
	}
}

func TestDecideUnverifiedReason(t *testing.T) {
	rec := scoredRecord(80, false, types.ConfidenceLow)
	rec.Relevance.Reason = UnverifiedPrefix + ": context deadline exceeded"

	d := Decide(rec, 50, 10)
	if d.Accepted {
		t.Fatal("unverified record must be rejected")
	}
	if !strings.HasPrefix(d.Reason, UnverifiedPrefix) {
		t.Errorf("Reason = %q, want the %s prefix preserved", d.Reason, UnverifiedPrefix)
	}
}

func TestDecideSurfacesQualityFlags(t *testing.T) {
	rec := scoredRecord(45, true, types.ConfidenceHigh)
	rec.RejectionReasons = []string{"summary-empty"}

	d := Decide(rec, 50, 10)
	if d.Accepted {
		t.Fatal("record below threshold must be rejected")
	}
	if !strings.Contains(d.Reason, "summary-empty") {
		t.Errorf("Reason = %q, want content-quality flag surfaced", d.Reason)
	}

	// Accepted records do not drag their flags into the reason.
	ok := scoredRecord(90, true, types.ConfidenceHigh)
	ok.RejectionReasons = []string{"summary-too-short"}
	d = Decide(ok, 50, 10)
	if !d.Accepted || strings.Contains(d.Reason, "summary-too-short") {
		t.Errorf("accept reason = %q, flags belong on rejects only", d.Reason)
	}
}
