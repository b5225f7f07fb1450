// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// FormatTable writes the outcome as a human-readable table to w: accepted
// records first in rank order, then the rejects with their reasons.
func FormatTable(out Outcome, w io.Writer) {
	if len(out.Decisions) == 0 {
		fmt.Fprintln(w, "No sources to validate.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-18s  %-6s  %-15s  %s\n",
		"Rank", "Title", "Type", "Score", "Grade", "Confidence")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, rec := range out.Accepted {
		fmt.Fprintf(w, "%-4d  %-40s  %-18s  %-6.1f  %-15s  %s\n",
			i+1, truncate(rec.Title, 40), rec.SourceType, rec.CredibilityScore, rec.Grade, rec.Relevance.Confidence)
	}

	rejected := 0
	for _, d := range out.Decisions {
		if !d.Accepted {
			rejected++
		}
	}

	fmt.Fprintf(w, "\n%d accepted, %d rejected", len(out.Accepted), rejected)
	if out.Dropped > 0 {
		fmt.Fprintf(w, " (%d malformed payloads dropped)", out.Dropped)
	}
	fmt.Fprintf(w, "; avg score %.1f, threshold %.1f\n", out.Report.AverageScore, out.Report.Threshold)

	if rejected > 0 {
		fmt.Fprintln(w, "\nRejected:")
		for _, d := range out.Decisions {
			if d.Accepted {
				continue
			}
			fmt.Fprintf(w, "  %-40s  %s\n", truncate(d.Record.Title, 40), d.Reason)
		}
	}
}

// FormatJSON writes the full outcome as indented JSON to w.
func FormatJSON(out Outcome, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Report    types.BatchReport    `json:"report"`
		Accepted  []types.ScoredRecord `json:"accepted"`
		Decisions []types.Decision     `json:"decisions"`
	}{out.Report, out.Accepted, out.Decisions})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
