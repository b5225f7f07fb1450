// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes heuristic credibility scores for normalized source
// records. Scoring is a pure function of the record and the tunables: the
// same record always earns the same score, every component is independently
// capped, and the total is clamped to [0,100]. Unknown metadata contributes
// zero; absence of a field is never conflated with poor quality.
package score

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// Result is the scorer output for one record: the clamped score, its letter
// grade, the factor breakdown for audit, and any content-quality flags.
type Result struct {
	Score        float64
	Grade        types.Grade
	Factors      []string
	QualityFlags []string
}

// Score computes the credibility score for rec using the current time as
// the recency reference.
func Score(rec types.SourceRecord, cfg types.ScoringConfig) Result {
	return ScoreAt(rec, cfg, time.Now())
}

// ScoreAt computes the credibility score with an explicit recency reference
// so a whole batch can share one instant and tests can pin the clock.
func ScoreAt(rec types.SourceRecord, cfg types.ScoringConfig, now time.Time) Result {
	var total float64
	var factors []string

	add := func(points float64, format string, args ...any) {
		total += points
		factors = append(factors, fmt.Sprintf(format, args...)+fmt.Sprintf(" (%+.0f)", points))
	}

	switch rec.SourceType {
	case types.SourcePeerReview:
		add(cfg.PeerReviewBase, "Peer-reviewed")
	case types.SourcePreprint:
		add(cfg.PreprintBase, "Preprint")
	default:
		add(cfg.WebBase, "Web source")
		// Peer-reviewed and preprint sources carry implicit trust; only
		// web sources are domain-checked.
		if bonus, suffix := DomainBonus(rec.Domain, cfg); bonus > 0 {
			add(bonus, "Trusted domain %s", suffix)
		}
	}

	if rec.Citations.Known {
		add(citationPoints(rec.Citations.Count, cfg), "Citations: %d", rec.Citations.Count)
	}

	if rec.Published.Known {
		age := ageYears(rec.Published.Date, now)
		if pts := recencyPoints(age, cfg); pts > 0 {
			add(pts, "Age: %dy", age)
		}
	}

	if len(rec.Authors) > 0 {
		add(cfg.AuthorBonus, "Authors listed")
	}

	flags, penalty := CheckSummary(rec.Summary, cfg)
	if pts := summaryPoints(rec.Summary, cfg); pts > 0 || penalty > 0 {
		add(pts-penalty, "Summary: %d chars", len(rec.Summary))
	}

	if validAbsoluteURL(rec.URL) {
		add(cfg.URLBonus, "Valid URL")
	}

	clamped := clamp(total, 0, 100)
	return Result{
		Score:        clamped,
		Grade:        types.GradeFor(clamped),
		Factors:      factors,
		QualityFlags: flags,
	}
}

// citationPoints maps a known citation count onto its tier. The curve is
// monotonically non-decreasing and saturates at cfg.CitationSaturation:
// beyond the saturation point more citations earn nothing extra.
func citationPoints(count int, cfg types.ScoringConfig) float64 {
	sat := cfg.CitationSaturation
	if sat <= 0 {
		sat = 100
	}
	switch {
	case count > sat:
		return 25
	case count > sat/2:
		return 20
	case count > sat/10:
		return 15
	default:
		return 5
	}
}

// recencyPoints maps publication age in years onto its tier, decaying to
// zero beyond the staleness horizon.
func recencyPoints(ageYears int, cfg types.ScoringConfig) float64 {
	horizon := cfg.RecencyHorizonYears
	if horizon <= 0 {
		horizon = 10
	}
	switch {
	case ageYears <= 1:
		return 20
	case ageYears <= 3:
		return 15
	case ageYears <= 5:
		return 10
	case ageYears <= horizon:
		return 5
	default:
		return 0
	}
}

// summaryPoints rewards summary length up to a cap. The content-quality
// penalty is applied by the caller so that a spam finding subtracts from
// this component rather than zeroing it.
func summaryPoints(summary string, cfg types.ScoringConfig) float64 {
	n := len(summary)
	switch {
	case n > 200:
		return 20
	case n > 100:
		return 15
	case n >= cfg.MinSummaryLength:
		return 5
	default:
		return 0
	}
}

// ageYears returns the calendar-year difference between the publication
// date and now, floored at zero for dates in the future.
func ageYears(published, now time.Time) int {
	age := now.Year() - published.Year()
	if age < 0 {
		return 0
	}
	return age
}

// validAbsoluteURL reports whether s parses as an absolute http(s) address.
func validAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
