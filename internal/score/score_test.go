// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/validation-engine/pkg/types"
)

var testNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func webRecord() types.SourceRecord {
	return types.SourceRecord{
		ID:         "web_1",
		SourceType: types.SourceWeb,
		URL:        "https://example.com/article",
		Title:      "An Article",
		Domain:     "example.com",
	}
}

func TestScoreBounds(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	// Everything maxed: peer-reviewed, huge citations, fresh, authored,
	// long summary, valid URL. Must still clamp to 100.
	rec := types.SourceRecord{
		ID:         "s1",
		SourceType: types.SourcePeerReview,
		URL:        "https://journals.example.org/a",
		Title:      "T",
		Summary:    strings.Repeat("substantive words about methods. ", 10),
		Authors:    []string{"A. Author", "B. Author"},
		Citations:  types.Citations(50000),
		Published:  types.PublishedOn(testNow.AddDate(0, -6, 0)),
		Domain:     "journals.example.org",
	}
	res := ScoreAt(rec, cfg, testNow)
	if res.Score < 0 || res.Score > 100 {
		t.Errorf("score = %v, want within [0,100]", res.Score)
	}

	// Everything unknown: still a valid non-negative score from the base.
	bare := types.SourceRecord{ID: "s2", SourceType: types.SourceWeb, Title: "T", Domain: types.UnknownDomain}
	res = ScoreAt(bare, cfg, testNow)
	if res.Score < cfg.WebBase {
		t.Errorf("all-unknown record scored %v, want at least base %v", res.Score, cfg.WebBase)
	}
}

func TestCitationPointsMonotoneAndSaturating(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	prev := -1.0
	for _, count := range []int{0, 1, 10, 11, 50, 51, 100, 101, 500, 10000} {
		pts := citationPoints(count, cfg)
		if pts < prev {
			t.Errorf("citationPoints(%d) = %v, less than previous %v (must be non-decreasing)", count, pts, prev)
		}
		prev = pts
	}

	// Saturation: a pathological count earns no more than the saturation point.
	if citationPoints(10000, cfg) > citationPoints(cfg.CitationSaturation+1, cfg) {
		t.Error("citation contribution must saturate")
	}
}

func TestCitationUnknownIsNeutral(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	unknown := webRecord()
	known := webRecord()
	known.Citations = types.Citations(0)

	u := ScoreAt(unknown, cfg, testNow)
	k := ScoreAt(known, cfg, testNow)

	// Unknown contributes zero; a known count of zero earns the lowest tier.
	if u.Score >= k.Score {
		t.Errorf("unknown citations (%v) should score below known zero (%v)", u.Score, k.Score)
	}
}

func TestRecencyPoints(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	tests := []struct {
		age  int
		want float64
	}{
		{0, 20},
		{1, 20},
		{2, 15},
		{3, 15},
		{4, 10},
		{5, 10},
		{6, 5},
		{10, 5},
		{11, 0},
		{40, 0},
	}
	for _, tt := range tests {
		if got := recencyPoints(tt.age, cfg); got != tt.want {
			t.Errorf("recencyPoints(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestUnknownDateIsNeutral(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	undated := webRecord()
	ancient := webRecord()
	ancient.Published = types.PublishedOn(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))

	u := ScoreAt(undated, cfg, testNow)
	a := ScoreAt(ancient, cfg, testNow)
	if u.Score != a.Score {
		t.Errorf("unknown date (%v) and beyond-horizon date (%v) should both contribute zero", u.Score, a.Score)
	}
}

func TestDomainBonusOnlyForWeb(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	web := webRecord()
	web.URL = "https://cs.x.edu/paper"
	web.Domain = "cs.x.edu"

	preprint := web
	preprint.SourceType = types.SourcePreprint

	w := ScoreAt(web, cfg, testNow)
	p := ScoreAt(preprint, cfg, testNow)

	wantWeb := cfg.WebBase + cfg.DomainBonuses[".edu"] + cfg.URLBonus
	if w.Score != wantWeb {
		t.Errorf("web .edu score = %v, want %v", w.Score, wantWeb)
	}
	wantPreprint := cfg.PreprintBase + cfg.URLBonus
	if p.Score != wantPreprint {
		t.Errorf("preprint score = %v, want %v (no domain bonus)", p.Score, wantPreprint)
	}

	// Exactly once: the bonus appears as a single factor.
	bonusFactors := 0
	for _, f := range w.Factors {
		if strings.Contains(f, "Trusted domain") {
			bonusFactors++
		}
	}
	if bonusFactors != 1 {
		t.Errorf("domain bonus factors = %d, want exactly 1", bonusFactors)
	}
}

func TestSpammyLongSummaryScoresBelowHonestEmpty(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	empty := webRecord()

	spammy := webRecord()
	spammy.Summary = strings.Repeat("BUY NOW!!! limited time offer ", 10)

	e := ScoreAt(empty, cfg, testNow)
	s := ScoreAt(spammy, cfg, testNow)

	if s.Score >= e.Score {
		t.Errorf("spammy summary (%v) should score below honest empty (%v)", s.Score, e.Score)
	}
	if len(s.QualityFlags) == 0 {
		t.Error("spammy summary should raise quality flags")
	}
}

func TestScoreDeterministic(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	rec := webRecord()
	rec.Summary = strings.Repeat("findings on the topic under study. ", 8)
	rec.Citations = types.Citations(42)
	rec.Published = types.PublishedOn(testNow.AddDate(-2, 0, 0))

	a := ScoreAt(rec, cfg, testNow)
	b := ScoreAt(rec, cfg, testNow)
	if a.Score != b.Score || len(a.Factors) != len(b.Factors) {
		t.Errorf("scoring must be deterministic: %v vs %v", a, b)
	}
}

// Three web records on a trusted .edu domain with citation counts
// 0 / 50 / unknown and summaries of 5 / 200+ / 0 characters.
func TestScoreScenarioOrdering(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	mk := func(id, summary string, citations *int) types.SourceRecord {
		rec := types.SourceRecord{
			ID:         id,
			SourceType: types.SourceWeb,
			URL:        "https://x.edu/" + id,
			Title:      "T " + id,
			Summary:    summary,
			Domain:     "x.edu",
		}
		if citations != nil {
			rec.Citations = types.Citations(*citations)
		}
		return rec
	}

	zero, fifty := 0, 50
	short := mk("a", "brief", &zero)
	long := mk("b", strings.Repeat("relevant technical content here. ", 8), &fifty)
	empty := mk("c", "", nil)

	s1 := ScoreAt(short, cfg, testNow)
	s2 := ScoreAt(long, cfg, testNow)
	s3 := ScoreAt(empty, cfg, testNow)

	if !(s2.Score > s1.Score && s1.Score > s3.Score) {
		t.Errorf("expected long > short > empty, got %v / %v / %v", s2.Score, s1.Score, s3.Score)
	}
	if s3.Score < cfg.WebBase {
		t.Errorf("empty-summary record scored %v, below its source-type base %v", s3.Score, cfg.WebBase)
	}
	if len(s3.QualityFlags) != 1 || s3.QualityFlags[0] != FlagSummaryEmpty {
		t.Errorf("empty summary flags = %v, want [%s]", s3.QualityFlags, FlagSummaryEmpty)
	}
	if len(s1.QualityFlags) != 1 || s1.QualityFlags[0] != FlagSummaryTooShort {
		t.Errorf("short summary flags = %v, want [%s]", s1.QualityFlags, FlagSummaryTooShort)
	}
}
