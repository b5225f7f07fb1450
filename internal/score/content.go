// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// Quality flag strings. These surface verbatim in rejection reasons, so
// they must stay stable and specific.
const (
	FlagSummaryEmpty    = "summary-empty"
	FlagSummaryTooShort = "summary-too-short"
)

// repeatedPunct matches runs of three or more exclamation or question
// marks, a common spam tell.
var repeatedPunct = regexp.MustCompile(`[!?]{3,}`)

// boilerplatePhrases are promotional fragments that do not occur in honest
// abstracts or snippets.
var boilerplatePhrases = []string{
	"click here",
	"buy now",
	"subscribe now",
	"limited time offer",
	"100% free",
	"sign up today",
}

// CheckSummary runs the content-quality heuristics over a summary. It
// returns the quality flags raised and the penalty to subtract from the
// summary score component. A failure here never rejects the record by
// itself; the decision engine weighs it together with everything else.
//
// Empty and too-short summaries are flagged without a penalty, since they
// already earn zero summary points. Spam-indicative summaries carry the
// configured penalty so that a long spammy summary ends up below an honest
// empty one.
func CheckSummary(summary string, cfg types.ScoringConfig) ([]string, float64) {
	trimmed := strings.TrimSpace(summary)

	if trimmed == "" {
		return []string{FlagSummaryEmpty}, 0
	}
	if len(trimmed) < cfg.MinSummaryLength {
		return []string{FlagSummaryTooShort}, 0
	}

	var flags []string
	if repeatedPunct.MatchString(trimmed) {
		flags = append(flags, "summary-spam: repeated punctuation")
	}
	if ratio := uppercaseRatio(trimmed); ratio > 0.5 {
		flags = append(flags, fmt.Sprintf("summary-spam: uppercase ratio %.2f", ratio))
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			flags = append(flags, "summary-spam: boilerplate phrase "+strconv.Quote(phrase))
			break
		}
	}

	if len(flags) == 0 {
		return nil, 0
	}
	return flags, cfg.SpamPenalty
}

// uppercaseRatio returns the fraction of letters that are uppercase.
// Summaries with fewer than 20 letters are too short to judge and return 0.
func uppercaseRatio(s string) float64 {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters < 20 {
		return 0
	}
	return float64(upper) / float64(letters)
}
