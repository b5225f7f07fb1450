// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// DomainBonus returns the reputation bonus for a web source's host. A host
// earns a bonus when it ends in a trusted suffix from the config table
// (educational, governmental, military, nonprofit). Everything else gets
// zero: absence of a trusted suffix is absence of extra evidence, not
// evidence of low quality, so the bonus is never negative.
func DomainBonus(domain string, cfg types.ScoringConfig) (float64, string) {
	if domain == "" || domain == types.UnknownDomain {
		return 0, ""
	}
	host := strings.ToLower(domain)

	best := 0.0
	bestSuffix := ""
	for suffix, bonus := range cfg.DomainBonuses {
		if !matchesSuffix(host, suffix) {
			continue
		}
		// Longer suffixes are more specific; prefer them on ties.
		if bonus > best || (bonus == best && len(suffix) > len(bestSuffix)) {
			best = bonus
			bestSuffix = suffix
		}
	}
	return best, bestSuffix
}

// matchesSuffix reports whether host ends in suffix on a label boundary:
// "cs.mit.edu" matches ".edu" but "fakeedu.com" does not.
func matchesSuffix(host, suffix string) bool {
	suffix = strings.ToLower(suffix)
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return strings.HasSuffix(host, suffix) && len(host) > len(suffix)
}
