// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"strings"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// UnverifiedPrefix marks records whose relevance call failed or timed out.
// The pipeline stores it in the verdict reason; Decide surfaces it as the
// rejection reason so the failure stays reproducible in the audit trail.
const UnverifiedPrefix = "relevance-unverified"

// Decide renders the final accept/reject verdict for one scored record
// against the batch threshold. The rule is terminal in one step:
//
//   - not relevant: rejected regardless of score;
//   - HIGH confidence: accepted when the score meets the threshold;
//   - MEDIUM confidence: accepted only when the score clears the threshold
//     plus the configured margin, a stricter bar for a less certain verdict;
//   - LOW confidence or anything below its bar: rejected.
//
// Decisions are order-independent: nothing here depends on any other
// record's outcome beyond the shared threshold.
func Decide(rec types.ScoredRecord, threshold, margin float64) types.Decision {
	score := rec.CredibilityScore
	rel := rec.Relevance

	if !rel.IsRelevant {
		reason := fmt.Sprintf("not relevant to query: %s", rel.Reason)
		if strings.HasPrefix(rel.Reason, UnverifiedPrefix) {
			reason = rel.Reason
		}
		return types.Decision{Record: rec, Accepted: false, Reason: reason}
	}

	switch rel.Confidence {
	case types.ConfidenceHigh:
		if score >= threshold {
			return accept(rec, fmt.Sprintf("score %.1f meets threshold %.1f at HIGH confidence", score, threshold))
		}
		return reject(rec, fmt.Sprintf("score %.1f below threshold %.1f at HIGH confidence", score, threshold))

	case types.ConfidenceMedium:
		raised := threshold + margin
		if score >= raised {
			return accept(rec, fmt.Sprintf("score %.1f meets raised threshold %.1f at MEDIUM confidence", score, raised))
		}
		return reject(rec, fmt.Sprintf("score %.1f below raised threshold %.1f at MEDIUM confidence", score, raised))

	default:
		return reject(rec, fmt.Sprintf("relevance confidence LOW: %s", rel.Reason))
	}
}

func accept(rec types.ScoredRecord, reason string) types.Decision {
	return types.Decision{Record: rec, Accepted: true, Reason: reason}
}

// reject attaches any content-quality flags to the reason so a borderline
// score's root cause is visible in the audit trail.
func reject(rec types.ScoredRecord, reason string) types.Decision {
	if len(rec.RejectionReasons) > 0 {
		reason += "; quality flags: " + strings.Join(rec.RejectionReasons, ", ")
	}
	return types.Decision{Record: rec, Accepted: false, Reason: reason}
}
