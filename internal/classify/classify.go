// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify provides the relevance-judgment boundary. The engine
// treats relevance as an injected capability: a Classifier takes a query
// and a record and returns a verdict. The production implementation calls
// a Generative AI API; tests supply deterministic stubs.
package classify

import (
	"context"
	"strings"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// Classifier judges whether a source record pertains to a query. The call
// must be idempotent for identical (query, record) input and independently
// callable per record. Retry and caching policy belong to the
// implementation, not the caller; failures are surfaced as errors and the
// pipeline converts them into unverified rejections.
type Classifier interface {
	Classify(ctx context.Context, query string, rec types.SourceRecord) (types.Relevance, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(ctx context.Context, query string, rec types.SourceRecord) (types.Relevance, error)

// Classify calls f.
func (f Func) Classify(ctx context.Context, query string, rec types.SourceRecord) (types.Relevance, error) {
	return f(ctx, query, rec)
}

// ParseVerdict parses the strict plain-text verdict format
//
//	RELEVANT: YES|NO
//	CONFIDENCE: HIGH|MEDIUM|LOW
//	REASON: one sentence
//
// tolerantly: line order does not matter, a missing confidence defaults to
// MEDIUM, and a missing reason gets a stock string. Models occasionally
// wrap the verdict in prose, so each line is matched by prefix.
func ParseVerdict(content string) types.Relevance {
	verdict := types.Relevance{
		Confidence: types.ConfidenceMedium,
		Reason:     "no reason provided",
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "RELEVANT"):
			verdict.IsRelevant = strings.Contains(upper, "YES")
		case strings.HasPrefix(upper, "CONFIDENCE"):
			if c, ok := parseConfidence(line); ok {
				verdict.Confidence = c
			}
		case strings.HasPrefix(upper, "REASON"):
			if _, rest, found := strings.Cut(line, ":"); found {
				if r := strings.TrimSpace(rest); r != "" {
					verdict.Reason = r
				}
			}
		}
	}
	return verdict
}

func parseConfidence(line string) (types.Confidence, bool) {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, string(types.ConfidenceHigh)):
		return types.ConfidenceHigh, true
	case strings.Contains(upper, string(types.ConfidenceLow)):
		return types.ConfidenceLow, true
	case strings.Contains(upper, string(types.ConfidenceMedium)):
		return types.ConfidenceMedium, true
	}
	return "", false
}
