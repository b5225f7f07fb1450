// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize coerces raw provider payloads into uniform SourceRecords.
// Providers disagree about field names, date formats, and which metadata they
// report at all; everything downstream of this package sees one closed shape
// with explicit unknown markers for absent fields.
package normalize

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// ErrUnidentifiable marks a raw payload with neither an identifier nor a
// title. Such records cannot be deduplicated or cited and are dropped at
// this stage.
var ErrUnidentifiable = errors.New("raw source has neither identifier nor title")

// RawSource is the loose provider payload shape. Every field is optional;
// the normalizer decides what absence means.
type RawSource struct {
	ID            string   `json:"id" yaml:"id"`
	SourceType    string   `json:"source_type" yaml:"source_type"`
	Title         string   `json:"title" yaml:"title"`
	Summary       string   `json:"summary" yaml:"summary"`
	URL           string   `json:"url" yaml:"url"`
	Authors       []string `json:"authors" yaml:"authors"`
	CitationCount *int     `json:"citation_count" yaml:"citation_count"`
	Published     string   `json:"published" yaml:"published"`
}

// Normalize converts one raw payload into a SourceRecord. Missing optional
// fields never fail: absent authors become an empty slice, absent citation
// counts and dates become explicit unknowns, and a malformed URL yields
// Domain "unknown" with the record still produced. It fails only when the
// payload has neither a resolvable identifier nor a title.
func Normalize(raw RawSource) (types.SourceRecord, error) {
	if strings.TrimSpace(raw.ID) == "" && strings.TrimSpace(raw.Title) == "" {
		return types.SourceRecord{}, ErrUnidentifiable
	}

	rec := types.SourceRecord{
		ID:         resolveID(raw),
		SourceType: mapSourceType(raw.SourceType),
		URL:        raw.URL,
		Title:      strings.TrimSpace(raw.Title),
		Summary:    raw.Summary,
		Authors:    raw.Authors,
		Domain:     domainOf(raw.URL),
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}

	if raw.CitationCount != nil && *raw.CitationCount >= 0 {
		rec.Citations = types.Citations(*raw.CitationCount)
	}

	if t, ok := parseDate(raw.Published); ok {
		rec.Published = types.PublishedOn(t)
	}

	return rec, nil
}

// NormalizeAll normalizes a collection of raw payloads, dropping
// unidentifiable ones with a logged reason. It never fails: a batch that
// loses every record just comes back empty.
func NormalizeAll(raws []RawSource, w io.Writer) []types.SourceRecord {
	records := make([]types.SourceRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			fmt.Fprintf(w, "dropped raw source %d: %v\n", i+1, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// resolveID returns the provider-native ID when present, otherwise a short
// hash of the URL (or title when the URL is also empty).
func resolveID(raw RawSource) string {
	if id := strings.TrimSpace(raw.ID); id != "" {
		return id
	}
	basis := raw.URL
	if basis == "" {
		basis = raw.Title
	}
	return stableID(basis)
}

// stableID returns the first 12 hex characters of SHA-256(s).
func stableID(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)[:12]
}

// mapSourceType folds provider-native type strings onto the closed
// SourceType set. Anything unrecognized is treated as a web source, the
// lowest-trust tier.
func mapSourceType(s string) types.SourceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arxiv", "preprint", "preprint_repository":
		return types.SourcePreprint
	case "semantic_scholar", "peer_review", "peer_review_index":
		return types.SourcePeerReview
	default:
		return types.SourceWeb
	}
}

// domainOf extracts the lowercased host from a URL, or "unknown" when the
// URL does not parse into an absolute address with a host.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return types.UnknownDomain
	}
	return strings.ToLower(u.Hostname())
}

// dateFormats are tried in order when parsing provider dates. Providers
// report full dates, year-month, or bare years.
var dateFormats = []string{"2006-01-02", "2006-01", "2006"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
