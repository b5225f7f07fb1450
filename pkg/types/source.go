// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the validation engine:
// normalized source records, scored records, decisions, and the
// configuration surface consumed by the pipeline.
package types

import (
	"encoding/json"
	"time"

	"go.yaml.in/yaml/v3"
)

// SourceType classifies where a record was discovered. Normalization maps
// every provider-native type string onto this closed set.
type SourceType string

const (
	SourcePreprint   SourceType = "preprint_repository"
	SourcePeerReview SourceType = "peer_review_index"
	SourceWeb        SourceType = "web"
)

// UnknownDomain marks a record whose URL could not be parsed into a host.
const UnknownDomain = "unknown"

// CitationCount is a tagged optional citation count. Zero is a valid count
// and must stay distinguishable from "the provider did not report one", so
// the zero value of this type means unknown, not zero citations.
type CitationCount struct {
	Count int
	Known bool
}

// Citations returns a known citation count.
func Citations(n int) CitationCount {
	return CitationCount{Count: n, Known: true}
}

// MarshalJSON emits the count, or null when unknown.
func (c CitationCount) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("null"), nil
	}
	return json.Marshal(c.Count)
}

// UnmarshalJSON accepts a number or null.
func (c *CitationCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = CitationCount{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Citations(n)
	return nil
}

// MarshalYAML emits the count, or null when unknown.
func (c CitationCount) MarshalYAML() (any, error) {
	if !c.Known {
		return nil, nil
	}
	return c.Count, nil
}

// UnmarshalYAML accepts a number or null.
func (c *CitationCount) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*c = CitationCount{}
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return err
	}
	*c = Citations(n)
	return nil
}

// dateFmt is the wire format for publication dates.
const dateFmt = "2006-01-02"

// PublicationDate is a tagged optional calendar date. The zero value means
// unknown; absence of a date is neutral signal, never a penalty.
type PublicationDate struct {
	Date  time.Time
	Known bool
}

// PublishedOn returns a known publication date.
func PublishedOn(t time.Time) PublicationDate {
	return PublicationDate{Date: t, Known: true}
}

// MarshalJSON emits the date as "2006-01-02", or null when unknown.
func (p PublicationDate) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return []byte("null"), nil
	}
	return json.Marshal(p.Date.Format(dateFmt))
}

// UnmarshalJSON accepts a "2006-01-02" string or null.
func (p *PublicationDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PublicationDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return err
	}
	*p = PublishedOn(t)
	return nil
}

// MarshalYAML emits the date as "2006-01-02", or null when unknown.
func (p PublicationDate) MarshalYAML() (any, error) {
	if !p.Known {
		return nil, nil
	}
	return p.Date.Format(dateFmt), nil
}

// UnmarshalYAML accepts a "2006-01-02" string or null.
func (p *PublicationDate) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*p = PublicationDate{}
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return err
	}
	*p = PublishedOn(t)
	return nil
}

// SourceRecord is a normalized research source. It is produced once by the
// normalizer and never mutated afterwards; every optional field absent from
// the provider payload carries an explicit unknown marker rather than a
// default that would masquerade as real signal.
type SourceRecord struct {
	// ID is a stable identifier: the provider-native ID when present,
	// otherwise a short hash of the URL or title.
	ID string `json:"id" yaml:"id"`

	// SourceType classifies the provider that discovered the record.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// URL is the record's address as reported by the provider. May be empty
	// or malformed; the record is still scored on its other signals.
	URL string `json:"url" yaml:"url"`

	// Title is the source title.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract or snippet text. May be empty.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the authors in provider order. Empty when unknown.
	Authors []string `json:"authors" yaml:"authors"`

	// Citations is the citation count, or unknown when unreported.
	Citations CitationCount `json:"citation_count" yaml:"citation_count"`

	// Published is the publication date, or unknown when unreported.
	Published PublicationDate `json:"published" yaml:"published"`

	// Domain is the lowercased URL host, or "unknown" when the URL does
	// not parse.
	Domain string `json:"domain" yaml:"domain"`
}
