// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Confidence is the classifier-reported certainty tier that a source
// pertains to the query.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Relevance is the verdict returned by the relevance classifier for one
// (query, record) pair.
type Relevance struct {
	// IsRelevant reports whether the source pertains to the query.
	IsRelevant bool `json:"is_relevant" yaml:"is_relevant"`

	// Confidence is the classifier's certainty tier.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// Reason is the classifier's one-sentence justification.
	Reason string `json:"reason" yaml:"reason"`
}

// Grade is a letter grade derived from a credibility score.
type Grade string

const (
	GradeA Grade = "A - Excellent"
	GradeB Grade = "B - Good"
	GradeC Grade = "C - Fair"
	GradeD Grade = "D - Poor"
	GradeF Grade = "F - Very Poor"
)

// GradeFor maps a credibility score onto its letter grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 55:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

// ScoredRecord wraps a SourceRecord with its credibility score and
// relevance verdict. Created once per record per batch; mutated nowhere
// after creation.
type ScoredRecord struct {
	SourceRecord `yaml:",inline"`

	// CredibilityScore is the heuristic trust estimate, always in [0,100].
	CredibilityScore float64 `json:"credibility_score" yaml:"credibility_score"`

	// Grade is the letter grade for CredibilityScore.
	Grade Grade `json:"grade" yaml:"grade"`

	// Factors lists the score components that contributed, for audit.
	Factors []string `json:"factors" yaml:"factors"`

	// Relevance is the classifier verdict for this record.
	Relevance Relevance `json:"relevance" yaml:"relevance"`

	// RejectionReasons lists content-quality failures flagged during
	// scoring. Empty unless a quality check failed.
	RejectionReasons []string `json:"rejection_reasons,omitempty" yaml:"rejection_reasons,omitempty"`
}

// Decision is the final accept/reject verdict for one record. Rejected
// records are retained for audit, never silently dropped.
type Decision struct {
	Record   ScoredRecord `json:"record" yaml:"record"`
	Accepted bool         `json:"accepted" yaml:"accepted"`
	Reason   string       `json:"reason" yaml:"reason"`
}

// BatchReport summarizes one validation call: how many sources survived,
// the batch average, the threshold applied to every record, and the grade
// distribution of accepted records.
type BatchReport struct {
	Query          string         `json:"query" yaml:"query"`
	TotalSources   int            `json:"total_sources" yaml:"total_sources"`
	TotalValidated int            `json:"total_validated" yaml:"total_validated"`
	AverageScore   float64        `json:"average_score" yaml:"average_score"`
	Threshold      float64        `json:"threshold" yaml:"threshold"`
	Distribution   map[string]int `json:"score_distribution" yaml:"score_distribution"`
	Timestamp      time.Time      `json:"timestamp" yaml:"timestamp"`
}
