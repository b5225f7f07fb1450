package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "validation-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClassifierConfig holds settings for the relevance classifier boundary.
type ClassifierConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// RequestsPerSecond caps the classifier call rate (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// ValidationConfig holds settings for one validation call.
type ValidationConfig struct {
	// MaxSources caps how many accepted records are returned (default 10).
	MaxSources int `json:"max_sources" yaml:"max_sources"`

	// CredibilityThreshold is the base acceptance floor. The effective
	// batch threshold tracks the batch average but never drops below it
	// (default 40).
	CredibilityThreshold float64 `json:"credibility_threshold" yaml:"credibility_threshold"`

	// MediumConfidenceMargin is added to the threshold for records whose
	// relevance confidence is MEDIUM (default 10).
	MediumConfidenceMargin float64 `json:"medium_confidence_margin" yaml:"medium_confidence_margin"`

	// Workers bounds the per-record scoring/classification parallelism
	// (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// ClassifierTimeout bounds a single relevance call. A record whose
	// call exceeds it is rejected as unverified rather than stalling the
	// batch (default 30s).
	ClassifierTimeout time.Duration `json:"classifier_timeout" yaml:"classifier_timeout"`
}

// DefaultValidationConfig returns the standard-depth validation settings.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxSources:             10,
		CredibilityThreshold:   40,
		MediumConfidenceMargin: 10,
		Workers:                4,
		ClassifierTimeout:      30 * time.Second,
	}
}

// ResearchDepth selects how aggressively a research run filters sources.
// Depth affects only MaxSources and CredibilityThreshold, never the
// scoring or decision logic itself.
type ResearchDepth string

const (
	DepthQuick    ResearchDepth = "quick"
	DepthStandard ResearchDepth = "standard"
	DepthDeep     ResearchDepth = "deep"
)

// Valid reports whether d names a known depth.
func (d ResearchDepth) Valid() bool {
	switch d {
	case DepthQuick, DepthStandard, DepthDeep:
		return true
	}
	return false
}

// Apply overwrites the depth-controlled fields of cfg.
func (d ResearchDepth) Apply(cfg *ValidationConfig) {
	switch d {
	case DepthQuick:
		cfg.MaxSources = 5
		cfg.CredibilityThreshold = 35
	case DepthDeep:
		cfg.MaxSources = 15
		cfg.CredibilityThreshold = 50
	default:
		cfg.MaxSources = 10
		cfg.CredibilityThreshold = 40
	}
}

// ScoringConfig holds the heuristic tunables of the credibility scorer.
// Every constant that shapes the score lives here so the curves can be
// tested independently of the defaults.
type ScoringConfig struct {
	// PeerReviewBase, PreprintBase and WebBase are the source-type base
	// scores (defaults 28, 25, 15).
	PeerReviewBase float64 `json:"peer_review_base" yaml:"peer_review_base"`
	PreprintBase   float64 `json:"preprint_base" yaml:"preprint_base"`
	WebBase        float64 `json:"web_base" yaml:"web_base"`

	// CitationSaturation is the citation count beyond which the citation
	// component stops growing (default 100).
	CitationSaturation int `json:"citation_saturation" yaml:"citation_saturation"`

	// RecencyHorizonYears is the age in years beyond which a publication
	// date contributes nothing (default 10).
	RecencyHorizonYears int `json:"recency_horizon_years" yaml:"recency_horizon_years"`

	// AuthorBonus is granted when at least one author is listed (default 3).
	AuthorBonus float64 `json:"author_bonus" yaml:"author_bonus"`

	// MinSummaryLength is the shortest summary considered meaningful
	// (default 40 characters).
	MinSummaryLength int `json:"min_summary_length" yaml:"min_summary_length"`

	// SpamPenalty is subtracted from the summary component when the
	// summary matches a spam pattern (default 25). It deliberately exceeds
	// the maximum summary contribution so a spammy long summary scores
	// below an honest empty one.
	SpamPenalty float64 `json:"spam_penalty" yaml:"spam_penalty"`

	// URLBonus is granted when the URL parses as an absolute http(s)
	// address (default 2).
	URLBonus float64 `json:"url_bonus" yaml:"url_bonus"`

	// DomainBonuses maps trusted domain suffixes to bonus points.
	// Consulted only for web-type records; unlisted domains get zero,
	// never a penalty.
	DomainBonuses map[string]float64 `json:"domain_bonuses" yaml:"domain_bonuses"`
}

// DefaultScoringConfig returns the standard scoring tunables.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PeerReviewBase:      28,
		PreprintBase:        25,
		WebBase:             15,
		CitationSaturation:  100,
		RecencyHorizonYears: 10,
		AuthorBonus:         3,
		MinSummaryLength:    40,
		SpamPenalty:         25,
		URLBonus:            2,
		DomainBonuses: map[string]float64{
			".edu":    10,
			".gov":    10,
			".mil":    10,
			".ac.uk":  10,
			".edu.au": 10,
			".org":    5,
		},
	}
}
