// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"

	"golang.org/x/time/rate"

	"github.com/pdiddy/validation-engine/internal/httputil"
	"github.com/pdiddy/validation-engine/pkg/types"
)

// relevancePromptTmpl asks the model for a machine-parseable verdict on one
// (query, record) pair. The summary is truncated so oversized snippets do
// not blow the prompt budget.
var relevancePromptTmpl = template.Must(template.New("relevance").Parse(`Assess relevance to query.

Query: {{.Query}}
Title: {{.Title}}
Summary: {{.Summary}}

Format strictly as:
RELEVANT: [YES/NO]
CONFIDENCE: [HIGH/MEDIUM/LOW]
REASON: [One sentence]`))

// maxSummaryChars bounds how much of the summary is sent to the model.
const maxSummaryChars = 300

// messagesAPIURL is the Claude API endpoint. Package-level var for test
// substitution.
var messagesAPIURL = "https://api.anthropic.com/v1/messages"

// LLMClassifier judges relevance by calling the Claude Messages API. Calls
// are rate-limited and retried on HTTP 429; all other failures surface to
// the caller, which rejects the record as unverified rather than failing
// the batch.
type LLMClassifier struct {
	Model   string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter

	maxRetries int
}

// NewLLMClassifier builds a classifier from config, applying defaults for
// the rate limit and retry count.
func NewLLMClassifier(cfg types.ClassifierConfig) *LLMClassifier {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	client := &http.Client{Timeout: cfg.Timeout}
	return &LLMClassifier{
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		Client:     client,
		Limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: cfg.MaxRetries,
	}
}

// messagesRequest is the request body for the Claude Messages API.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response body from the Claude Messages API.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Classify renders the relevance prompt for one record, calls the model,
// and parses the verdict.
func (c *LLMClassifier) Classify(ctx context.Context, query string, rec types.SourceRecord) (types.Relevance, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return types.Relevance{}, err
		}
	}

	prompt, err := renderPrompt(query, rec)
	if err != nil {
		return types.Relevance{}, fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := messagesRequest{
		Model:     c.Model,
		MaxTokens: 256,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return types.Relevance{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, messagesAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return types.Relevance{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.maxRetries)
	if err != nil {
		return types.Relevance{}, fmt.Errorf("calling relevance API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return types.Relevance{}, fmt.Errorf("relevance API returned %d: %s", resp.StatusCode, string(body))
	}

	var mResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mResp); err != nil {
		return types.Relevance{}, fmt.Errorf("decoding relevance response: %w", err)
	}

	for _, block := range mResp.Content {
		if block.Type != "text" {
			continue
		}
		return ParseVerdict(block.Text), nil
	}
	return types.Relevance{}, fmt.Errorf("no text content in relevance API response")
}

// renderPrompt executes the relevance prompt template for one record.
func renderPrompt(query string, rec types.SourceRecord) (string, error) {
	summary := rec.Summary
	if len(summary) > maxSummaryChars {
		summary = summary[:maxSummaryChars]
	}
	var buf bytes.Buffer
	err := relevancePromptTmpl.Execute(&buf, struct {
		Query, Title, Summary string
	}{Query: query, Title: rec.Title, Summary: summary})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
