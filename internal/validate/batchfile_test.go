// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/validation-engine/pkg/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadBatchFileYAML(t *testing.T) {
	path := writeTemp(t, "batch.yaml", `
query: "quantum error correction"
research_depth: deep
sources:
  - id: s1
    source_type: semantic_scholar
    title: "Surface codes"
    citation_count: 120
    published: "2024-05-01"
  - id: s2
    source_type: web
    title: "A blog post"
    url: "https://example.com/post"
    citation_count: null
`)

	bf, err := ReadBatchFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bf.Query != "quantum error correction" {
		t.Errorf("Query = %q", bf.Query)
	}
	if bf.ResearchDepth != types.DepthDeep {
		t.Errorf("ResearchDepth = %q, want deep", bf.ResearchDepth)
	}
	if len(bf.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(bf.Sources))
	}
	if bf.Sources[0].CitationCount == nil || *bf.Sources[0].CitationCount != 120 {
		t.Error("first source should carry a known citation count")
	}
	if bf.Sources[1].CitationCount != nil {
		t.Error("null citation_count must stay unknown, not become zero")
	}
}

func TestReadBatchFileJSON(t *testing.T) {
	path := writeTemp(t, "batch.json", `{
  "query": "test query",
  "sources": [
    {"id": "a", "source_type": "arxiv", "title": "Paper A"}
  ]
}`)

	bf, err := ReadBatchFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bf.Query != "test query" || len(bf.Sources) != 1 {
		t.Errorf("got query %q with %d sources", bf.Query, len(bf.Sources))
	}
}

func TestReadBatchFileMissingQuery(t *testing.T) {
	path := writeTemp(t, "batch.yaml", "sources:\n  - id: s1\n    title: T\n")
	if _, err := ReadBatchFile(path); err == nil {
		t.Fatal("batch without a query must fail")
	} else if !strings.Contains(err.Error(), "no query") {
		t.Errorf("err = %v, want a missing-query failure", err)
	}
}

func TestReadBatchFileNotFound(t *testing.T) {
	if _, err := ReadBatchFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestWriteReportFile(t *testing.T) {
	out := Outcome{
		Accepted: []types.ScoredRecord{{
			SourceRecord:     types.SourceRecord{ID: "s1", Title: "T", SourceType: types.SourceWeb, Domain: "example.com"},
			CredibilityScore: 72,
			Grade:            types.GradeFor(72),
			Relevance:        types.Relevance{IsRelevant: true, Confidence: types.ConfidenceHigh, Reason: "on topic"},
		}},
		Report: types.BatchReport{
			Query: "q", TotalSources: 1, TotalValidated: 1,
			AverageScore: 72, Threshold: 72, Timestamp: time.Now().UTC(),
		},
	}
	out.Decisions = []types.Decision{{Record: out.Accepted[0], Accepted: true, Reason: "score 72.0 meets threshold 72.0"}}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := WriteReportFile(path, out); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		t.Fatalf("report should round-trip through YAML: %v", err)
	}
	if rf.Report.Query != "q" || len(rf.Accepted) != 1 || len(rf.Decisions) != 1 {
		t.Errorf("round-tripped report lost content: %+v", rf)
	}
	if rf.Accepted[0].Grade != types.GradeFor(72) {
		t.Errorf("Grade = %q", rf.Accepted[0].Grade)
	}
}
