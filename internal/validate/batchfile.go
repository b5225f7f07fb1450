// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/validation-engine/internal/normalize"
	"github.com/pdiddy/validation-engine/pkg/types"
)

// BatchFile is the on-disk representation of one validation input: the
// query, an optional research depth, and the raw provider payloads as the
// discovery stage handed them over.
type BatchFile struct {
	Query         string                `json:"query" yaml:"query"`
	ResearchDepth types.ResearchDepth   `json:"research_depth,omitempty" yaml:"research_depth,omitempty"`
	Sources       []normalize.RawSource `json:"sources" yaml:"sources"`
}

// ReadBatchFile loads a batch from a YAML or JSON file, chosen by
// extension. A batch without a query is a structural failure: nothing
// downstream can classify relevance against an empty question.
func ReadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var bf BatchFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &bf)
	} else {
		err = yaml.Unmarshal(data, &bf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}

	if strings.TrimSpace(bf.Query) == "" {
		return nil, fmt.Errorf("batch file %s has no query", path)
	}
	return &bf, nil
}

// ReportFile is the on-disk representation of one validation outcome:
// the batch summary, every decision, and the accepted records in rank
// order, ready for the downstream synthesis stage and for audit.
type ReportFile struct {
	Report    types.BatchReport    `yaml:"report"`
	Accepted  []types.ScoredRecord `yaml:"accepted"`
	Decisions []types.Decision     `yaml:"decisions"`
}

// WriteReportFile saves a validation outcome to a YAML file.
func WriteReportFile(path string, out Outcome) error {
	rf := ReportFile{
		Report:    out.Report,
		Accepted:  out.Accepted,
		Decisions: out.Decisions,
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
