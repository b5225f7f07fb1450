// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/validation-engine/internal/normalize"
	"github.com/pdiddy/validation-engine/internal/score"
)

var scoreCmd = &cobra.Command{
	Use:   "score [batch file]",
	Short: "Score source credibility without classifying relevance",
	Long: `Score normalizes the sources in a batch file and prints each record's
credibility score, grade, and contributing factors. No relevance classifier
is called and no acceptance decision is made; use this to inspect how the
scoring heuristics treat a batch before running the full pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

type scoredLine struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	SourceType   string   `json:"source_type"`
	Domain       string   `json:"domain"`
	Score        float64  `json:"score"`
	Grade        string   `json:"grade"`
	Factors      []string `json:"factors"`
	QualityFlags []string `json:"quality_flags,omitempty"`
}

// looseBatch is a batch file without the query requirement: scoring alone
// never consults the query.
type looseBatch struct {
	Sources []normalize.RawSource `json:"sources" yaml:"sources"`
}

func readLooseBatch(path string) (*looseBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var lb looseBatch
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &lb)
	} else {
		err = yaml.Unmarshal(data, &lb)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}
	return &lb, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	lb, err := readLooseBatch(args[0])
	if err != nil {
		return err
	}

	records := normalize.NormalizeAll(lb.Sources, os.Stderr)
	scfg := scoringConfig()

	lines := make([]scoredLine, 0, len(records))
	for _, rec := range records {
		res := score.Score(rec, scfg)
		lines = append(lines, scoredLine{
			ID:           rec.ID,
			Title:        rec.Title,
			SourceType:   string(rec.SourceType),
			Domain:       rec.Domain,
			Score:        res.Score,
			Grade:        string(res.Grade),
			Factors:      res.Factors,
			QualityFlags: res.QualityFlags,
		})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}

	if len(lines) == 0 {
		fmt.Println("No sources to score.")
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	fmt.Fprintf(os.Stdout, "%-12s  %-40s  %-18s  %-6s  %s\n",
		"ID", "Title", "Type", "Score", "Grade")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))
	for _, l := range lines {
		title := l.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-40s  %-18s  %-6.1f  %s\n",
			l.ID, title, l.SourceType, l.Score, l.Grade)
		if verbose {
			fmt.Fprintf(os.Stdout, "              factors: %s\n", strings.Join(l.Factors, ", "))
			if len(l.QualityFlags) > 0 {
				fmt.Fprintf(os.Stdout, "              flags:   %s\n", strings.Join(l.QualityFlags, ", "))
			}
		}
	}
	return nil
}

func init() {
	scoreCmd.Flags().Bool("json", false, "output scored records as JSON")
	scoreCmd.Flags().Bool("verbose", false, "show per-record factors and quality flags")

	rootCmd.AddCommand(scoreCmd)
}
