// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/validation-engine/internal/audit"
	"github.com/pdiddy/validation-engine/internal/classify"
	"github.com/pdiddy/validation-engine/internal/secrets"
	"github.com/pdiddy/validation-engine/internal/validate"
	"github.com/pdiddy/validation-engine/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate [batch file]",
	Short: "Run the full validation pipeline on a batch of raw sources",
	Long: `Validate reads a batch file (YAML or JSON) containing a research query and
raw source payloads, normalizes and scores every source, classifies relevance
against the query via the Claude API, applies the batch-relative credibility
threshold, and prints the accept/reject decisions.

The batch file may carry a research_depth (quick, standard, deep) that tunes
the source cap and threshold floor; the --depth flag overrides it. Use
--report to save the annotated outcome to YAML and --audit-db to append every
decision to a SQLite audit trail.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	bf, err := validate.ReadBatchFile(args[0])
	if err != nil {
		return err
	}

	vcfg, err := validationConfig(cmd, bf.ResearchDepth)
	if err != nil {
		return err
	}

	clf, err := buildClassifier(cmd)
	if err != nil {
		return err
	}

	out, err := validate.Run(context.Background(), bf.Query, bf.Sources, clf, vcfg, scoringConfig(), os.Stderr)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := validate.FormatJSON(out, os.Stdout); err != nil {
			return err
		}
	} else {
		validate.FormatTable(out, os.Stdout)
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := validate.WriteReportFile(reportPath, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
	}

	if dbPath, _ := cmd.Flags().GetString("audit-db"); dbPath != "" {
		if err := recordAudit(dbPath, out); err != nil {
			return err
		}
	}

	return nil
}

func recordAudit(dbPath string, out validate.Outcome) error {
	store, err := audit.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	batchID, err := store.RecordBatch(context.Background(), out.Report, out.Decisions)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Audit batch %d recorded in %s\n", batchID, dbPath)
	return nil
}

// validationConfig layers defaults, config file values, the batch file's
// research depth, and finally explicit flags, strongest last.
func validationConfig(cmd *cobra.Command, fileDepth types.ResearchDepth) (types.ValidationConfig, error) {
	vcfg := types.DefaultValidationConfig()

	if v := viper.GetInt("validation.workers"); v > 0 {
		vcfg.Workers = v
	}
	if v := viper.GetFloat64("validation.medium_confidence_margin"); v > 0 {
		vcfg.MediumConfidenceMargin = v
	}
	if v := viper.GetDuration("validation.classifier_timeout"); v > 0 {
		vcfg.ClassifierTimeout = v
	}

	depth := fileDepth
	if flagDepth, _ := cmd.Flags().GetString("depth"); flagDepth != "" {
		depth = types.ResearchDepth(flagDepth)
	}
	if depth != "" {
		if !depth.Valid() {
			return types.ValidationConfig{}, fmt.Errorf("unknown research depth %q: use quick, standard, or deep", depth)
		}
		depth.Apply(&vcfg)
	}

	if cmd.Flags().Changed("max-sources") {
		vcfg.MaxSources, _ = cmd.Flags().GetInt("max-sources")
	}
	if cmd.Flags().Changed("threshold") {
		vcfg.CredibilityThreshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("workers") {
		vcfg.Workers, _ = cmd.Flags().GetInt("workers")
	}

	return vcfg, nil
}

func scoringConfig() types.ScoringConfig {
	scfg := types.DefaultScoringConfig()
	// Suffix keys contain dots, so read the whole map rather than per-key
	// viper lookups.
	if v := viper.GetStringMap("scoring.domain_bonuses"); len(v) > 0 {
		bonuses := make(map[string]float64, len(v))
		for suffix, raw := range v {
			switch n := raw.(type) {
			case int:
				bonuses[suffix] = float64(n)
			case float64:
				bonuses[suffix] = n
			}
		}
		scfg.DomainBonuses = bonuses
	}
	return scfg
}

// buildClassifier wires the Claude relevance classifier, or a pass-through
// stub when --assume-relevant is set (scoring-only runs without an API key).
func buildClassifier(cmd *cobra.Command) (classify.Classifier, error) {
	if assume, _ := cmd.Flags().GetBool("assume-relevant"); assume {
		return classify.Func(func(_ context.Context, _ string, _ types.SourceRecord) (types.Relevance, error) {
			return types.Relevance{IsRelevant: true, Confidence: types.ConfidenceHigh, Reason: "relevance check skipped"}, nil
		}), nil
	}

	apiKey := secrets.Resolve(loadedSecrets, "anthropic-api-key", "ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("no Anthropic API key: add .secrets/anthropic-api-key or set ANTHROPIC_API_KEY (or pass --assume-relevant)")
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("classifier.model")
	}
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	cfg := types.ClassifierConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: 3,
		},
		HTTPConfig: types.HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "validation-engine/" + version,
		},
		RequestsPerSecond: viper.GetFloat64("classifier.requests_per_second"),
	}
	return classify.NewLLMClassifier(cfg), nil
}

func init() {
	validateCmd.Flags().String("depth", "", "research depth: quick, standard, or deep (overrides the batch file)")
	validateCmd.Flags().Int("max-sources", 10, "maximum accepted sources to return")
	validateCmd.Flags().Float64("threshold", 40, "credibility threshold floor")
	validateCmd.Flags().Int("workers", 4, "parallel scoring/classification workers")
	validateCmd.Flags().String("model", "", "Claude model for relevance classification")
	validateCmd.Flags().Bool("assume-relevant", false, "skip the relevance classifier and treat every source as relevant")
	validateCmd.Flags().Bool("json", false, "output the full outcome as JSON")
	validateCmd.Flags().String("report", "", "write the annotated outcome to this YAML file")
	validateCmd.Flags().String("audit-db", "", "append decisions to this SQLite audit database")

	rootCmd.AddCommand(validateCmd)
}
