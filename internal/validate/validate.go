// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate runs the source validation pipeline for one query batch:
// normalize raw provider payloads, score and classify every record with
// bounded parallelism, compute the batch-relative threshold, and render a
// final accept/reject decision per record. Each call is independent; the
// engine holds no state across batches.
package validate

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/validation-engine/internal/classify"
	"github.com/pdiddy/validation-engine/internal/normalize"
	"github.com/pdiddy/validation-engine/internal/score"
	"github.com/pdiddy/validation-engine/pkg/types"
)

// Outcome is the annotated result of one validation call.
type Outcome struct {
	// Accepted holds the accepted records ordered by score descending,
	// truncated to MaxSources.
	Accepted []types.ScoredRecord

	// Decisions holds every record's verdict, rejects included, in the
	// normalized input order.
	Decisions []types.Decision

	// Report summarizes the batch.
	Report types.BatchReport

	// Dropped counts raw payloads discarded during normalization.
	Dropped int
}

// Run validates one batch of raw sources against a query. Per-record
// failures never abort the batch: unidentifiable payloads are dropped with
// a logged reason, and a failed or timed-out relevance call rejects only
// that record. An empty batch after normalization yields an empty outcome
// and no error. Progress lines go to w.
func Run(ctx context.Context, query string, raws []normalize.RawSource, clf classify.Classifier, vcfg types.ValidationConfig, scfg types.ScoringConfig, w io.Writer) (Outcome, error) {
	records := normalize.NormalizeAll(raws, w)
	dropped := len(raws) - len(records)

	now := time.Now()
	if len(records) == 0 {
		return Outcome{
			Decisions: []types.Decision{},
			Dropped:   dropped,
			Report:    buildReport(query, nil, nil, vcfg.CredibilityThreshold, 0, now),
		}, nil
	}

	fmt.Fprintf(w, "validating %d sources for query %q\n", len(records), query)

	scored, err := scoreAndClassify(ctx, query, records, clf, vcfg, scfg, now)
	if err != nil {
		return Outcome{}, err
	}

	// Barrier: the threshold is a function of the whole batch's average,
	// so every record must be scored before any decision is made.
	scores := make([]float64, len(scored))
	for i, sr := range scored {
		scores[i] = sr.CredibilityScore
	}
	threshold, average := Threshold(scores, vcfg.CredibilityThreshold)

	decisions, err := decideAll(ctx, scored, threshold, vcfg)
	if err != nil {
		return Outcome{}, err
	}

	var accepted []types.ScoredRecord
	for _, d := range decisions {
		marker := "reject"
		if d.Accepted {
			marker = "accept"
			accepted = append(accepted, d.Record)
		}
		fmt.Fprintf(w, "%s  %s score=%.1f: %s\n", marker, d.Record.ID, d.Record.CredibilityScore, d.Reason)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].CredibilityScore > accepted[j].CredibilityScore
	})
	if vcfg.MaxSources > 0 && len(accepted) > vcfg.MaxSources {
		accepted = accepted[:vcfg.MaxSources]
	}

	report := buildReport(query, scored, accepted, threshold, average, now)
	fmt.Fprintf(w, "validation complete: %d/%d accepted, avg score %.1f, threshold %.1f\n",
		len(accepted), len(records), average, threshold)

	return Outcome{
		Accepted:  accepted,
		Decisions: decisions,
		Report:    report,
		Dropped:   dropped,
	}, nil
}

// scoreAndClassify produces a ScoredRecord per input record with bounded
// parallelism. Scoring is pure; the relevance call is remote and bounded
// by the per-call timeout. A classifier failure marks just that record as
// unverified so one slow call never stalls the batch barrier.
func scoreAndClassify(ctx context.Context, query string, records []types.SourceRecord, clf classify.Classifier, vcfg types.ValidationConfig, scfg types.ScoringConfig, now time.Time) ([]types.ScoredRecord, error) {
	workers := vcfg.Workers
	if workers <= 0 {
		workers = 4
	}

	scored := make([]types.ScoredRecord, len(records))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			res := score.ScoreAt(rec, scfg, now)
			sr := types.ScoredRecord{
				SourceRecord:     rec,
				CredibilityScore: res.Score,
				Grade:            res.Grade,
				Factors:          res.Factors,
				RejectionReasons: res.QualityFlags,
			}

			sr.Relevance = classifyOne(ctx, query, rec, clf, vcfg.ClassifierTimeout)

			scored[i] = sr
			return nil
		})
	}
	// Workers report failures through the record itself, never as a group
	// error; only caller cancellation aborts the batch.
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scored, nil
}

// classifyOne calls the relevance classifier under a per-call timeout and
// folds any failure into an unverified not-relevant verdict.
func classifyOne(ctx context.Context, query string, rec types.SourceRecord, clf classify.Classifier, timeout time.Duration) types.Relevance {
	cctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	verdict, err := clf.Classify(cctx, query, rec)
	if err != nil {
		return types.Relevance{
			IsRelevant: false,
			Confidence: types.ConfidenceLow,
			Reason:     fmt.Sprintf("%s: %v", UnverifiedPrefix, err),
		}
	}
	return verdict
}

// decideAll evaluates the decision rule for every record after the
// barrier. Decisions are pure and order-independent, so they run under the
// same bounded parallelism as scoring.
func decideAll(ctx context.Context, scored []types.ScoredRecord, threshold float64, vcfg types.ValidationConfig) ([]types.Decision, error) {
	decisions := make([]types.Decision, len(scored))

	g := new(errgroup.Group)
	g.SetLimit(max(vcfg.Workers, 1))
	for i, sr := range scored {
		i, sr := i, sr
		g.Go(func() error {
			decisions[i] = Decide(sr, threshold, vcfg.MediumConfidenceMargin)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decisions, nil
}

// buildReport assembles the batch summary, bucketing accepted records by
// grade band.
func buildReport(query string, scored []types.ScoredRecord, accepted []types.ScoredRecord, threshold, average float64, now time.Time) types.BatchReport {
	dist := map[string]int{"excellent": 0, "good": 0, "fair": 0, "poor": 0}
	for _, sr := range accepted {
		switch {
		case sr.CredibilityScore >= 85:
			dist["excellent"]++
		case sr.CredibilityScore >= 70:
			dist["good"]++
		case sr.CredibilityScore >= 55:
			dist["fair"]++
		default:
			dist["poor"]++
		}
	}
	return types.BatchReport{
		Query:          query,
		TotalSources:   len(scored),
		TotalValidated: len(accepted),
		AverageScore:   round2(average),
		Threshold:      round2(threshold),
		Distribution:   dist,
		Timestamp:      now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
