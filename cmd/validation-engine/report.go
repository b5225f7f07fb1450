// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/validation-engine/internal/audit"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the audit trail of past validation decisions",
	Long: `Report reads the SQLite audit database written by validate --audit-db and
prints batch and decision totals, the overall accept rate, and a breakdown
of rejection reasons.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("audit-db")
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("audit database %s: %w", dbPath, err)
	}

	store, err := audit.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	sum, err := store.ReadSummary(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Batches:      %d\n", sum.Batches)
	fmt.Printf("Decisions:    %d\n", sum.Decisions)
	fmt.Printf("Accepted:     %d (%.0f%%)\n", sum.Accepted, sum.AcceptRate()*100)
	fmt.Printf("Avg score:    %.1f\n", sum.AverageScore)

	reasons, err := store.RejectionReasons(ctx)
	if err != nil {
		return err
	}
	if len(reasons) == 0 {
		return nil
	}

	kinds := make([]string, 0, len(reasons))
	for k := range reasons {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if reasons[kinds[i]] != reasons[kinds[j]] {
			return reasons[kinds[i]] > reasons[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})

	fmt.Println("\nRejections:")
	for _, k := range kinds {
		fmt.Printf("  %-22s %d\n", k, reasons[k])
	}
	return nil
}

func init() {
	reportCmd.Flags().String("audit-db", "validation-audit.db", "path to the SQLite audit database")

	rootCmd.AddCommand(reportCmd)
}
