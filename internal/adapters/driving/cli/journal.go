package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show processed documents",
	Long:  `List and inspect the outcome recorded for each processed document.`,
	RunE:  runJournalList,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent journal entries",
	RunE:  runJournalList,
}

var journalGetCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Show a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalGet,
}

// Flags for the journal list command.
var (
	journalLimit   int
	journalOutcome string
)

func init() {
	for _, cmd := range []*cobra.Command{journalCmd, journalListCmd} {
		cmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximum number of entries (0 for all)")
		cmd.Flags().StringVar(&journalOutcome, "outcome", "", "Only show entries with this outcome (processed, excluded, failed)")
	}

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalGetCmd)
	rootCmd.AddCommand(journalCmd)
}

func runJournalList(cmd *cobra.Command, _ []string) error {
	if journalStore == nil {
		return errors.New("journal not configured")
	}

	ctx := context.Background()

	var (
		entries []domain.JournalEntry
		err     error
	)
	if journalOutcome != "" {
		outcome := domain.Outcome(journalOutcome)
		if !outcome.IsValid() {
			return fmt.Errorf("invalid outcome: %s", journalOutcome)
		}
		entries, err = journalStore.ListByOutcome(ctx, outcome)
		if err == nil && journalLimit > 0 && len(entries) > journalLimit {
			entries = entries[:journalLimit]
		}
	} else {
		entries, err = journalStore.List(ctx, journalLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to list journal: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No journal entries found.")
		return nil
	}

	for i := range entries {
		e := &entries[i]
		cmd.Printf("  %s  %-9s %s\n", e.ProcessedAt.Format("2006-01-02 15:04:05"), e.Outcome, e.CrawlURL)
		cmd.Printf("    Entry: %s  Document: %s\n", e.ID, e.DocumentID)
	}

	cmd.Printf("\nTotal: %d entries\n", len(entries))
	return nil
}

func runJournalGet(cmd *cobra.Command, args []string) error {
	if journalStore == nil {
		return errors.New("journal not configured")
	}

	entry, err := journalStore.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get journal entry: %w", err)
	}

	cmd.Printf("Journal Entry: %s\n\n", entry.ID)
	cmd.Printf("  Document:  %s\n", entry.DocumentID)
	cmd.Printf("  URL:       %s\n", entry.CrawlURL)
	cmd.Printf("  Outcome:   %s\n", entry.Outcome)
	cmd.Printf("  Processed: %s\n", entry.ProcessedAt.Format("2006-01-02 15:04:05"))
	if entry.Message != "" {
		cmd.Printf("\n  %s\n", entry.Message)
	}
	return nil
}
