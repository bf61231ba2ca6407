package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/docfile"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

var processCmd = &cobra.Command{
	Use:   "process [descriptor]",
	Short: "Run the plugin on a document descriptor",
	Long: `Loads a JSON document descriptor, runs the crawler plugin on it and prints
the updated document. The outcome is recorded in the journal.

Exits non-zero when the plugin fails the document.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

// processOutput is a flag for the process command.
var processOutput string

func init() {
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Write the updated descriptor to a file instead of stdout")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	stop, err := startPlugin()
	if err != nil {
		return err
	}
	defer stop()

	doc, err := docfile.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	entry, err := documentProcessor.Process(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("failed to process document: %w", err)
	}

	if processOutput != "" {
		if err := docfile.Save(processOutput, doc); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		cmd.Printf("Document %s %s, written to %s\n", doc.ID, entry.Outcome, processOutput)
		return nil
	}

	return writeDocument(cmd, doc)
}

func writeDocument(cmd *cobra.Command, doc *domain.Document) error {
	if err := docfile.Encode(cmd.OutOrStdout(), doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
