package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

var (
	importProfile    string
	importSimilarity string
	importThreshold  int
	importChannel    string
	importDryRun     bool
	importJSON       bool
)

// stdinIsTerminal reports whether stdin is an interactive terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Extract contacts and deals from pasted text",
	Long: `Reads text copied from a listing page and stores the contacts or deals
found in it. Pass a file, or pipe the text on stdin:

  pbpaste | relay import
  relay import applications.txt --profile job-applications

The layout profile is detected automatically unless --profile is given.
Names already in the store are skipped, so importing the same text twice is safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importProfile, "profile", "p", "", "layout profile (default from settings, usually auto)")
	importCmd.Flags().StringVar(&importSimilarity, "similarity", "", "duplicate-name strategy: exact, fold or edit")
	importCmd.Flags().IntVar(&importThreshold, "threshold", 0, "maximum edit distance for the edit strategy")
	importCmd.Flags().StringVar(&importChannel, "source-channel", "", "origin tag stored on every record")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "report what would be stored without writing")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	raw, err := readImportInput(cmd, args)
	if err != nil {
		return err
	}

	opts := importOptions()
	result, err := ingestService.Ingest(cmd.Context(), raw, opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if importJSON {
		return printJSON(cmd, result)
	}
	printIngestResult(cmd, result, opts.DryRun)
	return nil
}

func readImportInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if in == os.Stdin && stdinIsTerminal() {
		return "", errors.New("no input: pass a file or pipe text on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// importOptions merges command flags over the configured ingest defaults.
func importOptions() domain.IngestOptions {
	defaults := domain.DefaultAppSettings().Ingest
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			defaults = settings.Ingest
		}
	}

	opts := domain.IngestOptions{
		Profile:       defaults.Profile,
		Similarity:    defaults.Similarity,
		EditThreshold: defaults.EditThreshold,
		SourceChannel: defaults.SourceChannel,
		DryRun:        importDryRun,
	}
	if importProfile != "" {
		opts.Profile = importProfile
	}
	if importSimilarity != "" {
		opts.Similarity = importSimilarity
	}
	if importThreshold > 0 {
		opts.EditThreshold = importThreshold
	}
	if importChannel != "" {
		opts.SourceChannel = importChannel
	}
	return opts
}

func printIngestResult(cmd *cobra.Command, r *domain.IngestResult, dryRun bool) {
	if r.Profile == "" {
		cmd.Println("No known layout matched the input.")
		return
	}

	cmd.Printf("Profile: %s (%s)\n", r.Profile, r.Kind)
	if dryRun {
		cmd.Print("Dry run: ")
	}
	cmd.Printf("%d found, %d inserted, %d skipped\n", r.Found, r.Inserted, r.Skipped)
	if r.Linked > 0 {
		cmd.Printf("%d linked to existing deals\n", r.Linked)
	}
	if r.Dropped > 0 {
		cmd.Printf("%d candidates dropped (no valid layout)\n", r.Dropped)
	}
	if r.LowPrecision {
		cmd.Println("Warning: no anchors found; records were grouped by position and may be wrong.")
	}

	for i := range r.Contacts {
		c := r.Contacts[i]
		cmd.Printf("  + %s", c.Name)
		if c.Company != "" {
			cmd.Printf(" (%s)", c.Company)
		}
		cmd.Println()
	}
	for i := range r.Deals {
		cmd.Printf("  + %s\n", r.Deals[i].Label())
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
