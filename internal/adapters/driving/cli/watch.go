package cli

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/watch"
)

var (
	watchSkipExisting bool
	watchSettle       time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import text files dropped into a directory",
	Long: `Watches a directory and imports every .txt file created or saved in it,
using the same defaults as "relay import". Files already in the directory
are imported first unless --skip-existing is set.

A file is imported once it has gone --settle without further writes.
Re-importing a file is safe: names already stored are skipped.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSkipExisting, "skip-existing", false, "only import files written after the watch starts")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "quiet period after the last write before a file is imported")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(dir, ingestService, importOptions())
	w.SetSettle(watchSettle)

	if !watchSkipExisting {
		reports, err := w.IngestExisting(ctx)
		if err != nil {
			return err
		}
		for _, r := range reports {
			printWatchReport(cmd, r)
		}
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return w.Run(ctx, func(r watch.Report) { printWatchReport(cmd, r) })
}

func printWatchReport(cmd *cobra.Command, r watch.Report) {
	name := filepath.Base(r.Path)
	switch {
	case r.Err != nil:
		cmd.PrintErrf("%s: %v\n", name, r.Err)
	case r.Result.Profile == "":
		cmd.Printf("%s: no known layout matched\n", name)
	default:
		cmd.Printf("%s: %d found, %d inserted, %d skipped\n",
			name, r.Result.Found, r.Result.Inserted, r.Result.Skipped)
	}
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
