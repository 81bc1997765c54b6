package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagVerbose  bool
	flagSaveData bool
	flagDataDir  string
	flagDBPath   string
)

// NewRootCmd creates the root command and attaches all subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doral-courts",
		Short: "Tennis and pickleball court availability for the Doral reservation system",
		Long: `A CLI tool that fetches tennis and pickleball court availability from the
Doral reservation system, keeps a local history, and renders it as tables.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&flagSaveData, "save-data", false, "Save retrieved HTML and JSON data to files")
	pf.StringVar(&flagDataDir, "data-dir", "data", "Directory for saved HTML/JSON snapshots")
	pf.StringVar(&flagDBPath, "db", "", "Path to the SQLite database (default: ~/.doral-courts/courts.db)")

	cmd.AddCommand(
		newListCmd(),
		newSlotsCmd(),
		newDataCmd(),
		newAnalyzeCmd(),
		newCourtsCmd(),
		newLocationsCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newCleanupCmd(),
		newWatchCmd(),
		newFavoritesCmd(),
		newQueryCmd(),
	)

	return cmd
}

// Execute runs the CLI under ctx, which carries interrupt cancellation for
// long-running commands like watch.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
