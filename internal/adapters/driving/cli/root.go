// Package cli implements the relay command-line interface with cobra.
// Commands reach the core only through driving ports set with SetServices.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/relay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by the entry point.
var (
	ingestService    driving.IngestService
	recordService    driving.RecordService
	retrievalService driving.RetrievalService
	clusterService   driving.ClusterService
	answerService    driving.AnswerService
	settingsService  driving.SettingsService
)

// Services holds the driving ports used by commands.
type Services struct {
	Ingest    driving.IngestService
	Records   driving.RecordService
	Retrieval driving.RetrievalService
	Clusters  driving.ClusterService
	Answer    driving.AnswerService
	Settings  driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Turn pasted listings into contacts and deals you can search",
	Long: `Relay extracts contacts and deals from text copied out of recruiter
searches, application trackers and connection lists, stores them locally,
and lets you search them alongside your notes.

Paste text into "relay import", then use "relay search", "relay clusters"
or "relay ask" to work with what you have collected.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices installs the driving ports used by commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	recordService = s.Records
	retrievalService = s.Retrieval
	clusterService = s.Clusters
	answerService = s.Answer
	settingsService = s.Settings
}

// SetVersion sets the version reported by "relay version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
