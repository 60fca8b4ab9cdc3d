package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect layout profiles",
	Long: `Layout profiles describe how a pasted page is laid out: which lines
anchor a record and where each field sits relative to the anchor.

Builtin profiles can be replaced or extended with YAML files in
~/.relay/layouts/. "relay layout show <name>" prints a profile in the
same format, ready to copy and edit.`,
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List layout profiles",
	Args:  cobra.NoArgs,
	RunE:  runLayoutList,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a layout profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutShow,
}

func init() {
	layoutCmd.AddCommand(layoutListCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	rootCmd.AddCommand(layoutCmd)
}

func runLayoutList(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	profiles, err := ingestService.Profiles()
	if err != nil {
		return fmt.Errorf("list layouts: %w", err)
	}

	for i := range profiles {
		p := &profiles[i]
		cmd.Printf("%-20s %-8s %s\n", p.Name, p.Kind, p.Description)
	}
	return nil
}

func runLayoutShow(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	profile, err := ingestService.Profile(args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	cmd.Print(strings.TrimRight(string(data), "\n") + "\n")
	return nil
}
