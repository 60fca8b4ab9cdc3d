package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

var (
	searchLimit  int
	searchOffset int
	searchType   string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search contacts, deals and notes",
	Long: `Ranks every contact, deal and note by how often the query terms occur,
with a bonus when a term appears in the result label.

Queries mentioning clusters, networks or connections also list each deal
together with the contacts you know at that company.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "List deals with the contacts at the same company",
	Args:  cobra.NoArgs,
	RunE:  runClusters,
}

var clustersJSON bool

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "only return one type: contact, deal or document")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)

	clustersCmd.Flags().BoolVar(&clustersJSON, "json", false, "output clusters as JSON")
	rootCmd.AddCommand(clustersCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:  searchLimit,
		Offset: searchOffset,
	}
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultAppSettings().Search.Limit
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				opts.Limit = settings.Search.Limit
			}
		}
	}
	if searchType != "" {
		t, err := parseEntryType(searchType)
		if err != nil {
			return err
		}
		opts.Types = []domain.EntryType{t}
	}

	result, err := retrievalService.Search(cmd.Context(), strings.Join(args, " "), opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}
	outputSearchTable(cmd, result)
	return nil
}

func parseEntryType(s string) (domain.EntryType, error) {
	switch t := domain.EntryType(strings.ToLower(s)); t {
	case domain.EntryTypeContact, domain.EntryTypeDeal, domain.EntryTypeDocument:
		return t, nil
	case "note":
		return domain.EntryTypeDocument, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", domain.ErrInvalidInput, s)
	}
}

func outputSearchTable(cmd *cobra.Command, r *domain.Retrieval) {
	if len(r.Results) == 0 {
		cmd.Println("No matches.")
		return
	}

	cmd.Printf("Results (%d of %d):\n\n", len(r.Results), r.Total)
	for i := range r.Results {
		res := &r.Results[i]
		// Format: [N] Label (score)
		cmd.Printf("  [%d] %s (%d)\n", i+1, res.SourceLabel, res.Score)
		for _, line := range res.Preview {
			cmd.Printf("      %s\n", line)
		}
		cmd.Println()
	}

	if r.ClusterIntent {
		outputClusters(cmd, r.Clusters)
	}
}

func runClusters(cmd *cobra.Command, _ []string) error {
	if clusterService == nil {
		return errors.New("cluster service not configured")
	}

	clusters, err := clusterService.Clusters(cmd.Context())
	if err != nil {
		return fmt.Errorf("clusters failed: %w", err)
	}

	if clustersJSON {
		return printJSON(cmd, clusters)
	}
	if len(clusters) == 0 {
		cmd.Println("No clusters: no deal has a contact at the same company.")
		return nil
	}
	outputClusters(cmd, clusters)
	return nil
}

func outputClusters(cmd *cobra.Command, clusters []domain.Cluster) {
	if len(clusters) == 0 {
		return
	}
	cmd.Println("Clusters:")
	for i := range clusters {
		c := &clusters[i]
		cmd.Printf("  %s\n", c.Deal.Label())
		for j := range c.Contacts {
			contact := &c.Contacts[j]
			if contact.ContactType != "" {
				cmd.Printf("    - %s [%s]\n", contact.Name, contact.ContactType)
			} else {
				cmd.Printf("    - %s\n", contact.Name)
			}
		}
	}
}
