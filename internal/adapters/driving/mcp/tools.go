package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

const defaultToolLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"keywords to find contacts, deals and notes; mention clusters or network to include company clusters"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Type  string `json:"type,omitempty" jsonschema:"restrict results to contact, deal or document"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results  []SearchResultOutput `json:"results"`
	Count    int                  `json:"count"`
	Total    int                  `json:"total"`
	Clusters []ClusterOutput      `json:"clusters,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Score   int      `json:"score"`
	Preview []string `json:"preview,omitempty"`
	Content string   `json:"content,omitempty"`
}

// ClusterOutput is a deal with the contacts known at its company.
type ClusterOutput struct {
	Company  string   `json:"company"`
	DealID   string   `json:"deal_id"`
	Deal     string   `json:"deal"`
	Stage    string   `json:"stage,omitempty"`
	Contacts []string `json:"contacts"`
}

// ClustersInput is the input schema for the clusters tool.
type ClustersInput struct {
	Company string `json:"company,omitempty" jsonschema:"only clusters whose company contains this text"`
}

// ClustersOutput is the output schema for the clusters tool.
type ClustersOutput struct {
	Clusters []ClusterOutput `json:"clusters"`
	Count    int             `json:"count"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Text    string `json:"text" jsonschema:"text copied from a search results, applications or connections page"`
	Profile string `json:"profile,omitempty" jsonschema:"layout profile name (default auto-detect)"`
	DryRun  bool   `json:"dry_run,omitempty" jsonschema:"report what would be stored without writing"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Profile  string   `json:"profile"`
	Found    int      `json:"found"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Dropped  int      `json:"dropped"`
	Linked   int      `json:"linked"`
	Records  []string `json:"records"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"question about the user's contacts, deals and notes"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of records sent as context (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Model   string   `json:"model"`
	Sources []string `json:"sources"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the user's contacts, deals and notes by keyword",
	}, s.handleSearch)
	s.tools = append(s.tools, "search")

	if s.ports.Clusters != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "clusters",
			Description: "List deals together with the contacts the user knows at the same company",
		}, s.handleClusters)
		s.tools = append(s.tools, "clusters")
	}

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Extract contacts or deals from pasted listing text and store them",
		}, s.handleIngest)
		s.tools = append(s.tools, "ingest")
	}

	if s.ports.Answer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a question from the user's records using the configured LLM",
		}, s.handleAsk)
		s.tools = append(s.tools, "ask")
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}

	opts := domain.SearchOptions{Limit: limit}
	if input.Type != "" {
		opts.Types = []domain.EntryType{domain.EntryType(input.Type)}
	}

	r, err := s.ports.Retrieval.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results:  make([]SearchResultOutput, len(r.Results)),
		Count:    len(r.Results),
		Total:    r.Total,
		Clusters: clusterOutputs(r.Clusters),
	}
	for i := range r.Results {
		output.Results[i] = SearchResultOutput{
			Label:   r.Results[i].SourceLabel,
			Type:    string(r.Results[i].Type),
			Score:   r.Results[i].Score,
			Preview: r.Results[i].Preview,
			Content: r.Results[i].FullContent,
		}
	}

	return nil, output, nil
}

// handleClusters handles the clusters tool invocation.
func (s *Server) handleClusters(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClustersInput,
) (*mcp.CallToolResult, ClustersOutput, error) {
	clusters, err := s.ports.Clusters.Clusters(ctx)
	if err != nil {
		return nil, ClustersOutput{}, err
	}

	if input.Company != "" {
		clusters = filterClusters(clusters, input.Company)
	}

	out := clusterOutputs(clusters)
	if out == nil {
		out = []ClusterOutput{}
	}
	return nil, ClustersOutput{Clusters: out, Count: len(out)}, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if input.Text == "" {
		return nil, IngestOutput{}, errors.New("text is required")
	}

	opts := domain.IngestOptions{
		Profile: input.Profile,
		DryRun:  input.DryRun,
	}
	result, err := s.ports.Ingest.Ingest(ctx, input.Text, opts)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		Profile:  result.Profile,
		Found:    result.Found,
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
		Dropped:  result.Dropped,
		Linked:   result.Linked,
		Records:  make([]string, 0, len(result.Contacts)+len(result.Deals)),
	}
	for i := range result.Contacts {
		output.Records = append(output.Records, result.Contacts[i].Label())
	}
	for i := range result.Deals {
		output.Records = append(output.Records, result.Deals[i].Label())
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if !s.ports.Answer.Available() {
		return nil, AskOutput{}, domain.ErrLLMUnavailable
	}

	answer, err := s.ports.Answer.Ask(ctx, input.Question, domain.AskOptions{TopK: input.TopK})
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Model:   answer.Model,
		Sources: make([]string, len(answer.Sources)),
	}
	for i := range answer.Sources {
		output.Sources[i] = answer.Sources[i].SourceLabel
	}
	return nil, output, nil
}

func clusterOutputs(clusters []domain.Cluster) []ClusterOutput {
	if len(clusters) == 0 {
		return nil
	}
	out := make([]ClusterOutput, len(clusters))
	for i := range clusters {
		c := &clusters[i]
		names := make([]string, len(c.Contacts))
		for j := range c.Contacts {
			names[j] = c.Contacts[j].Name
		}
		out[i] = ClusterOutput{
			Company:  c.Company,
			DealID:   c.Deal.ID,
			Deal:     c.Deal.Label(),
			Stage:    string(c.Deal.Stage),
			Contacts: names,
		}
	}
	return out
}
