package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Relay resources.
	uriScheme = "relay://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
// Resources need the record service; without it none are registered.
func (s *Server) registerResources() {
	if s.ports.Records == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "contacts",
		Name:        "contacts",
		Description: "Every stored contact",
		MIMEType:    mimeJSON,
	}, s.handleContactsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "deals",
		Name:        "deals",
		Description: "Every stored deal",
		MIMEType:    mimeJSON,
	}, s.handleDealsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "companies/{company}",
		Name:        "company",
		Description: "Deals and contacts at companies whose name contains the given text",
		MIMEType:    mimeJSON,
	}, s.handleCompanyResource)

	s.resources = append(s.resources,
		uriScheme+"contacts",
		uriScheme+"deals",
		uriScheme+"companies/{company}",
	)
}

type contactInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Headline string `json:"headline,omitempty"`
	Company  string `json:"company,omitempty"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
	DealID   string `json:"deal_id,omitempty"`
	Channel  string `json:"source_channel,omitempty"`
}

type dealInfo struct {
	ID      string `json:"id"`
	Company string `json:"company"`
	Role    string `json:"role,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Channel string `json:"source_channel,omitempty"`
}

// handleContactsResource returns every stored contact.
func (s *Server) handleContactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	contacts, err := s.ports.Records.Contacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return jsonResource(req.Params.URI, contactInfos(contacts))
}

// handleDealsResource returns every stored deal.
func (s *Server) handleDealsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	deals, err := s.ports.Records.Deals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	return jsonResource(req.Params.URI, dealInfos(deals))
}

// handleCompanyResource returns the deals and contacts at a company.
func (s *Server) handleCompanyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	company := extractCompany(req.Params.URI)
	if company == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	deals, err := s.ports.Records.FindDeals(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("finding deals: %w", err)
	}
	contacts, err := s.ports.Records.FindContacts(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("finding contacts: %w", err)
	}
	if len(deals) == 0 && len(contacts) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, struct {
		Company  string        `json:"company"`
		Deals    []dealInfo    `json:"deals"`
		Contacts []contactInfo `json:"contacts"`
	}{company, dealInfos(deals), contactInfos(contacts)})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

func contactInfos(contacts []domain.Contact) []contactInfo {
	infos := make([]contactInfo, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		infos[i] = contactInfo{
			ID:       c.ID,
			Name:     c.Name,
			Headline: c.Headline,
			Company:  c.Company,
			Type:     c.ContactType,
			Location: c.Location,
			Channel:  c.SourceChannel,
		}
		if c.LinkedDealID != nil {
			infos[i].DealID = *c.LinkedDealID
		}
	}
	return infos
}

func dealInfos(deals []domain.Deal) []dealInfo {
	infos := make([]dealInfo, len(deals))
	for i := range deals {
		d := &deals[i]
		infos[i] = dealInfo{
			ID:      d.ID,
			Company: d.Company,
			Role:    d.Role,
			Stage:   string(d.Stage),
			Notes:   d.Notes,
			Channel: d.SourceChannel,
		}
	}
	return infos
}

// extractCompany extracts the company from a URI like relay://companies/{company}.
func extractCompany(uri string) string {
	const prefix = uriScheme + "companies/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	company, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(company)
}

// filterClusters keeps clusters whose company contains needle, ignoring case.
func filterClusters(clusters []domain.Cluster, needle string) []domain.Cluster {
	needle = strings.ToLower(strings.TrimSpace(needle))
	out := make([]domain.Cluster, 0, len(clusters))
	for i := range clusters {
		if strings.Contains(strings.ToLower(clusters[i].Company), needle) {
			out = append(out, clusters[i])
		}
	}
	return out
}
