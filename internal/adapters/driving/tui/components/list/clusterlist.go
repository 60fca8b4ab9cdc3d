package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

// ClusterList displays deals with the contacts at the same company.
type ClusterList struct {
	clusters []domain.Cluster
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewClusterList creates a new cluster list component.
func NewClusterList(s *styles.Styles) *ClusterList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ClusterList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders every cluster with the selected one highlighted.
func (c *ClusterList) View() string {
	if len(c.clusters) == 0 {
		return c.styles.Muted.Render("No clusters: no deal has a contact at the same company")
	}

	lines := []string{c.styles.Subtitle.Render(fmt.Sprintf("Clusters (%d)", len(c.clusters))), ""}
	for i := range c.clusters {
		lines = append(lines, c.renderCluster(i, &c.clusters[i]))
	}
	return strings.Join(lines, "\n")
}

func (c *ClusterList) renderCluster(index int, cluster *domain.Cluster) string {
	title := fmt.Sprintf("%s [%s]", cluster.Deal.Label(), cluster.Deal.Stage)
	if index == c.selected {
		title = c.styles.Selected.Render("> " + title)
	} else {
		title = c.styles.Normal.Render("  " + title)
	}

	lines := []string{title}
	for _, contact := range cluster.Contacts {
		line := "    - " + contact.Name
		if contact.ContactType != "" {
			line += " (" + contact.ContactType + ")"
		}
		lines = append(lines, c.styles.Muted.Render(truncate(line, c.width)))
	}
	return strings.Join(lines, "\n")
}

// SetClusters replaces the clusters and resets the selection.
func (c *ClusterList) SetClusters(clusters []domain.Cluster) {
	c.clusters = clusters
	c.selected = 0
}

// Clusters returns the current clusters.
func (c *ClusterList) Clusters() []domain.Cluster {
	return c.clusters
}

// Selected returns the index of the selected cluster.
func (c *ClusterList) Selected() int {
	return c.selected
}

// MoveUp moves selection up.
func (c *ClusterList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *ClusterList) MoveDown() {
	if c.selected < len(c.clusters)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *ClusterList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of clusters.
func (c *ClusterList) Count() int {
	return len(c.clusters)
}
