package domain

// EntryType identifies what a corpus entry was built from.
type EntryType string

// Corpus entry types.
const (
	EntryTypeDocument EntryType = "document"
	EntryTypeContact  EntryType = "contact"
	EntryTypeDeal     EntryType = "deal"
)

// CorpusEntry is one searchable blob built fresh for each query.
type CorpusEntry struct {
	// SourceLabel is the display label; matching it earns a bonus.
	SourceLabel string

	// Content is the text scored against the query.
	Content string

	// Display is the labelled text shown to users. Empty means Content.
	Display string

	// Type is the record type behind the entry.
	Type EntryType

	// Contact is set for contact entries.
	Contact *Contact

	// Deal is set for deal entries.
	Deal *Deal

	// Document is set for document entries.
	Document *Document
}

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means no limit.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// Types restricts results to the given entry types.
	Types []EntryType
}

// SearchResult represents a single ranked hit.
type SearchResult struct {
	// SourceLabel is the label of the matched entry.
	SourceLabel string

	// Score is the keyword relevance score.
	Score int

	// Preview contains snippets with matched terms.
	Preview []string

	// FullContent is the entry's complete text.
	FullContent string

	// Type is the record type behind the hit.
	Type EntryType

	// Entry is the scored corpus entry.
	Entry CorpusEntry
}

// Retrieval is the output of one query.
type Retrieval struct {
	// Query is the query as received.
	Query string

	// Results are ranked by score, ties in corpus order.
	Results []SearchResult

	// Total is the number of matches before pagination.
	Total int

	// ClusterIntent is true when the query asked about clusters or networks.
	ClusterIntent bool

	// Clusters is populated only when ClusterIntent is true.
	Clusters []Cluster
}

// Cluster groups a deal with the contacts at the same company.
type Cluster struct {
	// Company is the deal's company name.
	Company string

	// Deal is the deal at the company.
	Deal Deal

	// Contacts are the contacts whose company matches the deal's.
	Contacts []Contact
}

// AskOptions configures a grounded question.
type AskOptions struct {
	// TopK is the number of retrieved entries passed to the LLM.
	TopK int
}

// Answer is an LLM response grounded in retrieved entries.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the results used as context.
	Sources []SearchResult

	// Model is the LLM model that produced the answer.
	Model string
}
