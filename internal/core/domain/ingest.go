package domain

// ProfileAuto asks the ingestion service to pick the profile with the most anchors.
const ProfileAuto = "auto"

// IngestOptions configures one ingestion run.
type IngestOptions struct {
	// Profile is a layout profile name or ProfileAuto.
	Profile string

	// Similarity names the duplicate-name strategy. Empty means exact.
	Similarity string

	// EditThreshold is the maximum edit distance for the "edit" strategy.
	EditThreshold int

	// SourceChannel overrides the profile's channel tag when set.
	SourceChannel string

	// DryRun extracts and deduplicates without writing.
	DryRun bool
}

// IngestResult reports the outcome of one ingestion run.
type IngestResult struct {
	// Profile is the layout profile that was applied.
	Profile string

	// Kind is the record type the profile produced.
	Kind RecordKind

	// Found is the number of records recovered from the text.
	Found int

	// Inserted is the number of new records persisted.
	Inserted int

	// Skipped is the number of records that already existed.
	Skipped int

	// Dropped is the number of anchors with no valid template.
	Dropped int

	// Linked is the number of inserted contacts given a deal link.
	Linked int

	// LowPrecision is true when records came from fixed-stride grouping.
	LowPrecision bool

	// Contacts are the contacts inserted (or that would be, on a dry run).
	Contacts []Contact

	// Deals are the deals inserted (or that would be, on a dry run).
	Deals []Deal
}

// Extraction is the output of running one layout profile over raw text.
// Records are normalised but not yet deduplicated or linked.
type Extraction struct {
	// Profile is the profile applied.
	Profile string

	// Kind is the record type produced.
	Kind RecordKind

	// Lines is the number of lines left after noise filtering.
	Lines int

	// Anchors is the number of anchor lines found.
	Anchors int

	// LowPrecision is true when records came from fixed-stride grouping.
	LowPrecision bool

	// Dropped counts anchors or groups that yielded no valid record.
	Dropped int

	// Contacts holds recovered contacts for contact profiles.
	Contacts []Contact

	// Deals holds recovered deals for deal profiles.
	Deals []Deal
}

// Found returns the number of records recovered.
func (e *Extraction) Found() int {
	return len(e.Contacts) + len(e.Deals)
}
