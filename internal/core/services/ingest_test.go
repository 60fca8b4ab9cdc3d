package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/extraction"
	"github.com/custodia-labs/relay-cli/internal/similarity"
)

// card renders one people-search result the way LinkedIn pastes it.
func card(name, headline string) string {
	return name + "\n" + headline + "\nRemote\nMessage\n"
}

func searchOpts() domain.IngestOptions {
	return domain.IngestOptions{Profile: extraction.ProfileLinkedInSearch}
}

type ingestFixture struct {
	contacts *memory.ContactStore
	deals    *memory.DealStore
	service  *IngestService
}

func newIngestFixture() *ingestFixture {
	contacts := memory.NewContactStore()
	deals := memory.NewDealStore()
	return &ingestFixture{
		contacts: contacts,
		deals:    deals,
		service:  NewIngestService(contacts, deals, extraction.NewExtractor(), newStaticLayouts(), nil),
	}
}

func TestNewIngestService(t *testing.T) {
	f := newIngestFixture()
	require.NotNil(t, f.service)
	assert.NotNil(t, f.service.matchers)
}

func TestIngestService_MessageScenario(t *testing.T) {
	f := newIngestFixture()
	raw := "Search\nPeople\nAcme Recruiter\nTalent Lead at Acme Corp\nRemote\nMessage\nNext\n"

	result, err := f.service.Ingest(context.Background(), raw, domain.IngestOptions{Profile: domain.ProfileAuto})
	require.NoError(t, err)

	assert.Equal(t, extraction.ProfileLinkedInSearch, result.Profile)
	assert.Equal(t, 1, result.Found)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	stored, err := f.contacts.All(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Acme Recruiter", stored[0].Name)
	assert.Equal(t, "Talent Lead at Acme Corp", stored[0].Headline)
	assert.Equal(t, "Acme Corp", stored[0].Company)
	assert.Equal(t, domain.ContactTypeRecruiter, stored[0].Family())
	assert.NotEmpty(t, stored[0].ID)
}

func TestIngestService_EmptyInput(t *testing.T) {
	f := newIngestFixture()

	for _, raw := range []string{"", "   \n\t\n"} {
		result, err := f.service.Ingest(context.Background(), raw, searchOpts())
		require.NoError(t, err)
		assert.Zero(t, result.Found)
		assert.Zero(t, result.Inserted)
	}
}

func TestIngestService_NoProfileMatches(t *testing.T) {
	f := newIngestFixture()

	result, err := f.service.Ingest(context.Background(), "Next\nPrevious\n", domain.IngestOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Profile)
	assert.Zero(t, result.Found)
}

func TestIngestService_UnknownProfile(t *testing.T) {
	f := newIngestFixture()

	_, err := f.service.Ingest(context.Background(), card("Jane Doe", "Engineer at Acme"),
		domain.IngestOptions{Profile: "myspace"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownProfile))
}

func TestIngestService_UnknownSimilarity(t *testing.T) {
	f := newIngestFixture()
	opts := searchOpts()
	opts.Similarity = "soundex"

	_, err := f.service.Ingest(context.Background(), card("Jane Doe", "Engineer at Acme"), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestIngestService_Idempotent(t *testing.T) {
	f := newIngestFixture()
	raw := card("Jane Doe", "Senior Recruiter at Acme Corp | Remote") + card("John Roe", "Engineer at Beta")

	first, err := f.service.Ingest(context.Background(), raw, searchOpts())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := f.service.Ingest(context.Background(), raw, searchOpts())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Found)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	stored, err := f.contacts.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestIngestService_DedupBoundary(t *testing.T) {
	f := newIngestFixture()
	raw := card("Jane Doe", "Engineer at Acme") +
		card("Jane Doe", "Engineer at Acme") +
		card("jane doe", "Engineer at Acme")

	result, err := f.service.Ingest(context.Background(), raw, searchOpts())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Found)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Skipped)

	stored, err := f.contacts.All(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Jane Doe", stored[0].Name)
	assert.Equal(t, "jane doe", stored[1].Name)
}

func TestIngestService_FoldSimilarity(t *testing.T) {
	f := newIngestFixture()
	opts := searchOpts()
	opts.Similarity = similarity.StrategyFold
	raw := card("Jane Doe", "Engineer at Acme") + card("jane  DOE", "Engineer at Acme")

	result, err := f.service.Ingest(context.Background(), raw, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
}

func TestIngestService_EditSimilarity(t *testing.T) {
	f := newIngestFixture()
	opts := searchOpts()
	opts.Similarity = similarity.StrategyEdit
	opts.EditThreshold = 1

	_, err := f.service.Ingest(context.Background(), card("Jon Smith", "Engineer at Acme"), opts)
	require.NoError(t, err)

	result, err := f.service.Ingest(context.Background(),
		card("John Smith", "Engineer at Acme")+card("Joan Smythe", "Engineer at Acme"), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Contacts, 1)
	assert.Equal(t, "Joan Smythe", result.Contacts[0].Name)
}

func TestIngestService_LinkageBoundary(t *testing.T) {
	f := newIngestFixture()
	ctx := context.Background()
	bigCo := &domain.Deal{Company: "Big Co", Role: "Engineer"}
	ambient := &domain.Deal{Company: "Ambient.ai", Role: "GTM Lead"}
	require.NoError(t, f.deals.Save(ctx, bigCo))
	require.NoError(t, f.deals.Save(ctx, ambient))

	raw := card("Jane Doe", "Recruiter at Ambient") +
		card("Sam Poe", "Engineer at Bi") +
		card("Alex Moe", "Freelance designer")

	result, err := f.service.Ingest(ctx, raw, searchOpts())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 2, result.Linked)

	stored, err := f.contacts.All(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	require.NotNil(t, stored[0].LinkedDealID)
	assert.Equal(t, ambient.ID, *stored[0].LinkedDealID)

	// "Bi" is a substring of "Big Co"; the false positive is accepted.
	require.NotNil(t, stored[1].LinkedDealID)
	assert.Equal(t, bigCo.ID, *stored[1].LinkedDealID)

	// No company, no link.
	assert.Nil(t, stored[2].LinkedDealID)
}

func TestIngestService_FirstDealWins(t *testing.T) {
	f := newIngestFixture()
	ctx := context.Background()
	first := &domain.Deal{Company: "Acme Robotics", Role: "Engineer"}
	second := &domain.Deal{Company: "Acme", Role: "Manager"}
	require.NoError(t, f.deals.Save(ctx, first))
	require.NoError(t, f.deals.Save(ctx, second))

	result, err := f.service.Ingest(ctx, card("Jane Doe", "Recruiter at Acme"), searchOpts())
	require.NoError(t, err)
	require.Len(t, result.Contacts, 1)
	require.NotNil(t, result.Contacts[0].LinkedDealID)
	assert.Equal(t, first.ID, *result.Contacts[0].LinkedDealID)
}

func TestIngestService_Deals(t *testing.T) {
	f := newIngestFixture()
	ctx := context.Background()
	raw := "Acme Corp logo\nStaff Engineer\nAcme Corp\nBerlin (Hybrid)\nApplied 3d ago\n" +
		"No longer accepting applications\n" +
		"Platform Engineer\nBeta Labs\nRemote\nActively reviewing applicants\n"
	opts := domain.IngestOptions{Profile: extraction.ProfileJobApplications}

	first, err := f.service.Ingest(ctx, raw, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordKindDeal, first.Kind)
	assert.Equal(t, 2, first.Inserted)

	second, err := f.service.Ingest(ctx, raw, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	deals, err := f.deals.All(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, domain.DealStageApplied, deals[0].Stage)

	// Contacts pasted afterwards link to the imported deals.
	result, err := f.service.Ingest(ctx, card("Jane Doe", "Talent Partner at Beta Labs"), searchOpts())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Linked)
	assert.Equal(t, deals[1].ID, *result.Contacts[0].LinkedDealID)
}

func TestIngestService_DryRun(t *testing.T) {
	f := newIngestFixture()
	opts := searchOpts()
	opts.DryRun = true
	raw := card("Jane Doe", "Engineer at Acme") + card("Jane Doe", "Engineer at Acme")

	result, err := f.service.Ingest(context.Background(), raw, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Contacts, 1)
	assert.Empty(t, result.Contacts[0].ID)

	stored, err := f.contacts.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestIngestService_SourceChannelOverride(t *testing.T) {
	f := newIngestFixture()
	opts := searchOpts()
	opts.SourceChannel = "Referral"

	result, err := f.service.Ingest(context.Background(), card("Jane Doe", "Engineer at Acme"), opts)
	require.NoError(t, err)
	require.Len(t, result.Contacts, 1)
	assert.Equal(t, "Referral", result.Contacts[0].SourceChannel)
}

func TestIngestService_StoreUnavailable(t *testing.T) {
	service := NewIngestService(failingContactStore{}, memory.NewDealStore(),
		extraction.NewExtractor(), newStaticLayouts(), nil)

	_, err := service.Ingest(context.Background(), card("Jane Doe", "Engineer at Acme"), searchOpts())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, errStoreDown))
}

func TestIngestService_LayoutListError(t *testing.T) {
	layouts := newStaticLayouts()
	layouts.listErr = errors.New("bad yaml")
	service := NewIngestService(memory.NewContactStore(), memory.NewDealStore(),
		extraction.NewExtractor(), layouts, nil)

	_, err := service.Ingest(context.Background(), card("Jane Doe", "Engineer at Acme"), domain.IngestOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list layouts")
}

func TestIngestService_ExtractionDropsAreCounted(t *testing.T) {
	f := newIngestFixture()
	raw := card("Jane Doe", "Engineer at Acme") + "Message\n"

	result, err := f.service.Ingest(context.Background(), raw, searchOpts())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Dropped)
}

func TestIngestService_Profiles(t *testing.T) {
	f := newIngestFixture()

	profiles, err := f.service.Profiles()
	require.NoError(t, err)
	assert.Len(t, profiles, len(extraction.Builtins()))

	p, err := f.service.Profile(extraction.ProfileContactList)
	require.NoError(t, err)
	assert.Equal(t, extraction.ProfileContactList, p.Name)

	_, err = f.service.Profile("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownProfile)
}

func TestBatchIndex(t *testing.T) {
	matcher, err := similarity.DefaultRegistry().Build(similarity.StrategyExact, nil)
	require.NoError(t, err)

	idx := NewBatchIndex(matcher,
		[]domain.Contact{{Name: "Jane Doe"}},
		[]domain.Deal{{ID: "d1", Company: "Big Co", Role: "Engineer"}},
	)

	assert.True(t, idx.HasName("Jane Doe"))
	assert.False(t, idx.HasName("jane doe"))

	idx.AddContact(&domain.Contact{Name: "jane doe"})
	assert.True(t, idx.HasName("jane doe"))

	assert.True(t, idx.HasDeal(&domain.Deal{Company: " Big Co ", Role: "Engineer"}))
	assert.False(t, idx.HasDeal(&domain.Deal{Company: "Big Co", Role: "Manager"}))

	id, ok := idx.LinkDeal("BIG")
	assert.True(t, ok)
	assert.Equal(t, "d1", id)

	_, ok = idx.LinkDeal("   ")
	assert.False(t, ok)

	_, ok = idx.LinkDeal("Zeta")
	assert.False(t, ok)
}
