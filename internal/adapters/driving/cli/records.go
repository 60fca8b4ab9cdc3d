package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

var errRecordsNotConfigured = errors.New("record service not configured")

var (
	contactHeadline string
	contactCompany  string
	contactType     string
	contactLocation string
	contactNotes    string
	contactCompanyQ string
	contactJSON     bool
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
}

var contactAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a contact by hand",
	Long: `Adds a contact. The company and contact type are derived from the
headline when not given, and the contact is linked to the first deal at a
matching company.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContactAdd,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactList,
}

var (
	dealRole    string
	dealStage   string
	dealNotes   string
	dealCompany string
	dealJSON    bool
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Manage deals",
}

var dealAddCmd = &cobra.Command{
	Use:   "add [company]",
	Short: "Add a deal by hand",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDealAdd,
}

var dealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deals",
	Args:  cobra.NoArgs,
	RunE:  runDealList,
}

var dealStageCmd = &cobra.Command{
	Use:   "stage [deal-id] [stage]",
	Short: "Move a deal to another stage",
	Long:  "Stages: saved, applied, interview, offer, rejected, closed.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDealStage,
}

var (
	noteTitle string
	noteJSON  bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a note; reads stdin when no text is given",
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes from the store and note directories",
	Args:  cobra.NoArgs,
	RunE:  runNoteList,
}

func init() {
	contactAddCmd.Flags().StringVar(&contactHeadline, "headline", "", "role line, e.g. \"Recruiter at Acme\"")
	contactAddCmd.Flags().StringVar(&contactCompany, "company", "", "company (derived from the headline when empty)")
	contactAddCmd.Flags().StringVar(&contactType, "type", "", "contact type (derived from the headline when empty)")
	contactAddCmd.Flags().StringVar(&contactLocation, "location", "", "location")
	contactAddCmd.Flags().StringVar(&contactNotes, "notes", "", "free-text notes")
	contactListCmd.Flags().StringVar(&contactCompanyQ, "company", "", "only contacts whose company contains this text")
	contactListCmd.Flags().BoolVar(&contactJSON, "json", false, "output contacts as JSON")
	contactCmd.AddCommand(contactAddCmd)
	contactCmd.AddCommand(contactListCmd)
	rootCmd.AddCommand(contactCmd)

	dealAddCmd.Flags().StringVar(&dealRole, "role", "", "position title")
	dealAddCmd.Flags().StringVar(&dealStage, "stage", "", "pipeline stage (default saved)")
	dealAddCmd.Flags().StringVar(&dealNotes, "notes", "", "free-text notes")
	dealListCmd.Flags().StringVar(&dealCompany, "company", "", "only deals whose company contains this text")
	dealListCmd.Flags().BoolVar(&dealJSON, "json", false, "output deals as JSON")
	dealCmd.AddCommand(dealAddCmd)
	dealCmd.AddCommand(dealListCmd)
	dealCmd.AddCommand(dealStageCmd)
	rootCmd.AddCommand(dealCmd)

	noteAddCmd.Flags().StringVar(&noteTitle, "title", "", "title (default: first line)")
	noteListCmd.Flags().BoolVar(&noteJSON, "json", false, "output notes as JSON")
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	rootCmd.AddCommand(noteCmd)
}

func runContactAdd(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	c := &domain.Contact{
		Name:        strings.Join(args, " "),
		Headline:    contactHeadline,
		Company:     contactCompany,
		ContactType: contactType,
		Location:    contactLocation,
		Notes:       contactNotes,
	}
	id, err := recordService.AddContact(cmd.Context(), c)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("contact %q already exists", c.Name)
		}
		return fmt.Errorf("add contact: %w", err)
	}

	cmd.Printf("Added contact %s (%s)\n", c.Name, id)
	if c.Company != "" {
		cmd.Printf("  Company: %s\n", c.Company)
	}
	if c.ContactType != "" {
		cmd.Printf("  Type: %s\n", c.ContactType)
	}
	if c.LinkedDealID != nil {
		cmd.Printf("  Linked deal: %s\n", *c.LinkedDealID)
	}
	return nil
}

func runContactList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	var (
		contacts []domain.Contact
		err      error
	)
	if contactCompanyQ != "" {
		contacts, err = recordService.FindContacts(cmd.Context(), contactCompanyQ)
	} else {
		contacts, err = recordService.Contacts(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	if contactJSON {
		return printJSON(cmd, contacts)
	}
	if len(contacts) == 0 {
		cmd.Println("No contacts.")
		return nil
	}
	for i := range contacts {
		c := &contacts[i]
		cmd.Printf("%s  %s", c.ID, c.Name)
		if c.Company != "" {
			cmd.Printf(" (%s)", c.Company)
		}
		if c.ContactType != "" {
			cmd.Printf(" [%s]", c.ContactType)
		}
		cmd.Println()
	}
	return nil
}

func runDealAdd(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	d := &domain.Deal{
		Company: strings.Join(args, " "),
		Role:    dealRole,
		Stage:   domain.DealStage(strings.ToLower(dealStage)),
		Notes:   dealNotes,
	}
	if err := recordService.AddDeal(cmd.Context(), d); err != nil {
		return fmt.Errorf("add deal: %w", err)
	}

	cmd.Printf("Added %s [%s] (%s)\n", d.Label(), d.Stage, d.ID)
	return nil
}

func runDealList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	var (
		deals []domain.Deal
		err   error
	)
	if dealCompany != "" {
		deals, err = recordService.FindDeals(cmd.Context(), dealCompany)
	} else {
		deals, err = recordService.Deals(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("list deals: %w", err)
	}

	if dealJSON {
		return printJSON(cmd, deals)
	}
	if len(deals) == 0 {
		cmd.Println("No deals.")
		return nil
	}
	for i := range deals {
		cmd.Printf("%s  %s [%s]\n", deals[i].ID, deals[i].Label(), deals[i].Stage)
	}
	return nil
}

func runDealStage(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	stage := domain.DealStage(strings.ToLower(args[1]))
	if err := recordService.SetDealStage(cmd.Context(), args[0], stage); err != nil {
		return err
	}
	cmd.Printf("Deal %s moved to %s\n", args[0], stage)
	return nil
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	doc := &domain.Document{Title: noteTitle, Content: text}
	if err := recordService.AddNote(cmd.Context(), doc); err != nil {
		return fmt.Errorf("add note: %w", err)
	}
	cmd.Printf("Added note %q (%s)\n", doc.Title, doc.ID)
	return nil
}

func runNoteList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errRecordsNotConfigured
	}

	notes, err := recordService.Notes(cmd.Context())
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	if noteJSON {
		return printJSON(cmd, notes)
	}
	if len(notes) == 0 {
		cmd.Println("No notes.")
		return nil
	}
	for i := range notes {
		n := &notes[i]
		if n.Path != "" {
			cmd.Printf("%s  %s\n", n.Title, n.Path)
		} else {
			cmd.Printf("%s  %s\n", n.Title, n.ID)
		}
	}
	return nil
}
