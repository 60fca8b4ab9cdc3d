// Command relay turns pasted listing pages into contacts and deals.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/relay-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/relay-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/relay-cli/internal/adapters/driven/notes/filesystem"
	"github.com/custodia-labs/relay-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/relay-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/relay-cli/internal/core/services"
	"github.com/custodia-labs/relay-cli/internal/extraction"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version string

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; provider keys usually come from the shell.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString(services.KeyDataDir))
	if err != nil {
		return err
	}
	defer store.Close()

	layouts, err := file.NewLayoutStore(settings.LayoutsDir, extraction.Builtins())
	if err != nil {
		return err
	}
	prompts, err := file.NewPromptStore("")
	if err != nil {
		return err
	}

	contacts := store.ContactStore()
	deals := store.DealStore()
	notes := store.DocumentStore()
	noteDirs := filesystem.New(settings.NoteDirs)

	// The LLM is optional. Without one, "ask" reports it is unavailable.
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM disabled: %v\n", err)
		llm = nil
	}
	if llm != nil {
		defer llm.Close()
	}

	corpus := services.NewCorpusBuilder(contacts, deals, notes, noteDirs)
	retrieval := services.NewRetrievalService(corpus)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:    services.NewIngestService(contacts, deals, extraction.NewExtractor(), layouts, nil),
		Records:   services.NewRecordService(contacts, deals, notes, noteDirs),
		Retrieval: retrieval,
		Clusters:  services.NewClusterService(contacts, deals),
		Answer:    services.NewAnswerService(retrieval, prompts, llm),
		Settings:  settingsService,
	})

	defer logger.Sync()
	return cli.Execute()
}
