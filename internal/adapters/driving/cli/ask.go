package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from your records",
	Long: `Retrieves the records that best match the question and sends them to
the configured LLM as context. Configure a provider first:

  relay settings llm`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top", "k", 0, "number of records sent as context (default from settings)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil || !answerService.Available() {
		return fmt.Errorf("%w: run 'relay settings llm' to configure a provider", domain.ErrLLMUnavailable)
	}

	opts := domain.AskOptions{TopK: askTopK}
	if opts.TopK <= 0 && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			opts.TopK = settings.Answer.TopK
		}
	}

	answer, err := answerService.Ask(cmd.Context(), strings.Join(args, " "), opts)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			return fmt.Errorf("the LLM provider is rate limiting requests, try again shortly: %w", err)
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range answer.Sources {
			cmd.Printf("  [%d] %s\n", i+1, answer.Sources[i].SourceLabel)
		}
	}
	return nil
}
