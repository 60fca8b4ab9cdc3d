package ai

import (
	"context"
	"time"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

var _ driven.LLMValidator = (*ConfigValidator)(nil)

const pingTimeout = 5 * time.Second

// ConfigValidator checks LLM settings by building the adapter and pinging it.
type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM returns nil for unconfigured settings; there is nothing to reach.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
