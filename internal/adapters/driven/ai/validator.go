package ai

import (
	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates generation backend configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new backend config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM validates an LLM configuration by pinging the provider.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	return ValidateLLMConfig(config)
}
