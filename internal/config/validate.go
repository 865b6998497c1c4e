package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.WhatsApp.validate(); err != nil {
		return fmt.Errorf("whatsapp: %w", err)
	}

	if err := c.Model.validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}

	if err := validateBaseURL(c.Dictionary.BaseURL); err != nil {
		return fmt.Errorf("dictionary.base_url: %w", err)
	}

	if c.Conversation.TranslateConcurrency < 1 {
		return fmt.Errorf("conversation.translate_concurrency must be >= 1 (got %d)", c.Conversation.TranslateConcurrency)
	}
	if c.Conversation.ProcessTimeout <= 0 {
		return fmt.Errorf("conversation.process_timeout must be > 0 (got %v)", c.Conversation.ProcessTimeout)
	}

	return nil
}

func (w *WhatsAppConfig) validate() error {
	if strings.TrimSpace(w.VerifyToken) == "" {
		return fmt.Errorf("verify_token is required")
	}
	if strings.TrimSpace(w.AccessToken) == "" {
		return fmt.Errorf("access_token is required")
	}
	if strings.TrimSpace(w.APIVersion) == "" {
		return fmt.Errorf("api_version is required")
	}
	if err := validateBaseURL(w.GraphBaseURL); err != nil {
		return fmt.Errorf("graph_base_url: %w", err)
	}
	return nil
}

func (m *ModelConfig) validate() error {
	switch m.Provider {
	case ProviderGemini:
		if m.GeminiAPIKey == "" {
			return fmt.Errorf("gemini_api_key is required for provider %q", m.Provider)
		}
	case ProviderAnthropic:
		if m.AnthropicAPIKey == "" {
			return fmt.Errorf("anthropic_api_key is required for provider %q", m.Provider)
		}
		if m.MaxTokens <= 0 {
			return fmt.Errorf("max_tokens must be > 0 (got %d)", m.MaxTokens)
		}
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", m.Provider, ProviderGemini, ProviderAnthropic)
	}

	if m.BaseURL != "" {
		if err := validateBaseURL(m.BaseURL); err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (got %q)", raw)
	}
	return nil
}
