package config

import (
	"time"
)

// Model providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	WhatsApp     WhatsAppConfig     `yaml:"whatsapp"`
	Model        ModelConfig        `yaml:"model"`
	Dictionary   DictionaryConfig   `yaml:"dictionary"`
	Conversation ConversationConfig `yaml:"conversation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// WhatsAppConfig holds the webhook secret and Graph API delivery settings.
type WhatsAppConfig struct {
	VerifyToken  string        `yaml:"verify_token"   env:"WEBHOOK_VERIFY_TOKEN" env-required:"true"`
	AccessToken  string        `yaml:"access_token"   env:"GRAPH_API_TOKEN"      env-required:"true"`
	GraphBaseURL string        `yaml:"graph_base_url" env:"GRAPH_API_BASE_URL"   env-default:"https://graph.facebook.com"`
	APIVersion   string        `yaml:"api_version"    env:"GRAPH_API_VERSION"    env-default:"v18.0"`
	Timeout      time.Duration `yaml:"timeout"        env:"GRAPH_API_TIMEOUT"    env-default:"10s"`
}

// ModelConfig selects and configures the language model provider.
type ModelConfig struct {
	Provider        string        `yaml:"provider"          env:"MODEL_PROVIDER"    env-default:"gemini"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"    env:"GEMINI_API_KEY"`
	GeminiModel     string        `yaml:"gemini_model"      env:"GEMINI_MODEL"      env-default:"gemini-1.5-flash"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `yaml:"anthropic_model"   env:"ANTHROPIC_MODEL"   env-default:"claude-3-5-haiku-latest"`
	BaseURL         string        `yaml:"base_url"          env:"MODEL_BASE_URL"`
	MaxTokens       int64         `yaml:"max_tokens"        env:"MODEL_MAX_TOKENS"  env-default:"1024"`
	Timeout         time.Duration `yaml:"timeout"           env:"MODEL_TIMEOUT"     env-default:"60s"`
}

// APIKey returns the key of the selected provider.
func (c ModelConfig) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// DictionaryConfig holds the lookup backend settings.
type DictionaryConfig struct {
	BaseURL string        `yaml:"base_url" env:"DICTIONARY_API_BASE_URL" env-default:"https://dictionary.kubishi.com"`
	Timeout time.Duration `yaml:"timeout"  env:"DICTIONARY_API_TIMEOUT"  env-default:"10s"`
}

// ConversationConfig holds message handling settings.
type ConversationConfig struct {
	// TranslateConcurrency bounds parallel word lookups for /translate.
	// 1 keeps them strictly sequential.
	TranslateConcurrency int           `yaml:"translate_concurrency" env:"TRANSLATE_CONCURRENCY" env-default:"1"`
	ProcessTimeout       time.Duration `yaml:"process_timeout"       env:"PROCESS_TIMEOUT"       env-default:"2m"`
	// SystemInstruction overrides the default assistant instruction.
	SystemInstruction string `yaml:"system_instruction" env:"SYSTEM_INSTRUCTION"`
}
