package llms

import (
	"fmt"
	"time"

	"github.com/defeedco/llmsettings/pkg/lib"
)

const (
	providerEnvKey       = "MODEL_PROVIDER"
	modelEnvKey          = "MODEL"
	embeddingModelEnvKey = "EMBEDDING_MODEL"
)

// Config is the flat view of the environment. Provider specific
// interpretation happens in Params.
type Config struct {
	Provider Provider `env:"MODEL_PROVIDER,required"`

	Model          string      `env:"MODEL"`
	EmbeddingModel string      `env:"EMBEDDING_MODEL"`
	EmbeddingDim   OptionalInt `env:"EMBEDDING_DIM"`

	Temperature float64     `env:"LLM_TEMPERATURE,default=0.1"`
	MaxTokens   OptionalInt `env:"LLM_MAX_TOKENS"`

	// Applied to the OpenAI and Azure transports.
	HTTPTimeout       time.Duration `env:"LLM_HTTP_TIMEOUT,default=60s" validate:"gt=0"`
	EmbeddingCacheTTL time.Duration `env:"LLM_EMBEDDING_CACHE_TTL" validate:"gte=0"`

	Chunking  ChunkingConfig  `env:""`
	Ollama    OllamaConfig    `env:""`
	OpenAI    OpenAIConfig    `env:""`
	Azure     AzureConfig     `env:""`
	Anthropic AnthropicConfig `env:""`
	Gemini    GeminiConfig    `env:""`
}

type ChunkingConfig struct {
	Size    int `env:"CHUNK_SIZE,default=1024" validate:"gt=0"`
	Overlap int `env:"CHUNK_OVERLAP,default=20" validate:"gte=0,ltfield=Size"`
}

type OllamaConfig struct {
	BaseURL string `env:"OLLAMA_BASE_URL,default=http://127.0.0.1:11434"`
	// Seconds, fractional values allowed.
	RequestTimeout float64     `env:"OLLAMA_REQUEST_TIMEOUT,default=30"`
	ContextSize    OptionalInt `env:"OLLAMA_CONTEXT_SIZE"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
}

type AzureConfig struct {
	Deployment string `env:"AZURE_DEPLOYMENT_NAME"`
	Endpoint   string `env:"AZURE_OPENAI_ENDPOINT"`
	APIVersion string `env:"AZURE_OPENAI_API_VERSION,default=2024-02-01"`
}

type AnthropicConfig struct {
	APIKey           string `env:"ANTHROPIC_API_KEY"`
	HuggingFaceToken string `env:"HF_TOKEN"`
}

type GeminiConfig struct {
	APIKey string `env:"GOOGLE_API_KEY"`
}

// LoadConfig reads the process environment once.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := lib.DecodeEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Params narrows the config down to the parameters of the selected provider.
// Unknown short model names and invalid provider parameters are reported
// as configuration errors.
func (c *Config) Params() (ProviderParams, error) {
	var params ProviderParams

	switch c.Provider {
	case ProviderOllama:
		params = &OllamaParams{
			BaseURL:        c.Ollama.BaseURL,
			Model:          c.Model,
			EmbeddingModel: c.EmbeddingModel,
			RequestTimeout: time.Duration(c.Ollama.RequestTimeout * float64(time.Second)),
			ContextSize:    c.Ollama.ContextSize,
		}
	case ProviderOpenAI:
		params = &OpenAIParams{
			APIKey:         c.OpenAI.APIKey,
			BaseURL:        c.OpenAI.BaseURL,
			Model:          c.Model,
			EmbeddingModel: c.EmbeddingModel,
			EmbeddingDim:   c.EmbeddingDim,
			Temperature:    c.Temperature,
			MaxTokens:      c.MaxTokens,
		}
	case ProviderAzureOpenAI:
		params = &AzureOpenAIParams{
			Endpoint:            c.Azure.Endpoint,
			APIVersion:          c.Azure.APIVersion,
			Deployment:          c.Azure.Deployment,
			EmbeddingDeployment: c.EmbeddingModel,
			EmbeddingDim:        c.EmbeddingDim,
			Temperature:         c.Temperature,
			MaxTokens:           c.MaxTokens,
		}
	case ProviderAnthropic:
		model, err := AnthropicModels.resolve(modelEnvKey, c.Model)
		if err != nil {
			return nil, err
		}
		embeddingModel, err := AnthropicEmbeddingModels.resolve(embeddingModelEnvKey, c.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		params = &AnthropicParams{
			APIKey:           c.Anthropic.APIKey,
			HuggingFaceToken: c.Anthropic.HuggingFaceToken,
			Model:            model,
			EmbeddingModel:   embeddingModel,
		}
	case ProviderGemini:
		model, err := GeminiModels.resolve(modelEnvKey, c.Model)
		if err != nil {
			return nil, err
		}
		embeddingModel, err := GeminiEmbeddingModels.resolve(embeddingModelEnvKey, c.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		params = &GeminiParams{
			APIKey:         c.Gemini.APIKey,
			Model:          model,
			EmbeddingModel: embeddingModel,
		}
	default:
		return nil, &lib.ConfigurationError{
			Key:   providerEnvKey,
			Value: string(c.Provider),
			Err:   fmt.Errorf("%w, expected one of: %s", ErrUnknownProvider, supportedProviders()),
		}
	}

	if err := lib.ValidateStruct(params); err != nil {
		return nil, &lib.ConfigurationError{
			Key:   providerEnvKey,
			Value: string(c.Provider),
			Err:   fmt.Errorf("validate parameters: %w", err),
		}
	}

	return params, nil
}
