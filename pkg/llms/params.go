package llms

import "time"

// ProviderParams is implemented by exactly one parameter struct per provider.
type ProviderParams interface {
	Provider() Provider
}

type OllamaParams struct {
	BaseURL        string        `validate:"required,url"`
	Model          string        `validate:"required"`
	EmbeddingModel string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gt=0"`
	ContextSize    OptionalInt
}

func (*OllamaParams) Provider() Provider { return ProviderOllama }

type OpenAIParams struct {
	APIKey  string
	BaseURL string `validate:"omitempty,url"`
	// Empty model names fall back to the client defaults.
	Model          string
	EmbeddingModel string
	EmbeddingDim   OptionalInt
	Temperature    float64 `validate:"gte=0,lte=2"`
	MaxTokens      OptionalInt
}

func (*OpenAIParams) Provider() Provider { return ProviderOpenAI }

type AzureOpenAIParams struct {
	Endpoint            string `validate:"required,url"`
	APIVersion          string `validate:"required"`
	Deployment          string `validate:"required"`
	EmbeddingDeployment string `validate:"required"`
	EmbeddingDim        OptionalInt
	Temperature         float64 `validate:"gte=0,lte=2"`
	MaxTokens           OptionalInt
}

func (*AzureOpenAIParams) Provider() Provider { return ProviderAzureOpenAI }

// AnthropicParams carry resolved vendor model identifiers.
type AnthropicParams struct {
	APIKey           string
	HuggingFaceToken string
	Model            string `validate:"required"`
	EmbeddingModel   string `validate:"required"`
}

func (*AnthropicParams) Provider() Provider { return ProviderAnthropic }

type GeminiParams struct {
	APIKey         string
	Model          string `validate:"required"`
	EmbeddingModel string `validate:"required"`
}

func (*GeminiParams) Provider() Provider { return ProviderGemini }
