package llms

import (
	"errors"
	"strings"

	"github.com/defeedco/llmsettings/pkg/lib"
)

// Provider identifies the backend serving both generation and embeddings.
type Provider string

const (
	ProviderOpenAI      Provider = "openai"
	ProviderOllama      Provider = "ollama"
	ProviderAnthropic   Provider = "anthropic"
	ProviderGemini      Provider = "gemini"
	ProviderAzureOpenAI Provider = "azure-openai"
)

var ErrUnknownProvider = errors.New("unknown model provider")

var providers = []Provider{
	ProviderOpenAI,
	ProviderOllama,
	ProviderAnthropic,
	ProviderGemini,
	ProviderAzureOpenAI,
}

// ParseProvider matches exact lowercase identifiers only.
func ParseProvider(s string) (Provider, error) {
	for _, p := range providers {
		if string(p) == s {
			return p, nil
		}
	}

	return "", &lib.ConfigurationError{
		Key:   providerEnvKey,
		Value: s,
		Err:   ErrUnknownProvider,
	}
}

// Decode implements envdecode.Decoder.
func (p *Provider) Decode(s string) error {
	parsed, err := ParseProvider(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Provider) String() string {
	return string(p)
}

func supportedProviders() string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
