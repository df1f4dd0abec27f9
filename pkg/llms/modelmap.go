package llms

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/defeedco/llmsettings/pkg/lib"
)

var ErrUnknownModel = errors.New("unknown model")

// ModelNameMap translates short model names accepted in the environment
// into the identifiers the provider API expects.
type ModelNameMap map[string]string

func (m ModelNameMap) Lookup(short string) (string, bool) {
	full, ok := m[short]
	return full, ok
}

// Names returns the accepted short names in sorted order.
func (m ModelNameMap) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

func (m ModelNameMap) resolve(envKey, short string) (string, error) {
	if full, ok := m.Lookup(short); ok {
		return full, nil
	}

	return "", &lib.ConfigurationError{
		Key:   envKey,
		Value: short,
		Err:   fmt.Errorf("%w, expected one of: %s", ErrUnknownModel, strings.Join(m.Names(), ", ")),
	}
}

var AnthropicModels = ModelNameMap{
	"claude-3-opus":      "claude-3-opus-20240229",
	"claude-3-sonnet":    "claude-3-sonnet-20240229",
	"claude-3-haiku":     "claude-3-haiku-20240307",
	"claude-2.1":         "claude-2.1",
	"claude-instant-1.2": "claude-instant-1.2",
}

// AnthropicEmbeddingModels are served by sentence-transformers on HuggingFace,
// Anthropic has no embedding endpoint.
var AnthropicEmbeddingModels = ModelNameMap{
	"all-MiniLM-L6-v2":  "sentence-transformers/all-MiniLM-L6-v2",
	"all-mpnet-base-v2": "sentence-transformers/all-mpnet-base-v2",
}

var GeminiModels = ModelNameMap{
	"gemini-1.5-pro-latest": "models/gemini-1.5-pro-latest",
	"gemini-pro":            "models/gemini-pro",
	"gemini-pro-vision":     "models/gemini-pro-vision",
}

var GeminiEmbeddingModels = ModelNameMap{
	"embedding-001":      "models/embedding-001",
	"text-embedding-004": "models/text-embedding-004",
}
