package llms

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// CompletionModel is the generation client handed to downstream code.
// Provider defaults are applied before caller supplied options, so callers
// can still override them per call.
type CompletionModel struct {
	model    llms.Model
	name     string
	defaults []llms.CallOption
}

var _ llms.Model = (*CompletionModel)(nil)

func newCompletionModel(model llms.Model, name string, defaults ...llms.CallOption) *CompletionModel {
	return &CompletionModel{
		model:    model,
		name:     name,
		defaults: defaults,
	}
}

func (m *CompletionModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return m.model.GenerateContent(ctx, messages, m.withDefaults(options)...)
}

func (m *CompletionModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Name is the vendor model identifier, empty when the client default is used.
func (m *CompletionModel) Name() string {
	return m.name
}

// CallOptions reports the provider defaults applied to every call.
func (m *CompletionModel) CallOptions() llms.CallOptions {
	var opts llms.CallOptions
	for _, opt := range m.defaults {
		opt(&opts)
	}
	return opts
}

// Unwrap returns the underlying SDK client.
func (m *CompletionModel) Unwrap() llms.Model {
	return m.model
}

func (m *CompletionModel) withDefaults(options []llms.CallOption) []llms.CallOption {
	if len(m.defaults) == 0 {
		return options
	}
	all := make([]llms.CallOption, 0, len(m.defaults)+len(options))
	all = append(all, m.defaults...)
	return append(all, options...)
}

// generationDefaults builds the call options for the OpenAI compatible providers.
func generationDefaults(temperature float64, maxTokens OptionalInt) []llms.CallOption {
	opts := []llms.CallOption{llms.WithTemperature(temperature)}
	if n, ok := maxTokens.Get(); ok {
		opts = append(opts, llms.WithMaxTokens(n))
	}
	return opts
}

// EmbeddingModel is the embedding client handed to downstream code.
type EmbeddingModel struct {
	embeddings.Embedder

	Model string
	// Dimensions is zero when the model default applies.
	Dimensions int
}
