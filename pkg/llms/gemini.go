package llms

import (
	"fmt"
	"slices"

	"github.com/tmc/langchaingo/llms/googleai"
)

func (in *initializer) initGemini(s *Settings, p *GeminiParams) error {
	var common []googleai.Option
	if p.APIKey != "" {
		common = append(common, googleai.WithAPIKey(p.APIKey))
	}

	llm, err := googleai.New(in.ctx, append(slices.Clone(common), googleai.WithDefaultModel(p.Model))...)
	if err != nil {
		return fmt.Errorf("create gemini model: %w", err)
	}
	s.closers = append(s.closers, llm.Close)

	embedder, err := googleai.New(in.ctx, append(slices.Clone(common), googleai.WithDefaultEmbeddingModel(p.EmbeddingModel))...)
	if err != nil {
		return fmt.Errorf("create gemini embedding model: %w", err)
	}
	s.closers = append(s.closers, embedder.Close)

	s.LLM = newCompletionModel(llm, p.Model)
	s.Embedder, err = in.newEmbeddingModel(embedder, p.EmbeddingModel, 0)
	return err
}
