package llms

import (
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/embeddings"
	hfembeddings "github.com/tmc/langchaingo/embeddings/huggingface"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/huggingface"
)

// initAnthropic pairs Claude with sentence-transformers embeddings served
// by the HuggingFace inference API.
func (in *initializer) initAnthropic(s *Settings, p *AnthropicParams) error {
	httpClient := &http.Client{Timeout: in.cfg.HTTPTimeout}

	llmOpts := []anthropic.Option{
		anthropic.WithModel(p.Model),
		anthropic.WithHTTPClient(httpClient),
	}
	if p.APIKey != "" {
		llmOpts = append(llmOpts, anthropic.WithToken(p.APIKey))
	}
	llm, err := anthropic.New(llmOpts...)
	if err != nil {
		return fmt.Errorf("create anthropic model: %w", err)
	}

	hfOpts := []huggingface.Option{huggingface.WithHTTPClient(httpClient)}
	if p.HuggingFaceToken != "" {
		hfOpts = append(hfOpts, huggingface.WithToken(p.HuggingFaceToken))
	}
	hf, err := huggingface.New(hfOpts...)
	if err != nil {
		return fmt.Errorf("create huggingface client: %w", err)
	}

	hfEmbedder, err := hfembeddings.NewHuggingface(
		hfembeddings.WithClient(*hf),
		hfembeddings.WithModel(p.EmbeddingModel),
	)
	if err != nil {
		return fmt.Errorf("create huggingface embedder: %w", err)
	}

	s.LLM = newCompletionModel(llm, p.Model)
	s.Embedder, err = in.newEmbeddingModel(embeddings.EmbedderClientFunc(hfEmbedder.EmbedDocuments), p.EmbeddingModel, 0)
	return err
}
