package llms

import (
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/ollama"
)

func (in *initializer) initOllama(s *Settings, p *OllamaParams) error {
	common := []ollama.Option{ollama.WithServerURL(p.BaseURL)}
	if n, ok := p.ContextSize.Get(); ok {
		common = append(common, ollama.WithRunnerNumCtx(n))
	}

	// Only generation requests are bounded by the request timeout.
	llm, err := ollama.New(append(common,
		ollama.WithModel(p.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: p.RequestTimeout}),
	)...)
	if err != nil {
		return fmt.Errorf("create ollama model: %w", err)
	}

	embedder, err := ollama.New(ollama.WithServerURL(p.BaseURL), ollama.WithModel(p.EmbeddingModel))
	if err != nil {
		return fmt.Errorf("create ollama embedding model: %w", err)
	}

	s.LLM = newCompletionModel(llm, p.Model)
	s.Embedder, err = in.newEmbeddingModel(embedder, p.EmbeddingModel, 0)
	return err
}
