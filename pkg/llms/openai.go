package llms

import (
	"fmt"
	"slices"

	"github.com/tmc/langchaingo/llms/openai"
)

func (in *initializer) initOpenAI(s *Settings, p *OpenAIParams) error {
	common := []openai.Option{openai.WithHTTPClient(in.limiter())}
	if p.APIKey != "" {
		common = append(common, openai.WithToken(p.APIKey))
	}
	if p.BaseURL != "" {
		common = append(common, openai.WithBaseURL(p.BaseURL))
	}

	llmOpts := slices.Clone(common)
	if p.Model != "" {
		llmOpts = append(llmOpts, openai.WithModel(p.Model))
	}
	llm, err := openai.New(llmOpts...)
	if err != nil {
		return fmt.Errorf("create openai model: %w", err)
	}

	embedderOpts := slices.Clone(common)
	if p.EmbeddingModel != "" {
		embedderOpts = append(embedderOpts, openai.WithEmbeddingModel(p.EmbeddingModel))
	}
	dimensions, hasDimensions := p.EmbeddingDim.Get()
	if hasDimensions {
		embedderOpts = append(embedderOpts, openai.WithEmbeddingDimensions(dimensions))
	}
	embedder, err := openai.New(embedderOpts...)
	if err != nil {
		return fmt.Errorf("create openai embedding model: %w", err)
	}

	s.LLM = newCompletionModel(llm, p.Model, generationDefaults(p.Temperature, p.MaxTokens)...)
	s.Embedder, err = in.newEmbeddingModel(embedder, p.EmbeddingModel, dimensions)
	return err
}

func (in *initializer) initAzureOpenAI(s *Settings, p *AzureOpenAIParams) error {
	tokens, err := in.azureTokenProvider()
	if err != nil {
		return err
	}

	doer := NewBearerTokenDoer(tokens, in.limiter())
	common := []openai.Option{
		openai.WithAPIType(openai.APITypeAzureAD),
		openai.WithBaseURL(p.Endpoint),
		openai.WithAPIVersion(p.APIVersion),
		openai.WithToken(azureADTokenPlaceholder),
		openai.WithHTTPClient(doer),
	}

	llm, err := openai.New(append(slices.Clone(common), openai.WithModel(p.Deployment))...)
	if err != nil {
		return fmt.Errorf("create azure openai model: %w", err)
	}

	embedderOpts := append(slices.Clone(common), openai.WithEmbeddingModel(p.EmbeddingDeployment))
	dimensions, hasDimensions := p.EmbeddingDim.Get()
	if hasDimensions {
		embedderOpts = append(embedderOpts, openai.WithEmbeddingDimensions(dimensions))
	}
	embedder, err := openai.New(embedderOpts...)
	if err != nil {
		return fmt.Errorf("create azure openai embedding model: %w", err)
	}

	s.LLM = newCompletionModel(llm, p.Deployment, generationDefaults(p.Temperature, p.MaxTokens)...)
	s.Embedder, err = in.newEmbeddingModel(embedder, p.EmbeddingDeployment, dimensions)
	return err
}
