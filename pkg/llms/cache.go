package llms

import (
	"context"
	"fmt"

	"github.com/defeedco/llmsettings/pkg/lib"
	"github.com/tmc/langchaingo/embeddings"
)

// CachedEmbedderClient memoises embeddings per input text.
type CachedEmbedderClient struct {
	client embeddings.EmbedderClient
	model  string
	cache  *lib.Cache[[]float32]
}

var _ embeddings.EmbedderClient = (*CachedEmbedderClient)(nil)

func NewCachedEmbedderClient(client embeddings.EmbedderClient, model string, cache *lib.Cache[[]float32]) *CachedEmbedderClient {
	return &CachedEmbedderClient{
		client: client,
		model:  model,
		cache:  cache,
	}
}

func (c *CachedEmbedderClient) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	uncachedIndices := make([]int, 0)
	uncachedTexts := make([]string, 0)

	for i, text := range texts {
		if embedding, found := c.cache.Get(c.key(text)); found {
			results[i] = embedding
			continue
		}
		uncachedIndices = append(uncachedIndices, i)
		uncachedTexts = append(uncachedTexts, text)
	}

	if len(uncachedTexts) == 0 {
		return results, nil
	}

	embedded, err := c.client.CreateEmbedding(ctx, uncachedTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(uncachedTexts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(uncachedTexts), len(embedded))
	}

	for i, embedding := range embedded {
		c.cache.Set(c.key(uncachedTexts[i]), embedding)
		results[uncachedIndices[i]] = embedding
	}

	return results, nil
}

func (c *CachedEmbedderClient) key(text string) string {
	return fmt.Sprintf("embedding:%s", lib.HashParams(c.model, text))
}
