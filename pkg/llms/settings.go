package llms

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/defeedco/llmsettings/pkg/lib"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/textsplitter"
)

// Settings holds the clients and chunking parameters consumed by the
// retrieval side of the application. It is built once at startup.
type Settings struct {
	Provider     Provider
	LLM          *CompletionModel
	Embedder     *EmbeddingModel
	ChunkSize    int
	ChunkOverlap int
	// Usage is populated by the OpenAI and Azure transports only.
	Usage *lib.UsageTracker

	closers []func() error
}

// TextSplitter returns a splitter configured with the chunking parameters.
func (s *Settings) TextSplitter() textsplitter.RecursiveCharacter {
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.ChunkSize),
		textsplitter.WithChunkOverlap(s.ChunkOverlap),
	)
}

// Close releases clients holding open connections.
func (s *Settings) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

type Option func(*options)

type options struct {
	azureCredential azcore.TokenCredential
	usage           *lib.UsageTracker
}

// WithAzureCredential replaces the default Azure credential chain.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(o *options) {
		o.azureCredential = cred
	}
}

// WithUsageTracker shares a tracker across several Settings.
func WithUsageTracker(tracker *lib.UsageTracker) Option {
	return func(o *options) {
		o.usage = tracker
	}
}

type initializer struct {
	ctx    context.Context
	cfg    *Config
	logger *zerolog.Logger
	opts   options
}

// Init builds the clients of the configured provider.
func Init(ctx context.Context, cfg *Config, logger *zerolog.Logger, opts ...Option) (*Settings, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	in := &initializer{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(&in.opts)
	}
	if in.opts.usage == nil {
		in.opts.usage = lib.NewUsageTracker(logger)
	}

	s := &Settings{
		Provider: params.Provider(),
		Usage:    in.opts.usage,
	}

	switch p := params.(type) {
	case *OllamaParams:
		err = in.initOllama(s, p)
	case *OpenAIParams:
		err = in.initOpenAI(s, p)
	case *AzureOpenAIParams:
		err = in.initAzureOpenAI(s, p)
	case *AnthropicParams:
		err = in.initAnthropic(s, p)
	case *GeminiParams:
		err = in.initGemini(s, p)
	default:
		err = &lib.ConfigurationError{Key: providerEnvKey, Value: string(s.Provider), Err: ErrUnknownProvider}
	}
	if err != nil {
		if closeErr := s.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("Failed to close partially initialized clients")
		}
		return nil, fmt.Errorf("init %s: %w", s.Provider, err)
	}

	s.ChunkSize = cfg.Chunking.Size
	s.ChunkOverlap = cfg.Chunking.Overlap

	logger.Info().
		Str("provider", s.Provider.String()).
		Str("model", s.LLM.Name()).
		Str("embedding_model", s.Embedder.Model).
		Int("embedding_dim", s.Embedder.Dimensions).
		Int("chunk_size", s.ChunkSize).
		Int("chunk_overlap", s.ChunkOverlap).
		Msg("LLM settings initialized")

	return s, nil
}

// InitFromEnv loads the config from the environment and initializes it.
func InitFromEnv(ctx context.Context, logger *zerolog.Logger, opts ...Option) (*Settings, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return Init(ctx, cfg, logger, opts...)
}

func (in *initializer) limiter() *lib.OpenAILimiter {
	return lib.NewOpenAILimiterWithTracker(in.logger, in.opts.usage, in.cfg.HTTPTimeout)
}

func (in *initializer) newEmbeddingModel(client embeddings.EmbedderClient, model string, dimensions int) (*EmbeddingModel, error) {
	if in.cfg.EmbeddingCacheTTL > 0 {
		cache := lib.NewCache[[]float32](in.cfg.EmbeddingCacheTTL, in.logger)
		client = NewCachedEmbedderClient(client, model, cache)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return &EmbeddingModel{
		Embedder:   embedder,
		Model:      model,
		Dimensions: dimensions,
	}, nil
}
