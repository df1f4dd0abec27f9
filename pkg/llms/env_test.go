package llms

import "testing"

var envKeys = []string{
	"MODEL_PROVIDER",
	"MODEL",
	"EMBEDDING_MODEL",
	"EMBEDDING_DIM",
	"CHUNK_SIZE",
	"CHUNK_OVERLAP",
	"LLM_TEMPERATURE",
	"LLM_MAX_TOKENS",
	"LLM_HTTP_TIMEOUT",
	"LLM_EMBEDDING_CACHE_TTL",
	"OLLAMA_BASE_URL",
	"OLLAMA_REQUEST_TIMEOUT",
	"OLLAMA_CONTEXT_SIZE",
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"OPENAI_MODEL",
	"AZURE_DEPLOYMENT_NAME",
	"AZURE_OPENAI_ENDPOINT",
	"AZURE_OPENAI_API_VERSION",
	"ANTHROPIC_API_KEY",
	"HF_TOKEN",
	"HUGGINGFACEHUB_API_TOKEN",
	"GOOGLE_API_KEY",
}

// setEnv blanks every variable the package reads, then applies env.
// Empty values count as unset.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}
