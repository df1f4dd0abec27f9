package config

import (
	"github.com/defeedco/llmsettings/pkg/lib"
	"github.com/defeedco/llmsettings/pkg/lib/log"
	"github.com/defeedco/llmsettings/pkg/llms"
)

type Config struct {
	LLM llms.Config `env:""`
	Log log.Config  `env:""`

	// Only reported in diagnostics.
	RegistryEndpoint string `env:"AZURE_CONTAINER_REGISTRY_ENDPOINT"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := lib.DecodeEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
