package lib

import (
	"errors"
	"strings"
	"testing"
)

type testChunking struct {
	Size    int `env:"TEST_LIB_CHUNK_SIZE,default=1024" validate:"gt=0"`
	Overlap int `env:"TEST_LIB_CHUNK_OVERLAP,default=20" validate:"gte=0,ltfield=Size"`
}

func TestDecodeEnv(t *testing.T) {
	tests := []struct {
		name        string
		size        string
		overlap     string
		wantSize    int
		wantOverlap int
		wantErr     string
	}{
		{name: "defaults", wantSize: 1024, wantOverlap: 20},
		{name: "explicit", size: "512", overlap: "64", wantSize: 512, wantOverlap: 64},
		{name: "not a number", size: "abc", wantErr: "abc"},
		{name: "overlap too large", size: "10", overlap: "10", wantErr: "ltfield"},
		{name: "zero size", size: "0", wantErr: "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_LIB_CHUNK_SIZE", tt.size)
			t.Setenv("TEST_LIB_CHUNK_OVERLAP", tt.overlap)

			var cfg testChunking
			err := DecodeEnv(&cfg)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !IsConfigurationError(err) {
					t.Errorf("expected ConfigurationError, got %T: %v", err, err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error to mention %q, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Size != tt.wantSize || cfg.Overlap != tt.wantOverlap {
				t.Errorf("got size=%d overlap=%d, want %d/%d", cfg.Size, cfg.Overlap, tt.wantSize, tt.wantOverlap)
			}
		})
	}
}

func TestConfigurationError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		err  *ConfigurationError
		want string
	}{
		{&ConfigurationError{Key: "MODEL", Value: "gpt-5", Err: base}, `configuration: MODEL="gpt-5": boom`},
		{&ConfigurationError{Key: "MODEL", Err: base}, `configuration: MODEL: boom`},
		{&ConfigurationError{Value: "abc", Err: base}, `configuration: value "abc": boom`},
		{&ConfigurationError{Err: base}, `configuration: boom`},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, base) {
			t.Errorf("expected %v to unwrap to base error", tt.err)
		}
	}

	wrapped := AsConfigurationError(base)
	if !IsConfigurationError(wrapped) {
		t.Error("expected plain error to be wrapped")
	}
	if AsConfigurationError(wrapped) != wrapped {
		t.Error("expected ConfigurationError to pass through unchanged")
	}
	if AsConfigurationError(nil) != nil {
		t.Error("expected nil to stay nil")
	}
}
