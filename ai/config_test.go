package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://dashscope.aliyuncs.com/compatible-mode/v1", cfg.Host)
	assert.Equal(t, "qwen-plus", cfg.Model)
	assert.Empty(t, cfg.APIKey)
	assert.InDelta(t, 0.1, cfg.Temperature, 1e-9)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithModel("gpt-4o-mini"),
			WithAPIKey("sk-test"),
			WithTemperature(0.7),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	})

	t.Run("later options win", func(t *testing.T) {
		cfg := NewConfig(WithModel("first"), WithModel("second"))

		assert.Equal(t, "second", cfg.Model)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "already has v1", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
		{name: "missing v1", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "surrounding whitespace", host: "  http://localhost:11434  ", want: "http://localhost:11434/v1"},
		{name: "empty stays empty", host: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host, Model: "m"}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfigToken(t *testing.T) {
	assert.Equal(t, "none", (&Config{}).Token())
	assert.Equal(t, "sk-live", (&Config{APIKey: "sk-live"}).Token())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "defaults are valid", cfg: DefaultConfig()},
		{name: "zero temperature", cfg: NewConfig(WithTemperature(0))},
		{name: "max temperature", cfg: NewConfig(WithTemperature(2))},
		{name: "missing host", cfg: NewConfig(WithHost("")), wantErr: "Host is required"},
		{name: "missing model", cfg: NewConfig(WithModel("  ")), wantErr: "Model is required"},
		{name: "negative temperature", cfg: NewConfig(WithTemperature(-0.1)), wantErr: "Temperature"},
		{name: "temperature too high", cfg: NewConfig(WithTemperature(2.5)), wantErr: "Temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate_Normalizes(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434/"))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
}
