package config

import (
	"encoding/base64"
	"testing"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"token": "",
		},
		"encryption": map[string]any{
			"passphrase": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_TOKEN", want: "secretKey.token"},
		{envKey: "ENCRYPTION_PASSPHRASE", want: "encryption.passphrase"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.SecretKey.Token = "signing-secret"
	cfg.Encryption = &EncryptionConfig{
		Passphrase: "passphrase",
		Salt:       base64.StdEncoding.EncodeToString([]byte("0123456789abcdef")),
	}
	cfg.Model = &ModelConfig{Path: "model.json"}

	return cfg
}

func TestValidate(t *testing.T) {
	if err := validConfig().validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "missing token secret", mutate: func(cfg *Config) { cfg.SecretKey.Token = "" }},
		{name: "missing encryption config", mutate: func(cfg *Config) { cfg.Encryption = nil }},
		{name: "missing passphrase", mutate: func(cfg *Config) { cfg.Encryption.Passphrase = "" }},
		{name: "missing salt", mutate: func(cfg *Config) { cfg.Encryption.Salt = "" }},
		{name: "salt not base64", mutate: func(cfg *Config) { cfg.Encryption.Salt = "not-base64!!!" }},
		{name: "missing model config", mutate: func(cfg *Config) { cfg.Model = nil }},
		{name: "missing model path", mutate: func(cfg *Config) { cfg.Model.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}
