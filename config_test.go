package authcore

import (
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := defaultConfig()
	cfg.Token.SigningKey = []byte("0123456789abcdef0123456789abcdef")
	cfg.Token.SigningMethod = "hs256"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults with key valid",
			mutate:    func(c *Config) {},
			wantValid: true,
		},
		{
			name: "token ttl zero invalid",
			mutate: func(c *Config) {
				c.Token.TTL = 0
			},
			wantValid: false,
		},
		{
			name: "token leeway valid",
			mutate: func(c *Config) {
				c.Token.Leeway = 45 * time.Second
			},
			wantValid: true,
		},
		{
			name: "token leeway too large invalid",
			mutate: func(c *Config) {
				c.Token.Leeway = 3 * time.Minute
			},
			wantValid: false,
		},
		{
			name: "token leeway negative invalid",
			mutate: func(c *Config) {
				c.Token.Leeway = -time.Second
			},
			wantValid: false,
		},
		{
			name: "signing method ed25519 valid",
			mutate: func(c *Config) {
				c.Token.SigningMethod = "ed25519"
			},
			wantValid: true,
		},
		{
			name: "signing method rs256 invalid",
			mutate: func(c *Config) {
				c.Token.SigningMethod = "rs256"
			},
			wantValid: false,
		},
		{
			name: "missing signing key invalid",
			mutate: func(c *Config) {
				c.Token.SigningKey = nil
			},
			wantValid: false,
		},
		{
			name: "missing key id invalid",
			mutate: func(c *Config) {
				c.Token.KeyID = ""
			},
			wantValid: false,
		},
		{
			name: "missing issuer invalid",
			mutate: func(c *Config) {
				c.Token.Issuer = ""
			},
			wantValid: false,
		},
		{
			name: "password memory too low invalid",
			mutate: func(c *Config) {
				c.Password.Memory = 1024
			},
			wantValid: false,
		},
		{
			name: "password salt too short invalid",
			mutate: func(c *Config) {
				c.Password.SaltLength = 8
			},
			wantValid: false,
		},
		{
			name: "policy max below min invalid",
			mutate: func(c *Config) {
				c.Policy.MinPasswordLength = 10
				c.Policy.MaxPasswordLength = 9
			},
			wantValid: false,
		},
		{
			name: "policy char classes in range valid",
			mutate: func(c *Config) {
				c.Policy.MinCharClasses = 4
			},
			wantValid: true,
		},
		{
			name: "policy char classes above four invalid",
			mutate: func(c *Config) {
				c.Policy.MinCharClasses = 5
			},
			wantValid: false,
		},
		{
			name: "audit enabled without buffer invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected invalid config, got nil")
			}
		})
	}
}
