package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"database": map[string]any{
			"sslMode": "disable",
			"dbName":  "rentease",
		},
		"auth": map[string]any{
			"jwtSecret": "",
			"tokenTtl":  "168h",
		},
		"media": map[string]any{
			"publicPrefix": "uploads",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DATABASE_SSLMODE", want: "database.sslMode"},
		{envKey: "DATABASE_DBNAME", want: "database.dbName"},
		{envKey: "AUTH_JWTSECRET", want: "auth.jwtSecret"},
		{envKey: "AUTH_TOKENTTL", want: "auth.tokenTtl"},
		{envKey: "MEDIA_PUBLICPREFIX", want: "media.publicPrefix"},
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

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Auth.TokenTTL.Hours() != 168 {
		t.Fatalf("default token TTL = %v, want 168h", cfg.Auth.TokenTTL)
	}
	if cfg.Media.Dir != "uploads" || cfg.Media.PublicPrefix != "uploads" {
		t.Fatalf("default media config = %+v", cfg.Media)
	}
}
