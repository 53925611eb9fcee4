package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://api-staging-0.gotartifact.com/v2/users/me", cfg.ProfileAPIURL)
	assert.Equal(t, "https://ipgeolocation.abstractapi.com/v1/", cfg.GeoAPIURL)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.KeepFetchedLocation)
	assert.True(t, cfg.UsesDefaultJWTSecret())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PROFILE_API_TOKEN":     "tok",
		"GEO_API_KEY":           "key",
		"STORAGE_BACKEND":       "memory",
		"HTTP_TIMEOUT":          "3s",
		"KEEP_FETCHED_LOCATION": "true",
		"JWT_SECRET":            "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.ProfileAPIToken)
	assert.Equal(t, "key", cfg.GeoAPIKey)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.KeepFetchedLocation)
	assert.False(t, cfg.UsesDefaultJWTSecret())
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"timeout", map[string]string{"HTTP_TIMEOUT": "soon"}},
		{"bool", map[string]string{"KEEP_FETCHED_LOCATION": "maybe"}},
		{"backend", map[string]string{"STORAGE_BACKEND": "localStorage"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envMap(tt.env))
			assert.Error(t, err)
		})
	}
}
