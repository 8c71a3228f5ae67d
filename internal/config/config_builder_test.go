package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaults()
	cfg.Storage.Files.Path = "server-db.json"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstNonZeroWins verifies that earlier sources take precedence
// and later ones only fill the gaps.
func TestBuild_FirstNonZeroWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Issuer: "env-issuer"}},
		&StructuredConfig{App: App{Issuer: "flag-issuer", KDFAlgorithm: "pbkdf2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env-issuer", cfg.App.Issuer)
	assert.Equal(t, "pbkdf2", cfg.App.KDFAlgorithm)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_ISSUER":     "env-issuer",
		"SERVER_ADDRESS": "127.0.0.1:9000",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, "env-issuer", b.configs[0].App.Issuer)
	assert.Equal(t, "127.0.0.1:9000", b.configs[0].Server.HTTPAddress)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_SESSION_TTL": "later"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlagSet ───────────────────────────────────────────────────────────────

func TestWithFlagSet_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlagSet(newTestFlagSet(), []string{"-issuer", "flag-issuer"}))

	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-issuer", b.configs[0].App.Issuer)
}

func TestWithFlagSet_SetsErrorOnBadFlag(t *testing.T) {
	b := newConfigBuilder().withFlagSet(newTestFlagSet(), []string{"-a", "nope"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Issuer = "json-issuer"
	payload.App.SessionTTL = Duration(time.Hour)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-issuer", b.configs[1].App.Issuer)
	assert.Equal(t, time.Hour, b.configs[1].App.SessionTTL)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Issuer = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Issuer)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsOnlyEmptyFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App: App{Issuer: "custom", SessionTTL: -1},
	})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.App.Issuer)
	assert.Equal(t, time.Duration(-1), cfg.App.SessionTTL)
	assert.Equal(t, DefaultKDFAlgorithm, cfg.App.KDFAlgorithm)
	assert.Equal(t, DefaultPasswordIterations, cfg.App.PasswordIterations)
	assert.Equal(t, DefaultLoginTicketTTL, cfg.App.LoginTicketTTL)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultSessionSweepInterval, cfg.Workers.SessionSweepInterval)
	assert.NoError(t, cfg.validate())
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"valid", func(*StructuredConfig) {}, nil},
		{"empty issuer", func(c *StructuredConfig) { c.App.Issuer = "" }, ErrInvalidAppConfigs},
		{"unknown kdf", func(c *StructuredConfig) { c.App.KDFAlgorithm = "argon2" }, ErrInvalidAppConfigs},
		{"zero iterations", func(c *StructuredConfig) { c.App.PasswordIterations = 0 }, ErrInvalidAppConfigs},
		{"zero ticket ttl", func(c *StructuredConfig) { c.App.LoginTicketTTL = 0 }, ErrInvalidAppConfigs},
		{"empty address", func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"zero timeout", func(c *StructuredConfig) { c.Server.RequestTimeout = 0 }, ErrInvalidServerConfigs},
		{"expiring sessions without sweep", func(c *StructuredConfig) { c.Workers.SessionSweepInterval = 0 }, ErrInvalidWorkerConfigs},
		{"non-expiring sessions without sweep", func(c *StructuredConfig) {
			c.App.SessionTTL = -1
			c.Workers.SessionSweepInterval = 0
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfigFrom(t *testing.T) {
	cfg := validConfig()
	cfg.Adapter.HTTPAddress = "http://vault.local:8080"

	clientCfg, err := clientConfigFrom(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://vault.local:8080", clientCfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, clientCfg.Adapter.RequestTimeout)

	cfg.Adapter.HTTPAddress = "localhost:8080"
	_, err = clientConfigFrom(cfg)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)

	cfg.Adapter.HTTPAddress = ""
	_, err = clientConfigFrom(cfg)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}
