package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitConfigDefaults(t *testing.T) {
	resetConfig(t)

	InitConfig()

	assert.Equal(t, ".", VaultDir)
	assert.Equal(t, DefaultVaultFolder, VaultFolder)
	assert.Equal(t, DefaultDBFile, DBFile)
	assert.Equal(t, DefaultCoverSize, IGDBCoverSize)
	assert.Equal(t, DefaultTokenExpiryMargin, TokenExpiryMargin)
	assert.Equal(t, DefaultGridStyles, GridStyles)
	assert.Empty(t, IGDBClientID)
	assert.Empty(t, SteamGridDBAPIKey)
	assert.Empty(t, MetricsTextfile)
	assert.Empty(t, TracingEndpoint)
}

func TestInitConfigReadsViperValues(t *testing.T) {
	resetConfig(t)

	viper.Set("igdb.client_id", "client")
	viper.Set("igdb.client_secret", "secret")
	viper.Set("igdb.token_expiry_margin", "90s")
	viper.Set("steamgriddb.api_key", "sgdb")
	viper.Set("steamgriddb.styles", []string{"material"})
	viper.Set("vault.dir", "/vault")
	viper.Set("metrics.textfile", "/var/lib/node_exporter/backlog.prom")
	viper.Set("tracing.endpoint", "localhost:4317")

	InitConfig()

	assert.Equal(t, "client", IGDBClientID)
	assert.Equal(t, "secret", IGDBClientSecret)
	assert.Equal(t, 90*time.Second, TokenExpiryMargin)
	assert.Equal(t, "sgdb", SteamGridDBAPIKey)
	assert.Equal(t, []string{"material"}, GridStyles)
	assert.Equal(t, "/vault", VaultDir)
	assert.Equal(t, "/var/lib/node_exporter/backlog.prom", MetricsTextfile)
	assert.Equal(t, "localhost:4317", TracingEndpoint)
}

func TestSetOverwriteFiles(t *testing.T) {
	original := OverwriteFiles
	t.Cleanup(func() { OverwriteFiles = original })

	testCases := []struct {
		name     string
		input    bool
		expected bool
	}{
		{name: "set to true", input: true, expected: true},
		{name: "set to false", input: false, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetOverwriteFiles(tc.input)
			assert.Equal(t, tc.expected, OverwriteFiles)
		})
	}
}

func TestSetUpdateCovers(t *testing.T) {
	original := UpdateCovers
	t.Cleanup(func() { UpdateCovers = original })

	SetUpdateCovers(true)
	assert.True(t, UpdateCovers)
	SetUpdateCovers(false)
	assert.False(t, UpdateCovers)
}
