package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/backlog/internal/config"
)

// ConfigState is a snapshot of the config package globals.
type ConfigState struct {
	OverwriteFiles    bool
	UpdateCovers      bool
	IGDBClientID      string
	IGDBClientSecret  string
	IGDBCoverSize     string
	TokenExpiryMargin time.Duration
	SteamGridDBAPIKey string
	GridStyles        []string
	VaultDir          string
	VaultFolder       string
	DBFile            string
	MetricsTextfile   string
	TracingEndpoint   string
}

// SaveConfigState captures the current config globals.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles:    config.OverwriteFiles,
		UpdateCovers:      config.UpdateCovers,
		IGDBClientID:      config.IGDBClientID,
		IGDBClientSecret:  config.IGDBClientSecret,
		IGDBCoverSize:     config.IGDBCoverSize,
		TokenExpiryMargin: config.TokenExpiryMargin,
		SteamGridDBAPIKey: config.SteamGridDBAPIKey,
		GridStyles:        config.GridStyles,
		VaultDir:          config.VaultDir,
		VaultFolder:       config.VaultFolder,
		DBFile:            config.DBFile,
		MetricsTextfile:   config.MetricsTextfile,
		TracingEndpoint:   config.TracingEndpoint,
	}
}

// RestoreConfigState writes a snapshot back into the config globals.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.UpdateCovers = state.UpdateCovers
	config.IGDBClientID = state.IGDBClientID
	config.IGDBClientSecret = state.IGDBClientSecret
	config.IGDBCoverSize = state.IGDBCoverSize
	config.TokenExpiryMargin = state.TokenExpiryMargin
	config.SteamGridDBAPIKey = state.SteamGridDBAPIKey
	config.GridStyles = state.GridStyles
	config.VaultDir = state.VaultDir
	config.VaultFolder = state.VaultFolder
	config.DBFile = state.DBFile
	config.MetricsTextfile = state.MetricsTextfile
	config.TracingEndpoint = state.TracingEndpoint
}

// SetTestConfig points the config globals at a sandboxed vault with fake credentials and
// restores everything when the test completes.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.OverwriteFiles = false
	config.UpdateCovers = false
	config.IGDBClientID = "test-client"
	config.IGDBClientSecret = "test-secret"
	config.IGDBCoverSize = config.DefaultCoverSize
	config.TokenExpiryMargin = config.DefaultTokenExpiryMargin
	config.SteamGridDBAPIKey = "test-sgdb-key"
	config.GridStyles = append([]string(nil), config.DefaultGridStyles...)
	config.VaultDir = env.RootDir()
	config.VaultFolder = config.DefaultVaultFolder
	config.DBFile = env.Path("backlog.db")
	config.MetricsTextfile = ""
	config.TracingEndpoint = ""

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
