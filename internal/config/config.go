// Package config holds the process-wide settings loaded through viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for settings that have a sensible fallback.
const (
	DefaultVaultFolder       = "Backlog"
	DefaultDBFile            = "./backlog.db"
	DefaultCoverSize         = "cover_big"
	DefaultTokenExpiryMargin = 5 * time.Minute
)

// DefaultGridStyles is the preferred SteamGridDB style allowlist.
var DefaultGridStyles = []string{"alternate", "material", "white_logo", "blurred", "no_logo"}

// Global configuration variables
var (
	// OverwriteFiles controls whether existing notes should be overwritten
	OverwriteFiles bool
	// UpdateCovers forces re-downloading covers that already exist
	UpdateCovers bool

	// IGDBClientID is the Twitch application client id used for IGDB
	IGDBClientID string
	// IGDBClientSecret is the Twitch application client secret used for IGDB
	IGDBClientSecret string
	// IGDBCoverSize is the IGDB image size used for fallback covers
	IGDBCoverSize string
	// TokenExpiryMargin is subtracted from the token lifetime reported by Twitch
	TokenExpiryMargin time.Duration

	// SteamGridDBAPIKey is the API key for SteamGridDB
	SteamGridDBAPIKey string
	// GridStyles is the preferred style allowlist for grid artwork
	GridStyles []string

	// VaultDir is the root of the Obsidian vault
	VaultDir string
	// VaultFolder is the folder inside the vault holding backlog notes
	VaultFolder string
	// DBFile is the sqlite file used for the dashboard index
	DBFile string

	// MetricsTextfile is where Prometheus metrics are dumped after a run, empty to disable
	MetricsTextfile string
	// TracingEndpoint is the OTLP gRPC collector address, empty to disable
	TracingEndpoint string
)

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("vault.dir", ".")
	viper.SetDefault("vault.folder", DefaultVaultFolder)
	viper.SetDefault("datastore.dbfile", DefaultDBFile)
	viper.SetDefault("igdb.client_id", "")
	viper.SetDefault("igdb.client_secret", "")
	viper.SetDefault("igdb.cover_size", DefaultCoverSize)
	viper.SetDefault("igdb.token_expiry_margin", DefaultTokenExpiryMargin.String())
	viper.SetDefault("steamgriddb.api_key", "")
	viper.SetDefault("steamgriddb.styles", DefaultGridStyles)
	viper.SetDefault("metrics.textfile", "")
	viper.SetDefault("tracing.endpoint", "")
	viper.SetDefault("OverwriteFiles", false)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OverwriteFiles = viper.GetBool("OverwriteFiles")

	IGDBClientID = viper.GetString("igdb.client_id")
	IGDBClientSecret = viper.GetString("igdb.client_secret")
	IGDBCoverSize = viper.GetString("igdb.cover_size")
	TokenExpiryMargin = viper.GetDuration("igdb.token_expiry_margin")
	if TokenExpiryMargin <= 0 {
		TokenExpiryMargin = DefaultTokenExpiryMargin
	}

	SteamGridDBAPIKey = viper.GetString("steamgriddb.api_key")
	GridStyles = viper.GetStringSlice("steamgriddb.styles")
	if len(GridStyles) == 0 {
		GridStyles = append([]string(nil), DefaultGridStyles...)
	}

	VaultDir = viper.GetString("vault.dir")
	VaultFolder = viper.GetString("vault.folder")
	DBFile = viper.GetString("datastore.dbfile")

	MetricsTextfile = viper.GetString("metrics.textfile")
	TracingEndpoint = viper.GetString("tracing.endpoint")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetUpdateCovers sets the UpdateCovers flag
func SetUpdateCovers(update bool) {
	UpdateCovers = update
}
