package cmd

import (
	"context"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/backlog/internal/config"
	"github.com/lepinkainen/backlog/internal/testutil"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("backlog"),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, kctx
}

func TestSearchCommandParsing(t *testing.T) {
	cli, kctx := parseCLI(t, "search", "hollow knight", "--limit", "5")

	assert.Equal(t, "search <query>", kctx.Command())
	assert.Equal(t, "hollow knight", cli.Search.Query)
	assert.Equal(t, 5, cli.Search.Limit)
}

func TestAddCommandDefaults(t *testing.T) {
	cli, _ := parseCLI(t, "add", "celeste", "-p", "Switch")

	assert.Equal(t, "celeste", cli.Add.Query)
	assert.Equal(t, "Switch", cli.Add.Platform)
	assert.Equal(t, "Medium", cli.Add.Priority)
	assert.Equal(t, "Backlog", cli.Add.Status)
	assert.False(t, cli.Add.NoInteractive)
	assert.False(t, cli.Add.DownloadCover)
	assert.False(t, cli.Add.Overwrite)
}

func TestAddCommandRequiresPlatform(t *testing.T) {
	parser, err := kong.New(&CLI{}, kong.Name("backlog"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"add", "celeste"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--platform")
}

func TestGlobalFlags(t *testing.T) {
	cli, _ := parseCLI(t,
		"--debug",
		"--overwrite",
		"--update-covers",
		"--metrics-textfile", "/tmp/backlog.prom",
		"--tracing-endpoint", "localhost:4317",
		"dashboard", "--write-note")

	assert.True(t, cli.Debug)
	assert.True(t, cli.Overwrite)
	assert.True(t, cli.UpdateCovers)
	assert.Equal(t, "/tmp/backlog.prom", cli.MetricsTextfile)
	assert.Equal(t, "localhost:4317", cli.TracingEndpoint)
	assert.True(t, cli.Dashboard.WriteNote)
}

func TestUpdateGlobalConfig(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	updateGlobalConfig(&CLI{
		Overwrite:       true,
		UpdateCovers:    true,
		MetricsTextfile: "/tmp/backlog.prom",
	})

	assert.True(t, config.OverwriteFiles)
	assert.True(t, config.UpdateCovers)
	assert.Equal(t, "/tmp/backlog.prom", config.MetricsTextfile)
}

func TestUpdateGlobalConfigKeepsConfiguredValues(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)
	config.OverwriteFiles = true
	config.MetricsTextfile = "from-config.prom"

	updateGlobalConfig(&CLI{})

	assert.True(t, config.OverwriteFiles)
	assert.Equal(t, "from-config.prom", config.MetricsTextfile)
}

func TestEnvironmentVariableBinding(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	t.Setenv("IGDB_CLIENT_ID", "env-client")
	t.Setenv("IGDB_CLIENT_SECRET", "env-secret")
	t.Setenv("STEAMGRIDDB_API_KEY", "env-key")

	viper.AutomaticEnv()
	require.NoError(t, viper.BindEnv("igdb.client_id", "IGDB_CLIENT_ID"))
	require.NoError(t, viper.BindEnv("igdb.client_secret", "IGDB_CLIENT_SECRET"))
	require.NoError(t, viper.BindEnv("steamgriddb.api_key", "STEAMGRIDDB_API_KEY"))
	config.InitConfig()

	assert.Equal(t, "env-client", config.IGDBClientID)
	assert.Equal(t, "env-secret", config.IGDBClientSecret)
	assert.Equal(t, "env-key", config.SteamGridDBAPIKey)
}

func TestInitConfigWritesDefaultFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)
	env.Chdir("")

	initConfig()

	env.RequireFileExists("config.yaml")
	env.AssertFileContains("config.yaml", "cover_size: cover_big")
	assert.Equal(t, config.DefaultVaultFolder, config.VaultFolder)
}

func TestInitLogging(t *testing.T) {
	for _, debug := range []bool{false, true} {
		require.NotPanics(t, func() {
			initLogging(debug)
		})
	}
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)
	env.MkdirAll(config.DefaultVaultFolder)
	captureOutput(t)

	cli, kctx := parseCLI(t, "--metrics-textfile", env.Path("backlog.prom"), "dashboard")
	require.NoError(t, run(context.Background(), kctx, cli))

	env.RequireFileExists("backlog.prom")
	env.AssertFileContains("backlog.prom", "backlog_enrich_duration_seconds")
}
