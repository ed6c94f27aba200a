package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/logger"
)

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "db"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_HasCommands(t *testing.T) {
	want := []string{"shell", "search", "index", "watch", "open", "status", "settings", "mcp", "version"}
	got := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "missing command %s", name)
	}
}

func TestSetup_BootstrapReceivesFlags(t *testing.T) {
	ts := setupTestServices(t)
	SetServices(&Services{})

	var got Options
	closed := false
	SetBootstrap(func(opts Options) (*Services, error) {
		got = opts
		return &Services{
			Search:   ts.search,
			Index:    ts.index,
			Warnings: []string{"LLM disabled: no API key"},
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})

	out, err := execute(t, "", "--config-dir", "/tmp/meow", "--db", ":memory:", "index")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigDir: "/tmp/meow", DBPath: ":memory:"}, got)
	assert.Contains(t, out, "Warning: LLM disabled: no API key")
	assert.Equal(t, 1, ts.index.runs)

	require.NotNil(t, closer)
	require.NoError(t, closer())
	assert.True(t, closed)
}

func TestSetup_BootstrapError(t *testing.T) {
	setupTestServices(t)
	SetServices(&Services{})
	SetBootstrap(func(Options) (*Services, error) {
		return nil, errors.New("database is locked")
	})

	_, err := execute(t, "", "status")

	require.Error(t, err)
	assert.EqualError(t, err, "starting meow: database is locked")
}

func TestSetup_VersionSkipsBootstrap(t *testing.T) {
	setupTestServices(t)
	SetServices(&Services{})
	called := false
	SetBootstrap(func(Options) (*Services, error) {
		called = true
		return &Services{}, nil
	})

	_, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestSetup_Verbose(t *testing.T) {
	setupTestServices(t)
	t.Cleanup(func() { logger.SetVerbose(false) })

	_, err := execute(t, "", "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestCommands_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(&Services{})

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"search", "x"}, want: "search service not configured"},
		{args: []string{"index"}, want: "index service not configured"},
		{args: []string{"watch"}, want: "watch service not configured"},
		{args: []string{"open", "/x"}, want: "result actions not configured"},
		{args: []string{"status"}, want: "status service not configured"},
		{args: []string{"settings"}, want: "settings service not configured"},
		{args: []string{"shell"}, want: "search service not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestSetVersion(t *testing.T) {
	setupTestServices(t)
	prev := version
	t.Cleanup(func() { version = prev })

	SetVersion("1.2.3")
	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Equal(t, "meow version 1.2.3\n", out)
}
