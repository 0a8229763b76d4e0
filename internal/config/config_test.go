package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ADMINUI_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultSourceURL, cfg.Source.URL)
	require.Equal(t, 30*time.Second, cfg.Source.Timeout)
	require.Equal(t, 10, cfg.List.PageSize)
	require.True(t, cfg.List.PreserveEdits)
	require.False(t, cfg.UI.DarkMode)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, filepath.Join(home, ".local", "share", "adminui", "adminui.db"), cfg.Cache.Path)
	require.Equal(t, 5, cfg.Cache.Keep)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "adminui")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[source]
url = "file:///srv/members.json"
timeout = "5s"

[list]
page_size = 25
preserve_edits = false

[ui]
dark_mode = true
`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "file:///srv/members.json", cfg.Source.URL)
	require.Equal(t, 5*time.Second, cfg.Source.Timeout)
	require.Equal(t, 25, cfg.List.PageSize)
	require.False(t, cfg.List.PreserveEdits)
	require.True(t, cfg.UI.DarkMode)
	require.True(t, cfg.Cache.Enabled, "unset keys keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ADMINUI_LIST_PAGE_SIZE", "3")
	t.Setenv("ADMINUI_CACHE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.List.PageSize)
	require.False(t, cfg.Cache.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("ADMINUI_LIST_PAGE_SIZE", "0")

	_, err := Load()
	require.ErrorContains(t, err, "list.page_size")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)
	t.Setenv("ADMINUI_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Config{
		Source: SourceConfig{URL: DefaultSourceURL},
		List:   ListConfig{PageSize: 10},
		Cache:  CacheConfig{Enabled: true, Path: "/tmp/a.db", Keep: 1},
	}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Source.URL = " "
	bad.Cache.Keep = 0
	err := bad.Validate()
	require.ErrorContains(t, err, "source.url")
	require.ErrorContains(t, err, "cache.keep")

	off := ok
	off.Cache = CacheConfig{}
	require.NoError(t, off.Validate(), "cache settings ignored when disabled")
}

func TestSaveDarkModeKeepsFileContents(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	t.Setenv("ADMINUI_CONFIG", path)
	require.Equal(t, path, Path())

	require.NoError(t, SaveDarkMode(true), "creates the file and its directory")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.UI.DarkMode)
	require.Equal(t, 10, cfg.List.PageSize, "defaults still come from code")

	require.NoError(t, os.WriteFile(path, []byte(`
[list]
page_size = 25

[ui]
dark_mode = true
`), 0o600))
	t.Setenv("ADMINUI_SOURCE_URL", "file:///tmp/override.json")
	t.Setenv("ADMINUI_CACHE_KEEP", "9")

	require.NoError(t, SaveDarkMode(false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.NotContains(t, text, "override.json", "env overrides are not persisted")
	require.NotContains(t, text, "keep")
	require.NotContains(t, text, "timeout", "defaults are not persisted")

	cfg, err = Load()
	require.NoError(t, err)
	require.False(t, cfg.UI.DarkMode)
	require.Equal(t, 25, cfg.List.PageSize)
}

func TestSaveDarkModeSerialised(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("ADMINUI_CONFIG", path)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(dark bool) {
			defer wg.Done()
			errs <- SaveDarkMode(dark)
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	_, err := Load()
	require.NoError(t, err, "concurrent saves leave a readable file")
}
