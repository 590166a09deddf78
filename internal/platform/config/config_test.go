package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lifeos/internal/platform/config"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadLayers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "xdg", "lifeos", "config.yaml"), "api:\n  base_url: http://user:8000\nrefresh:\n  interval: 10s\n")
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, "log:\n  level: debug\n")

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: explicit,
		Getenv:     env(map[string]string{"XDG_CONFIG_HOME": filepath.Join(dir, "xdg")}),
	})
	require.NoError(t, err)
	require.Equal(t, "http://user:8000", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Refresh.Interval)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, explicit, cfg.Path)
	require.Equal(t, "true", cfg.API.Headers["ngrok-skip-browser-warning"])

	cfg, err = config.Load(config.LoadOptions{
		APIBase: "http://flag:1",
		Getenv: env(map[string]string{
			"XDG_CONFIG_HOME":  filepath.Join(dir, "xdg"),
			config.EnvAPIBase:  "http://env:2",
			config.EnvLogLevel: "warn",
		}),
	})
	require.NoError(t, err)
	require.Equal(t, "http://flag:1", cfg.API.BaseURL)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestMissingUserConfigUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(config.LoadOptions{Getenv: env(map[string]string{"XDG_CONFIG_HOME": t.TempDir()})})
	require.NoError(t, err)
	require.Equal(t, "/health/check", cfg.API.HealthPath)
	require.Len(t, cfg.Shop.Items, 5)
	require.Empty(t, cfg.Path)
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()
	cases := map[string]func(*config.Config){
		"empty base":     func(c *config.Config) { c.API.BaseURL = " " },
		"zero timeout":   func(c *config.Config) { c.API.Timeout = 0 },
		"zero interval":  func(c *config.Config) { c.Refresh.Interval = 0 },
		"negative price": func(c *config.Config) { c.Shop.Items[0].Price = -1 },
		"duplicate item": func(c *config.Config) { c.Shop.Items[1].Key = c.Shop.Items[0].Key },
		"bad rule kind":  func(c *config.Config) { c.Shop.Achievements[0].Kind = "karma" },
	}
	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "shop:\n  items:\n    - {key: coffee, title: Coffee, price: 50}\n")

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- config.Watch(ctx, path, func(c config.Config) {
			select {
			case changes <- c:
			default:
			}
		}, nil)
	}()

	// The watcher registers asynchronously; keep rewriting until it sees one.
	deadline := time.After(5 * time.Second)
	var got config.Config
	for len(got.Shop.Items) == 0 || got.Shop.Items[0].Key != "nap" {
		writeFile(t, path, "shop:\n  items:\n    - {key: nap, title: Nap, price: 10}\n")
		select {
		case got = <-changes:
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
	require.Equal(t, path, got.Path)

	cancel()
	require.NoError(t, <-done)
}
