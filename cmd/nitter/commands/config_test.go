package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	nitter "github.com/anatolykoptev/go-nitter"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nitter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeConfig(t, `
instance: https://nitter.example
limit: 20
min_id: 1346889436626259968
reorder_pinned: true
timeout: 5s
log_level: debug
`)

	cfg, err := loadSettings(path)
	require.NoError(t, err)
	require.Equal(t, "https://nitter.example", cfg.Instance)
	require.Equal(t, 20, cfg.Limit)
	require.Equal(t, uint64(1346889436626259968), cfg.MinID)
	require.True(t, cfg.ReorderPinned)
	require.False(t, cfg.SkipRetweets)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 10, cfg.MaxAttempts, "unset keys keep their defaults")
}

func TestLoadSettings_Errors(t *testing.T) {
	cfg, err := loadSettings("")
	require.NoError(t, err)
	require.Equal(t, defaultSettings(), cfg)

	_, err = loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")

	_, err = loadSettings(writeConfig(t, "limit: [not, a, number]"))
	require.ErrorContains(t, err, "failed to parse config file")
}

func TestSettingsMerge(t *testing.T) {
	fileCfg := defaultSettings()
	fileCfg.Instance = "https://from-file.example"
	fileCfg.Limit = 20
	fileCfg.SkipRetweets = true

	a := &app{flags: defaultSettings()}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.bindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--limit", "5", "--reorder-pinned"}))

	merged := fileCfg.merge(fs, a.flags)
	require.Equal(t, "https://from-file.example", merged.Instance, "file value kept when flag unset")
	require.Equal(t, 5, merged.Limit, "flag overrides file")
	require.True(t, merged.ReorderPinned)
	require.True(t, merged.SkipRetweets)
	require.Equal(t, 30*time.Second, merged.Timeout)
}

func TestSettingsMerge_ExplicitFalse(t *testing.T) {
	fileCfg := defaultSettings()
	fileCfg.SkipRetweets = true

	a := &app{flags: defaultSettings()}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.bindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--skip-retweets=false"}))

	require.False(t, fileCfg.merge(fs, a.flags).SkipRetweets)
}

func TestOverridesCoverEveryFlag(t *testing.T) {
	a := &app{flags: defaultSettings()}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.bindFlags(fs)
	fs.VisitAll(func(f *pflag.Flag) {
		if _, ok := overrides[f.Name]; !ok {
			t.Fatalf("flag --%s has no config override", f.Name)
		}
	})
}

func TestSettingsConfigs(t *testing.T) {
	s := defaultSettings()
	s.Instance = "https://n.example"
	s.Proxy = "http://proxy:8080"
	s.Limit = 3
	s.MinID = 9

	cc := s.clientConfig()
	require.Equal(t, "https://n.example", cc.Instance)
	require.Equal(t, "http://proxy:8080", cc.Proxy)
	require.Equal(t, 10, cc.MaxAttempts)

	sc := s.streamConfig(nitter.UserMedia("jack"))
	require.Equal(t, nitter.UserMedia("jack"), sc.Query)
	require.Equal(t, 3, sc.Limit)
	require.Equal(t, uint64(9), sc.MinID)
}
