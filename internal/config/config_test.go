package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "cfg"))

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, filepath.Join(tmp, "lovchat"), v.GetString("data_dir"))
	assert.Equal(t, ":8080", v.GetString("http_addr"))
	assert.Equal(t, "gpt-4o-mini", v.GetString("openai.model"))
	assert.Equal(t, 5, v.GetInt("retrieval.top_k"))
	assert.Equal(t, DefaultArchives(), v.GetStringSlice("archives"))
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	tmp := t.TempDir()
	cfg := filepath.Join(tmp, "config.toml")
	content := "http_addr = \":9999\"\n[openai]\nmodel = \"filemodel\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))

	t.Setenv("LOVCHAT_OPENAI_MODEL", "envmodel")

	v := viper.New()
	v.SetConfigFile(cfg)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, ":9999", v.GetString("http_addr"), "file overrides default")
	assert.Equal(t, "envmodel", v.GetString("openai.model"), "env overrides file")
}

func TestLoadArchivesFromCommaSeparatedEnv(t *testing.T) {
	t.Setenv("LOVCHAT_ARCHIVES", "a.tar.bz2, b.tar.bz2")
	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	assert.Equal(t, []string{"a.tar.bz2", "b.tar.bz2"}, v.GetStringSlice("archives"))
}

func TestResolveDBPath(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "/var/lib/lovchat")
	assert.Equal(t, "/var/lib/lovchat/lovchat.db", ResolveDBPath(v))
	assert.Equal(t, filepath.Join("/var/lib/lovchat", "raw"), ResolveRawDir(v))
}

func TestRenderDefaultTOML(t *testing.T) {
	out := RenderDefaultTOML()
	for _, want := range []string{"data_dir", "[openai]", "[retrieval]", "[tls]", "top_k = 5", "model = \"gpt-4o-mini\""} {
		assert.True(t, strings.Contains(out, want), "missing %q in rendered config", want)
	}
}
