package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "portgraph.yaml", `
log:
  level: debug
  format: json
limits:
  max_ports: 32
http:
  addr: ":9090"
  read_header_timeout: 2s
redis:
  addr: "redis:6379"
  ttl: 1h
loader:
  kind: redis
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 32, cfg.Limits.MaxPorts)
	assert.Equal(t, domain.DefaultMaxNodes, cfg.Limits.MaxNodes, "unset limits keep defaults")
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "portgraph:", cfg.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, LoaderRedis, cfg.Loader.Kind)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "portgraph.json", `{"limits": {"max_node_name_len": 16}, "loader": {"dir": "graphs"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Limits.MaxNodeNameLen)
	assert.Equal(t, "graphs", cfg.Loader.Dir)
	assert.Equal(t, LoaderFile, cfg.Loader.Kind)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "portgraph.yaml", "limits:\n  max_ports: 8\n")
	t.Setenv("PORTGRAPH_LIMITS_MAX_PORTS", "24")
	t.Setenv("PORTGRAPH_REDIS_DB", "3")
	t.Setenv("PORTGRAPH_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Limits.MaxPorts, "environment wins over the file")
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "log: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "kind.yaml", "loader:\n  kind: s3\n"))
	assert.ErrorContains(t, err, "invalid loader kind")

	_, err = Load(writeFile(t, "format.yaml", "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "invalid log format")
}

func TestApplyEnv(t *testing.T) {
	raw := map[string]any{"http": map[string]any{"addr": ":1"}}
	applyEnv(raw, []string{
		"PORTGRAPH_HTTP_ADDR=:2",
		"PORTGRAPH_NOSECTION=x",
		"HOME=/root",
	})
	assert.Equal(t, map[string]any{"http": map[string]any{"addr": ":2"}}, raw)
}
