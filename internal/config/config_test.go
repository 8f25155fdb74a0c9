package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nightcss/darkcss"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NIGHTCSS_CONFIG", "NIGHTCSS_ADDR", "PORT", "NIGHTCSS_MAX_DEPTH", "NIGHTCSS_ALLOW_TABLES",
		"NIGHTCSS_CACHE_ENTRIES", "NIGHTCSS_CACHE_TTL", "NIGHTCSS_PREVIEW_WIDTH", "NIGHTCSS_CHROME_PATH",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8081" {
		t.Errorf("Server.Addr = %q, want :8081", cfg.Server.Addr)
	}
	if cfg.Engine.MaxNestingDepth != darkcss.DefaultMaxNestingDepth || cfg.Engine.AllowTables {
		t.Errorf("Engine = %+v", cfg.Engine)
	}
	if ttl, _ := cfg.CacheTTL(); ttl != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", ttl)
	}
	if cfg.Preview.Enabled {
		t.Errorf("preview enabled by default")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := `
[engine]
max_nesting_depth = 30
max_tag_depth = 64
allow_tables = true

[cache]
entries = 0

[server]
addr = "127.0.0.1:9000"

[preview]
enabled = true
width = 320
timeout = "5s"
`
	path := filepath.Join(dir, "nightcss.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("NIGHTCSS_MAX_DEPTH", "20")
	t.Setenv("NIGHTCSS_CHROME_PATH", "/usr/bin/chromium")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.MaxNestingDepth != 20 {
		t.Errorf("MaxNestingDepth = %d, want env override 20", cfg.Engine.MaxNestingDepth)
	}
	if !cfg.Engine.AllowTables {
		t.Errorf("AllowTables not read from file")
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Preview.Width != 320 || cfg.Preview.ChromePath != "/usr/bin/chromium" {
		t.Errorf("Preview = %+v", cfg.Preview)
	}
	if d, _ := cfg.PreviewTimeout(); d != 5*time.Second {
		t.Errorf("PreviewTimeout = %v", d)
	}

	opts := cfg.EngineOptions(nil)
	if opts.Cache != nil {
		t.Errorf("cache built although entries = 0")
	}
	if opts.MaxNestingDepth != 20 || opts.MaxTagDepth != 64 || !opts.AllowTables {
		t.Errorf("EngineOptions = %+v", opts)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"NIGHTCSS_MAX_DEPTH":    "deep",
		"NIGHTCSS_ALLOW_TABLES": "maybe",
		"NIGHTCSS_CACHE_TTL":    "forever",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			if _, err := Load(""); err == nil {
				t.Fatalf("Load() with %s=%q succeeded", k, v)
			}
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[engine\nmax_nesting_depth = "), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() of malformed file succeeded")
	}
}

func TestPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
}
