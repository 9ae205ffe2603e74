package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingOptional(t *testing.T) {
	t.Setenv("CURATE_API_URL", "")
	c, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.API.URL != DefaultAPIURL {
		t.Errorf("expected default url, got %q", c.API.URL)
	}
	if c.Editor.EntriesPerPage != DefaultEntriesPerPage {
		t.Errorf("expected %d per page, got %d", DefaultEntriesPerPage, c.Editor.EntriesPerPage)
	}
	if c.Editor.BannerTTL != 10*time.Second {
		t.Errorf("expected 10s banner ttl, got %v", c.Editor.BannerTTL)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"), true); err == nil {
		t.Error("expected error for missing required config")
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("CURATE_API_URL", "")
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
api:
  url: http://example.test:9000
editor:
  entries_per_page: 25
  banner_ttl: 4s
download:
  dir: /tmp/exports
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.API.URL != "http://example.test:9000" {
		t.Errorf("url = %q", c.API.URL)
	}
	if c.Editor.EntriesPerPage != 25 {
		t.Errorf("per page = %d", c.Editor.EntriesPerPage)
	}
	if c.Editor.BannerTTL != 4*time.Second {
		t.Errorf("banner ttl = %v", c.Editor.BannerTTL)
	}
	if c.Editor.NoticeTTL != DefaultNoticeTTL {
		t.Errorf("notice ttl should default, got %v", c.Editor.NoticeTTL)
	}
	if c.Download.Dir != "/tmp/exports" {
		t.Errorf("download dir = %q", c.Download.Dir)
	}
	if c.Log.Level != "debug" {
		t.Errorf("log level = %q", c.Log.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	os.WriteFile(path, []byte("api:\n  url: http://file\n"), 0o644)
	t.Setenv("CURATE_API_URL", "http://env")

	c, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.API.URL != "http://env" {
		t.Errorf("expected env override, got %q", c.API.URL)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CURATE_CONFIG", "/etc/curate.yml")
	if got := Path("explicit.yml"); got != "explicit.yml" {
		t.Errorf("explicit path ignored: %q", got)
	}
	if got := Path(""); got != "/etc/curate.yml" {
		t.Errorf("env path ignored: %q", got)
	}
}
