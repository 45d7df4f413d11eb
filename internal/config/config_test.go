package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Feed.PageSize != 51 || cfg.Feed.MaxOffset != 1000 {
		t.Fatalf("unexpected defaults: %+v", cfg.Feed)
	}
	if cfg.Notify.DeliveryTimeoutSeconds != 7 {
		t.Fatalf("unexpected notify defaults: %+v", cfg.Notify)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "killbot.yaml")
	data := `
httpAddr: ":9999"
feed:
  pageSize: 20
guilds:
  "123":
    channel: "456"
    players: [p1, p2]
    filter: "totalFame > 1000"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("httpAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Feed.PageSize != 20 {
		t.Fatalf("pageSize = %d", cfg.Feed.PageSize)
	}
	// unset fields keep their defaults
	if cfg.Feed.MaxOffset != 1000 {
		t.Fatalf("maxOffset = %d", cfg.Feed.MaxOffset)
	}
	g := cfg.Guilds["123"]
	if g == nil || g.ChannelID != "456" || len(g.Players) != 2 || g.Filter == "" {
		t.Fatalf("guild config = %+v", g)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "killbot.json")
	data := `{"dataDir":"/tmp/kb","guilds":{"9":{"channelId":"c9","guilds":["g1"]}}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/tmp/kb" {
		t.Fatalf("dataDir = %q", cfg.DataDir)
	}
	if g := cfg.Guilds["9"]; g == nil || g.ChannelID != "c9" {
		t.Fatalf("guild config = %+v", cfg.Guilds)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("KILLBOT_HTTP_ADDR", ":7070")
	t.Setenv("KILLBOT_FEED_PAGE_SIZE", "33")
	t.Setenv("KILLBOT_FEED_MAX_RETRIES", "5")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.HTTPAddr != ":7070" || cfg.Feed.PageSize != 33 || cfg.Feed.MaxRetries != 5 {
		t.Fatalf("env overlay not applied: %+v", cfg)
	}
}
