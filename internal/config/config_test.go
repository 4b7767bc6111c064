package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr default mismatch: %s", cfg.HTTPAddr)
	}
	if cfg.Engine.TmaxCap != 0.7 {
		t.Errorf("TmaxCap default mismatch: %v", cfg.Engine.TmaxCap)
	}
	if cfg.RunInterval != time.Hour {
		t.Errorf("RunInterval default mismatch: %v", cfg.RunInterval)
	}
	// DSNs stay empty so a missing database configuration is detectable.
	if cfg.PostgresDSN != "" {
		t.Errorf("PostgresDSN must have no default, got %s", cfg.PostgresDSN)
	}
	if cfg.ClickhouseDSN != "" {
		t.Errorf("ClickhouseDSN must have no default, got %s", cfg.ClickhouseDSN)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http_addr: ":9090"
use_memory: true
run_interval: 30m
engine:
  tmax_cap: 0.6
  epsilon: 0.02
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr not overridden: %s", cfg.HTTPAddr)
	}
	if !cfg.UseMemory {
		t.Error("UseMemory not overridden")
	}
	if cfg.RunInterval != 30*time.Minute {
		t.Errorf("RunInterval not overridden: %v", cfg.RunInterval)
	}
	if cfg.Engine.TmaxCap != 0.6 {
		t.Errorf("TmaxCap not overridden: %v", cfg.Engine.TmaxCap)
	}
	// Untouched keys keep defaults
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr default lost: %s", cfg.RedisAddr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://env:env@db:5432/env")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PostgresDSN != "postgres://env:env@db:5432/env" {
		t.Errorf("PostgresDSN env override missing: %s", cfg.PostgresDSN)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr env override missing: %s", cfg.RedisAddr)
	}
}

func TestLoad_InvalidTmaxCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
engine:
  tmax_cap: 1.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for tmax_cap > 1")
	}
}

func TestValidate_Epsilon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Epsilon = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for zero epsilon")
	}
}
