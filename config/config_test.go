package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithEnvKey(t *testing.T) {
	t.Setenv("PIX_KEY", "test@example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8060 {
		t.Errorf("Port = %d, want 8060", cfg.Port)
	}
	if cfg.QRSize != 512 {
		t.Errorf("QRSize = %d, want 512", cfg.QRSize)
	}
	if cfg.Merchant.Key != "test@example.com" {
		t.Errorf("Merchant.Key = %q, want env value", cfg.Merchant.Key)
	}
}

func TestLoadFileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
port: 9000
log_level: debug
merchant:
  key: file@example.com
  name: Loja do Arquivo
  city: Sao Paulo
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PIX_MERCHANT_NAME", "Loja do Ambiente")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want file value 9000", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Merchant.Key != "file@example.com" {
		t.Errorf("Merchant.Key = %q, want file value", cfg.Merchant.Key)
	}
	if cfg.Merchant.Name != "Loja do Ambiente" {
		t.Errorf("Merchant.Name = %q, want env override", cfg.Merchant.Name)
	}
}

func TestLoadRequiresKey(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() without a merchant key should fail")
	}
}
