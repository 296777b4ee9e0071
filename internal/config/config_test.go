package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		ProfileID:   "test-profile-abc",
		BaseDir:     "/home/user/.local/share/jt",
		LogDir:      "/home/user/.local/share/jt/log",
		CatalogPath: "/home/user/.local/share/jt/catalog.json",
		Vaults: []VaultConfig{
			{Type: "filesystem", Name: "local", FSVaultRoot: "/backup/vault"},
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/jt/keys/jt.pub",
			PrivateKeyPath: "/home/user/.local/share/jt/keys/jt.key",
		},
		Store: StoreConfig{Type: "sqlite", DataDir: "/home/user/.local/share/jt/data"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.ProfileID != original.ProfileID {
		t.Errorf("ProfileID = %q, want %q", got.ProfileID, original.ProfileID)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.CatalogPath != original.CatalogPath {
		t.Errorf("CatalogPath = %q, want %q", got.CatalogPath, original.CatalogPath)
	}
	if len(got.Vaults) != 1 {
		t.Fatalf("len(Vaults) = %d, want 1", len(got.Vaults))
	}
	if got.Vaults[0].Type != "filesystem" {
		t.Errorf("Vault.Type = %q, want %q", got.Vaults[0].Type, "filesystem")
	}
	if got.Vaults[0].FSVaultRoot != "/backup/vault" {
		t.Errorf("Vault.FSVaultRoot = %q, want %q", got.Vaults[0].FSVaultRoot, "/backup/vault")
	}
	if got.Encryption.PublicKeyPath != original.Encryption.PublicKeyPath {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", got.Encryption.PublicKeyPath, original.Encryption.PublicKeyPath)
	}
	if got.Store.Type != "sqlite" {
		t.Errorf("Store.Type = %q, want %q", got.Store.Type, "sqlite")
	}
	if got.Store.DataDir != original.Store.DataDir {
		t.Errorf("Store.DataDir = %q, want %q", got.Store.DataDir, original.Store.DataDir)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("profile-1", "/data/jt")

	if cfg.ProfileID != "profile-1" {
		t.Errorf("ProfileID = %q, want profile-1", cfg.ProfileID)
	}
	if cfg.LogDir != filepath.Join("/data/jt", "log") {
		t.Errorf("LogDir = %q, want base-relative log dir", cfg.LogDir)
	}
	if cfg.CatalogPath != filepath.Join("/data/jt", "catalog.json") {
		t.Errorf("CatalogPath = %q, want base-relative catalog path", cfg.CatalogPath)
	}
	if cfg.Store.Type != "sqlite" {
		t.Errorf("Store.Type = %q, want sqlite", cfg.Store.Type)
	}
	if cfg.Encryption.PublicKeyPath == "" || cfg.Encryption.PrivateKeyPath == "" {
		t.Error("encryption key paths not defaulted")
	}
}

func TestInit(t *testing.T) {
	t.Run("writes a new config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "jt.toml")
		cfg := NewConfig("profile-1", "/data/jt")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.ProfileID != "profile-1" {
			t.Errorf("ProfileID = %q, want profile-1", got.ProfileID)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jt.toml")
		if err := os.WriteFile(path, []byte("profile_id = \"existing\"\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := Init(path, NewConfig("new", "/data/jt")); err == nil {
			t.Error("Init() expected error for existing config")
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	if _, err := ReadFromFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("ReadFromFile() expected error for missing file")
	}
}
