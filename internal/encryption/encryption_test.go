package encryption_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"jt-go/internal/config"
	"jt-go/internal/encryption"
)

func TestTestEncryptor(t *testing.T) {
	t.Run("round-trips data through the header", func(t *testing.T) {
		enc := encryption.NewTestEncryptor()

		plaintext := `{"preferences":"{}"}`
		var ciphertext bytes.Buffer
		if err := enc.Encrypt(strings.NewReader(plaintext), &ciphertext); err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if ciphertext.String() == plaintext {
			t.Fatal("ciphertext equals plaintext")
		}

		ctx, err := enc.Unlock("any")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}

		var decrypted bytes.Buffer
		if err := ctx.Decrypt(&ciphertext, &decrypted); err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if decrypted.String() != plaintext {
			t.Errorf("Decrypt() = %q, want %q", decrypted.String(), plaintext)
		}
	})

	t.Run("rejects data without the header", func(t *testing.T) {
		ctx, err := encryption.NewTestEncryptor().Unlock("any")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}

		var out bytes.Buffer
		if err := ctx.Decrypt(strings.NewReader("plain data without header"), &out); err == nil {
			t.Error("Decrypt() expected error for missing header")
		}
	})
}

func TestAgeEncryptor(t *testing.T) {
	setup := func(t *testing.T) *encryption.AgeEncryptor {
		t.Helper()
		dir := t.TempDir()
		enc := encryption.NewAgeEncryptor(config.EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(dir, "keys", "jt.pub"),
			PrivateKeyPath: filepath.Join(dir, "keys", "jt.key"),
		})
		if err := enc.Setup("correct horse"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		return enc
	}

	t.Run("reports configured only after setup", func(t *testing.T) {
		enc := encryption.NewAgeEncryptor(config.EncryptionConfig{
			PublicKeyPath:  filepath.Join(t.TempDir(), "jt.pub"),
			PrivateKeyPath: filepath.Join(t.TempDir(), "jt.key"),
		})
		if enc.IsConfigured() {
			t.Error("IsConfigured() = true before setup")
		}

		if configured := setup(t); !configured.IsConfigured() {
			t.Error("IsConfigured() = false after setup")
		}
	})

	t.Run("encrypt then unlock and decrypt", func(t *testing.T) {
		enc := setup(t)

		plaintext := "digest contents"
		var ciphertext bytes.Buffer
		if err := enc.Encrypt(strings.NewReader(plaintext), &ciphertext); err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if bytes.Contains(ciphertext.Bytes(), []byte(plaintext)) {
			t.Fatal("ciphertext contains plaintext")
		}

		ctx, err := enc.Unlock("correct horse")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}

		var decrypted bytes.Buffer
		if err := ctx.Decrypt(&ciphertext, &decrypted); err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if decrypted.String() != plaintext {
			t.Errorf("Decrypt() = %q, want %q", decrypted.String(), plaintext)
		}
	})

	t.Run("rejects the wrong passphrase", func(t *testing.T) {
		enc := setup(t)

		if _, err := enc.Unlock("wrong"); err == nil {
			t.Error("Unlock() expected error for wrong passphrase")
		}
	})
}

func TestNewEncryptorFromConfig(t *testing.T) {
	t.Run("defaults to age", func(t *testing.T) {
		enc, err := encryption.NewEncryptorFromConfig(config.EncryptionConfig{})
		if err != nil {
			t.Fatalf("NewEncryptorFromConfig() error = %v", err)
		}
		if _, ok := enc.(*encryption.AgeEncryptor); !ok {
			t.Errorf("got %T, want *encryption.AgeEncryptor", enc)
		}
	})

	t.Run("test type", func(t *testing.T) {
		enc, err := encryption.NewEncryptorFromConfig(config.EncryptionConfig{Type: "test"})
		if err != nil {
			t.Fatalf("NewEncryptorFromConfig() error = %v", err)
		}
		if _, ok := enc.(*encryption.TestEncryptor); !ok {
			t.Errorf("got %T, want *encryption.TestEncryptor", enc)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := encryption.NewEncryptorFromConfig(config.EncryptionConfig{Type: "rot13"}); err == nil {
			t.Error("NewEncryptorFromConfig() expected error for unknown type")
		}
	})
}
