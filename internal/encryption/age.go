package encryption

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"

	"jt-go/internal/config"
	"jt-go/internal/track"
)

// AgeEncryptor implements track.Encryptor with filippo.io/age X25519
// keys. The recipient (public) key sits on disk in plaintext so store
// snapshots and digest exports can be encrypted without a prompt; the
// identity (private) key is itself age-encrypted under the user's
// passphrase via a scrypt recipient and only ever unlocked in memory.
type AgeEncryptor struct {
	recipientPath string
	identityPath  string
}

var _ track.Encryptor = (*AgeEncryptor)(nil)

// NewAgeEncryptor creates an AgeEncryptor from configuration.
func NewAgeEncryptor(cfg config.EncryptionConfig) *AgeEncryptor {
	return &AgeEncryptor{
		recipientPath: cfg.PublicKeyPath,
		identityPath:  cfg.PrivateKeyPath,
	}
}

// Setup generates a fresh X25519 key pair and writes both halves:
// the recipient key in plaintext, the identity key passphrase-wrapped.
// Re-running Setup replaces the pair; snapshots encrypted to the old
// recipient become unreadable.
func (e *AgeEncryptor) Setup(passphrase string) error {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	for _, p := range []string{e.recipientPath, e.identityPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return fmt.Errorf("creating key directory: %w", err)
		}
	}

	if err := os.WriteFile(e.recipientPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing recipient key: %w", err)
	}

	return e.writeWrappedIdentity(identity, passphrase)
}

// writeWrappedIdentity stores the identity key encrypted under the
// passphrase.
func (e *AgeEncryptor) writeWrappedIdentity(identity *age.X25519Identity, passphrase string) error {
	f, err := os.OpenFile(e.identityPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating identity key file: %w", err)
	}
	defer f.Close()

	wrapper, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	w, err := age.Encrypt(f, wrapper)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(w, identity.String()+"\n"); err != nil {
		return fmt.Errorf("writing wrapped identity key: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing wrapped identity key: %w", err)
	}
	return nil
}

// Encrypt reads plaintext from r and writes age ciphertext to w using
// the on-disk recipient key. No passphrase involved.
func (e *AgeEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	data, err := os.ReadFile(e.recipientPath)
	if err != nil {
		return fmt.Errorf("reading recipient key: %w", err)
	}
	recipients, err := age.ParseRecipients(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing recipient key: %w", err)
	}
	if len(recipients) == 0 {
		return fmt.Errorf("recipient key file is empty")
	}

	enc, err := age.Encrypt(w, recipients[0])
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(enc, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Unlock decrypts the identity key with the passphrase and returns a
// context that can decrypt snapshots and exports for this session.
// A wrong passphrase fails here, before any payload is touched.
func (e *AgeEncryptor) Unlock(passphrase string) (track.DecryptionContext, error) {
	wrapped, err := os.ReadFile(e.identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity key file: %w", err)
	}

	scryptID, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	plain, err := age.Decrypt(bytes.NewReader(wrapped), scryptID)
	if err != nil {
		return nil, fmt.Errorf("unwrapping identity key: %w", err)
	}

	identities, err := age.ParseIdentities(plain)
	if err != nil {
		return nil, fmt.Errorf("parsing identity key: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("no identities in identity key file")
	}

	return &AgeDecryptionContext{identity: identities[0]}, nil
}

// IsConfigured reports whether both key files exist on disk.
func (e *AgeEncryptor) IsConfigured() bool {
	for _, p := range []string{e.recipientPath, e.identityPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// AgeDecryptionContext holds an unlocked age identity in memory.
type AgeDecryptionContext struct {
	identity age.Identity
}

var _ track.DecryptionContext = (*AgeDecryptionContext)(nil)

// Decrypt reads age ciphertext from r and writes plaintext to w.
func (c *AgeDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	dec, err := age.Decrypt(r, c.identity)
	if err != nil {
		return fmt.Errorf("creating decrypted reader: %w", err)
	}
	if _, err := io.Copy(w, dec); err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	return nil
}
