package app

import (
	"bytes"
	"fmt"
	"os"

	"jt-go/internal/track"
)

// ExportDigest writes today's digest as plain text to outPath. When
// encrypt is true the file is age-encrypted with the public key.
func (a *JTApp) ExportDigest(outPath string, encrypt bool) error {
	text, ok, err := a.DigestText()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no digest generated today: run `jt digest generate` first")
	}

	data := []byte(text)
	if encrypt {
		if !a.encryptor.IsConfigured() {
			return fmt.Errorf("encryption keys not set up: run `jt crypt init` first")
		}
		var buf bytes.Buffer
		if err := a.encryptor.Encrypt(bytes.NewReader(data), &buf); err != nil {
			return fmt.Errorf("encrypting digest: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing digest export: %w", err)
	}
	return nil
}

// DigestMailto builds a mailto draft URL for today's digest. The
// second return is false when today has no snapshot yet.
func (a *JTApp) DigestMailto() (string, bool, error) {
	text, ok, err := a.DigestText()
	if err != nil || !ok {
		return "", ok, err
	}
	return track.MailtoDraft(text), true, nil
}
