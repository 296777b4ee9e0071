package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// storeSnapshot is the serialized form of the whole persisted store,
// as uploaded to the vault by Backup.
type storeSnapshot struct {
	ProfileID string            `json:"profileId"`
	CreatedAt time.Time         `json:"createdAt"`
	Pairs     map[string]string `json:"pairs"`
}

// Backup serializes the entire store (preferences, status ledger,
// saved-set, digest snapshots) and uploads it to the configured vault.
// When encrypt is true the payload is age-encrypted with the public
// key first. Returns the snapshot version, which is the upload time in
// Unix seconds; versions only move forward under a single writer.
func (a *JTApp) Backup(encrypt bool) (int64, error) {
	if a.vault == nil {
		return 0, fmt.Errorf("no vaults configured")
	}
	if encrypt && !a.encryptor.IsConfigured() {
		return 0, fmt.Errorf("encryption keys not set up: run `jt crypt init` first")
	}

	pairs, err := a.store.All()
	if err != nil {
		return 0, fmt.Errorf("reading store: %w", err)
	}

	now := a.clock.Now()
	payload, err := json.Marshal(storeSnapshot{
		ProfileID: a.cfg.ProfileID,
		CreatedAt: now,
		Pairs:     pairs,
	})
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}

	if encrypt {
		var buf bytes.Buffer
		if err := a.encryptor.Encrypt(bytes.NewReader(payload), &buf); err != nil {
			return 0, fmt.Errorf("encrypting snapshot: %w", err)
		}
		payload = buf.Bytes()
	}

	version := now.Unix()
	if err := a.vault.PutSnapshot(a.cfg.ProfileID, bytes.NewReader(payload), int64(len(payload)), version); err != nil {
		return 0, fmt.Errorf("uploading snapshot: %w", err)
	}
	return version, nil
}

// Restore downloads the vault snapshot for this profile and replaces
// the entire store with its contents. An encrypted snapshot needs the
// passphrase to unlock the private key; for a plaintext snapshot the
// passphrase is ignored.
func (a *JTApp) Restore(passphrase string) error {
	if a.vault == nil {
		return fmt.Errorf("no vaults configured")
	}

	var buf bytes.Buffer
	if err := a.vault.GetSnapshot(a.cfg.ProfileID, &buf); err != nil {
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	data := buf.Bytes()

	// A plaintext snapshot parses directly; anything else is assumed
	// to be ciphertext.
	var snap storeSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		dc, err := a.encryptor.Unlock(passphrase)
		if err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}
		var plain bytes.Buffer
		if err := dc.Decrypt(bytes.NewReader(data), &plain); err != nil {
			return fmt.Errorf("decrypting snapshot: %w", err)
		}
		if err := json.Unmarshal(plain.Bytes(), &snap); err != nil {
			return fmt.Errorf("parsing snapshot: %w", err)
		}
	}

	if err := a.store.Replace(snap.Pairs); err != nil {
		return fmt.Errorf("replacing store contents: %w", err)
	}
	return nil
}
