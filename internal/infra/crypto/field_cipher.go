// Package crypto implements field-level encryption for sensitive patient data.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"mechalung/config"
	"mechalung/internal/domain/service"
)

const (
	// kdfIterations is deliberately high; key derivation happens once per
	// process, not per request.
	kdfIterations = 100_000
	keyLength     = 32
)

// aesFieldCipher implements service.FieldCipher with AES-256-GCM under a key
// derived once from the configured passphrase and salt. The AEAD is the only
// state and is read-only, so concurrent use needs no locking.
type aesFieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher derives the process-wide field key and builds the cipher.
// Config validation guarantees the salt is present and base64; a changed salt
// or passphrase makes all previously encrypted fields undecryptable.
func NewFieldCipher(cfg *config.Config) (service.FieldCipher, error) {
	if cfg.Encryption == nil || cfg.Encryption.Passphrase == "" || cfg.Encryption.Salt == "" {
		return nil, errors.New("encryption passphrase and salt must be provided")
	}

	salt, err := base64.StdEncoding.DecodeString(cfg.Encryption.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode encryption salt")
	}

	key := pbkdf2.Key([]byte(cfg.Encryption.Passphrase), salt, kdfIterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return &aesFieldCipher{aead: aead}, nil
}

// Encrypt seals the plaintext with a fresh random nonce. The output is
// base64(nonce || ciphertext || tag); the nonce prefix makes the blob
// self-describing. Empty plaintext maps to empty ciphertext without touching
// the cipher.
func (c *aesFieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Every failure mode, from bad base64 to a GCM
// authentication failure, collapses into service.ErrDecryptionFailed so
// callers cannot leak why a blob was rejected.
func (c *aesFieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", service.ErrDecryptionFailed
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", service.ErrDecryptionFailed
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", service.ErrDecryptionFailed
	}

	return string(plaintext), nil
}
