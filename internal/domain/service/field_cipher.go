package service

import "errors"

// ErrDecryptionFailed is returned for any integrity or authentication failure:
// wrong key, corrupted ciphertext, or truncated input. Callers substitute
// EncryptedPlaceholder in responses and log the failure server-side; it is
// never fatal to a request.
var ErrDecryptionFailed = errors.New("decryption failed")

// EncryptedPlaceholder is displayed in place of a field that could not be
// decrypted.
const EncryptedPlaceholder = "[ENCRYPTED]"

// FieldCipher encrypts and decrypts a single sensitive text field with a
// process-lifetime symmetric key derived once at startup. Changing the key
// (passphrase or salt) invalidates all previously encrypted data irrecoverably.
type FieldCipher interface {
	// Encrypt returns an authenticated, text-encoded ciphertext.
	// Empty plaintext maps to empty ciphertext by definition, not encryption.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt under the same key.
	// Returns ErrDecryptionFailed on any tampering or key mismatch.
	Decrypt(ciphertext string) (string, error)
}
