package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"mechalung/config"
	"mechalung/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T, passphrase, salt string) service.FieldCipher {
	cfg := &config.Config{
		Encryption: &config.EncryptionConfig{
			Passphrase: passphrase,
			Salt:       base64.StdEncoding.EncodeToString([]byte(salt)),
		},
	}

	cipher, err := NewFieldCipher(cfg)
	require.NoError(t, err)

	return cipher
}

func TestFieldCipher_RoundTrip(t *testing.T) {
	cipher := newTestCipher(t, "test-passphrase", "0123456789abcdef")

	plaintexts := []string{
		"John",
		"a",
		strings.Repeat("long name ", 100),
		"名前 with ünïcödé ❤",
		" leading and trailing ",
	}

	for _, plaintext := range plaintexts {
		ciphertext, err := cipher.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, ciphertext)

		decrypted, err := cipher.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestFieldCipher_EmptyStringPassthrough(t *testing.T) {
	cipher := newTestCipher(t, "test-passphrase", "0123456789abcdef")

	ciphertext, err := cipher.Encrypt("")
	assert.NoError(t, err)
	assert.Empty(t, ciphertext)

	plaintext, err := cipher.Decrypt("")
	assert.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestFieldCipher_NonDeterministicNonce(t *testing.T) {
	cipher := newTestCipher(t, "test-passphrase", "0123456789abcdef")

	first, err := cipher.Encrypt("John")
	require.NoError(t, err)
	second, err := cipher.Encrypt("John")
	require.NoError(t, err)

	// Fresh nonce per call, so identical plaintexts yield distinct blobs.
	assert.NotEqual(t, first, second)
}

func TestFieldCipher_DifferentSaltCannotDecrypt(t *testing.T) {
	cipherA := newTestCipher(t, "test-passphrase", "0123456789abcdef")
	cipherB := newTestCipher(t, "test-passphrase", "fedcba9876543210")

	ciphertext, err := cipherA.Encrypt("John")
	require.NoError(t, err)

	_, err = cipherB.Decrypt(ciphertext)
	assert.ErrorIs(t, err, service.ErrDecryptionFailed)
}

func TestFieldCipher_DifferentPassphraseCannotDecrypt(t *testing.T) {
	cipherA := newTestCipher(t, "passphrase-one", "0123456789abcdef")
	cipherB := newTestCipher(t, "passphrase-two", "0123456789abcdef")

	ciphertext, err := cipherA.Encrypt("John")
	require.NoError(t, err)

	_, err = cipherB.Decrypt(ciphertext)
	assert.ErrorIs(t, err, service.ErrDecryptionFailed)
}

func TestFieldCipher_CorruptedCiphertext(t *testing.T) {
	cipher := newTestCipher(t, "test-passphrase", "0123456789abcdef")

	ciphertext, err := cipher.Encrypt("John")
	require.NoError(t, err)

	// Flip a byte inside the sealed blob.
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = cipher.Decrypt(tampered)
	assert.ErrorIs(t, err, service.ErrDecryptionFailed)
}

func TestFieldCipher_MalformedInput(t *testing.T) {
	cipher := newTestCipher(t, "test-passphrase", "0123456789abcdef")

	for _, ciphertext := range []string{
		"not base64 at all!!!",
		base64.StdEncoding.EncodeToString([]byte("short")), // shorter than a nonce
	} {
		_, err := cipher.Decrypt(ciphertext)
		assert.ErrorIs(t, err, service.ErrDecryptionFailed)
	}
}

func TestNewFieldCipher_MissingKeyMaterial(t *testing.T) {
	_, err := NewFieldCipher(&config.Config{})
	assert.Error(t, err)

	_, err = NewFieldCipher(&config.Config{
		Encryption: &config.EncryptionConfig{Passphrase: "p", Salt: "%%% not base64"},
	})
	assert.Error(t, err)
}
