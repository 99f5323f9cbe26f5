package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// NonceSize is the length of the random nonce prepended to every sealed file.
	NonceSize = 24

	// Overhead is the number of bytes Seal adds on top of the plaintext.
	Overhead = NonceSize + secretbox.Overhead
)

// Seal encrypts and authenticates plaintext under key. The returned blob is
// the nonce followed by the secretbox output.
func Seal(key Key, plaintext []byte) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	k := [KeySize]byte(key)
	return secretbox.Seal(nonce[:], plaintext, &nonce, &k), nil
}

// Open verifies and decrypts a blob produced by Seal. It returns
// ErrDecryptFailed for a wrong key, a truncated blob, or any modified byte.
func Open(key Key, blob []byte) ([]byte, error) {
	if len(blob) < Overhead {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, shorter than the %d byte minimum",
			kerrors.ErrDecryptFailed, len(blob), Overhead)
	}

	var nonce [NonceSize]byte
	copy(nonce[:], blob[:NonceSize])

	k := [KeySize]byte(key)
	plaintext, ok := secretbox.Open(nil, blob[NonceSize:], &nonce, &k)
	if !ok {
		return nil, fmt.Errorf("%w: authentication failed", kerrors.ErrDecryptFailed)
	}
	return plaintext, nil
}
