package secrets

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"sync"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/utils"
)

// KeySize is the key length required by secretbox.
const KeySize = 32

// KeyFileMode is the permission the key file is created with.
const KeyFileMode os.FileMode = 0600

// Key is the symmetric key shared by every collection.
type Key [KeySize]byte

// KeyStore loads or creates the key stored at a single path. The first
// successful load is cached, so one KeyStore returns the same key for the
// rest of the process. A KeyStore is safe for concurrent use.
type KeyStore struct {
	path string

	mu     sync.Mutex
	cached *Key
}

// NewKeyStore returns a KeyStore for the key file at path. Nothing is read
// until the first call that needs the key.
func NewKeyStore(path string) *KeyStore {
	return &KeyStore{path: path}
}

// Path returns the key file location.
func (ks *KeyStore) Path() string {
	return ks.path
}

// GetOrCreateKey returns the key at the store's path, creating it if the
// file does not exist. An existing file is never overwritten.
//
// Returns ErrKeyCorrupt if the file exists with the wrong length.
// Returns ErrStorageUnavailable if the file cannot be read or written.
func (ks *KeyStore) GetOrCreateKey() (Key, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.cached != nil {
		return *ks.cached, nil
	}

	key, err := readKey(ks.path)
	if errors.Is(err, kerrors.ErrKeyNotFound) {
		key, err = createKey(ks.path)
		if errors.Is(err, kerrors.ErrKeyAlreadyExists) {
			// Another process created the key between our read and create.
			key, err = readKey(ks.path)
		}
	}
	if err != nil {
		return Key{}, err
	}

	ks.cached = &key
	return key, nil
}

// LoadKey returns the existing key without creating one.
//
// Returns ErrKeyNotFound if the key file does not exist.
// Returns ErrKeyCorrupt if the file has the wrong length.
func (ks *KeyStore) LoadKey() (Key, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.cached != nil {
		return *ks.cached, nil
	}

	key, err := readKey(ks.path)
	if err != nil {
		return Key{}, err
	}
	ks.cached = &key
	return key, nil
}

// CreateKey generates a new key and writes it to the store's path.
//
// Returns ErrKeyAlreadyExists if the file already exists; the existing key
// is left untouched.
func (ks *KeyStore) CreateKey() (Key, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	key, err := createKey(ks.path)
	if err != nil {
		return Key{}, err
	}
	ks.cached = &key
	return key, nil
}

// GenerateKey returns a new random key without persisting it.
func GenerateKey() (Key, error) {
	var key Key
	if _, err := rand.Read(key[:]); err != nil {
		return Key{}, fmt.Errorf("failed to generate symmetric key: %w", err)
	}
	return key, nil
}

func readKey(path string) (Key, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Key{}, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, path)
	}
	if err != nil {
		return Key{}, fmt.Errorf("%w: reading key file %s: %v", kerrors.ErrStorageUnavailable, path, err)
	}
	if len(data) != KeySize {
		return Key{}, fmt.Errorf("%w: %s is %d bytes, expected %d", kerrors.ErrKeyCorrupt, path, len(data), KeySize)
	}

	var key Key
	copy(key[:], data)
	return key, nil
}

func createKey(path string) (Key, error) {
	key, err := GenerateKey()
	if err != nil {
		return Key{}, err
	}

	if err := utils.CreateFileExclusive(path, key[:], KeyFileMode); err != nil {
		if os.IsExist(err) {
			return Key{}, fmt.Errorf("%w: %s", kerrors.ErrKeyAlreadyExists, path)
		}
		return Key{}, fmt.Errorf("%w: writing key file %s: %v", kerrors.ErrStorageUnavailable, path, err)
	}
	return key, nil
}
