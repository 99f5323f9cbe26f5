package secrets

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateKey_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "key.key")
	ks := NewKeyStore(path)

	key, err := ks.GetOrCreateKey()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, key[:], data)
	assert.NotEqual(t, Key{}, key, "key must not be all zeros")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, KeyFileMode, info.Mode().Perm())
	}
}

func TestGetOrCreateKey_Stable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.key")

	first, err := NewKeyStore(path).GetOrCreateKey()
	require.NoError(t, err)

	ks := NewKeyStore(path)
	second, err := ks.GetOrCreateKey()
	require.NoError(t, err)
	third, err := ks.GetOrCreateKey()
	require.NoError(t, err)

	assert.Equal(t, first, second, "a fresh KeyStore must read the persisted key")
	assert.Equal(t, second, third)
}

func TestGetOrCreateKey_NeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.key")
	existing := make([]byte, KeySize)
	for i := range existing {
		existing[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, existing, 0600))

	key, err := NewKeyStore(path).GetOrCreateKey()
	require.NoError(t, err)
	assert.Equal(t, existing, key[:])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, existing, data)
}

func TestGetOrCreateKey_WrongLength(t *testing.T) {
	for _, size := range []int{0, 16, KeySize - 1, KeySize + 1, 44} {
		path := filepath.Join(t.TempDir(), "key.key")
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0600))

		_, err := NewKeyStore(path).GetOrCreateKey()
		assert.ErrorIs(t, err, kerrors.ErrKeyCorrupt, "size %d", size)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, data, size, "corrupt key file must be left alone")
	}
}

func TestCreateKey_AlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.key")
	ks := NewKeyStore(path)

	original, err := ks.CreateKey()
	require.NoError(t, err)

	_, err = NewKeyStore(path).CreateKey()
	assert.ErrorIs(t, err, kerrors.ErrKeyAlreadyExists)

	got, err := NewKeyStore(path).LoadKey()
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestLoadKey_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.key")

	_, err := NewKeyStore(path).LoadKey()
	assert.ErrorIs(t, err, kerrors.ErrKeyNotFound)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "LoadKey must not create a key")
}

func TestGetOrCreateKey_UnreadablePath(t *testing.T) {
	// A directory where the key file should be cannot be read as a key.
	path := filepath.Join(t.TempDir(), "key.key")
	require.NoError(t, os.Mkdir(path, 0700))

	_, err := NewKeyStore(path).GetOrCreateKey()
	assert.ErrorIs(t, err, kerrors.ErrStorageUnavailable)
}

func TestGetOrCreateKey_ConcurrentFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.key")

	const workers = 8
	keys := make([]Key, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Separate stores model separate processes sharing one path.
			keys[i], errs[i] = NewKeyStore(path).GetOrCreateKey()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, keys[0], keys[i], "all racers must agree on one key")
	}

	persisted, err := NewKeyStore(path).LoadKey()
	require.NoError(t, err)
	assert.Equal(t, keys[0], persisted)
}
