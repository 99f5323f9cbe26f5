package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
	"github.com/PolarWolf314/triflow/internal/secrets"
	"github.com/PolarWolf314/triflow/internal/utils"
)

// FileMode is the permission collection files and exports are written with.
const FileMode os.FileMode = 0600

// Load reads, decrypts and decodes the collection at path. A missing file
// loads as an empty collection.
func Load[T records.Record](path string, key secrets.Key) (*Collection[T], error) {
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewCollection[T](), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrStorageUnavailable, path, err)
	}

	plaintext, err := secrets.Open(key, blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	items, err := Decode[T](plaintext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewCollection(items...), nil
}

// Save encodes every record in c, seals the result and atomically replaces
// the file at path. The previous file survives any failure.
func Save[T records.Record](path string, key secrets.Key, c *Collection[T]) error {
	plaintext, err := Encode(c)
	if err != nil {
		return err
	}

	blob, err := secrets.Seal(key, plaintext)
	if err != nil {
		return err
	}

	if err := utils.WriteFileAtomic(path, blob, FileMode); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrStorageUnavailable, path, err)
	}
	return nil
}

// ExportPlain writes c as indented, unencrypted JSON. The encrypted file is
// not touched.
func ExportPlain[T records.Record](path string, c *Collection[T]) error {
	data, err := json.MarshalIndent(c.Items(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	data = append(data, '\n')

	if err := utils.WriteFileAtomic(path, data, FileMode); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrStorageUnavailable, path, err)
	}
	return nil
}

// Encode returns the plaintext form of c: a compact JSON array of records.
func Encode[T records.Record](c *Collection[T]) ([]byte, error) {
	data, err := json.Marshal(c.Items())
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}

// Decode parses a plaintext payload. Every element must be an object that
// decodes into a valid T, and identifiers must be unique.
func Decode[T records.Record](plaintext []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(plaintext, &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %v", kerrors.ErrMalformedPayload, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON array", kerrors.ErrMalformedPayload)
	}

	items := make([]T, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for i, elem := range raw {
		if !bytes.HasPrefix(bytes.TrimSpace(elem), []byte("{")) {
			return nil, fmt.Errorf("%w: element %d is not an object", kerrors.ErrMalformedPayload, i)
		}

		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", kerrors.ErrMalformedPayload, i, err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", kerrors.ErrMalformedPayload, i, err)
		}
		if seen[rec.RecordID()] {
			return nil, fmt.Errorf("%w: duplicate id %d", kerrors.ErrMalformedPayload, rec.RecordID())
		}
		seen[rec.RecordID()] = true
		items = append(items, rec)
	}
	return items, nil
}

// File binds a collection path to a key.
type File[T records.Record] struct {
	Path string
	Key  secrets.Key
}

// NewFile returns a handle for the collection file at path.
func NewFile[T records.Record](path string, key secrets.Key) *File[T] {
	return &File[T]{Path: path, Key: key}
}

// Load reads the collection. See Load.
func (f *File[T]) Load() (*Collection[T], error) {
	return Load[T](f.Path, f.Key)
}

// Save replaces the collection. See Save.
func (f *File[T]) Save(c *Collection[T]) error {
	return Save(f.Path, f.Key, c)
}

// Exists reports whether the collection file has been written yet.
func (f *File[T]) Exists() (bool, error) {
	ok, err := utils.FileExists(f.Path)
	if err != nil {
		return false, fmt.Errorf("%w: %v", kerrors.ErrStorageUnavailable, err)
	}
	return ok, nil
}

// IsDecodeError reports whether err means the file exists but its contents
// could not be turned back into records.
func IsDecodeError(err error) bool {
	return errors.Is(err, kerrors.ErrDecryptFailed) || errors.Is(err, kerrors.ErrMalformedPayload)
}
