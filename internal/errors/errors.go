package errors

import "errors"

// Key errors indicate the encryption key is missing or unusable.
var (
	// ErrKeyCorrupt indicates the key file exists but has the wrong length.
	// Any operation needing the key must stop until the file is restored or removed.
	ErrKeyCorrupt = errors.New("encryption key file is corrupt")

	// ErrKeyAlreadyExists indicates an exclusive key creation lost to an existing file.
	ErrKeyAlreadyExists = errors.New("encryption key already exists")

	// ErrKeyNotFound indicates the key file does not exist.
	ErrKeyNotFound = errors.New("encryption key not found")
)

// Payload errors indicate a collection file could not be turned back into records.
var (
	// ErrDecryptFailed indicates authentication failed: wrong key, or a
	// truncated, corrupted or tampered file.
	ErrDecryptFailed = errors.New("failed to decrypt collection")

	// ErrMalformedPayload indicates the decrypted bytes are not a JSON array
	// of records of the expected shape.
	ErrMalformedPayload = errors.New("collection payload is malformed")
)

// Record errors indicate a caller request that cannot be applied to a collection.
var (
	// ErrRecordNotFound indicates no record has the requested identifier.
	ErrRecordNotFound = errors.New("record not found")

	// ErrValidation indicates a record failed its shape constraints.
	ErrValidation = errors.New("invalid record")
)

// Storage errors indicate the filesystem refused an operation.
var (
	// ErrStorageUnavailable indicates an I/O failure such as permission
	// denied or a full disk. It is never retried automatically.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Configuration and input errors.
var (
	// ErrConfigInvalid indicates the config file exists but cannot be parsed.
	ErrConfigInvalid = errors.New("configuration is invalid")

	// ErrInvalidDateFormat indicates a date argument is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidFilter indicates a log filter names an unknown collection or
	// an impossible record id.
	ErrInvalidFilter = errors.New("invalid log filter")

	// ErrNoFilesFound indicates there is nothing to read yet, such as an empty audit log.
	ErrNoFilesFound = errors.New("no matching files found")
)
