// Package errors provides typed error values for the triflow store.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. The CLI
// layer maps each sentinel to a single human-readable message.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: the encryption key is missing or unusable (ErrKeyCorrupt)
//   - Payload errors: a collection file cannot be opened (ErrDecryptFailed,
//     ErrMalformedPayload)
//   - Record errors: a caller request cannot be applied (ErrRecordNotFound,
//     ErrValidation)
//   - Storage errors: the filesystem refused an operation (ErrStorageUnavailable)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(data) != secrets.KeySize {
//	    return Key{}, errors.ErrKeyCorrupt
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.CompleteTask(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrRecordNotFound) {
//	    // Show user-friendly message and carry on
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: reading %s: %v", errors.ErrStorageUnavailable, path, err)
//
// ErrDecryptFailed and a missing collection file are never conflated: a
// missing file loads as an empty collection, a file that fails
// authentication is always reported.
package errors
