// Package secrets owns the symmetric key and the authenticated encryption
// used for every collection file.
//
// # Key Management
//
// A single 256-bit key protects all collections. KeyStore reads it from a
// well-known file, or generates it with crypto/rand on first use:
//
//	keys := secrets.NewKeyStore(cfg.KeyPath())
//	key, err := keys.GetOrCreateKey()
//
// The key file holds exactly KeySize raw bytes with no header. It is
// created with 0600 permissions, never rotated and never deleted by this
// package. Removing it makes every existing collection unreadable.
//
// Creation is exclusive: the key is written and synced to a temp file and
// then hard-linked into place, which fails if another process created the
// key first. GetOrCreateKey then reads the winner's key, so two racing
// first runs agree on one key.
//
// # Encryption
//
// Collections are sealed with NaCl secretbox (XSalsa20-Poly1305). The file
// layout is:
//
//	nonce (24 bytes) || tag (16 bytes) || ciphertext
//
// A fresh random nonce is drawn on every Seal, so saving the same
// collection twice produces different bytes. Open verifies the tag before
// returning any plaintext; any modified byte fails with ErrDecryptFailed.
package secrets
