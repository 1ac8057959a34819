package envelope

import "errors"

var (
	// ErrWrongPassphraseOrTampered indicates the AEAD open failed. A wrong
	// passphrase and a modified file are deliberately indistinguishable.
	ErrWrongPassphraseOrTampered = errors.New("wrong passphrase or file has been tampered with")

	// ErrKeyCreationFailed indicates the cipher rejected the derived key.
	ErrKeyCreationFailed = errors.New("could not create encryption key")

	// ErrEncryptionFailed indicates sealing the plaintext failed.
	ErrEncryptionFailed = errors.New("could not encrypt data")

	// ErrCiphertextTruncated indicates the file is too short to carry the
	// trailing nonce.
	ErrCiphertextTruncated = errors.New("ciphertext file is truncated")

	// ErrCannotReuseExistingFile indicates the nonce could not be recovered
	// from an existing target file. Overwriting anyway could repeat a nonce
	// under the same key, so the save is refused and the file left intact.
	ErrCannotReuseExistingFile = errors.New("cannot recover nonce from existing file, refusing to overwrite")
)
