// Package envelope seals and opens the authenticated-encrypted blobs that
// hold the tripwirs policy and integrity database.
//
// A blob is laid out as ciphertext || tag || nonce, where the trailing 16
// bytes are the big-endian frame counter used for this file's single AEAD
// frame. On every save to an existing file the previous counter is recovered
// and authenticated first, so overwriting under the same passphrase never
// repeats a nonce.
package envelope

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// trailerSize is the length of the big-endian nonce suffix.
const trailerSize = 16

// fitKey fits the passphrase to the ChaCha20-Poly1305 key length: shorter
// passphrases are extended by repeatedly appending a prefix of themselves,
// longer ones are truncated. This matches the established on-disk format
// bit-for-bit. It is NOT a KDF and performs no stretching; see the README
// for the consequences.
func fitKey(passphrase string) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrKeyCreationFailed
	}

	key := make([]byte, 0, chacha20poly1305.KeySize)
	key = append(key, passphrase...)
	if len(key) >= chacha20poly1305.KeySize {
		return key[:chacha20poly1305.KeySize], nil
	}

	origLen := len(key)
	for len(key) < chacha20poly1305.KeySize {
		n := origLen
		if rem := chacha20poly1305.KeySize - len(key); n > rem {
			n = rem
		}
		key = append(key, key[:n]...)
	}

	return key, nil
}

// Seal encrypts plaintext under the passphrase and writes it to path,
// replacing any existing file. If path already exists, its nonce trailer is
// recovered and authenticated first; failure to do so aborts the save with
// ErrCannotReuseExistingFile and leaves the file untouched.
func Seal(plaintext []byte, path, passphrase string) error {
	key, err := fitKey(passphrase)
	if err != nil {
		return err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyCreationFailed, err)
	}

	ctr, err := nextNonce(path, aead)
	if err != nil {
		return err
	}

	out := aead.Seal(nil, ctr.aeadNonce(), plaintext, nil)
	out = append(out, ctr.trailer()...)

	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Open reads and decrypts the blob at path. Authentication failure surfaces
// as ErrWrongPassphraseOrTampered regardless of cause.
func Open(path, passphrase string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(data) < trailerSize {
		return nil, ErrCiphertextTruncated
	}

	key, err := fitKey(passphrase)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyCreationFailed, err)
	}

	ctr := nonceFromTrailer(data[len(data)-trailerSize:])
	plaintext, err := aead.Open(nil, ctr.aeadNonce(), data[:len(data)-trailerSize], nil)
	if err != nil {
		return nil, ErrWrongPassphraseOrTampered
	}

	return plaintext, nil
}

// nextNonce determines the frame counter for the next seal to path. A fresh
// target starts the sequence at 1. An existing target must authenticate
// under its own trailer before its counter is advanced and reused.
func nextNonce(path string, aead cipher.AEAD) (nonceCounter, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		var ctr nonceCounter
		ctr.next()
		return ctr, nil
	}
	if err != nil {
		return nonceCounter{}, fmt.Errorf("failed to read existing %s: %w", path, err)
	}

	if len(data) < trailerSize {
		return nonceCounter{}, ErrCannotReuseExistingFile
	}

	ctr := nonceFromTrailer(data[len(data)-trailerSize:])
	if _, err := aead.Open(nil, ctr.aeadNonce(), data[:len(data)-trailerSize], nil); err != nil {
		return nonceCounter{}, ErrCannotReuseExistingFile
	}

	ctr.next()
	return ctr, nil
}
