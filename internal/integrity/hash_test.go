package integrity

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
)

func newSecret(t *testing.T) []byte {
	t.Helper()
	secret := make([]byte, 192)
	if _, err := rand.Read(secret); err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}
	return secret
}

func TestFileHashDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("stable content"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	secret := newSecret(t)

	h1, err := FileHash(secret, path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	h2, err := FileHash(secret, path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	if h1 != h2 {
		t.Errorf("Hash not deterministic: %x vs %x", h1, h2)
	}
}

func TestFileHashKeyedBySecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("same content"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	h1, err := FileHash(newSecret(t), path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	h2, err := FileHash(newSecret(t), path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	if h1 == h2 {
		t.Errorf("Different secrets produced the same hash %x", h1)
	}
}

func TestFileHashSensesContentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	secret := newSecret(t)

	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	h1, err := FileHash(secret, path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("HELLO"), 0644); err != nil {
		t.Fatalf("Failed to rewrite file: %v", err)
	}
	h2, err := FileHash(secret, path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}

	if h1 == h2 {
		t.Errorf("Hash unchanged after content change")
	}
}

func TestFileHashStreamsLargeFile(t *testing.T) {
	// Content larger than the streaming buffer, not a multiple of its size.
	path := filepath.Join(t.TempDir(), "big")
	content := make([]byte, hashBufSize*3+17)
	if _, err := rand.Read(content); err != nil {
		t.Fatalf("Failed to generate content: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	secret := newSecret(t)

	h1, err := FileHash(secret, path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	h2, err := FileHash(secret, path)
	if err != nil {
		t.Fatalf("FileHash failed: %v", err)
	}
	if h1 != h2 {
		t.Errorf("Streaming hash not deterministic")
	}
}

func TestFileHashMissingFile(t *testing.T) {
	if _, err := FileHash(newSecret(t), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Expected error for missing file")
	}
}
