package envelope

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"
)

// nonceCounter is a 128-bit frame counter. The cipher nonce is its low 96
// bits; the full value is persisted after the ciphertext so the next save to
// the same file can continue the sequence.
type nonceCounter struct {
	hi, lo uint64
}

// next advances the counter by one. Once the value no longer fits the
// cipher's 96-bit nonce it wraps back to 1; 0 is never reused for a frame.
func (c *nonceCounter) next() {
	c.lo++
	if c.lo == 0 {
		c.hi++
	}
	if c.hi >= 1<<32 {
		c.hi, c.lo = 0, 1
	}
}

// aeadNonce returns the low 12 bytes of the counter's little-endian form.
func (c nonceCounter) aeadNonce() []byte {
	buf := make([]byte, chacha20poly1305.NonceSize)
	binary.LittleEndian.PutUint64(buf[0:8], c.lo)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c.hi))
	return buf
}

// trailer returns the 16-byte big-endian form written after the ciphertext.
func (c nonceCounter) trailer() []byte {
	buf := make([]byte, trailerSize)
	binary.BigEndian.PutUint64(buf[0:8], c.hi)
	binary.BigEndian.PutUint64(buf[8:16], c.lo)
	return buf
}

func nonceFromTrailer(b []byte) nonceCounter {
	return nonceCounter{
		hi: binary.BigEndian.Uint64(b[0:8]),
		lo: binary.BigEndian.Uint64(b[8:16]),
	}
}
