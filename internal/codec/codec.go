// Package codec implements the compact binary encoding shared by the policy
// and database records: uvarint-prefixed strings, little-endian fixed-width
// integers, count-prefixed collections, and uvarint discriminants for tagged
// variants. The codec never touches the filesystem; it is driven by the
// callers that seal and open envelope blobs.
package codec

import (
	"encoding/binary"
	"errors"
)

// ErrDecode indicates a record's byte encoding is malformed: truncated,
// carrying trailing garbage, or holding an out-of-range value.
var ErrDecode = errors.New("malformed record encoding")

// Encoder builds a record encoding in memory. Writes are infallible; the
// result is retrieved with Bytes.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// PutUvarint appends v in unsigned varint form. Used for lengths, element
// counts, and variant discriminants.
func (e *Encoder) PutUvarint(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

// PutUint64 appends v as a fixed-width little-endian integer.
func (e *Encoder) PutUint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// PutString appends s as a uvarint length followed by its bytes.
func (e *Encoder) PutString(s string) {
	e.PutUvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// PutRaw appends b verbatim. The decoder must know the width from context.
func (e *Encoder) PutRaw(b []byte) {
	e.buf = append(e.buf, b...)
}

// Bytes returns the accumulated encoding.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Decoder consumes a record encoding produced by Encoder.
type Decoder struct {
	buf []byte
	off int
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (d *Decoder) remaining() int {
	return len(d.buf) - d.off
}

// Uvarint reads one unsigned varint.
func (d *Decoder) Uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 {
		return 0, ErrDecode
	}
	d.off += n
	return v, nil
}

// Uint64 reads one fixed-width little-endian integer.
func (d *Decoder) Uint64() (uint64, error) {
	if d.remaining() < 8 {
		return 0, ErrDecode
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v, nil
}

// String reads one length-prefixed string.
func (d *Decoder) String() (string, error) {
	n, err := d.Uvarint()
	if err != nil {
		return "", err
	}
	if n > uint64(d.remaining()) {
		return "", ErrDecode
	}
	s := string(d.buf[d.off : d.off+int(n)])
	d.off += int(n)
	return s, nil
}

// Raw reads exactly n bytes and returns a copy.
func (d *Decoder) Raw(n int) ([]byte, error) {
	if n < 0 || n > d.remaining() {
		return nil, ErrDecode
	}
	out := make([]byte, n)
	copy(out, d.buf[d.off:])
	d.off += n
	return out, nil
}

// Finish reports ErrDecode if any input bytes were left unconsumed.
func (d *Decoder) Finish() error {
	if d.remaining() != 0 {
		return ErrDecode
	}
	return nil
}
