package integrity

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/daschr/tripwirs/internal/codec"
)

func TestDatabaseSaveLoadRoundTrip(t *testing.T) {
	db := Database{
		"/t/a.txt":  {Kind: KindFile, Hash: 0xdeadbeefcafef00d},
		"/t/link":   {Kind: KindSymlink},
		"/t/empty":  {Kind: KindEmptyDir},
		"/t/b.conf": {Kind: KindFile, Hash: 42},
	}

	path := filepath.Join(t.TempDir(), "db")
	if err := db.Save(path, "pass"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadDatabase(path, "pass")
	if err != nil {
		t.Fatalf("LoadDatabase failed: %v", err)
	}
	if !reflect.DeepEqual(got, db) {
		t.Errorf("Round trip mismatch:\ngot  %v\nwant %v", got, db)
	}
}

func TestDatabaseMarshalDeterministic(t *testing.T) {
	db := Database{
		"/z": {Kind: KindSymlink},
		"/a": {Kind: KindFile, Hash: 1},
		"/m": {Kind: KindEmptyDir},
	}
	if !bytes.Equal(db.marshal(), db.marshal()) {
		t.Error("Same database produced different encodings")
	}
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	e := codec.NewEncoder()
	e.PutUvarint(1)
	e.PutString("/x")
	e.PutUvarint(9) // no such node kind

	if _, err := unmarshalDatabase(e.Bytes()); !errors.Is(err, codec.ErrDecode) {
		t.Errorf("Expected ErrDecode, got: %v", err)
	}
}

func TestUnmarshalRejectsDuplicateKey(t *testing.T) {
	e := codec.NewEncoder()
	e.PutUvarint(2)
	e.PutString("/x")
	e.PutUvarint(uint64(KindSymlink))
	e.PutString("/x")
	e.PutUvarint(uint64(KindSymlink))

	if _, err := unmarshalDatabase(e.Bytes()); !errors.Is(err, codec.ErrDecode) {
		t.Errorf("Expected ErrDecode, got: %v", err)
	}
}

func TestUnmarshalRejectsTruncatedRecord(t *testing.T) {
	db := Database{"/a": {Kind: KindFile, Hash: 7}}
	enc := db.marshal()

	if _, err := unmarshalDatabase(enc[:len(enc)-1]); !errors.Is(err, codec.ErrDecode) {
		t.Errorf("Expected ErrDecode, got: %v", err)
	}
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	db := Database{"/a": {Kind: KindEmptyDir}}
	enc := append(db.marshal(), 0x00)

	if _, err := unmarshalDatabase(enc); !errors.Is(err, codec.ErrDecode) {
		t.Errorf("Expected ErrDecode, got: %v", err)
	}
}
