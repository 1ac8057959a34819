package integrity

import (
	"sort"

	"github.com/daschr/tripwirs/internal/codec"
	"github.com/daschr/tripwirs/internal/envelope"
)

// Kind classifies a recorded filesystem node.
type Kind uint8

const (
	KindFile Kind = iota
	KindSymlink
	KindEmptyDir
)

// Node is one database entry. Hash is meaningful only for KindFile. A
// symlink is recorded without its target; only empty directories are
// recorded at all, non-empty ones being implied by their contents.
type Node struct {
	Kind Kind
	Hash uint64
}

// Database maps walker paths to the node recorded there. Keys must be the
// exact strings the walker yields, so builder and comparator agree.
type Database map[string]Node

// LoadDatabase opens the sealed database at path.
func LoadDatabase(path, passphrase string) (Database, error) {
	plaintext, err := envelope.Open(path, passphrase)
	if err != nil {
		return nil, err
	}
	return unmarshalDatabase(plaintext)
}

// Save seals the database to path.
func (db Database) Save(path, passphrase string) error {
	return envelope.Seal(db.marshal(), path, passphrase)
}

// Paths returns the database keys in sorted order.
func (db Database) Paths() []string {
	paths := make([]string, 0, len(db))
	for p := range db {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (db Database) marshal() []byte {
	e := codec.NewEncoder()
	e.PutUvarint(uint64(len(db)))

	// Sorted keys keep the encoding of a given database deterministic;
	// decoding accepts any order.
	for _, path := range db.Paths() {
		n := db[path]
		e.PutString(path)
		e.PutUvarint(uint64(n.Kind))
		if n.Kind == KindFile {
			e.PutUint64(n.Hash)
		}
	}

	return e.Bytes()
}

func unmarshalDatabase(data []byte) (Database, error) {
	d := codec.NewDecoder(data)

	count, err := d.Uvarint()
	if err != nil {
		return nil, err
	}

	db := make(Database, count)
	for i := uint64(0); i < count; i++ {
		path, err := d.String()
		if err != nil {
			return nil, err
		}

		tag, err := d.Uvarint()
		if err != nil {
			return nil, err
		}

		var n Node
		switch Kind(tag) {
		case KindFile:
			h, err := d.Uint64()
			if err != nil {
				return nil, err
			}
			n = Node{Kind: KindFile, Hash: h}
		case KindSymlink:
			n = Node{Kind: KindSymlink}
		case KindEmptyDir:
			n = Node{Kind: KindEmptyDir}
		default:
			return nil, codec.ErrDecode
		}

		if _, dup := db[path]; dup {
			return nil, codec.ErrDecode
		}
		db[path] = n
	}

	if err := d.Finish(); err != nil {
		return nil, err
	}

	return db, nil
}
