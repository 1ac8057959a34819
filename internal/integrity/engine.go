package integrity

import (
	"fmt"
	"io"

	logger "github.com/daschr/tripwirs/internal/logging"
	"github.com/daschr/tripwirs/internal/policy"
)

// builder populates a fresh database from walker events.
type builder struct {
	secret []byte
	db     Database
	log    logger.Logger
}

func (b *builder) File(path string) {
	h, err := FileHash(b.secret, path)
	if err != nil {
		b.log.Warnf("could not hash %s: %v", path, err)
		return
	}
	b.db[path] = Node{Kind: KindFile, Hash: h}
}

func (b *builder) Symlink(path string) {
	b.db[path] = Node{Kind: KindSymlink}
}

func (b *builder) EmptyDir(path string) {
	b.db[path] = Node{Kind: KindEmptyDir}
}

func (b *builder) Skip(path string) {
	b.log.Debugf("ignoring %s", path)
}

func (b *builder) DirError(path string, err error) {
	b.log.Warnf("could not read %s: %v", path, err)
}

// GenDB walks every root in the policy in order, fingerprints what it finds,
// and seals the resulting database to outfile. When a path is visited under
// more than one root the last visit wins. Per-entry errors are logged and
// skipped; the database is only written after the full walk.
func GenDB(p *policy.Policy, outfile, passphrase string, log logger.Logger) error {
	b := &builder{secret: p.Secret, db: make(Database), log: log}

	for _, root := range p.Scans {
		b.log.Infof("scanning %s", root)
		Walk(root, p.Ignores, b)
	}

	return b.db.Save(outfile, passphrase)
}

// comparator drives the pop-on-visit diff: every visited path removes its
// old record from the database, so whatever remains after the walk is
// exactly the set of deleted nodes.
type comparator struct {
	secret []byte
	db     Database
	out    io.Writer
	log    logger.Logger
}

func (c *comparator) report(path, format string, args ...any) {
	fmt.Fprintf(c.out, "[%s] %s\n", path, fmt.Sprintf(format, args...))
}

func (c *comparator) pop(path string) (Node, bool) {
	n, ok := c.db[path]
	delete(c.db, path)
	return n, ok
}

func (c *comparator) File(path string) {
	prev, ok := c.pop(path)
	switch {
	case !ok:
		c.report(path, "NEW FILE")
	case prev.Kind == KindFile:
		h, err := FileHash(c.secret, path)
		if err != nil {
			c.log.Warnf("could not hash %s: %v", path, err)
			return
		}
		if h != prev.Hash {
			c.report(path, "HASH CHANGED (old=%x, new=%x)", prev.Hash, h)
		}
	case prev.Kind == KindSymlink:
		c.report(path, "FILE WAS PREVIOUSLY A SYMLINK")
	case prev.Kind == KindEmptyDir:
		c.report(path, "FILE WAS PREVIOUSLY A DIRECTORY")
	}
}

func (c *comparator) Symlink(path string) {
	prev, ok := c.pop(path)
	switch {
	case !ok:
		c.report(path, "NEW SYMLINK")
	case prev.Kind == KindSymlink:
		// unchanged
	case prev.Kind == KindFile:
		c.report(path, "SYMLINK WAS PREVIOUSLY A FILE (%x)", prev.Hash)
	case prev.Kind == KindEmptyDir:
		c.report(path, "SYMLINK WAS PREVIOUSLY A DIRECTORY")
	}
}

func (c *comparator) EmptyDir(path string) {
	prev, ok := c.pop(path)
	switch {
	case !ok:
		c.report(path, "NEW DIRECTORY")
	case prev.Kind == KindEmptyDir:
		// unchanged
	case prev.Kind == KindFile:
		c.report(path, "FILE IS NOW A DIRECTORY")
	case prev.Kind == KindSymlink:
		c.report(path, "SYMLINK IS NOW A DIRECTORY")
	}
}

func (c *comparator) Skip(path string) {
	c.log.Debugf("ignoring %s", path)
}

func (c *comparator) DirError(path string, err error) {
	c.log.Warnf("could not read %s: %v", path, err)
}

// CompareDB opens the sealed database at dbfile, re-walks every root in the
// policy, and writes one diff line per deviation to out. Unvisited residue
// is reported as removals in sorted path order.
func CompareDB(p *policy.Policy, dbfile, passphrase string, out io.Writer, log logger.Logger) error {
	db, err := LoadDatabase(dbfile, passphrase)
	if err != nil {
		return err
	}

	c := &comparator{secret: p.Secret, db: db, out: out, log: log}
	for _, root := range p.Scans {
		c.log.Infof("comparing %s", root)
		Walk(root, p.Ignores, c)
	}

	for _, path := range c.db.Paths() {
		switch n := c.db[path]; n.Kind {
		case KindFile:
			c.report(path, "FILE WITH HASH %x IS REMOVED", n.Hash)
		case KindSymlink:
			c.report(path, "SYMLINK IS REMOVED")
		case KindEmptyDir:
			c.report(path, "DIRECTORY IS REMOVED")
		}
	}

	return nil
}

// PrintDB opens the sealed database at dbfile and writes its keys to out,
// one per line, in sorted order.
func PrintDB(dbfile, passphrase string, out io.Writer) error {
	db, err := LoadDatabase(dbfile, passphrase)
	if err != nil {
		return err
	}

	for _, path := range db.Paths() {
		fmt.Fprintln(out, path)
	}

	return nil
}
