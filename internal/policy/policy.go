// Package policy holds the scan policy: the roots to walk, the exact paths
// to ignore, and the per-installation hashing secret. The human-authored
// plain-text form is parsed once by create_config; afterwards the policy
// only ever exists as a sealed envelope blob.
package policy

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/daschr/tripwirs/internal/codec"
	"github.com/daschr/tripwirs/internal/envelope"
)

// SecretSize is the length of the content-hashing secret in bytes.
const SecretSize = 192

// Policy describes what to scan and how to key the content hash. The secret
// is drawn once at policy creation and stays stable across edits; ignores
// are matched by exact string equality against walker paths.
type Policy struct {
	Secret  []byte
	Scans   []string
	Ignores map[string]struct{}
}

// New returns a policy with a fresh random secret and empty scan scope.
func New() (*Policy, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate policy secret: %w", err)
	}

	return &Policy{
		Secret:  secret,
		Ignores: make(map[string]struct{}),
	}, nil
}

type section int

const (
	sectionScan section = iota
	sectionIgnore
)

// Parse reads the plain-text policy source. Blank lines and lines whose
// first non-whitespace character is '#' are skipped. A line that is exactly
// [SCAN]/[scan] or [IGNORE]/[ignore] switches the active section; every
// other line contributes one entry verbatim, with only the line terminator
// stripped. The initial section is SCAN. Malformed lines never abort the
// parse; only read errors do.
func Parse(r io.Reader) (*Policy, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}

	mode := sectionScan
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		switch line {
		case "[SCAN]", "[scan]":
			mode = sectionScan
		case "[IGNORE]", "[ignore]":
			mode = sectionIgnore
		default:
			if mode == sectionScan {
				p.Scans = append(p.Scans, line)
			} else {
				p.Ignores[line] = struct{}{}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read policy source: %w", err)
	}

	return p, nil
}

// GenConfig parses the plain-text policy at infile and seals it to outfile.
func GenConfig(infile, outfile, passphrase string) error {
	f, err := os.Open(infile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", infile, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return err
	}

	return p.Save(outfile, passphrase)
}

// Load opens the sealed policy at path.
func Load(path, passphrase string) (*Policy, error) {
	plaintext, err := envelope.Open(path, passphrase)
	if err != nil {
		return nil, err
	}
	return unmarshal(plaintext)
}

// Save seals the policy to path.
func (p *Policy) Save(path, passphrase string) error {
	return envelope.Seal(p.marshal(), path, passphrase)
}

func (p *Policy) marshal() []byte {
	e := codec.NewEncoder()
	e.PutRaw(p.Secret)

	e.PutUvarint(uint64(len(p.Scans)))
	for _, s := range p.Scans {
		e.PutString(s)
	}

	// Ignores are a set; sorting keeps the encoding of a given policy
	// deterministic.
	ignores := make([]string, 0, len(p.Ignores))
	for s := range p.Ignores {
		ignores = append(ignores, s)
	}
	sort.Strings(ignores)

	e.PutUvarint(uint64(len(ignores)))
	for _, s := range ignores {
		e.PutString(s)
	}

	return e.Bytes()
}

func unmarshal(data []byte) (*Policy, error) {
	d := codec.NewDecoder(data)

	secret, err := d.Raw(SecretSize)
	if err != nil {
		return nil, err
	}

	nScans, err := d.Uvarint()
	if err != nil {
		return nil, err
	}
	scans := make([]string, 0, nScans)
	for i := uint64(0); i < nScans; i++ {
		s, err := d.String()
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}

	nIgnores, err := d.Uvarint()
	if err != nil {
		return nil, err
	}
	ignores := make(map[string]struct{}, nIgnores)
	for i := uint64(0); i < nIgnores; i++ {
		s, err := d.String()
		if err != nil {
			return nil, err
		}
		ignores[s] = struct{}{}
	}

	if err := d.Finish(); err != nil {
		return nil, err
	}

	return &Policy{Secret: secret, Scans: scans, Ignores: ignores}, nil
}
