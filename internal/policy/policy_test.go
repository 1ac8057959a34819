package policy

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewGeneratesFreshSecret(t *testing.T) {
	p1, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p2, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if len(p1.Secret) != SecretSize {
		t.Errorf("Secret length = %d, want %d", len(p1.Secret), SecretSize)
	}
	if bytes.Equal(p1.Secret, p2.Secret) {
		t.Errorf("Two policies share the same secret")
	}
}

func TestParseSectionsAndComments(t *testing.T) {
	src := `# integrity scan policy

/etc
/usr/bin

[IGNORE]
/etc/mtab
  # indented comment
/var/run

[scan]
/home
`
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantScans := []string{"/etc", "/usr/bin", "/home"}
	if !reflect.DeepEqual(p.Scans, wantScans) {
		t.Errorf("Scans = %v, want %v", p.Scans, wantScans)
	}

	wantIgnores := []string{"/etc/mtab", "/var/run"}
	if len(p.Ignores) != len(wantIgnores) {
		t.Fatalf("Ignores = %v, want %v", p.Ignores, wantIgnores)
	}
	for _, ig := range wantIgnores {
		if _, ok := p.Ignores[ig]; !ok {
			t.Errorf("Missing ignore entry %q", ig)
		}
	}
}

func TestParseInitialSectionIsScan(t *testing.T) {
	p, err := Parse(strings.NewReader("/first\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Scans) != 1 || p.Scans[0] != "/first" {
		t.Errorf("Scans = %v, want [/first]", p.Scans)
	}
}

func TestParseKeepsEntryWhitespace(t *testing.T) {
	// Only the line terminator is stripped; inner and edge whitespace stay.
	p, err := Parse(strings.NewReader("/path with spaces \n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Scans) != 1 || p.Scans[0] != "/path with spaces " {
		t.Errorf("Scans = %q", p.Scans)
	}
}

func TestParsePreservesDuplicateScans(t *testing.T) {
	p, err := Parse(strings.NewReader("/a\n/a\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Scans) != 2 {
		t.Errorf("Duplicate roots collapsed: %v", p.Scans)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p, err := Parse(strings.NewReader("/etc\n[IGNORE]\n/etc/mtab\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "policy.sealed")
	if err := p.Save(path, "pass"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path, "pass")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !bytes.Equal(got.Secret, p.Secret) {
		t.Errorf("Secret changed across round trip")
	}
	if !reflect.DeepEqual(got.Scans, p.Scans) {
		t.Errorf("Scans = %v, want %v", got.Scans, p.Scans)
	}
	if !reflect.DeepEqual(got.Ignores, p.Ignores) {
		t.Errorf("Ignores = %v, want %v", got.Ignores, p.Ignores)
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p.Scans = []string{"/b", "/a"}
	p.Ignores["/z"] = struct{}{}
	p.Ignores["/y"] = struct{}{}

	if !bytes.Equal(p.marshal(), p.marshal()) {
		t.Error("Same policy produced different encodings")
	}
}
