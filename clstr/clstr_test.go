// clstr/clstr_test.go
package clstr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `>Cluster 0
0	8nt, >seq1... *
1	8nt, >seq2... at +/100.00%

2	8nt, >seq-4... at +/98.75%
>Cluster 1
0	4nt, >seq3... *
`

func TestParse(t *testing.T) {
	clusters, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	want := [][]string{{"seq1", "seq2", "seq-4"}, {"seq3"}}
	for i, w := range want {
		if len(clusters[i]) != len(w) {
			t.Fatalf("cluster %d has %d members, want %d", i, len(clusters[i]), len(w))
		}
		for j, id := range w {
			if clusters[i][j] != id {
				t.Fatalf("cluster %d member %d = %q, want %q", i, j, clusters[i][j], id)
			}
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.clstr")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	clusters, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
}

func TestFormatV4MemberID(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"0\t8nt, >seq1... *", "seq1"},
		{"1\t8nt, >seq2... at +/100.00%", "seq2"},
		{"12\t120aa, >AB_12.3|x... at 99.17%", "AB_12.3|x"},
	}
	for _, c := range cases {
		got, err := FormatV4{}.MemberID(c.line)
		if err != nil {
			t.Fatalf("MemberID(%q): %v", c.line, err)
		}
		if got != c.want {
			t.Fatalf("MemberID(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestFormatV4Malformed(t *testing.T) {
	for _, line := range []string{"0\t8nt,", "0\t8nt, seq1... *", "0\t8nt, >.. *"} {
		if _, err := (FormatV4{}).MemberID(line); err == nil {
			t.Fatalf("MemberID(%q): expected error", line)
		}
	}
}

func TestParseMemberBeforeHeader(t *testing.T) {
	if _, err := Parse(strings.NewReader("0\t8nt, >seq1... *\n")); err == nil {
		t.Fatal("expected error for member line before first header")
	}
}

func TestParseEmpty(t *testing.T) {
	clusters, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(clusters) != 0 {
		t.Fatalf("got %d clusters from empty input", len(clusters))
	}
}
