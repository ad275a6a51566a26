// sequence/record_test.go
package sequence

import (
	"errors"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

func TestNewShapes(t *testing.T) {
	parsed := linear.NewSeq("seq9", alphabet.BytesToLetters([]byte("ACGT")), alphabet.DNA)

	cases := []struct {
		name string
		in   any
		want Record
	}{
		{"record", Record{ID: "a", Seq: "ACGT"}, Record{ID: "a", Seq: "ACGT"}},
		{"record-pointer", &Record{ID: "b", Seq: "GGGG"}, Record{ID: "b", Seq: "GGGG"}},
		{"pair", Pair{ID: "c", Seq: "TTTT"}, Record{ID: "c", Seq: "TTTT"}},
		{"array", [2]string{"d", "AACC"}, Record{ID: "d", Seq: "AACC"}},
		{"biogo", parsed, Record{ID: "seq9", Seq: "ACGT"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := New(c.in)
			if err != nil {
				t.Fatalf("New(%v): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("New(%v) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

func TestNewBareString(t *testing.T) {
	got, err := New("ACGT")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got.Seq != "ACGT" {
		t.Fatalf("sequence = %q, want ACGT", got.Seq)
	}
	if got.ID == "" {
		t.Fatal("expected a generated identifier for a bare string")
	}
	other, _ := New("ACGT")
	if other.ID == got.ID {
		t.Fatalf("generated identifiers collide: %q", got.ID)
	}
}

func TestNewUnsupported(t *testing.T) {
	for _, in := range []any{42, nil, []byte("ACGT"), (*Record)(nil)} {
		if _, err := New(in); !errors.Is(err, ErrUnsupportedInput) {
			t.Fatalf("New(%v): err = %v, want ErrUnsupportedInput", in, err)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	recs, err := NormalizeAll([]any{
		Pair{ID: "s1", Seq: "AC"},
		[2]string{"s2", "GT"},
		Record{ID: "s3", Seq: "TT"},
	})
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	want := []Record{{ID: "s1", Seq: "AC"}, {ID: "s2", Seq: "GT"}, {ID: "s3", Seq: "TT"}}
	if len(recs) != len(want) {
		t.Fatalf("got %d records, want %d", len(recs), len(want))
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, recs[i], want[i])
		}
	}

	if _, err := NormalizeAll([]any{Pair{ID: "ok", Seq: "AC"}, 3.14}); !errors.Is(err, ErrUnsupportedInput) {
		t.Fatalf("err = %v, want ErrUnsupportedInput", err)
	}
}

func TestFasta(t *testing.T) {
	got := Record{ID: "s1", Seq: "ACGT"}.Fasta()
	if got != ">s1\nACGT" {
		t.Fatalf("Fasta() = %q", got)
	}
}
