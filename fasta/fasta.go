// fasta/fasta.go
// Package fasta reads and writes FASTA files in terms of sequence.Record,
// wrapping biogo's seqio machinery. Reading is gzip-aware.
package fasta

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"seqcluster/sequence"
)

// Write writes recs to w in FASTA format, wrapping sequence lines at 60
// columns.
func Write(w io.Writer, recs []sequence.Record) error {
	fw := biofasta.NewWriter(w, 60)
	for _, r := range recs {
		s := linear.NewSeq(r.ID, alphabet.BytesToLetters([]byte(r.Seq)), alphabet.DNA)
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("fasta: write %q: %w", r.ID, err)
		}
	}
	return nil
}

// WriteTemp writes recs to a fresh temp file under dir (system temp dir when
// empty) and returns its path. The file is transient tool input; the caller
// removes it once the tool has consumed it. The file is removed here only if
// the write itself fails.
func WriteTemp(dir string, recs []sequence.Record) (string, error) {
	f, err := os.CreateTemp(dir, "cdhit-*.fasta")
	if err != nil {
		return "", fmt.Errorf("fasta: temp input: %w", err)
	}
	if err := Write(f, recs); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("fasta: close %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// Read parses every FASTA record from r, in order. Identifiers are the first
// whitespace-delimited field of each header.
func Read(r io.Reader) ([]sequence.Record, error) {
	fr := biofasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(fr)
	var recs []sequence.Record
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		recs = append(recs, sequence.Record{ID: s.Name(), Seq: s.Seq.String()})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("fasta: parse: %w", err)
	}
	return recs, nil
}

// ReadFile reads every record from path ("-" = stdin, .gz transparently
// decompressed).
func ReadFile(path string) ([]sequence.Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: open %s: %w", path, err)
	}
	defer rc.Close()
	recs, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
