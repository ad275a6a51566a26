// sequence/record.go
package sequence

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/biogo/biogo/seq/linear"
)

// ErrUnsupportedInput is returned by New for input shapes it cannot normalize.
var ErrUnsupportedInput = errors.New("sequence: unsupported input shape")

// Record is one normalized sequence: an identifier and the residue string.
// Records are values; nothing downstream mutates them.
type Record struct {
	ID  string
	Seq string
}

// Fasta renders the record as a two-line FASTA entry without a trailing newline.
func (r Record) Fasta() string {
	return ">" + r.ID + "\n" + r.Seq
}

// Pair is the (identifier, sequence) input shape accepted by New.
type Pair struct {
	ID  string
	Seq string
}

// New normalizes one input into a Record. Accepted shapes:
//
//   - Record / *Record — returned as-is
//   - Pair or [2]string — identifier and sequence
//   - *linear.Seq — a record parsed by biogo's FASTA reader
//   - string — a bare sequence; an opaque identifier is generated
//
// Anything else fails with ErrUnsupportedInput.
func New(v any) (Record, error) {
	switch s := v.(type) {
	case Record:
		return s, nil
	case *Record:
		if s == nil {
			return Record{}, fmt.Errorf("%w: nil *Record", ErrUnsupportedInput)
		}
		return *s, nil
	case Pair:
		return Record{ID: s.ID, Seq: s.Seq}, nil
	case [2]string:
		return Record{ID: s[0], Seq: s[1]}, nil
	case *linear.Seq:
		if s == nil {
			return Record{}, fmt.Errorf("%w: nil *linear.Seq", ErrUnsupportedInput)
		}
		return Record{ID: s.Name(), Seq: s.Seq.String()}, nil
	case string:
		return Record{ID: newID(), Seq: s}, nil
	default:
		return Record{}, fmt.Errorf("%w: %T", ErrUnsupportedInput, v)
	}
}

// NormalizeAll normalizes every item in order; the first bad item aborts.
func NormalizeAll(items []any) ([]Record, error) {
	recs := make([]Record, 0, len(items))
	for i, it := range items {
		r, err := New(it)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// newID generates an identifier for sequences supplied without one.
func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
