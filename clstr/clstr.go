// clstr/clstr.go
// Package clstr parses CD-HIT cluster-membership listings (.clstr files).
package clstr

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Cluster is the ordered member identifiers of one cluster block.
type Cluster []string

// LineFormat extracts the member identifier from one member line. Tool
// versions that change the line layout get their own implementation; parsing
// call sites stay untouched.
type LineFormat interface {
	MemberID(line string) (string, error)
}

// FormatV4 handles cd-hit 4.x member lines, e.g.
//
//	0	8nt, >seq1... *
//	1	8nt, >seq2... at +/100.00%
//
// The identifier is the third whitespace-separated token with the leading '>'
// and the trailing three characters ("...") removed.
type FormatV4 struct{}

func (FormatV4) MemberID(line string) (string, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return "", fmt.Errorf("clstr: short member line %q", line)
	}
	tok := f[2]
	if len(tok) < 4 || tok[0] != '>' {
		return "", fmt.Errorf("clstr: malformed member field %q", tok)
	}
	return tok[1 : len(tok)-3], nil
}

// Parse reads a .clstr listing and returns one Cluster per block, in file
// order, using the cd-hit 4.x line format.
func Parse(r io.Reader) ([]Cluster, error) {
	return ParseWith(r, FormatV4{})
}

// ParseWith is Parse with an explicit member-line format. Blocks start at
// lines with a '>' prefix (">Cluster N"); blank lines within a block are
// skipped.
func ParseWith(r io.Reader, format LineFormat) ([]Cluster, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		clusters []Cluster
		cur      Cluster
		open     bool
	)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if open {
				clusters = append(clusters, cur)
			}
			cur = nil
			open = true
			continue
		}
		if !open {
			return nil, fmt.Errorf("clstr: member line before first cluster header: %q", line)
		}
		id, err := format.MemberID(line)
		if err != nil {
			return nil, err
		}
		cur = append(cur, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("clstr: scan: %w", err)
	}
	if open {
		clusters = append(clusters, cur)
	}
	return clusters, nil
}

// ParseFile reads the .clstr file at path with the cd-hit 4.x format.
func ParseFile(path string) ([]Cluster, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("clstr: open %s: %w", path, err)
	}
	defer fh.Close()
	clusters, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clusters, nil
}
