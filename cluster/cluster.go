// cluster/cluster.go
// Package cluster shells out to CD-HIT to deduplicate sequence sets by
// similarity and exposes parsers for the two files the tool writes: the
// representative (centroid) FASTA and the .clstr membership listing.
package cluster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"seqcluster/clstr"
	"seqcluster/fasta"
	"seqcluster/seqdb"
	"seqcluster/sequence"
)

// Defaults applied to Options zero values.
const (
	DefaultThreshold = 0.975
	DefaultWordSize  = 5
	DefaultBinary    = "cd-hit"

	memoryLimitMB = 35000
)

// Options configure one clustering run. The zero value is usable.
type Options struct {
	// OutFile is the centroid output path. Empty means a generated temp file
	// under TempDir.
	OutFile string
	// TempDir hosts the transient FASTA input, a generated OutFile and the
	// lookup store. Empty means the system temp directory.
	TempDir string
	// Threshold is the similarity threshold in (0, 1]. Zero means 0.975.
	Threshold float64
	// WordSize is cd-hit's -n word length. Zero means 5.
	WordSize int
	// MakeDB also builds a lookup store from the input records, for resolving
	// membership back to full records with ParseClustersResolved.
	MakeDB bool
	// Binary overrides the executable name looked up on PATH. Empty means
	// "cd-hit".
	Binary string
	// Logger receives run progress. Nil disables logging.
	Logger *log.Logger
}

// Result carries the output file paths of one run and, when requested, the
// lookup store handle. Closing and removing the store is the caller's
// concern.
type Result struct {
	CentroidFile string
	ClusterFile  string
	DB           *seqdb.DB
}

// ToolError reports a cd-hit invocation that could not start or exited
// non-zero.
type ToolError struct {
	Cmd      string
	ExitCode int // -1 when the process did not start
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("cluster: %s exited %d: %s", e.Cmd, e.ExitCode, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("cluster: %s: %v", e.Cmd, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Run clusters seqs with cd-hit and returns the output paths. The call blocks
// until the subprocess exits; no timeout is imposed beyond what ctx carries.
// The transient FASTA input is removed only after a successful run.
func Run(ctx context.Context, seqs []sequence.Record, opt Options) (*Result, error) {
	start := time.Now()
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	threshold := opt.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("cluster: threshold %v outside (0, 1]", threshold)
	}
	word := opt.WordSize
	if word == 0 {
		word = DefaultWordSize
	}
	bin := opt.Binary
	if bin == "" {
		bin = DefaultBinary
	}

	out := opt.OutFile
	if out == "" {
		f, err := os.CreateTemp(opt.TempDir, "cdhit-out-*")
		if err != nil {
			return nil, fmt.Errorf("cluster: output file: %w", err)
		}
		out = f.Name()
		_ = f.Close()
	}

	in, err := fasta.WriteTemp(opt.TempDir, seqs)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-i", in,
		"-o", out,
		"-c", strconv.FormatFloat(threshold, 'g', -1, 64),
		"-n", strconv.Itoa(word),
		"-d", "0",
		"-T", "0",
		"-M", strconv.Itoa(memoryLimitMB),
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running clustering tool", "cmd", bin+" "+strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		code := -1
		var xerr *exec.ExitError
		if errors.As(err, &xerr) {
			code = xerr.ExitCode()
		}
		return nil, &ToolError{Cmd: bin, ExitCode: code, Stderr: stderr.String(), Err: err}
	}
	logger.Debug("clustering tool output", "stdout", strings.TrimSpace(stdout.String()))
	if err := os.Remove(in); err != nil {
		logger.Warn("could not remove transient input", "path", in, "err", err)
	}
	logger.Info("clustered sequences",
		"n", len(seqs), "threshold", threshold, "elapsed", time.Since(start))

	res := &Result{CentroidFile: out, ClusterFile: out + ".clstr"}
	if opt.MakeDB {
		db, err := seqdb.Build(ctx, opt.TempDir, seqs)
		if err != nil {
			return nil, err
		}
		res.DB = db
	}
	return res, nil
}

// RunAny is Run for heterogeneous inputs; each element is normalized first.
// See sequence.New for the accepted shapes.
func RunAny(ctx context.Context, seqs []any, opt Options) (*Result, error) {
	recs, err := sequence.NormalizeAll(seqs)
	if err != nil {
		return nil, err
	}
	return Run(ctx, recs, opt)
}

// ParseCentroids reads the representative-sequence FASTA written by cd-hit,
// in file order.
func ParseCentroids(path string) ([]sequence.Record, error) {
	return fasta.ReadFile(path)
}

// ParseClusters reads a .clstr membership listing into per-cluster identifier
// groups, in file order.
func ParseClusters(path string) ([]clstr.Cluster, error) {
	return clstr.ParseFile(path)
}

// ParseClustersResolved additionally maps each group's identifiers to full
// records through the lookup store. Store coverage gaps are reported in each
// group's Resolution rather than dropped.
func ParseClustersResolved(ctx context.Context, path string, db *seqdb.DB) ([]seqdb.Resolution, error) {
	groups, err := clstr.ParseFile(path)
	if err != nil {
		return nil, err
	}
	out := make([]seqdb.Resolution, 0, len(groups))
	for _, g := range groups {
		r, err := db.Resolve(ctx, g)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
