// seqdb/seqdb.go
// Package seqdb is an indexed id→sequence lookup store backed by a SQLite
// file. It is built once from the clustering input and read many times while
// resolving cluster membership back to full records.
package seqdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"seqcluster/sequence"
)

// DefaultBatchSize bounds the number of bound parameters per lookup query,
// keeping chunked lookups below SQLite's parameter limit.
const DefaultBatchSize = 900

// DB is a handle to one store. Building is destructive (drop and recreate),
// so a store location must not be shared across concurrent sessions. After
// Build the store is read-only.
type DB struct {
	// Path is the on-disk location of the store file.
	Path string
	// BatchSize is the per-query identifier cap used by Resolve. Zero means
	// DefaultBatchSize.
	BatchSize int

	db *sql.DB
}

// Build creates (or replaces) the store at <dir>/seq_db and inserts every
// record keyed by ID. dir defaults to the system temp directory. Duplicate
// identifiers are not rejected; lookups return one row per requested ID.
func Build(ctx context.Context, dir string, recs []sequence.Record) (*DB, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "seq_db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("seqdb: open %s: %w", path, err)
	}
	if err := load(ctx, db, recs); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seqdb: build %s: %w", path, err)
	}
	return &DB{Path: path, BatchSize: DefaultBatchSize, db: db}, nil
}

func load(ctx context.Context, db *sql.DB, recs []sequence.Record) error {
	// Dropping the table also drops seq_index from a previous build.
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS seqs`,
		`CREATE TABLE seqs (id text, sequence text)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	ins, err := tx.PrepareContext(ctx, `INSERT INTO seqs VALUES (?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, r := range recs {
		if _, err := ins.ExecContext(ctx, r.ID, r.Seq); err != nil {
			_ = ins.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert %q: %w", r.ID, err)
		}
	}
	if err := ins.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `CREATE INDEX seq_index ON seqs (id)`)
	return err
}

// Select returns the stored records whose IDs appear in ids, issuing a single
// IN query. Callers with unbounded id lists use Resolve instead.
func (d *DB) Select(ctx context.Context, ids []string) ([]sequence.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := `SELECT seqs.id, seqs.sequence FROM seqs WHERE seqs.id IN (?` +
		strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("seqdb: select: %w", err)
	}
	defer rows.Close()
	var recs []sequence.Record
	for rows.Next() {
		var r sequence.Record
		if err := rows.Scan(&r.ID, &r.Seq); err != nil {
			return nil, fmt.Errorf("seqdb: scan: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("seqdb: select: %w", err)
	}
	return recs, nil
}

// Resolution is the outcome of resolving one identifier group: the records
// found in the store, in input order, and the identifiers that were not.
// Callers decide whether gaps are an error.
type Resolution struct {
	Records    []sequence.Record
	Unresolved []string
}

// Resolve maps ids to full records in batches of BatchSize. Identifiers
// absent from the store end up in Unresolved rather than being dropped.
func (d *DB) Resolve(ctx context.Context, ids []string) (Resolution, error) {
	size := d.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	var res Resolution
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		got, err := d.Select(ctx, chunk)
		if err != nil {
			return Resolution{}, err
		}
		byID := make(map[string]sequence.Record, len(got))
		for _, r := range got {
			byID[r.ID] = r
		}
		for _, id := range chunk {
			if r, ok := byID[id]; ok {
				res.Records = append(res.Records, r)
			} else {
				res.Unresolved = append(res.Unresolved, id)
			}
		}
	}
	return res, nil
}

// Close releases the underlying database handle. The store file stays on
// disk; its removal is the caller's concern.
func (d *DB) Close() error {
	return d.db.Close()
}
