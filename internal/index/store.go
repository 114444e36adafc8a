package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kvernberg/lovchat/pkg/api"
)

// Store persists document chunks in SQLite. The TF-IDF vectors themselves are
// rebuilt in memory from the stored chunks, so the store only needs content
// and identity.
type Store struct {
	db *sql.DB
}

// OpenStore connects to the chunk database with the modernc.org/sqlite driver
// and ensures the schema exists.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &Store{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS chunks (
  hash TEXT PRIMARY KEY,
  refid TEXT NOT NULL,
  title TEXT NOT NULL,
  source_path TEXT NOT NULL,
  content TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_refid ON chunks(refid);
`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// PutChunk upserts a chunk keyed by its content hash; re-indexing an
// unchanged corpus leaves the table untouched.
func (s *Store) PutChunk(ctx context.Context, c api.Chunk) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO chunks(hash, refid, title, source_path, content)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(hash) DO NOTHING;
`, c.Hash(), c.RefID, c.Title, c.SourcePath, c.Content)
	if err != nil {
		return fmt.Errorf("put chunk: %w", err)
	}
	return nil
}

// PutChunks stores a batch inside one transaction.
func (s *Store) PutChunks(ctx context.Context, chunks []api.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO chunks(hash, refid, title, source_path, content)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(hash) DO NOTHING;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.Hash(), c.RefID, c.Title, c.SourcePath, c.Content); err != nil {
			return fmt.Errorf("put chunk %s: %w", c.RefID, err)
		}
	}
	return tx.Commit()
}

// ListChunks returns every stored chunk in insertion-stable order.
func (s *Store) ListChunks(ctx context.Context) ([]api.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT refid, title, source_path, content FROM chunks ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.Chunk
	for rows.Next() {
		var c api.Chunk
		if err := rows.Scan(&c.RefID, &c.Title, &c.SourcePath, &c.Content); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountChunks returns the number of stored chunks.
func (s *Store) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

// Documents aggregates chunks per source document.
func (s *Store) Documents(ctx context.Context) ([]api.DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT refid, MIN(title), COUNT(*) FROM chunks GROUP BY refid ORDER BY MIN(title)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.DocumentInfo
	for rows.Next() {
		var d api.DocumentInfo
		if err := rows.Scan(&d.RefID, &d.Title, &d.Chunks); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ImportFrom merges the chunks of another chunk database into this one and
// returns how many were new. Chunks already present (same content hash) are
// kept as-is. ATTACH is connection-local, so the whole merge is pinned to a
// single pooled connection.
func (s *Store) ImportFrom(ctx context.Context, path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `ATTACH DATABASE ? AS src`, path); err != nil {
		return 0, fmt.Errorf("attach %s: %w", path, err)
	}
	res, execErr := conn.ExecContext(ctx, `
INSERT INTO chunks(hash, refid, title, source_path, content)
SELECT hash, refid, title, source_path, content FROM src.chunks
WHERE true
ON CONFLICT(hash) DO NOTHING;
`)
	if _, err := conn.ExecContext(ctx, `DETACH DATABASE src`); err != nil && execErr == nil {
		execErr = err
	}
	if execErr != nil {
		return 0, fmt.Errorf("import %s: %w", path, execErr)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Wipe removes all chunks; used by forced re-indexing.
func (s *Store) Wipe(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks`)
	return err
}
