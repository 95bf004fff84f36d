// Package persistence provides the SQLite map archive: generated
// payloads stored zstd-compressed under a UUID, with the seed and rank
// counts as queryable metadata. Loaded payloads are untrusted like any
// deserialized input and go back through full validation.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/talgya/crownlands/internal/realm"
)

// DB wraps a SQLite connection for the map archive.
type DB struct {
	conn *sqlx.DB
}

// MapRecord is the stored metadata of one archived map.
type MapRecord struct {
	ID        string `db:"id"`
	Seed      int64  `db:"seed"`
	Width     int    `db:"width"`
	Height    int    `db:"height"`
	Counties  int    `db:"counties"`
	Duchies   int    `db:"duchies"`
	Kingdoms  int    `db:"kingdoms"`
	Version   int    `db:"version"`
	SizeBytes int64  `db:"size_bytes"`
	CreatedAt string `db:"created_at"`
}

// Open opens or creates a SQLite archive at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		counties INTEGER NOT NULL,
		duchies INTEGER NOT NULL,
		kingdoms INTEGER NOT NULL,
		version INTEGER NOT NULL,
		size_bytes INTEGER NOT NULL,
		payload BLOB NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_maps_seed ON maps(seed);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMap archives a generated map and returns the new record id.
func (db *DB) SaveMap(data *realm.WorldMapData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("init compressor: %w", err)
	}
	compressed := enc.EncodeAll(raw, nil)
	enc.Close()

	id := uuid.NewString()
	dj := &data.Modes.DeJure
	_, err = db.conn.Exec(`INSERT INTO maps
		(id, seed, width, height, counties, duchies, kingdoms, version, size_bytes, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, data.Grid.Seed, data.Grid.Width, data.Grid.Height,
		dj.CountyCount(), dj.DuchyCount(), dj.KingdomCount(),
		data.Version, int64(len(raw)), compressed,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert map %s: %w", id, err)
	}

	slog.Info("map archived", "id", id, "seed", data.Grid.Seed,
		"payload_bytes", len(raw), "compressed_bytes", len(compressed))
	return id, nil
}

// LoadMap retrieves an archived payload and re-validates it before
// returning.
func (db *DB) LoadMap(id string) (*realm.WorldMapData, error) {
	var compressed []byte
	if err := db.conn.Get(&compressed, "SELECT payload FROM maps WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load map %s: %w", id, err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("init decompressor: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress map %s: %w", id, err)
	}

	data, err := realm.Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("archived map %s: %w", id, err)
	}
	return data, nil
}

// ListMaps returns metadata for every archived map, newest first.
func (db *DB) ListMaps() ([]MapRecord, error) {
	var records []MapRecord
	err := db.conn.Select(&records, `SELECT
		id, seed, width, height, counties, duchies, kingdoms, version, size_bytes, created_at
		FROM maps ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	return records, nil
}

// DeleteMap removes an archived map.
func (db *DB) DeleteMap(id string) error {
	res, err := db.conn.Exec("DELETE FROM maps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete map %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete map %s: not found", id)
	}
	return nil
}
