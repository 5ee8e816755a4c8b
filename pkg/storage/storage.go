package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thomascamminady/filefocus/pkg/models"
)

// Store persists groups in a sqlite database under the data directory.
// A group's id, name, pinned flag, and ordered resource sequence
// round-trip exactly; the resource sequence is stored as a JSON array
// column, which preserves order.
type Store struct {
	db      *sql.DB
	dataDir string
}

// New opens (creating if needed) the group database under dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "groups.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.init(); err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		pinned BOOLEAN NOT NULL DEFAULT 0,
		resources TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_groups_name ON groups(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save writes the group, overwriting any previous row with the same id.
func (s *Store) Save(g *models.Group, pinned bool) error {
	resources, err := json.Marshal(g.Resources)
	if err != nil {
		return fmt.Errorf("marshal resources: %w", err)
	}

	query := `
	INSERT INTO groups (id, name, pinned, resources, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		pinned = excluded.pinned,
		resources = excluded.resources,
		updated_at = excluded.updated_at
	`

	_, err = s.db.Exec(query, g.ID, g.Name, pinned, string(resources), time.Now())
	return err
}

// load retrieves a single group by id.
func (s *Store) load(id string) (*models.Group, bool, error) {
	query := `SELECT id, name, pinned, resources FROM groups WHERE id = ?`

	g := &models.Group{}
	var pinned bool
	var resources string
	err := s.db.QueryRow(query, id).Scan(&g.ID, &g.Name, &pinned, &resources)
	if err == sql.ErrNoRows {
		return nil, false, fmt.Errorf("group not found: %s", id)
	}
	if err != nil {
		return nil, false, err
	}

	if err := json.Unmarshal([]byte(resources), &g.Resources); err != nil {
		return nil, false, fmt.Errorf("unmarshal resources: %w", err)
	}
	return g, pinned, nil
}

// LoadAll returns every persisted group and the pinned group id, if any.
func (s *Store) LoadAll() ([]*models.Group, string, error) {
	query := `SELECT id, name, pinned, resources FROM groups`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var groups []*models.Group
	var pinnedID string
	for rows.Next() {
		g := &models.Group{}
		var pinned bool
		var resources string
		if err := rows.Scan(&g.ID, &g.Name, &pinned, &resources); err != nil {
			return nil, "", err
		}
		if err := json.Unmarshal([]byte(resources), &g.Resources); err != nil {
			return nil, "", fmt.Errorf("unmarshal resources: %w", err)
		}
		if pinned {
			pinnedID = g.ID
		}
		groups = append(groups, g)
	}
	return groups, pinnedID, rows.Err()
}

// Delete removes a group from the database.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM groups WHERE id = ?", id)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
