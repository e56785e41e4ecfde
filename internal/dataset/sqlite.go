package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/homematch/internal/models"
)

// DefaultTable is the SQLite table holding listings.
const DefaultTable = "listings"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore reads and writes the listing table in a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath, table string) (*SQLiteStore, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	s := &SQLiteStore{db: db, table: table}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	var cols strings.Builder
	for _, f := range models.AllFeatures {
		fmt.Fprintf(&cols, "\t\t%s REAL,\n", f.ScoreColumn())
	}
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		%[2]s TEXT PRIMARY KEY,
		%[3]s TEXT NOT NULL DEFAULT '',
		%[4]s TEXT NOT NULL DEFAULT '',
		%[5]s INTEGER NOT NULL,
		%[6]s INTEGER NOT NULL,
		%[7]s TEXT NOT NULL DEFAULT '',
		%[8]s TEXT NOT NULL DEFAULT '',
		%[9]s TEXT NOT NULL DEFAULT '',
%[10]s		%[11]s REAL,
		%[12]s REAL
	);

	CREATE INDEX IF NOT EXISTS idx_%[1]s_rent ON %[1]s(%[5]s);
	`,
		s.table, ColumnID, ColumnTitle, ColumnAddress, ColumnRent, ColumnBedrooms,
		ColumnPlatform, ColumnAgent, ColumnLink, cols.String(),
		ColumnPhotosOverall, ColumnPhotosBedroom,
	)
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns every listing ordered by rent, then ID.
func (s *SQLiteStore) Load(ctx context.Context) ([]*models.Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, %s",
		strings.Join(Columns(), ", "), s.table, ColumnRent, ColumnID)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func scanListing(rows *sql.Rows) (*models.Listing, error) {
	l := &models.Listing{Scores: make(map[models.Feature]float64, len(models.AllFeatures))}
	scores := make([]sql.NullFloat64, len(models.AllFeatures))
	var photos, bedroomPhotos sql.NullFloat64

	dest := []any{&l.ID, &l.Title, &l.Address, &l.Rent, &l.Bedrooms, &l.Platform, &l.Agent, &l.Link}
	for i := range scores {
		dest = append(dest, &scores[i])
	}
	dest = append(dest, &photos, &bedroomPhotos)
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}

	for i, f := range models.AllFeatures {
		if !scores[i].Valid {
			continue
		}
		if math.IsInf(scores[i].Float64, 0) {
			return nil, fmt.Errorf("listing %s: invalid %s %v", l.ID, f.ScoreColumn(), scores[i].Float64)
		}
		l.Scores[f] = scores[i].Float64
	}
	l.PhotosOverall = nullToNaN(photos)
	l.PhotosBedroom = nullToNaN(bedroomPhotos)
	return l, nil
}

// Import replaces the table contents with listings in a single transaction.
func (s *SQLiteStore) Import(ctx context.Context, listings []*models.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+s.table); err != nil {
		return fmt.Errorf("clear %s: %w", s.table, err)
	}

	cols := Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(cols, ", "), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range listings {
		args := []any{l.ID, l.Title, l.Address, l.Rent, l.Bedrooms, l.Platform, l.Agent, l.Link}
		for _, f := range models.AllFeatures {
			if v, ok := l.Score(f); ok {
				args = append(args, v)
			} else {
				args = append(args, nil)
			}
		}
		args = append(args, nanToNull(l.PhotosOverall), nanToNull(l.PhotosBedroom))
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert listing %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored listings.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table).Scan(&n)
	return n, err
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func nanToNull(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// SQLiteSource is a Source backed by an existing SQLite database.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource returns a source for the database at path.
func NewSQLiteSource(path, table string) *SQLiteSource {
	return &SQLiteSource{path: path, table: table}
}

// Load opens the database, reads the table, and closes it.
func (s *SQLiteSource) Load(ctx context.Context) ([]*models.Listing, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("open sqlite dataset: %w", err)
	}
	store, err := NewSQLiteStore(s.path, s.table)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

// ImportFile loads listings from src and writes them into the SQLite database at dbPath.
// It returns the number of imported listings.
func ImportFile(ctx context.Context, src Source, dbPath, table string) (int, error) {
	listings, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load source: %w", err)
	}
	store, err := NewSQLiteStore(dbPath, table)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.Import(ctx, listings); err != nil {
		return 0, fmt.Errorf("import listings: %w", err)
	}
	return len(listings), nil
}
