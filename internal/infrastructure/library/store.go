package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import for side-effects only

	"github.com/plantheque/backend/internal/domain"
)

// Store persists scraped plants and the user's curated library in a
// sqlite database. It implements domain.LibraryRepository.
type Store struct {
	db *sql.DB
}

// NewStore opens the sqlite database at dbPath and ensures the schema
// exists. WAL mode and a busy timeout keep concurrent API requests from
// tripping over "database locked" errors.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// createSchema is private as it's only called by NewStore.
func createSchema(db *sql.DB) error {
	plantsTable := `
	CREATE TABLE IF NOT EXISTS plants (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  nom_francais TEXT NOT NULL,
	  nom_latin TEXT NOT NULL DEFAULT '',
	  exposition TEXT DEFAULT '',
	  type_plante TEXT DEFAULT '',
	  prix TEXT DEFAULT '',
	  prix_valeur REAL DEFAULT 0,
	  description TEXT DEFAULT '',
	  icon TEXT DEFAULT '',
	  url TEXT DEFAULT '',
	  source TEXT DEFAULT '',
	  added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	  UNIQUE(nom_francais, nom_latin)
	);
	CREATE INDEX IF NOT EXISTS idx_plants_nom_francais ON plants(nom_francais);
	CREATE INDEX IF NOT EXISTS idx_plants_nom_latin ON plants(nom_latin);
	`
	if _, err := db.Exec(plantsTable); err != nil {
		return err
	}

	libraryTable := `
	CREATE TABLE IF NOT EXISTS library (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  plant_id INTEGER NOT NULL UNIQUE,
	  quantity INTEGER DEFAULT 1,
	  notes TEXT DEFAULT '',
	  photo_path TEXT DEFAULT '',
	  date_added TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	  FOREIGN KEY (plant_id) REFERENCES plants (id)
	);
	CREATE INDEX IF NOT EXISTS idx_library_plant_id ON library(plant_id);
	`
	if _, err := db.Exec(libraryTable); err != nil {
		return err
	}

	return nil
}

// SavePlant upserts a scraped plant, keyed on (nom_francais, nom_latin),
// and returns its row id. Re-scraping refreshes the stored fields.
func (s *Store) SavePlant(ctx context.Context, plant *domain.PlantSummary) (int64, error) {
	upsertSQL := `
	INSERT INTO plants (
	  nom_francais, nom_latin, exposition, type_plante, prix, prix_valeur,
	  description, icon, url, source
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(nom_francais, nom_latin) DO UPDATE SET
	  exposition = excluded.exposition,
	  type_plante = excluded.type_plante,
	  prix = excluded.prix,
	  prix_valeur = excluded.prix_valeur,
	  description = excluded.description,
	  icon = excluded.icon,
	  url = excluded.url,
	  source = excluded.source;
	`

	_, err := s.db.ExecContext(ctx, upsertSQL,
		plant.FrenchName,
		plant.LatinName,
		plant.Exposure,
		plant.PlantType,
		plant.Price,
		plant.PriceValue,
		plant.Description,
		plant.Icon,
		plant.URL,
		plant.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert plant %q: %w", plant.FrenchName, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM plants WHERE nom_francais = ? AND nom_latin = ?`,
		plant.FrenchName, plant.LatinName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to read back plant id: %w", err)
	}

	return id, nil
}

// SearchPlants returns previously scraped plants whose french or latin
// name contains the query
func (s *Store) SearchPlants(ctx context.Context, query string) ([]domain.PlantSummary, error) {
	pattern := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT nom_francais, nom_latin, exposition, type_plante, prix, prix_valeur, description, icon, url, source
		FROM plants
		WHERE nom_francais LIKE ? OR nom_latin LIKE ?
		ORDER BY nom_francais
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []domain.PlantSummary
	for rows.Next() {
		var p domain.PlantSummary
		if err := rows.Scan(&p.FrenchName, &p.LatinName, &p.Exposure, &p.PlantType, &p.Price, &p.PriceValue, &p.Description, &p.Icon, &p.URL, &p.Source); err == nil {
			plants = append(plants, p)
		}
	}
	return plants, nil
}

const selectEntrySQL = `
	SELECT l.id, l.quantity, l.notes, l.photo_path, l.date_added,
	       p.nom_francais, p.nom_latin, p.exposition, p.type_plante, p.prix, p.prix_valeur, p.description, p.icon, p.url, p.source
	FROM library l
	JOIN plants p ON p.id = l.plant_id`

func scanEntry(row *sql.Row) (*domain.LibraryEntry, error) {
	var e domain.LibraryEntry
	err := row.Scan(
		&e.ID, &e.Quantity, &e.Notes, &e.PhotoPath, &e.AddedAt,
		&e.Plant.FrenchName, &e.Plant.LatinName, &e.Plant.Exposure, &e.Plant.PlantType,
		&e.Plant.Price, &e.Plant.PriceValue, &e.Plant.Description, &e.Plant.Icon,
		&e.Plant.URL, &e.Plant.Source,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AddToLibrary adds a plant to the curated library. Adding a plant that
// is already present merges the quantities and keeps the freshest
// non-empty notes.
func (s *Store) AddToLibrary(ctx context.Context, plantID int64, quantity int, notes string) (*domain.LibraryEntry, error) {
	upsertSQL := `
	INSERT INTO library (plant_id, quantity, notes)
	VALUES (?, ?, ?)
	ON CONFLICT(plant_id) DO UPDATE SET
	  quantity = quantity + excluded.quantity,
	  notes = CASE WHEN excluded.notes != '' THEN excluded.notes ELSE notes END;
	`

	if _, err := s.db.ExecContext(ctx, upsertSQL, plantID, quantity, notes); err != nil {
		return nil, fmt.Errorf("failed to add plant %d to library: %w", plantID, err)
	}

	entry, err := scanEntry(s.db.QueryRowContext(ctx, selectEntrySQL+` WHERE l.plant_id = ?`, plantID))
	if err != nil {
		return nil, fmt.Errorf("failed to read back library entry: %w", err)
	}
	return entry, nil
}

// ListLibrary returns every library entry with its plant, newest first
func (s *Store) ListLibrary(ctx context.Context) ([]domain.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntrySQL+` ORDER BY l.date_added DESC, l.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LibraryEntry
	for rows.Next() {
		var e domain.LibraryEntry
		err := rows.Scan(
			&e.ID, &e.Quantity, &e.Notes, &e.PhotoPath, &e.AddedAt,
			&e.Plant.FrenchName, &e.Plant.LatinName, &e.Plant.Exposure, &e.Plant.PlantType,
			&e.Plant.Price, &e.Plant.PriceValue, &e.Plant.Description, &e.Plant.Icon,
			&e.Plant.URL, &e.Plant.Source,
		)
		if err == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// UpdatePhoto records the stored photo path for a library entry
func (s *Store) UpdatePhoto(ctx context.Context, entryID int64, photoPath string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE library SET photo_path = ? WHERE id = ?`, photoPath, entryID)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// Stats aggregates the library: entry count, total plants including
// quantities, and per-type quantity totals
func (s *Store) Stats(ctx context.Context) (*domain.LibraryStats, error) {
	stats := &domain.LibraryStats{ByType: map[string]int{}}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM library`,
	).Scan(&stats.TotalEntries, &stats.TotalPlants)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate library: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.type_plante, SUM(l.quantity)
		FROM library l
		JOIN plants p ON p.id = l.plant_id
		GROUP BY p.type_plante
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var plantType string
		var total int
		if err := rows.Scan(&plantType, &total); err == nil {
			stats.ByType[plantType] = total
		}
	}
	return stats, nil
}
