// Package sqlite keeps the chemical property inventory in a SQLite file so
// that labs can maintain it outside of individual run directories.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/repositories"
)

const schema = `CREATE TABLE IF NOT EXISTS chemicals (
	abbreviation TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	molecular_weight TEXT NOT NULL,
	density TEXT NOT NULL
)`

// ChemicalRepository stores chemical properties in a SQLite table. Amounts
// are kept as decimal text so that values round-trip exactly.
type ChemicalRepository struct {
	db *sql.DB
}

// Verify interface compliance
var _ repositories.ChemicalRepository = (*ChemicalRepository)(nil)

// Open opens or creates the chemical database at path
func Open(path string) (*ChemicalRepository, error) {
	if path == "" {
		path = "chemicals.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create chemicals table: %w", err)
	}
	return &ChemicalRepository{db: db}, nil
}

// Close releases the database handle
func (r *ChemicalRepository) Close() error {
	return r.db.Close()
}

// LoadChemicals upserts chemical records in a single transaction
func (r *ChemicalRepository) LoadChemicals(chemicals []*entities.ChemicalProperties) error {
	return r.Import(context.Background(), chemicals)
}

// Import upserts chemical records in a single transaction
func (r *ChemicalRepository) Import(ctx context.Context, chemicals []*entities.ChemicalProperties) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chemicals (abbreviation, name, molecular_weight, density)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(abbreviation) DO UPDATE SET
			name = excluded.name,
			molecular_weight = excluded.molecular_weight,
			density = excluded.density`)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, chem := range chemicals {
		if chem == nil {
			return fmt.Errorf("chemical cannot be nil")
		}
		if _, err := stmt.ExecContext(ctx, string(chem.Abbreviation), chem.Name,
			chem.MolecularWeight.String(), chem.Density.String()); err != nil {
			return fmt.Errorf("import %s: %w", chem.Abbreviation, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// GetChemical returns the property record for an abbreviation
func (r *ChemicalRepository) GetChemical(abbr entities.ChemicalAbbr) (*entities.ChemicalProperties, error) {
	row := r.db.QueryRow(`SELECT abbreviation, name, molecular_weight, density
		FROM chemicals WHERE abbreviation = ?`, string(abbr))
	chem, err := scanChemical(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownChemical, abbr)
	}
	if err != nil {
		return nil, fmt.Errorf("get chemical %s: %w", abbr, err)
	}
	return chem, nil
}

// GetAllChemicals returns every record ordered by abbreviation
func (r *ChemicalRepository) GetAllChemicals() ([]*entities.ChemicalProperties, error) {
	rows, err := r.db.Query(`SELECT abbreviation, name, molecular_weight, density
		FROM chemicals ORDER BY abbreviation`)
	if err != nil {
		return nil, fmt.Errorf("select chemicals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chemicals []*entities.ChemicalProperties
	for rows.Next() {
		chem, err := scanChemical(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		chemicals = append(chemicals, chem)
	}
	return chemicals, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChemical(s scanner) (*entities.ChemicalProperties, error) {
	var abbr, name, mw, density string
	if err := s.Scan(&abbr, &name, &mw, &density); err != nil {
		return nil, err
	}
	mwDec, err := decimal.NewFromString(mw)
	if err != nil {
		return nil, fmt.Errorf("molecular weight of %s: %w", abbr, err)
	}
	densityDec, err := decimal.NewFromString(density)
	if err != nil {
		return nil, fmt.Errorf("density of %s: %w", abbr, err)
	}
	return &entities.ChemicalProperties{
		Abbreviation:    entities.ChemicalAbbr(abbr),
		Name:            name,
		MolecularWeight: mwDec,
		Density:         densityDec,
	}, nil
}
