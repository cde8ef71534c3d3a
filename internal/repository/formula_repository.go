package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// FormulaRepository reads and seeds the formula catalog.
type FormulaRepository struct {
	db *sqlx.DB
}

// NewFormulaRepository constructs a FormulaRepository.
func NewFormulaRepository(db *sqlx.DB) *FormulaRepository {
	return &FormulaRepository{db: db}
}

const formulaColumns = "id, code, name, description, max_arguments"

// List returns every formula ordered by id.
func (r *FormulaRepository) List(ctx context.Context) ([]models.Formula, error) {
	var formulas []models.Formula
	if err := r.db.SelectContext(ctx, &formulas, "SELECT "+formulaColumns+" FROM formulas ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	return formulas, nil
}

// FindByID fetches a formula.
func (r *FormulaRepository) FindByID(ctx context.Context, id int64) (*models.Formula, error) {
	var formula models.Formula
	if err := r.db.GetContext(ctx, &formula, "SELECT "+formulaColumns+" FROM formulas WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &formula, nil
}

// Upsert inserts or replaces the given formulas in one transaction.
func (r *FormulaRepository) Upsert(ctx context.Context, formulas []models.Formula) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin formula upsert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO formulas (id, code, name, description, max_arguments)
        VALUES (:id, :code, :name, :description, :max_arguments)
        ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name,
        description = EXCLUDED.description, max_arguments = EXCLUDED.max_arguments`
	for i := range formulas {
		if _, err = tx.NamedExecContext(ctx, query, &formulas[i]); err != nil {
			return fmt.Errorf("upsert formula %s: %w", formulas[i].Code, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit formula upsert: %w", err)
	}
	return nil
}
