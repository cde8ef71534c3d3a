package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/teamfit-api/internal/aggregate"
	"github.com/noah-isme/teamfit-api/internal/models"
)

type formulaUpserter interface {
	Upsert(ctx context.Context, formulas []models.Formula) error
}

type catalogResetter interface {
	Reset()
}

type formulaDocument struct {
	Formulas []models.Formula `yaml:"formulas"`
}

// FormulaSeeder loads a YAML formula catalog into the database.
type FormulaSeeder struct {
	repo    formulaUpserter
	catalog catalogResetter
	logger  *zap.Logger
}

// NewFormulaSeeder constructs a seeder. catalog may be nil.
func NewFormulaSeeder(repo formulaUpserter, catalog catalogResetter, logger *zap.Logger) *FormulaSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormulaSeeder{repo: repo, catalog: catalog, logger: logger}
}

// Parse decodes and validates a catalog document. Every invalid entry is reported.
func (s *FormulaSeeder) Parse(raw []byte) ([]models.Formula, error) {
	var doc formulaDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode formula catalog: %w", err)
	}
	if len(doc.Formulas) == 0 {
		return nil, fmt.Errorf("formula catalog is empty")
	}

	var errs error
	seen := make(map[int64]struct{}, len(doc.Formulas))
	for i := range doc.Formulas {
		f := &doc.Formulas[i]
		code, err := aggregate.ParseCode(string(f.Code))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("formula %d: %w", f.ID, err))
		}
		f.Code = code
		if f.ID <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("formula %q: id must be positive", f.Name))
		}
		if _, dup := seen[f.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("formula %d: duplicate id", f.ID))
		}
		seen[f.ID] = struct{}{}
		if strings.TrimSpace(f.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("formula %d: name is required", f.ID))
		}
		if f.MaxArguments != aggregate.Unlimited && f.MaxArguments < 1 {
			errs = multierr.Append(errs, fmt.Errorf("formula %d: max_arguments must be positive or %d", f.ID, aggregate.Unlimited))
		}
		if code == aggregate.CodeDivision && f.MaxArguments != 2 {
			errs = multierr.Append(errs, fmt.Errorf("formula %d: division takes exactly 2 arguments", f.ID))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return doc.Formulas, nil
}

// Seed upserts the catalog in raw and drops the in-process formula cache.
func (s *FormulaSeeder) Seed(ctx context.Context, raw []byte) ([]models.Formula, error) {
	formulas, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, formulas); err != nil {
		return nil, fmt.Errorf("seed formulas: %w", err)
	}
	if s.catalog != nil {
		s.catalog.Reset()
	}
	s.logger.Info("formula catalog seeded", zap.Int("count", len(formulas)))
	return formulas, nil
}
