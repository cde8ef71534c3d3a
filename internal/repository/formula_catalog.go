package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coocood/freecache"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
)

const (
	megabyte          = 1024 * 1024
	formulaCatalogKey = "formulas::all"
)

type formulaSource interface {
	List(ctx context.Context) ([]models.Formula, error)
}

// FormulaCatalog keeps the formula table in an in-process cache. The catalog is
// read on every metric validation and only changes when it is re-seeded.
type FormulaCatalog struct {
	source formulaSource
	cache  *freecache.Cache
	ttl    int
	logger *zap.Logger
}

// NewFormulaCatalog builds a catalog backed by source with a cache of sizeMB.
func NewFormulaCatalog(source formulaSource, sizeMB int, ttl time.Duration, logger *zap.Logger) *FormulaCatalog {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormulaCatalog{
		source: source,
		cache:  freecache.NewCache(sizeMB * megabyte),
		ttl:    int(ttl.Seconds()),
		logger: logger,
	}
}

// List returns all formulas, loading them from the source on a cache miss.
func (c *FormulaCatalog) List(ctx context.Context) ([]models.Formula, error) {
	if raw, err := c.cache.Get([]byte(formulaCatalogKey)); err == nil {
		var formulas []models.Formula
		if err := json.Unmarshal(raw, &formulas); err == nil {
			return formulas, nil
		}
		c.logger.Warn("discarding unreadable formula cache entry")
	}

	formulas, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(formulas)
	if err == nil {
		err = c.cache.Set([]byte(formulaCatalogKey), payload, c.ttl)
	}
	if err != nil {
		c.logger.Warn("failed to cache formula catalog", zap.Error(err))
	}
	return formulas, nil
}

// ByID returns the formulas keyed by id.
func (c *FormulaCatalog) ByID(ctx context.Context) (map[int64]models.Formula, error) {
	formulas, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.Formula, len(formulas))
	for _, f := range formulas {
		out[f.ID] = f
	}
	return out, nil
}

// Find returns one formula and whether it exists.
func (c *FormulaCatalog) Find(ctx context.Context, id int64) (*models.Formula, bool, error) {
	byID, err := c.ByID(ctx)
	if err != nil {
		return nil, false, err
	}
	f, ok := byID[id]
	if !ok {
		return nil, false, nil
	}
	return &f, true, nil
}

// Reset drops the cached catalog so the next read hits the source.
func (c *FormulaCatalog) Reset() {
	c.cache.Del([]byte(formulaCatalogKey))
}
