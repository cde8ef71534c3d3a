package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// PhotoRepository reads and writes the photo_path column of catalog tables.
type PhotoRepository struct {
	db *sqlx.DB
}

// NewPhotoRepository constructs a PhotoRepository.
func NewPhotoRepository(db *sqlx.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// PhotoPath returns the stored photo key of an entity. The row must exist.
func (r *PhotoRepository) PhotoPath(ctx context.Context, owner models.PhotoOwner, id int64) (*string, error) {
	if !owner.Valid() {
		return nil, fmt.Errorf("unknown photo owner %q", owner)
	}
	var path *string
	if err := r.db.GetContext(ctx, &path, fmt.Sprintf("SELECT photo_path FROM %s WHERE id = $1", owner), id); err != nil {
		return nil, err
	}
	return path, nil
}

// SetPhotoPath records a new photo key and reports whether the row exists.
func (r *PhotoRepository) SetPhotoPath(ctx context.Context, owner models.PhotoOwner, id int64, path string) (bool, error) {
	if !owner.Valid() {
		return false, fmt.Errorf("unknown photo owner %q", owner)
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET photo_path = $1, updated_at = $2 WHERE id = $3", owner), path, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("set %s photo: %w", owner, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set %s photo: %w", owner, err)
	}
	return affected > 0, nil
}
