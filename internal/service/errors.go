package service

import (
	"database/sql"
	"errors"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/pkg/database"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// loadError maps a repository lookup failure to not-found or internal.
func loadError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return internalError(err, "failed to load "+entity)
}

// writeError maps constraint violations on insert or update.
func writeError(err error, message, conflict, missingRef string) error {
	switch {
	case conflict != "" && database.IsUniqueViolation(err):
		return appErrors.Clone(appErrors.ErrConflict, conflict)
	case missingRef != "" && database.IsForeignKeyViolation(err):
		return appErrors.Clone(appErrors.ErrValidation, missingRef)
	}
	return internalError(err, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func paginate(filter models.ListFilter, total int) *models.Pagination {
	filter = filter.Normalize()
	return &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
}
