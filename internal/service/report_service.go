package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/dto"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/export"
)

type boardProvider interface {
	Board(ctx context.Context, athleteID int64) (*dto.AthleteBoard, bool, error)
}

type reportRenderer interface {
	Render(format export.Format, data export.Dataset, title, stem string) (*export.Report, error)
}

var boardHeaders = []string{"Metric", "Kind", "Formula", "Value"}

// ReportService renders athlete metric boards as downloadable documents.
type ReportService struct {
	boards   boardProvider
	athletes athleteReader
	renderer reportRenderer
	logger   *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(boards boardProvider, athletes athleteReader, renderer reportRenderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{boards: boards, athletes: athletes, renderer: renderer, logger: logger}
}

// AthleteBoard renders one athlete's metric board in the requested format.
func (s *ReportService) AthleteBoard(ctx context.Context, athleteID int64, rawFormat string) (*export.Report, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, validationError(err, "format must be csv or pdf")
	}
	athlete, err := s.athletes.FindByID(ctx, athleteID)
	if err != nil {
		return nil, loadError(err, "athlete")
	}
	board, _, err := s.boards.Board(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	report, err := s.renderer.Render(format, BoardDataset(board), fmt.Sprintf("Metrics of %s", athlete.Name), fmt.Sprintf("athlete-%d-metrics", athleteID))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.logger.Info("metric report rendered", zap.Int64("athlete_id", athleteID), zap.String("format", string(format)), zap.Int("rows", len(board.Entries)))
	return report, nil
}

// BoardDataset flattens a board into report rows. Missing values render empty.
func BoardDataset(board *dto.AthleteBoard) export.Dataset {
	data := export.Dataset{Headers: boardHeaders, Rows: make([]map[string]string, 0, len(board.Entries))}
	for _, entry := range board.Entries {
		value := ""
		switch {
		case entry.DisplayValue != nil:
			value = *entry.DisplayValue
		case entry.Value != nil:
			value = strconv.FormatFloat(*entry.Value, 'f', -1, 64)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Metric":  entry.Name,
			"Kind":    entry.Kind,
			"Formula": entry.FormulaName,
			"Value":   value,
		})
	}
	return data
}
