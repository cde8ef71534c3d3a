package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/models"
)

type teamRepository interface {
	List(ctx context.Context, filter models.TeamFilter) ([]models.Team, int, error)
	ListByAthlete(ctx context.Context, athleteID int64) ([]models.Team, error)
	FindByID(ctx context.Context, id int64) (*models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int64) error
}

type teamMemberRepository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]models.Athlete, error)
}

// TeamRequest holds the payload for creating or replacing a team.
type TeamRequest struct {
	Name    string `json:"name" validate:"required"`
	CoachID int64  `json:"id_coach" validate:"required,gt=0"`
	SportID int64  `json:"id_sport" validate:"required,gt=0"`
}

// TeamService handles team use-cases.
type TeamService struct {
	repo      teamRepository
	members   teamMemberRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamService constructs the team service.
func NewTeamService(repo teamRepository, members teamMemberRepository, validate *validator.Validate, logger *zap.Logger) *TeamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{repo: repo, members: members, validator: validate, logger: logger}
}

// List returns teams and pagination metadata.
func (s *TeamService) List(ctx context.Context, filter models.TeamFilter) ([]models.Team, *models.Pagination, error) {
	teams, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list teams")
	}
	return teams, paginate(filter.ListFilter, total), nil
}

// ListByAthlete returns the teams an athlete belongs to.
func (s *TeamService) ListByAthlete(ctx context.Context, athleteID int64) ([]models.Team, error) {
	teams, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, internalError(err, "failed to list athlete teams")
	}
	return teams, nil
}

// Athletes returns the athletes enrolled in a team.
func (s *TeamService) Athletes(ctx context.Context, id int64) ([]models.Athlete, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	athletes, err := s.members.ListByTeam(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to list team athletes")
	}
	return athletes, nil
}

// Get returns one team.
func (s *TeamService) Get(ctx context.Context, id int64) (*models.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "team")
	}
	return team, nil
}

// Create registers a team.
func (s *TeamService) Create(ctx context.Context, req TeamRequest) (*models.Team, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid team payload")
	}
	team := &models.Team{Name: req.Name, CoachID: req.CoachID, SportID: req.SportID}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, writeError(err, "failed to create team", "", "coach or sport does not exist")
	}
	return team, nil
}

// Update replaces a team.
func (s *TeamService) Update(ctx context.Context, id int64, req TeamRequest) (*models.Team, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid team payload")
	}
	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Name, team.CoachID, team.SportID = req.Name, req.CoachID, req.SportID
	if err := s.repo.Update(ctx, team); err != nil {
		return nil, writeError(err, "failed to update team", "", "coach or sport does not exist")
	}
	return team, nil
}

// Delete removes a team and its enrollments.
func (s *TeamService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete team")
	}
	return nil
}
