package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type CreateTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateTeamRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

type AddMemberRequest struct {
	TeamID uint `json:"teamId" validate:"required"`
	UserID uint `json:"userId" validate:"required"`
}

type RemoveMemberRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

// TeamMembers is a team reduced to its id, name and members.
type TeamMembers struct {
	ID      uint          `json:"id"`
	Name    string        `json:"name"`
	Members []domain.User `json:"members"`
}

type TeamService interface {
	List(ctx context.Context) ([]domain.Team, error)
	Create(ctx context.Context, req CreateTeamRequest) (*domain.Team, error)
	Update(ctx context.Context, id uint, req UpdateTeamRequest) (*domain.Team, error)
	Delete(ctx context.Context, id uint) error
	Members(ctx context.Context, teamID uint) (*TeamMembers, error)
	// AddMember puts a team-less user into a team.
	AddMember(ctx context.Context, req AddMemberRequest) (*domain.User, error)
	RemoveMember(ctx context.Context, req RemoveMemberRequest) (*domain.User, error)
}

type teamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
	log   *zap.SugaredLogger
}

func NewTeamService(teams repository.TeamRepository, users repository.UserRepository, log *zap.SugaredLogger) TeamService {
	return &teamService{teams: teams, users: users, log: log.Named("service.teams")}
}

func (s *teamService) List(ctx context.Context) ([]domain.Team, error) {
	return s.teams.List(ctx)
}

func (s *teamService) Create(ctx context.Context, req CreateTeamRequest) (*domain.Team, error) {
	team := &domain.Team{Name: req.Name}
	if err := s.teams.Create(ctx, team); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflictf("Team %q already exists", req.Name)
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) Update(ctx context.Context, id uint, req UpdateTeamRequest) (*domain.Team, error) {
	team, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Team %d not found", id)
	}
	if req.Name != nil {
		team.Name = *req.Name
	}
	if err := s.teams.Update(ctx, team); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflictf("Team %q already exists", team.Name)
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id uint) error {
	return notFound(s.teams.Delete(ctx, id), "Team %d not found", id)
}

func (s *teamService) Members(ctx context.Context, teamID uint) (*TeamMembers, error) {
	team, err := s.teams.FindWithMembers(ctx, teamID)
	if err != nil {
		return nil, notFound(err, "Team not found")
	}
	members := team.Members
	if members == nil {
		members = []domain.User{}
	}
	return &TeamMembers{ID: team.ID, Name: team.Name, Members: members}, nil
}

func (s *teamService) AddMember(ctx context.Context, req AddMemberRequest) (*domain.User, error) {
	if _, err := s.teams.FindByID(ctx, req.TeamID); err != nil {
		return nil, notFound(err, "Team not found")
	}
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	if user.TeamID != nil {
		return nil, domain.Invalidf("User is already assigned to a team")
	}

	teamID := req.TeamID
	if err := s.users.SetTeam(ctx, user.ID, &teamID); err != nil {
		return nil, fmt.Errorf("assign user %d to team %d: %w", user.ID, teamID, err)
	}
	user.TeamID = &teamID
	user.Team = nil
	s.log.Infow("member added", "team_id", teamID, "user_id", user.ID)
	return user, nil
}

func (s *teamService) RemoveMember(ctx context.Context, req RemoveMemberRequest) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	if err := s.users.SetTeam(ctx, user.ID, nil); err != nil {
		return nil, fmt.Errorf("remove user %d from team: %w", user.ID, err)
	}
	s.log.Infow("member removed", "user_id", user.ID)
	user.TeamID = nil
	user.Team = nil
	return user, nil
}
