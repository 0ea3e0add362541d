package services

import (
	"strings"

	"psfinder_backend/internal/models"
	"psfinder_backend/internal/repositories"
	"psfinder_backend/internal/services/dto"
	"psfinder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TeamService interface {
	Create(db *gorm.DB, ownerID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetByID(db *gorm.DB, ownerID, teamID string) (*dto.TeamResponse, error)
	ListByOwner(db *gorm.DB, ownerID string) ([]*dto.TeamResponse, error)
	Update(db *gorm.DB, ownerID, teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	Delete(db *gorm.DB, ownerID, teamID string) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) Create(db *gorm.DB, ownerID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if err := checkDuplicateSkills(req.Skills); err != nil {
		return nil, err
	}

	team := &models.TeamProfile{
		OwnerID:         ownerID,
		Name:            req.Name,
		TeamSize:        req.TeamSize,
		ExperienceLevel: req.ExperienceLevel,
		Deadline:        req.Deadline,
	}
	team.SetSkills(dto.SkillsToModel(req.Skills))
	team.SetPreferredDomains(req.PreferredDomains)

	if err := s.teamRepo.Create(db, team); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.TeamToResponse(team), nil
}

func (s *teamService) GetByID(db *gorm.DB, ownerID, teamID string) (*dto.TeamResponse, error) {
	team, err := s.findOwned(db, ownerID, teamID)
	if err != nil {
		return nil, err
	}
	return dto.TeamToResponse(team), nil
}

func (s *teamService) ListByOwner(db *gorm.DB, ownerID string) ([]*dto.TeamResponse, error) {
	teams, err := s.teamRepo.FindByOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, dto.TeamToResponse(&teams[i]))
	}
	return out, nil
}

func (s *teamService) Update(db *gorm.DB, ownerID, teamID string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.findOwned(db, ownerID, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.TeamSize != nil {
		team.TeamSize = *req.TeamSize
	}
	if req.ExperienceLevel != nil {
		team.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Deadline != nil {
		team.Deadline = req.Deadline
	}
	if req.Skills != nil {
		if err := checkDuplicateSkills(req.Skills); err != nil {
			return nil, err
		}
		team.SetSkills(dto.SkillsToModel(req.Skills))
	}
	if req.PreferredDomains != nil {
		team.SetPreferredDomains(req.PreferredDomains)
	}

	if err := s.teamRepo.Update(db, team); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.TeamToResponse(team), nil
}

func (s *teamService) Delete(db *gorm.DB, ownerID, teamID string) error {
	if _, err := s.findOwned(db, ownerID, teamID); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(db, teamID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// findOwned loads the team and enforces ownership. A foreign team is
// reported as not found rather than forbidden, so team ids are not
// probeable.
func (s *teamService) findOwned(db *gorm.DB, ownerID, teamID string) (*models.TeamProfile, error) {
	team, err := s.teamRepo.FindByID(db, teamID)
	if err != nil {
		if err == repositories.ErrTeamNotFound {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if team.OwnerID != ownerID {
		return nil, apperrors.ErrTeamNotFound
	}
	return team, nil
}

func checkDuplicateSkills(skills []dto.TeamSkillInput) error {
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if _, ok := seen[name]; ok {
			return apperrors.ErrDuplicateSkill
		}
		seen[name] = struct{}{}
	}
	return nil
}
