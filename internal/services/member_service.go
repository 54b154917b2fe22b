package services

import (
	"context"

	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/pkg/logger"
	"go.uber.org/zap"
)

// MemberService manages which employees work on a project.
type MemberService interface {
	Roster(ctx context.Context, projectID uint) (*Roster, error)
	Assign(ctx context.Context, projectID, employeeID uint) error
	Remove(ctx context.Context, projectID, employeeID uint) error
}

// Roster is everything the membership page shows: the project, its current
// members, and the active employees that can be added.
type Roster struct {
	Project    *models.ProjectHeader
	Members    []models.EmployeeSummary
	Candidates []models.EmployeeSummary
}

type memberService struct {
	projects  repository.ProjectRepository
	employees repository.EmployeeRepository
	members   repository.MemberRepository
}

func NewMemberService(projects repository.ProjectRepository, employees repository.EmployeeRepository, members repository.MemberRepository) MemberService {
	return &memberService{projects: projects, employees: employees, members: members}
}

var _ MemberService = (*memberService)(nil)

func (s *memberService) Roster(ctx context.Context, projectID uint) (*Roster, error) {
	h, err := s.projects.Header(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.employees.ActiveSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return &Roster{Project: h, Members: members, Candidates: candidates}, nil
}

// Assign adds the pair. A missing project is reported as CodeNotFound before
// anything is written.
func (s *memberService) Assign(ctx context.Context, projectID, employeeID uint) error {
	logger.L().Info("assign project member", zap.Uint("project_id", projectID), zap.Uint("employee_id", employeeID))
	if _, err := s.projects.Header(ctx, projectID); err != nil {
		return err
	}
	if err := s.members.Assign(ctx, projectID, employeeID); err != nil {
		logger.L().Warn("assign project member failed", zap.Uint("project_id", projectID), zap.Uint("employee_id", employeeID), zap.Error(err))
		return err
	}
	return nil
}

func (s *memberService) Remove(ctx context.Context, projectID, employeeID uint) error {
	logger.L().Info("remove project member", zap.Uint("project_id", projectID), zap.Uint("employee_id", employeeID))
	return s.members.Remove(ctx, projectID, employeeID)
}
