package service

import (
	"context"
	"fmt"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/repository"
)

type projectService struct {
	projectRepo repository.ProjectRepository
	ngoRepo     repository.NGORepository
}

func NewProjectService(projectRepo repository.ProjectRepository, ngoRepo repository.NGORepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		ngoRepo:     ngoRepo,
	}
}

func (s *projectService) CreateProject(ctx context.Context, userID int32, project *domain.Project) error {
	if project.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if project.GoalAmount <= 0 {
		return fmt.Errorf("project goal amount must be positive")
	}

	ngo, err := s.ngoRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user %d has no registered ngo: %w", userID, err)
	}
	project.NGOID = ngo.ID

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	logger.Info("Project created", "project_id", project.ID, "ngo_id", ngo.ID)
	return nil
}

func (s *projectService) GetProject(ctx context.Context, id int32) (*domain.Project, []domain.ProjectUpdate, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("project not found: %w", err)
	}
	updates, err := s.projectRepo.ListUpdates(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load project updates: %w", err)
	}
	return project, updates, nil
}

func (s *projectService) ListProjects(ctx context.Context, category string, page, pageSize int32) ([]domain.Project, int32, error) {
	return s.projectRepo.List(ctx, category, page, pageSize)
}

func (s *projectService) ListNGOProjects(ctx context.Context, ngoID int32) ([]domain.Project, error) {
	return s.projectRepo.ListByNGO(ctx, ngoID)
}

func (s *projectService) UpdateProject(ctx context.Context, userID int32, project *domain.Project) error {
	if err := s.requireOwner(ctx, userID, project.ID); err != nil {
		return err
	}
	return s.projectRepo.Update(ctx, project)
}

func (s *projectService) PostUpdate(ctx context.Context, userID int32, update *domain.ProjectUpdate) error {
	if update.Title == "" || update.Body == "" {
		return fmt.Errorf("update title and body are required")
	}
	if err := s.requireOwner(ctx, userID, update.ProjectID); err != nil {
		return err
	}
	if err := s.projectRepo.CreateUpdate(ctx, update); err != nil {
		return fmt.Errorf("failed to post project update: %w", err)
	}
	logger.Info("Project update posted", "project_id", update.ProjectID, "update_id", update.ID)
	return nil
}

func (s *projectService) requireOwner(ctx context.Context, userID, projectID int32) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("project not found: %w", err)
	}
	ngo, err := s.ngoRepo.GetByID(ctx, project.NGOID)
	if err != nil {
		return fmt.Errorf("ngo not found: %w", err)
	}
	if ngo.UserID != userID {
		return fmt.Errorf("user %d does not manage project %d", userID, projectID)
	}
	return nil
}
