package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/pagination"
)

// projectService handles project-related business logic.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// CreateProject creates a new cap-table project owned by the given user.
func (s *projectService) CreateProject(ownerID uint, name, description string) (*models.Project, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}

	project := &models.Project{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return project, nil
}

// GetUserProjects returns a page of the user's projects.
func (s *projectService) GetUserProjects(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	page.Defaults()

	query := s.db.Model(&models.Project{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var projects []models.Project
	if err := query.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(projects, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetProjectByID retrieves a project, verifying ownership.
func (s *projectService) GetProjectByID(ownerID, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ? AND owner_id = ?", projectID, ownerID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

// UpdateProject updates a project's name and description.
func (s *projectService) UpdateProject(ownerID, projectID uint, name, description string) (*models.Project, error) {
	project, err := s.GetProjectByID(ownerID, projectID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if len(updates) == 0 {
		return project, nil
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return project, nil
}

// DeleteProject soft-deletes a project.
func (s *projectService) DeleteProject(ownerID, projectID uint) error {
	project, err := s.GetProjectByID(ownerID, projectID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(project).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
