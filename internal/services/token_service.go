package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/tokentype"
)

// tokenService handles the project token registry.
type tokenService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewTokenService creates a new TokenServicer.
func NewTokenService(db *gorm.DB, projects ProjectServicer) TokenServicer {
	return &tokenService{db: db, projects: projects}
}

// CreateToken registers a token on a project. The standard is stored in
// its hyphenated form regardless of how the caller spelled it.
func (s *tokenService) CreateToken(userID, projectID uint, name, symbol, standard string, decimals int, totalSupply float64) (*models.Token, error) {
	if name == "" || symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "token name and symbol are required")
	}

	if standard != "" {
		standard = tokentype.Stored(standard)
		if !tokentype.IsStandard(standard) {
			return nil, apperrors.ErrInvalidTokenType
		}
	}

	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	if decimals == 0 {
		decimals = 18
	}

	token := &models.Token{
		ProjectID:   projectID,
		Name:        name,
		Symbol:      symbol,
		Standard:    standard,
		Decimals:    decimals,
		TotalSupply: totalSupply,
	}
	if err := s.db.Create(token).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, nil
}

// GetProjectTokens returns every token registered on a project.
func (s *tokenService) GetProjectTokens(userID, projectID uint) ([]models.Token, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	var tokens []models.Token
	if err := s.db.Where("project_id = ?", projectID).Order("name ASC").Find(&tokens).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tokens, nil
}

// GetTokenByID retrieves a token, verifying project ownership.
func (s *tokenService) GetTokenByID(userID, tokenID uint) (*models.Token, error) {
	var token models.Token
	err := s.db.
		Joins("JOIN projects ON projects.id = tokens.project_id").
		Where("tokens.id = ? AND projects.owner_id = ?", tokenID, userID).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &token, nil
}

// DeleteToken removes a token registry entry. Allocations referencing the
// token by label are unaffected; the label on the allocation stays
// authoritative.
func (s *tokenService) DeleteToken(userID, tokenID uint) error {
	token, err := s.GetTokenByID(userID, tokenID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(token).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
