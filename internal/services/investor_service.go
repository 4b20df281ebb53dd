package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/pagination"
)

// investorService handles investor-related business logic.
type investorService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewInvestorService creates a new InvestorServicer.
func NewInvestorService(db *gorm.DB, projects ProjectServicer) InvestorServicer {
	return &investorService{db: db, projects: projects}
}

// CreateInvestor adds an investor to a project's cap table.
func (s *investorService) CreateInvestor(userID, projectID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investor name is required")
	}

	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	if kyc == "" {
		kyc = models.KycStatusPending
	}
	if payment == "" {
		payment = models.PaymentStatusUnpaid
	}

	investor := &models.Investor{
		ProjectID:     projectID,
		Name:          name,
		Email:         email,
		WalletAddress: walletAddress,
		KycStatus:     kyc,
		PaymentStatus: payment,
	}
	if err := s.db.Create(investor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investor, nil
}

// GetProjectInvestors returns a page of investors on a project.
func (s *investorService) GetProjectInvestors(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Investor{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investors []models.Investor
	if err := query.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&investors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(investors, page.Page, page.PageSize, total)
	return &resp, nil
}

// ListProjectInvestors returns every investor on a project with their
// subscriptions preloaded. Used by exports, which need the full table.
func (s *investorService) ListProjectInvestors(userID, projectID uint) ([]models.Investor, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	var investors []models.Investor
	if err := s.db.Preload("Subscriptions").
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&investors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investors, nil
}

// GetInvestorByID retrieves an investor, verifying project ownership.
func (s *investorService) GetInvestorByID(userID, investorID uint) (*models.Investor, error) {
	var investor models.Investor
	err := s.db.
		Joins("JOIN projects ON projects.id = investors.project_id").
		Where("investors.id = ? AND projects.owner_id = ?", investorID, userID).
		First(&investor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, nil
}

// UpdateInvestor updates investor contact and status fields.
func (s *investorService) UpdateInvestor(userID, investorID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error) {
	investor, err := s.GetInvestorByID(userID, investorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		updates["email"] = email
	}
	if walletAddress != "" {
		updates["wallet_address"] = walletAddress
	}
	if kyc != "" {
		updates["kyc_status"] = kyc
	}
	if payment != "" {
		updates["payment_status"] = payment
	}
	if len(updates) == 0 {
		return investor, nil
	}

	if err := s.db.Model(investor).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investor, nil
}

// DeleteInvestor soft-deletes an investor and their subscriptions and
// allocations. Investors with minted allocations cannot be removed.
func (s *investorService) DeleteInvestor(userID, investorID uint) error {
	investor, err := s.GetInvestorByID(userID, investorID)
	if err != nil {
		return err
	}

	var minted int64
	if err := s.db.Model(&models.Allocation{}).
		Where("investor_id = ? AND minted = ?", investorID, true).
		Count(&minted).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if minted > 0 {
		return apperrors.WithMessage(apperrors.ErrAllocationAlreadyMinted, "investor has minted allocations and cannot be removed")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investor_id = ?", investorID).Delete(&models.Allocation{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("investor_id = ?", investorID).Delete(&models.Subscription{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(investor).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
