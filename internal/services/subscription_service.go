package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/pagination"
)

// subscriptionService handles subscription-related business logic.
type subscriptionService struct {
	db        *gorm.DB
	investors InvestorServicer
	projects  ProjectServicer
}

// NewSubscriptionService creates a new SubscriptionServicer.
func NewSubscriptionService(db *gorm.DB, projects ProjectServicer, investors InvestorServicer) SubscriptionServicer {
	return &subscriptionService{db: db, projects: projects, investors: investors}
}

// CreateSubscription records an investor's commitment. Amount is in minor
// currency units and must be positive.
func (s *subscriptionService) CreateSubscription(userID, investorID uint, currency string, amount int64, notes string) (*models.Subscription, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subscription amount must be positive")
	}

	investor, err := s.investors.GetInvestorByID(userID, investorID)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		ProjectID:  investor.ProjectID,
		InvestorID: investor.ID,
		Currency:   currency,
		Amount:     amount,
		Notes:      notes,
	}
	if err := s.db.Create(sub).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sub, nil
}

// GetProjectSubscriptions returns a page of subscriptions on a project.
func (s *subscriptionService) GetProjectSubscriptions(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Subscription], error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Subscription{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var subs []models.Subscription
	if err := query.Preload("Investor").
		Scopes(pagination.Paginate(page)).
		Order("created_at ASC").
		Find(&subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(subs, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetSubscriptionByID retrieves a subscription, verifying project ownership.
func (s *subscriptionService) GetSubscriptionByID(userID, subscriptionID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Preload("Investor").
		Joins("JOIN projects ON projects.id = subscriptions.project_id").
		Where("subscriptions.id = ? AND projects.owner_id = ?", subscriptionID, userID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sub, nil
}

// ConfirmSubscription marks a subscription as confirmed. Confirming an
// already confirmed subscription is a no-op.
func (s *subscriptionService) ConfirmSubscription(userID, subscriptionID uint) (*models.Subscription, error) {
	sub, err := s.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if sub.Confirmed {
		return sub, nil
	}

	if err := s.db.Model(sub).Update("confirmed", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sub.Confirmed = true
	return sub, nil
}

// DeleteSubscription soft-deletes a subscription and its allocations.
// Subscriptions with minted allocations cannot be removed.
func (s *subscriptionService) DeleteSubscription(userID, subscriptionID uint) error {
	sub, err := s.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		return err
	}

	var minted int64
	if err := s.db.Model(&models.Allocation{}).
		Where("subscription_id = ? AND minted = ?", subscriptionID, true).
		Count(&minted).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if minted > 0 {
		return apperrors.WithMessage(apperrors.ErrAllocationAlreadyMinted, "subscription has minted allocations and cannot be removed")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subscription_id = ?", subscriptionID).Delete(&models.Allocation{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(sub).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
