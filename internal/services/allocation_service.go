package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/listview"
	"captable/internal/models"
	"captable/internal/summary"
	"captable/internal/tokentype"
)

// allocationService handles allocation-related business logic.
type allocationService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewAllocationService creates a new AllocationServicer.
func NewAllocationService(db *gorm.DB, projects ProjectServicer) AllocationServicer {
	return &allocationService{db: db, projects: projects}
}

// rowFromAllocation builds the joined view row for an allocation. The
// Investor and Subscription associations must be preloaded.
func rowFromAllocation(a *models.Allocation) summary.Row {
	return summary.Row{
		AllocationID:          a.ID,
		InvestorID:            a.InvestorID,
		InvestorName:          a.Investor.Name,
		InvestorEmail:         a.Investor.Email,
		WalletAddress:         a.Investor.WalletAddress,
		TokenType:             a.TokenType,
		Token:                 tokentype.Normalize(a.TokenType, a.Standard),
		Amount:                a.Amount,
		Confirmed:             a.Confirmed(),
		SubscriptionConfirmed: a.Subscription.Confirmed && a.Subscription.Allocated,
		Minted:                a.Minted,
		Distributed:           a.Distributed,
		SubscriptionID:        a.SubscriptionID,
		SubscriptionAmount:    a.Subscription.Amount,
		Currency:              a.Subscription.Currency,
		AllocationDate:        a.AllocationDate,
		MintingDate:           a.MintingDate,
		DistributionDate:      a.DistributionDate,
		Version:               a.Version,
	}
}

// projectAllocation loads one allocation scoped to a project, with its
// associations. Ownership of the project must already be verified.
func projectAllocation(db *gorm.DB, projectID, allocationID uint) (*models.Allocation, error) {
	var alloc models.Allocation
	err := db.Preload("Investor").Preload("Subscription").
		Where("id = ? AND project_id = ?", allocationID, projectID).
		First(&alloc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &alloc, nil
}

// getOwnedAllocation loads an allocation and verifies the requesting user
// owns the project it belongs to.
func (s *allocationService) getOwnedAllocation(userID, allocationID uint) (*models.Allocation, error) {
	var alloc models.Allocation
	err := s.db.Preload("Investor").Preload("Subscription").
		Joins("JOIN projects ON projects.id = allocations.project_id").
		Where("allocations.id = ? AND projects.owner_id = ?", allocationID, userID).
		First(&alloc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &alloc, nil
}

// AddAllocation creates an unconfirmed allocation against a subscription
// and marks the subscription allocated.
func (s *allocationService) AddAllocation(userID, subscriptionID uint, tokenType, standard string, amount float64) (*models.Allocation, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation amount must be positive")
	}
	if tokenType == "" {
		return nil, apperrors.ErrInvalidTokenType
	}
	if standard != "" {
		standard = tokentype.Stored(standard)
		if !tokentype.IsStandard(standard) {
			return nil, apperrors.ErrInvalidTokenType
		}
	}

	var sub models.Subscription
	err := s.db.
		Joins("JOIN projects ON projects.id = subscriptions.project_id").
		Where("subscriptions.id = ? AND projects.owner_id = ?", subscriptionID, userID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	alloc := &models.Allocation{
		ProjectID:      sub.ProjectID,
		SubscriptionID: sub.ID,
		InvestorID:     sub.InvestorID,
		TokenType:      tokenType,
		Standard:       standard,
		Amount:         amount,
		Version:        1,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(alloc).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if !sub.Allocated {
			if err := tx.Model(&sub).Update("allocated", true).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// GetAllocationByID retrieves an allocation, verifying project ownership.
func (s *allocationService) GetAllocationByID(userID, allocationID uint) (*models.Allocation, error) {
	return s.getOwnedAllocation(userID, allocationID)
}

// loadRows builds the joined rows for every allocation on a project, in
// creation order.
func (s *allocationService) loadRows(userID, projectID uint) ([]summary.Row, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	var allocations []models.Allocation
	if err := s.db.Preload("Investor").Preload("Subscription").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&allocations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := make([]summary.Row, 0, len(allocations))
	for i := range allocations {
		rows = append(rows, rowFromAllocation(&allocations[i]))
	}
	return rows, nil
}

// ListAllocations returns the project's allocation rows after applying the
// query's filters. Sorting is left to the caller, which knows the
// requested sort column.
func (s *allocationService) ListAllocations(userID, projectID uint, q listview.Query) ([]summary.Row, error) {
	rows, err := s.loadRows(userID, projectID)
	if err != nil {
		return nil, err
	}
	return listview.Filter(rows, q), nil
}

// GetProjectSummary recomputes the per-token-type and grand totals from
// the current allocation list.
func (s *allocationService) GetProjectSummary(userID, projectID uint) ([]summary.TokenTypeSummary, *summary.GrandTotal, error) {
	rows, err := s.loadRows(userID, projectID)
	if err != nil {
		return nil, nil, err
	}
	groups, grand := summary.Summarize(rows)
	return groups, &grand, nil
}

// UpdateAllocation changes an allocation's token type or amount. The
// caller must supply the version it last read; a mismatch means another
// session changed the record first. An amount of zero deletes the
// allocation. Minted allocations are immutable.
func (s *allocationService) UpdateAllocation(userID, allocationID uint, tokenType string, amount float64, version int64) (*models.Allocation, error) {
	alloc, err := s.getOwnedAllocation(userID, allocationID)
	if err != nil {
		return nil, err
	}
	if alloc.Minted {
		return nil, apperrors.ErrAllocationAlreadyMinted
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation amount cannot be negative")
	}

	if amount == 0 {
		if err := s.deleteWithVersion(alloc, version); err != nil {
			return nil, err
		}
		return nil, nil
	}

	updates := map[string]interface{}{
		"amount":  amount,
		"version": gorm.Expr("version + 1"),
	}
	if tokenType != "" {
		updates["token_type"] = tokenType
		updates["standard"] = tokentype.Normalize(tokenType, alloc.Standard).Standard
	}

	res := s.db.Model(&models.Allocation{}).
		Where("id = ? AND version = ?", allocationID, version).
		Updates(updates)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrStaleVersion
	}

	return s.getOwnedAllocation(userID, allocationID)
}

// deleteWithVersion removes an allocation scoped by version, and clears
// the subscription's allocated flag when its last allocation goes away.
func (s *allocationService) deleteWithVersion(alloc *models.Allocation, version int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND version = ?", alloc.ID, version).Delete(&models.Allocation{})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrStaleVersion
		}

		var remaining int64
		if err := tx.Model(&models.Allocation{}).
			Where("subscription_id = ?", alloc.SubscriptionID).
			Count(&remaining).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if remaining == 0 {
			if err := tx.Model(&models.Subscription{}).
				Where("id = ?", alloc.SubscriptionID).
				Update("allocated", false).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}

// ConfirmAllocation stamps the allocation date. Confirming an already
// confirmed allocation refreshes the date rather than failing, so the
// operation can be retried safely.
func (s *allocationService) ConfirmAllocation(userID, allocationID uint) (*models.Allocation, error) {
	alloc, err := s.getOwnedAllocation(userID, allocationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(alloc).Updates(map[string]interface{}{
		"allocation_date": &now,
		"version":         gorm.Expr("version + 1"),
	}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	alloc.AllocationDate = &now
	alloc.Version++
	return alloc, nil
}

// UnconfirmAllocation clears the allocation date. An allocation that has
// been minted can no longer move backwards.
func (s *allocationService) UnconfirmAllocation(userID, allocationID uint) (*models.Allocation, error) {
	alloc, err := s.getOwnedAllocation(userID, allocationID)
	if err != nil {
		return nil, err
	}
	if alloc.Minted {
		return nil, apperrors.ErrAllocationAlreadyMinted
	}

	err = s.db.Model(alloc).Updates(map[string]interface{}{
		"allocation_date": nil,
		"version":         gorm.Expr("version + 1"),
	}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	alloc.AllocationDate = nil
	alloc.Version++
	return alloc, nil
}

// DeleteAllocation removes an allocation. Minted allocations cannot be
// deleted.
func (s *allocationService) DeleteAllocation(userID, allocationID uint, version int64) error {
	alloc, err := s.getOwnedAllocation(userID, allocationID)
	if err != nil {
		return err
	}
	if alloc.Minted {
		return apperrors.ErrAllocationAlreadyMinted
	}
	return s.deleteWithVersion(alloc, version)
}

// bulkFail appends a per-record failure using the error's AppError code,
// or INTERNAL_ERROR when the error is not an AppError.
func bulkFail(result *BulkResult, id uint, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		result.Failed = append(result.Failed, BulkFailure{ID: id, Code: appErr.Code, Message: appErr.Message})
		return
	}
	result.Failed = append(result.Failed, BulkFailure{ID: id, Code: apperrors.ErrInternalServer.Code, Message: apperrors.ErrInternalServer.Message})
}

// BulkUpdateStatus applies a status transition to each allocation in ids.
// Records are processed independently: failures are reported per record
// and do not roll back the others.
func (s *allocationService) BulkUpdateStatus(userID, projectID uint, ids []uint, status string) (*BulkResult, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	switch status {
	case listview.StatusConfirmed, listview.StatusUnconfirmed, listview.StatusDistributed:
	default:
		return nil, apperrors.ErrInvalidStatus
	}

	result := &BulkResult{Succeeded: []uint{}, Failed: []BulkFailure{}}
	now := time.Now()
	var txHash string
	if status == listview.StatusDistributed {
		txHash = newDistributionTxHash()
	}

	for _, id := range ids {
		alloc, err := projectAllocation(s.db, projectID, id)
		if err != nil {
			bulkFail(result, id, err)
			continue
		}

		switch status {
		case listview.StatusConfirmed:
			err = s.db.Model(alloc).Updates(map[string]interface{}{
				"allocation_date": &now,
				"version":         gorm.Expr("version + 1"),
			}).Error
			if err != nil {
				err = apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		case listview.StatusUnconfirmed:
			if alloc.Minted {
				err = apperrors.ErrAllocationAlreadyMinted
			} else {
				err = s.db.Model(alloc).Updates(map[string]interface{}{
					"allocation_date": nil,
					"version":         gorm.Expr("version + 1"),
				}).Error
				if err != nil {
					err = apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		case listview.StatusDistributed:
			err = distributeOne(s.db, alloc, txHash, now)
		}

		if err != nil {
			bulkFail(result, id, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

// BulkDeleteAllocations removes each allocation in ids at its current
// version. Selections are not version-checked the way single deletes are;
// the record the user sees in the list is the record that goes. Minted
// allocations are reported as failures.
func (s *allocationService) BulkDeleteAllocations(userID, projectID uint, ids []uint) (*BulkResult, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	result := &BulkResult{Succeeded: []uint{}, Failed: []BulkFailure{}}
	for _, id := range ids {
		alloc, err := projectAllocation(s.db, projectID, id)
		if err != nil {
			bulkFail(result, id, err)
			continue
		}
		if alloc.Minted {
			bulkFail(result, id, apperrors.ErrAllocationAlreadyMinted)
			continue
		}
		if err := s.deleteWithVersion(alloc, alloc.Version); err != nil {
			bulkFail(result, id, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

// BulkSetTokenType rewrites the token-type label on each allocation in
// ids. Minted allocations keep their label; they are reported as failures.
func (s *allocationService) BulkSetTokenType(userID, projectID uint, ids []uint, tokenType string) (*BulkResult, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}
	if tokenType == "" {
		return nil, apperrors.ErrInvalidTokenType
	}

	result := &BulkResult{Succeeded: []uint{}, Failed: []BulkFailure{}}
	for _, id := range ids {
		alloc, err := projectAllocation(s.db, projectID, id)
		if err != nil {
			bulkFail(result, id, err)
			continue
		}
		if alloc.Minted {
			bulkFail(result, id, apperrors.ErrAllocationAlreadyMinted)
			continue
		}

		err = s.db.Model(alloc).Updates(map[string]interface{}{
			"token_type": tokenType,
			"standard":   tokentype.Normalize(tokenType, alloc.Standard).Standard,
			"version":    gorm.Expr("version + 1"),
		}).Error
		if err != nil {
			bulkFail(result, id, apperrors.Wrap(apperrors.ErrInternalServer, err))
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}
