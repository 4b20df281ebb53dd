package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/pagination"
	"captable/internal/txhash"
)

// distributionService handles the simulated distribution workflow.
type distributionService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewDistributionService creates a new DistributionServicer.
func NewDistributionService(db *gorm.DB, projects ProjectServicer) DistributionServicer {
	return &distributionService{db: db, projects: projects}
}

func newDistributionTxHash() string {
	return txhash.New()
}

// distributeOne marks a single allocation distributed and records a
// Distribution row, inside one transaction. The allocation must be
// confirmed and minted, and not yet distributed. The Investor association
// must be preloaded.
func distributeOne(db *gorm.DB, alloc *models.Allocation, hash string, now time.Time) error {
	if !alloc.Confirmed() {
		return apperrors.ErrAllocationNotConfirmed
	}
	if !alloc.Minted {
		return apperrors.ErrAllocationNotMinted
	}
	if alloc.Distributed {
		return apperrors.ErrAllocationAlreadyDistributed
	}

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Allocation{}).
			Where("id = ? AND distributed = ?", alloc.ID, false).
			Updates(map[string]interface{}{
				"distributed":          true,
				"distribution_date":    &now,
				"distribution_tx_hash": hash,
				"version":              gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrAllocationAlreadyDistributed
		}

		record := &models.Distribution{
			ProjectID:     alloc.ProjectID,
			AllocationID:  alloc.ID,
			InvestorID:    alloc.InvestorID,
			TokenType:     alloc.TokenType,
			Amount:        alloc.Amount,
			WalletAddress: alloc.Investor.WalletAddress,
			TxHash:        hash,
			DistributedAt: now,
		}
		if err := tx.Create(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// DistributeAllocations distributes each selected allocation to its
// investor's wallet. Records are processed independently; all that
// succeed share one tx hash.
func (s *distributionService) DistributeAllocations(userID, projectID uint, ids []uint) (*BulkResult, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	result := &BulkResult{Succeeded: []uint{}, Failed: []BulkFailure{}}
	hash := newDistributionTxHash()
	now := time.Now()

	for _, id := range ids {
		alloc, err := projectAllocation(s.db, projectID, id)
		if err != nil {
			bulkFail(result, id, err)
			continue
		}
		if err := distributeOne(s.db, alloc, hash, now); err != nil {
			bulkFail(result, id, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

// GetProjectDistributions returns a page of the project's distribution
// records, newest first.
func (s *distributionService) GetProjectDistributions(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Distribution], error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Distribution{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.Distribution
	if err := query.Scopes(pagination.Paginate(page)).
		Order("distributed_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(records, page.Page, page.PageSize, total)
	return &resp, nil
}
