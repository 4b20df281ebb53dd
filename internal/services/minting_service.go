package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/tokentype"
	"captable/internal/txhash"
)

// mintOverfillRatio controls when an allocation larger than the remaining
// mint amount is still minted in full. Allocations are never split: if the
// remainder covers more than this fraction of the allocation, the whole
// allocation is minted and the run stops; otherwise the allocation is
// skipped and the scan continues with smaller ones.
const mintOverfillRatio = 0.5

// mintingService handles the simulated minting workflow. Minting is
// recorded with generated placeholder tx hashes, not real chain calls.
type mintingService struct {
	db       *gorm.DB
	projects ProjectServicer
}

// NewMintingService creates a new MintingServicer.
func NewMintingService(db *gorm.DB, projects ProjectServicer) MintingServicer {
	return &mintingService{db: db, projects: projects}
}

// MintTokens mints up to the requested amount against a token type,
// consuming confirmed unminted allocations oldest first. Every allocation
// is minted whole; the greedy scan applies mintOverfillRatio when an
// allocation exceeds what is left of the request. All records minted in
// one run share a single transaction and tx hash.
func (s *mintingService) MintTokens(userID, projectID uint, tokenType string, amount float64) (*MintResult, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mint amount must be positive")
	}
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	target := tokentype.Parse(tokenType)

	// Candidates: confirmed, unminted, oldest confirmation first. Label
	// matching happens in Go because stored labels may differ in spelling
	// from the requested one.
	var candidates []models.Allocation
	err := s.db.
		Where("project_id = ? AND minted = ? AND allocation_date IS NOT NULL", projectID, false).
		Order("allocation_date ASC, id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var eligible []models.Allocation
	for i := range candidates {
		a := &candidates[i]
		if tokentype.Normalize(a.TokenType, a.Standard).Label() == target.Label() {
			eligible = append(eligible, *a)
		}
	}
	if len(eligible) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrAllocationNotFound, "no confirmed unminted allocations for this token type")
	}

	result := &MintResult{
		TokenType: target.Label(),
		Requested: amount,
	}

	remaining := amount
	var toMint []uint
	for i := range eligible {
		a := &eligible[i]
		if remaining <= 0 {
			break
		}
		switch {
		case a.Amount <= remaining:
			toMint = append(toMint, a.ID)
			result.MintedAmount += a.Amount
			remaining -= a.Amount
		case remaining > a.Amount*mintOverfillRatio:
			toMint = append(toMint, a.ID)
			result.MintedAmount += a.Amount
			remaining = 0
		default:
			result.SkippedIDs = append(result.SkippedIDs, a.ID)
		}
	}

	if len(toMint) == 0 {
		result.AllocationIDs = []uint{}
		return result, nil
	}

	hash := txhash.New()
	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Allocation{}).
			Where("id IN ? AND minted = ?", toMint, false).
			Updates(map[string]interface{}{
				"minted":          true,
				"minting_date":    &now,
				"minting_tx_hash": hash,
				"version":         gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		// A concurrent mint grabbed one of our candidates; abort the whole
		// run rather than minting a partial batch under one hash.
		if res.RowsAffected != int64(len(toMint)) {
			return apperrors.ErrStaleVersion
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TxHash = hash
	result.AllocationIDs = toMint
	return result, nil
}

// MintAllocations mints exactly the selected allocations, whatever their
// amounts. Records are processed independently; all that succeed share
// one tx hash.
func (s *mintingService) MintAllocations(userID, projectID uint, ids []uint) (*BulkResult, error) {
	if _, err := s.projects.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}

	result := &BulkResult{Succeeded: []uint{}, Failed: []BulkFailure{}}
	hash := txhash.New()
	now := time.Now()

	for _, id := range ids {
		alloc, err := projectAllocation(s.db, projectID, id)
		if err != nil {
			bulkFail(result, id, err)
			continue
		}
		if !alloc.Confirmed() {
			bulkFail(result, id, apperrors.ErrAllocationNotConfirmed)
			continue
		}
		if alloc.Minted {
			bulkFail(result, id, apperrors.ErrAllocationAlreadyMinted)
			continue
		}

		err = s.db.Model(alloc).Updates(map[string]interface{}{
			"minted":          true,
			"minting_date":    &now,
			"minting_tx_hash": hash,
			"version":         gorm.Expr("version + 1"),
		}).Error
		if err != nil {
			bulkFail(result, id, apperrors.Wrap(apperrors.ErrInternalServer, err))
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}
