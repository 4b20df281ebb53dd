package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/metrics"
	"captable/internal/pagination"
	"captable/internal/services"
)

// MintingHandler handles the simulated minting and distribution workflows.
type MintingHandler struct {
	mintingService      services.MintingServicer
	distributionService services.DistributionServicer
	auditService        services.AuditServicer
}

// NewMintingHandler creates a new MintingHandler.
func NewMintingHandler(mintingService services.MintingServicer, distributionService services.DistributionServicer, auditService services.AuditServicer) *MintingHandler {
	return &MintingHandler{
		mintingService:      mintingService,
		distributionService: distributionService,
		auditService:        auditService,
	}
}

// MintTokensRequest represents the request payload for minting by amount.
type MintTokensRequest struct {
	TokenType string  `json:"token_type" binding:"required,min=1,max=200"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// BulkIDsRequest carries a selection of allocation IDs.
type BulkIDsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// MintTokens handles minting up to a requested amount against a token type.
// @Summary     Mint tokens
// @Description Mint up to the requested amount, consuming confirmed allocations oldest first
// @Tags        minting
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Project ID"
// @Param       request body MintTokensRequest true "Token type and amount"
// @Success     200 {object} services.MintResult "Mint outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found or no eligible allocations"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/mint [post]
func (h *MintingHandler) MintTokens(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MintTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.mintingService.MintTokens(userID, projectID, req.TokenType, req.Amount)
	metrics.AllocationMutations.WithLabelValues("mint", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "MINT_TOKENS", "project", projectID, c.ClientIP(),
		map[string]interface{}{
			"token_type": result.TokenType,
			"requested":  result.Requested,
			"minted":     result.MintedAmount,
			"tx_hash":    result.TxHash,
		})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// MintAllocations handles minting a selection of allocations.
// @Summary     Mint selected allocations
// @Description Mint exactly the selected allocations; failures are reported per record
// @Tags        minting
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Project ID"
// @Param       request body BulkIDsRequest true "Allocation IDs"
// @Success     200 {object} services.BulkResult "Per-record outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/allocations/bulk/mint [post]
func (h *MintingHandler) MintAllocations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.mintingService.MintAllocations(userID, projectID, req.IDs)
	metrics.AllocationMutations.WithLabelValues("bulk_mint", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "MINT_ALLOCATIONS", "project", projectID, c.ClientIP(),
		map[string]interface{}{"requested": len(req.IDs), "succeeded": len(result.Succeeded)})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DistributeAllocations handles distributing a selection of allocations.
// @Summary     Distribute selected allocations
// @Description Send minted allocations to investor wallets; failures are reported per record
// @Tags        minting
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Project ID"
// @Param       request body BulkIDsRequest true "Allocation IDs"
// @Success     200 {object} services.BulkResult "Per-record outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/allocations/bulk/distribute [post]
func (h *MintingHandler) DistributeAllocations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.distributionService.DistributeAllocations(userID, projectID, req.IDs)
	metrics.AllocationMutations.WithLabelValues("distribute", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DISTRIBUTE_ALLOCATIONS", "project", projectID, c.ClientIP(),
		map[string]interface{}{"requested": len(req.IDs), "succeeded": len(result.Succeeded)})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetDistributions handles listing a project's distribution records.
// @Summary     Get distributions
// @Description Get a paginated list of the project's distribution records
// @Tags        minting
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Project ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Distribution] "Paginated distributions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/distributions [get]
func (h *MintingHandler) GetDistributions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.distributionService.GetProjectDistributions(userID, projectID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
