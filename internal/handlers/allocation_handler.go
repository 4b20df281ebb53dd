package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/listview"
	"captable/internal/metrics"
	"captable/internal/services"
)

// AllocationHandler handles allocation-related requests.
type AllocationHandler struct {
	allocationService services.AllocationServicer
	auditService      services.AuditServicer
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationService services.AllocationServicer, auditService services.AuditServicer) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService, auditService: auditService}
}

// CreateAllocationRequest represents the request payload for adding an allocation.
type CreateAllocationRequest struct {
	TokenType string  `json:"token_type" binding:"required,min=1,max=200"`
	Standard  string  `json:"standard" binding:"omitempty,token_standard"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// UpdateAllocationRequest represents the request payload for editing an
// allocation. Version must be the version the client last read; amount 0
// deletes the allocation.
type UpdateAllocationRequest struct {
	TokenType string  `json:"token_type" binding:"omitempty,min=1,max=200"`
	Amount    float64 `json:"amount" binding:"gte=0"`
	Version   int64   `json:"version" binding:"required,gt=0"`
}

// DeleteAllocationRequest carries the version for optimistic deletion.
type DeleteAllocationRequest struct {
	Version int64 `json:"version" binding:"required,gt=0"`
}

// BulkStatusRequest represents the payload for a bulk status transition.
type BulkStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Status string `json:"status" binding:"required,allocation_status"`
}

// BulkTokenTypeRequest represents the payload for a bulk token-type rewrite.
type BulkTokenTypeRequest struct {
	IDs       []uint `json:"ids" binding:"required,min=1"`
	TokenType string `json:"token_type" binding:"required,min=1,max=200"`
}

// CreateAllocation handles adding an allocation to a subscription.
// @Summary     Create an allocation
// @Description Carve a token allocation out of a subscription
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Subscription ID"
// @Param       request body CreateAllocationRequest true "Allocation details"
// @Success     201 {object} models.Allocation "Allocation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/{id}/allocations [post]
func (h *AllocationHandler) CreateAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscriptionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	alloc, err := h.allocationService.AddAllocation(userID, subscriptionID, req.TokenType, req.Standard, req.Amount)
	metrics.AllocationMutations.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ALLOCATION", "allocation", alloc.ID, c.ClientIP(),
		map[string]interface{}{"subscription_id": subscriptionID, "token_type": req.TokenType, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"allocation": alloc})
}

// GetAllocations handles listing a project's allocation rows.
// @Summary     Get allocations
// @Description Get a project's allocation list with optional filters and sorting
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  int    true  "Project ID"
// @Param       search     query string false "Search investor name, email, token type, or wallet"
// @Param       status     query string false "Filter: confirmed, unconfirmed, pending, minted, distributed"
// @Param       token_type query string false "Filter by normalized token-type label"
// @Param       sort       query string false "Sort column"
// @Param       order      query string false "Sort order: asc (default) or desc"
// @Success     200 {object} []summary.Row "Allocation rows"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/allocations [get]
func (h *AllocationHandler) GetAllocations(c *gin.Context) {
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

	order := c.DefaultQuery("order", "asc")
	if order != "asc" && order != "desc" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "order must be 'asc' or 'desc'"))
		return
	}

	status := c.Query("status")
	if !listview.ValidStatus(status) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown status filter: "+status))
		return
	}

	q := listview.Query{
		Search:    c.Query("search"),
		Status:    status,
		TokenType: c.Query("token_type"),
	}

	rows, err := h.allocationService.ListAllocations(userID, projectID, q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if sortCol := c.Query("sort"); sortCol != "" {
		listview.Sort(rows, sortCol, order == "desc")
	}

	c.JSON(http.StatusOK, gin.H{"allocations": rows, "count": len(rows)})
}

// GetSummary handles retrieving the project's allocation summary.
// @Summary     Get allocation summary
// @Description Get per-token-type totals, minting status, and grand totals
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} []summary.TokenTypeSummary "Token-type summaries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/summary [get]
func (h *AllocationHandler) GetSummary(c *gin.Context) {
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

	groups, grand, err := h.allocationService.GetProjectSummary(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token_types": groups, "totals": grand})
}

// GetAllocation handles retrieving a specific allocation.
// @Summary     Get allocation by ID
// @Description Get a specific allocation by ID
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     200 {object} models.Allocation "Allocation details"
// @Failure     400 {object} ErrorResponse "Invalid allocation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Allocation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations/{id} [get]
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alloc, err := h.allocationService.GetAllocationByID(userID, allocationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocation": alloc})
}

// UpdateAllocation handles editing an allocation.
// @Summary     Update allocation
// @Description Edit an allocation's token type or amount; amount 0 deletes it
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Allocation ID"
// @Param       request body UpdateAllocationRequest true "Updated allocation details"
// @Success     200 {object} models.Allocation "Updated allocation"
// @Failure     400 {object} ErrorResponse "Invalid input or allocation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Allocation not found"
// @Failure     409 {object} ErrorResponse "Stale version or allocation already minted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations/{id} [put]
func (h *AllocationHandler) UpdateAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	alloc, err := h.allocationService.UpdateAllocation(userID, allocationID, req.TokenType, req.Amount, req.Version)
	metrics.AllocationMutations.WithLabelValues("update", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ALLOCATION", "allocation", allocationID, c.ClientIP(),
		map[string]interface{}{"token_type": req.TokenType, "amount": req.Amount})

	if alloc == nil {
		// Amount 0 removed the record.
		c.JSON(http.StatusOK, gin.H{"message": "Allocation deleted successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocation": alloc})
}

// ConfirmAllocation handles confirming an allocation.
// @Summary     Confirm allocation
// @Description Stamp the allocation date; repeat confirmations refresh it
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     200 {object} models.Allocation "Confirmed allocation"
// @Failure     400 {object} ErrorResponse "Invalid allocation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Allocation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations/{id}/confirm [post]
func (h *AllocationHandler) ConfirmAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alloc, err := h.allocationService.ConfirmAllocation(userID, allocationID)
	metrics.AllocationMutations.WithLabelValues("confirm", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONFIRM_ALLOCATION", "allocation", allocationID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"allocation": alloc})
}

// UnconfirmAllocation handles reverting an allocation to unconfirmed.
// @Summary     Unconfirm allocation
// @Description Clear the allocation date; rejected once the allocation is minted
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     200 {object} models.Allocation "Unconfirmed allocation"
// @Failure     400 {object} ErrorResponse "Invalid allocation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Allocation not found"
// @Failure     409 {object} ErrorResponse "Allocation already minted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations/{id}/unconfirm [post]
func (h *AllocationHandler) UnconfirmAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alloc, err := h.allocationService.UnconfirmAllocation(userID, allocationID)
	metrics.AllocationMutations.WithLabelValues("unconfirm", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UNCONFIRM_ALLOCATION", "allocation", allocationID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"allocation": alloc})
}

// DeleteAllocation handles deleting an allocation.
// @Summary     Delete allocation
// @Description Delete an allocation; rejected once the allocation is minted
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Allocation ID"
// @Param       request body DeleteAllocationRequest true "Version the client last read"
// @Success     200 {object} MessageResponse "Allocation deleted"
// @Failure     400 {object} ErrorResponse "Invalid input or allocation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Allocation not found"
// @Failure     409 {object} ErrorResponse "Stale version or allocation already minted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations/{id} [delete]
func (h *AllocationHandler) DeleteAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeleteAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err = h.allocationService.DeleteAllocation(userID, allocationID, req.Version)
	metrics.AllocationMutations.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ALLOCATION", "allocation", allocationID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Allocation deleted successfully"})
}

// BulkUpdateStatus handles a bulk status transition.
// @Summary     Bulk update allocation status
// @Description Apply a status transition to selected allocations; failures are reported per record
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Project ID"
// @Param       request body BulkStatusRequest true "Allocation IDs and target status"
// @Success     200 {object} services.BulkResult "Per-record outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/allocations/bulk/status [post]
func (h *AllocationHandler) BulkUpdateStatus(c *gin.Context) {
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

	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.allocationService.BulkUpdateStatus(userID, projectID, req.IDs, req.Status)
	metrics.AllocationMutations.WithLabelValues("bulk_status", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "BULK_UPDATE_STATUS", "allocation", projectID, c.ClientIP(),
		map[string]interface{}{"status": req.Status, "requested": len(req.IDs), "succeeded": len(result.Succeeded)})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// BulkDeleteAllocations handles deleting a selection of allocations.
// @Summary     Bulk delete allocations
// @Description Delete selected allocations; minted records are reported as failures
// @Tags        allocations
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
// @Router      /projects/{id}/allocations/bulk/delete [post]
func (h *AllocationHandler) BulkDeleteAllocations(c *gin.Context) {
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

	result, err := h.allocationService.BulkDeleteAllocations(userID, projectID, req.IDs)
	metrics.AllocationMutations.WithLabelValues("bulk_delete", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "BULK_DELETE_ALLOCATIONS", "allocation", projectID, c.ClientIP(),
		map[string]interface{}{"requested": len(req.IDs), "succeeded": len(result.Succeeded)})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// BulkSetTokenType handles a bulk token-type rewrite.
// @Summary     Bulk set token type
// @Description Rewrite the token-type label on selected allocations; minted records are skipped
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Project ID"
// @Param       request body BulkTokenTypeRequest true "Allocation IDs and new token type"
// @Success     200 {object} services.BulkResult "Per-record outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/allocations/bulk/token-type [post]
func (h *AllocationHandler) BulkSetTokenType(c *gin.Context) {
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

	var req BulkTokenTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.allocationService.BulkSetTokenType(userID, projectID, req.IDs, req.TokenType)
	metrics.AllocationMutations.WithLabelValues("bulk_token_type", metrics.Outcome(err)).Inc()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "BULK_SET_TOKEN_TYPE", "allocation", projectID, c.ClientIP(),
		map[string]interface{}{"token_type": req.TokenType, "requested": len(req.IDs), "succeeded": len(result.Succeeded)})

	c.JSON(http.StatusOK, gin.H{"result": result})
}
