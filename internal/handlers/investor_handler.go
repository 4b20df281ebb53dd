package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/models"
	"captable/internal/pagination"
	"captable/internal/services"
)

// InvestorHandler handles investor-related requests.
type InvestorHandler struct {
	investorService services.InvestorServicer
	auditService    services.AuditServicer
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService services.InvestorServicer, auditService services.AuditServicer) *InvestorHandler {
	return &InvestorHandler{investorService: investorService, auditService: auditService}
}

// CreateInvestorRequest represents the request payload for creating an investor.
type CreateInvestorRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	WalletAddress string `json:"wallet_address" binding:"max=128"`
	KycStatus     string `json:"kyc_status" binding:"omitempty,kyc_status"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,payment_status"`
}

// UpdateInvestorRequest represents the request payload for updating an investor.
type UpdateInvestorRequest struct {
	Name          string `json:"name" binding:"omitempty,min=1,max=200"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	WalletAddress string `json:"wallet_address" binding:"max=128"`
	KycStatus     string `json:"kyc_status" binding:"omitempty,kyc_status"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,payment_status"`
}

// CreateInvestor handles adding an investor to a project.
// @Summary     Create an investor
// @Description Add an investor to a project's cap table
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                   true "Project ID"
// @Param       request body CreateInvestorRequest true "Investor details"
// @Success     201 {object} models.Investor "Investor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/investors [post]
func (h *InvestorHandler) CreateInvestor(c *gin.Context) {
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

	var req CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.CreateInvestor(
		userID, projectID, req.Name, req.Email, req.WalletAddress,
		models.KycStatus(req.KycStatus), models.PaymentStatus(req.PaymentStatus),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTOR", "investor", investor.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "project_id": projectID})

	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

// GetInvestors handles listing a project's investors.
// @Summary     Get investors
// @Description Get a paginated list of investors on a project
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Project ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investor] "Paginated investors"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/investors [get]
func (h *InvestorHandler) GetInvestors(c *gin.Context) {
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

	result, err := h.investorService.GetProjectInvestors(userID, projectID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestor handles retrieving a specific investor.
// @Summary     Get investor by ID
// @Description Get a specific investor by ID
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investor ID"
// @Success     200 {object} models.Investor "Investor details"
// @Failure     400 {object} ErrorResponse "Invalid investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id} [get]
func (h *InvestorHandler) GetInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investor, err := h.investorService.GetInvestorByID(userID, investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// UpdateInvestor handles updating an investor.
// @Summary     Update investor
// @Description Update an investor's contact and status fields
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                   true "Investor ID"
// @Param       request body UpdateInvestorRequest true "Updated investor details"
// @Success     200 {object} models.Investor "Updated investor"
// @Failure     400 {object} ErrorResponse "Invalid input or investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id} [put]
func (h *InvestorHandler) UpdateInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.UpdateInvestor(
		userID, investorID, req.Name, req.Email, req.WalletAddress,
		models.KycStatus(req.KycStatus), models.PaymentStatus(req.PaymentStatus),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTOR", "investor", investorID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "kyc_status": req.KycStatus})

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// DeleteInvestor handles removing an investor.
// @Summary     Delete investor
// @Description Remove an investor with their subscriptions and unminted allocations
// @Tags        investors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investor ID"
// @Success     200 {object} MessageResponse "Investor deleted"
// @Failure     400 {object} ErrorResponse "Invalid investor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     409 {object} ErrorResponse "Investor has minted allocations"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id} [delete]
func (h *InvestorHandler) DeleteInvestor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investorService.DeleteInvestor(userID, investorID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTOR", "investor", investorID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investor deleted successfully"})
}
