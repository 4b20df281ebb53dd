package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/services"
)

// TokenHandler handles token registry requests.
type TokenHandler struct {
	tokenService services.TokenServicer
	auditService services.AuditServicer
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenService services.TokenServicer, auditService services.AuditServicer) *TokenHandler {
	return &TokenHandler{tokenService: tokenService, auditService: auditService}
}

// CreateTokenRequest represents the request payload for registering a token.
type CreateTokenRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Symbol      string  `json:"symbol" binding:"required,min=1,max=20"`
	Standard    string  `json:"standard" binding:"omitempty,token_standard"`
	Decimals    int     `json:"decimals" binding:"omitempty,min=0,max=36"`
	TotalSupply float64 `json:"total_supply" binding:"omitempty,gte=0"`
}

// CreateToken handles registering a token on a project.
// @Summary     Create a token
// @Description Register a token in the project's token registry
// @Tags        tokens
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Project ID"
// @Param       request body CreateTokenRequest true "Token details"
// @Success     201 {object} models.Token "Token created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/tokens [post]
func (h *TokenHandler) CreateToken(c *gin.Context) {
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

	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, err := h.tokenService.CreateToken(userID, projectID, req.Name, req.Symbol, req.Standard, req.Decimals, req.TotalSupply)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TOKEN", "token", token.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "symbol": req.Symbol, "standard": req.Standard})

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// GetTokens handles listing a project's tokens.
// @Summary     Get tokens
// @Description Get all tokens registered on a project
// @Tags        tokens
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} []models.Token "Tokens"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/tokens [get]
func (h *TokenHandler) GetTokens(c *gin.Context) {
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

	tokens, err := h.tokenService.GetProjectTokens(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// DeleteToken handles removing a token registry entry.
// @Summary     Delete token
// @Description Remove a token from the project's registry
// @Tags        tokens
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Token ID"
// @Success     200 {object} MessageResponse "Token deleted"
// @Failure     400 {object} ErrorResponse "Invalid token ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Token not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tokens/{id} [delete]
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tokenService.DeleteToken(userID, tokenID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TOKEN", "token", tokenID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Token deleted successfully"})
}
