package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/pagination"
	"captable/internal/services"
)

// SubscriptionHandler handles subscription-related requests.
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionServicer
	auditService        services.AuditServicer
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService services.SubscriptionServicer, auditService services.AuditServicer) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, auditService: auditService}
}

// CreateSubscriptionRequest represents the request payload for creating a subscription.
// Amount is in minor currency units (cents for USD).
type CreateSubscriptionRequest struct {
	Currency string `json:"currency" binding:"required,iso4217"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// CreateSubscription handles recording an investor's commitment.
// @Summary     Create a subscription
// @Description Record an investor's subscription commitment
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Investor ID"
// @Param       request body CreateSubscriptionRequest true "Subscription details"
// @Success     201 {object} models.Subscription "Subscription created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investors/{id}/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
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

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(userID, investorID, req.Currency, req.Amount, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SUBSCRIPTION", "subscription", sub.ID, c.ClientIP(),
		map[string]interface{}{"investor_id": investorID, "currency": req.Currency, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}

// GetSubscriptions handles listing a project's subscriptions.
// @Summary     Get subscriptions
// @Description Get a paginated list of subscriptions on a project
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Project ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Subscription] "Paginated subscriptions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/subscriptions [get]
func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
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

	result, err := h.subscriptionService.GetProjectSubscriptions(userID, projectID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSubscription handles retrieving a specific subscription.
// @Summary     Get subscription by ID
// @Description Get a specific subscription by ID
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} models.Subscription "Subscription details"
// @Failure     400 {object} ErrorResponse "Invalid subscription ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
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

	sub, err := h.subscriptionService.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

// ConfirmSubscription handles confirming a subscription.
// @Summary     Confirm subscription
// @Description Mark a subscription as confirmed (idempotent)
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} models.Subscription "Confirmed subscription"
// @Failure     400 {object} ErrorResponse "Invalid subscription ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/{id}/confirm [post]
func (h *SubscriptionHandler) ConfirmSubscription(c *gin.Context) {
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

	sub, err := h.subscriptionService.ConfirmSubscription(userID, subscriptionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONFIRM_SUBSCRIPTION", "subscription", subscriptionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

// DeleteSubscription handles removing a subscription.
// @Summary     Delete subscription
// @Description Remove a subscription that has no allocations
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} MessageResponse "Subscription deleted"
// @Failure     400 {object} ErrorResponse "Invalid subscription ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subscription not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
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

	if err := h.subscriptionService.DeleteSubscription(userID, subscriptionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SUBSCRIPTION", "subscription", subscriptionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}
