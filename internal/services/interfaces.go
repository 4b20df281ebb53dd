package services

import (
	"captable/internal/listview"
	"captable/internal/models"
	"captable/internal/pagination"
	"captable/internal/summary"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// ProjectServicer defines the contract for project-related business logic.
type ProjectServicer interface {
	CreateProject(ownerID uint, name, description string) (*models.Project, error)
	GetUserProjects(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	GetProjectByID(ownerID, projectID uint) (*models.Project, error)
	UpdateProject(ownerID, projectID uint, name, description string) (*models.Project, error)
	DeleteProject(ownerID, projectID uint) error
}

// InvestorServicer defines the contract for investor-related business logic.
type InvestorServicer interface {
	CreateInvestor(userID, projectID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error)
	GetProjectInvestors(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error)
	ListProjectInvestors(userID, projectID uint) ([]models.Investor, error)
	GetInvestorByID(userID, investorID uint) (*models.Investor, error)
	UpdateInvestor(userID, investorID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error)
	DeleteInvestor(userID, investorID uint) error
}

// SubscriptionServicer defines the contract for subscription-related business logic.
type SubscriptionServicer interface {
	CreateSubscription(userID, investorID uint, currency string, amount int64, notes string) (*models.Subscription, error)
	GetProjectSubscriptions(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Subscription], error)
	GetSubscriptionByID(userID, subscriptionID uint) (*models.Subscription, error)
	ConfirmSubscription(userID, subscriptionID uint) (*models.Subscription, error)
	DeleteSubscription(userID, subscriptionID uint) error
}

// TokenServicer defines the contract for the project token registry.
type TokenServicer interface {
	CreateToken(userID, projectID uint, name, symbol, standard string, decimals int, totalSupply float64) (*models.Token, error)
	GetProjectTokens(userID, projectID uint) ([]models.Token, error)
	GetTokenByID(userID, tokenID uint) (*models.Token, error)
	DeleteToken(userID, tokenID uint) error
}

// BulkFailure reports a single record that a bulk operation could not
// process, with the same code vocabulary as single-record errors.
type BulkFailure struct {
	ID      uint   `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkResult reports the outcome of a bulk operation. Bulk operations are
// not transactional across records: records that pass are committed,
// records that fail are reported here, and the caller decides what to retry.
type BulkResult struct {
	Succeeded []uint        `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// AllocationServicer defines the contract for allocation-related business logic.
type AllocationServicer interface {
	AddAllocation(userID, subscriptionID uint, tokenType, standard string, amount float64) (*models.Allocation, error)
	GetAllocationByID(userID, allocationID uint) (*models.Allocation, error)
	ListAllocations(userID, projectID uint, q listview.Query) ([]summary.Row, error)
	GetProjectSummary(userID, projectID uint) ([]summary.TokenTypeSummary, *summary.GrandTotal, error)
	UpdateAllocation(userID, allocationID uint, tokenType string, amount float64, version int64) (*models.Allocation, error)
	ConfirmAllocation(userID, allocationID uint) (*models.Allocation, error)
	UnconfirmAllocation(userID, allocationID uint) (*models.Allocation, error)
	DeleteAllocation(userID, allocationID uint, version int64) error
	BulkUpdateStatus(userID, projectID uint, ids []uint, status string) (*BulkResult, error)
	BulkSetTokenType(userID, projectID uint, ids []uint, tokenType string) (*BulkResult, error)
	BulkDeleteAllocations(userID, projectID uint, ids []uint) (*BulkResult, error)
}

// MintResult reports the outcome of a mint run against a token type.
type MintResult struct {
	TokenType     string  `json:"token_type"`
	TxHash        string  `json:"tx_hash"`
	Requested     float64 `json:"requested"`
	MintedAmount  float64 `json:"minted_amount"`
	AllocationIDs []uint  `json:"allocation_ids"`
	SkippedIDs    []uint  `json:"skipped_ids,omitempty"`
}

// MintingServicer defines the contract for the simulated minting workflow.
type MintingServicer interface {
	MintTokens(userID, projectID uint, tokenType string, amount float64) (*MintResult, error)
	MintAllocations(userID, projectID uint, ids []uint) (*BulkResult, error)
}

// DistributionServicer defines the contract for the simulated distribution workflow.
type DistributionServicer interface {
	DistributeAllocations(userID, projectID uint, ids []uint) (*BulkResult, error)
	GetProjectDistributions(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Distribution], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
