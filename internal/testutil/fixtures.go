package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"captable/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates a project owned by the given user.
func CreateTestProject(t *testing.T, db *gorm.DB, ownerID uint) *models.Project {
	t.Helper()

	project := &models.Project{
		OwnerID: ownerID,
		Name:    fmt.Sprintf("Test Project %d", nextID()),
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestInvestor creates an investor on the given project with approved
// KYC and a wallet address.
func CreateTestInvestor(t *testing.T, db *gorm.DB, projectID uint) *models.Investor {
	t.Helper()

	n := nextID()
	investor := &models.Investor{
		ProjectID:     projectID,
		Name:          fmt.Sprintf("Test Investor %d", n),
		Email:         fmt.Sprintf("investor%d@test.com", n),
		WalletAddress: fmt.Sprintf("0xabc%037d", n),
		KycStatus:     models.KycStatusApproved,
		PaymentStatus: models.PaymentStatusPaid,
	}
	if err := db.Create(investor).Error; err != nil {
		t.Fatalf("failed to create test investor: %v", err)
	}
	return investor
}

// CreateTestSubscription creates a confirmed subscription for the investor
// with the given amount (in minor currency units).
func CreateTestSubscription(t *testing.T, db *gorm.DB, projectID, investorID uint, amount int64) *models.Subscription {
	t.Helper()

	sub := &models.Subscription{
		ProjectID:  projectID,
		InvestorID: investorID,
		Currency:   "USD",
		Amount:     amount,
		Confirmed:  true,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subscription: %v", err)
	}
	return sub
}

// CreateTestAllocation creates a confirmed allocation against the given
// subscription. The subscription is marked allocated.
func CreateTestAllocation(t *testing.T, db *gorm.DB, sub *models.Subscription, tokenType string, amount float64) *models.Allocation {
	t.Helper()

	now := time.Now()
	alloc := &models.Allocation{
		ProjectID:      sub.ProjectID,
		SubscriptionID: sub.ID,
		InvestorID:     sub.InvestorID,
		TokenType:      tokenType,
		Amount:         amount,
		AllocationDate: &now,
		Version:        1,
	}
	if err := db.Create(alloc).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	if err := db.Model(sub).Update("allocated", true).Error; err != nil {
		t.Fatalf("failed to mark subscription allocated: %v", err)
	}
	return alloc
}

// CreateTestUnconfirmedAllocation creates an allocation without an
// allocation date.
func CreateTestUnconfirmedAllocation(t *testing.T, db *gorm.DB, sub *models.Subscription, tokenType string, amount float64) *models.Allocation {
	t.Helper()

	alloc := &models.Allocation{
		ProjectID:      sub.ProjectID,
		SubscriptionID: sub.ID,
		InvestorID:     sub.InvestorID,
		TokenType:      tokenType,
		Amount:         amount,
		Version:        1,
	}
	if err := db.Create(alloc).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	return alloc
}

// CreateTestToken creates a token registry entry on the given project.
func CreateTestToken(t *testing.T, db *gorm.DB, projectID uint) *models.Token {
	t.Helper()

	n := nextID()
	token := &models.Token{
		ProjectID: projectID,
		Name:      fmt.Sprintf("Test Token %d", n),
		Symbol:    fmt.Sprintf("TT%d", n),
		Standard:  "ERC-20",
		Decimals:  18,
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test token: %v", err)
	}
	return token
}
