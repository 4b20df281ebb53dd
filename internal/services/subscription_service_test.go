package services

import (
	"testing"

	"captable/internal/models"
	"captable/internal/pagination"
	"captable/internal/testutil"
)

func TestCreateSubscription(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		investor := testutil.CreateTestInvestor(t, db, project.ID)

		sub, err := svc.CreateSubscription(user.ID, investor.ID, "USD", 250000, "wire pending")
		testutil.AssertNoError(t, err)

		if sub.ID == 0 {
			t.Fatal("expected non-zero subscription ID")
		}
		if sub.ProjectID != project.ID {
			t.Errorf("expected project %d, got %d", project.ID, sub.ProjectID)
		}
		if sub.Confirmed {
			t.Error("new subscription should be unconfirmed")
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		investor := testutil.CreateTestInvestor(t, db, project.ID)

		_, err := svc.CreateSubscription(user.ID, investor.ID, "USD", 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user2.ID)
		investor := testutil.CreateTestInvestor(t, db, project.ID)

		_, err := svc.CreateSubscription(user1.ID, investor.ID, "USD", 1000, "")
		testutil.AssertAppError(t, err, "INVESTOR_NOT_FOUND")
	})
}

func TestConfirmSubscription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	projects := NewProjectService(db)
	svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
	user := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)
	investor := testutil.CreateTestInvestor(t, db, project.ID)

	sub, err := svc.CreateSubscription(user.ID, investor.ID, "USD", 250000, "")
	testutil.AssertNoError(t, err)

	confirmed, err := svc.ConfirmSubscription(user.ID, sub.ID)
	testutil.AssertNoError(t, err)
	if !confirmed.Confirmed {
		t.Error("subscription should be confirmed")
	}

	// Confirming again is a no-op.
	again, err := svc.ConfirmSubscription(user.ID, sub.ID)
	testutil.AssertNoError(t, err)
	if !again.Confirmed {
		t.Error("subscription should stay confirmed")
	}
}

func TestGetProjectSubscriptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	projects := NewProjectService(db)
	svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
	user := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)
	investor := testutil.CreateTestInvestor(t, db, project.ID)

	testutil.CreateTestSubscription(t, db, project.ID, investor.ID, 100000)
	testutil.CreateTestSubscription(t, db, project.ID, investor.ID, 50000)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetProjectSubscriptions(user.ID, project.ID, page)
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 subscriptions, got %d", result.TotalItems)
	}
}

func TestDeleteSubscription(t *testing.T) {
	t.Run("without_allocations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		investor := testutil.CreateTestInvestor(t, db, project.ID)
		sub := testutil.CreateTestSubscription(t, db, project.ID, investor.ID, 100000)

		err := svc.DeleteSubscription(user.ID, sub.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetSubscriptionByID(user.ID, sub.ID)
		testutil.AssertAppError(t, err, "SUBSCRIPTION_NOT_FOUND")
	})

	t.Run("cascades_allocations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		investor := testutil.CreateTestInvestor(t, db, project.ID)
		sub := testutil.CreateTestSubscription(t, db, project.ID, investor.ID, 100000)
		testutil.CreateTestAllocation(t, db, sub, "Acme (ACM) - ERC-20", 500)
		testutil.CreateTestAllocation(t, db, sub, "Beta (BET) - ERC-721", 300)

		err := svc.DeleteSubscription(user.ID, sub.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetSubscriptionByID(user.ID, sub.ID)
		testutil.AssertAppError(t, err, "SUBSCRIPTION_NOT_FOUND")

		var remaining int64
		if err := db.Model(&models.Allocation{}).
			Where("subscription_id = ?", sub.ID).
			Count(&remaining).Error; err != nil {
			t.Fatalf("failed to count allocations: %v", err)
		}
		if remaining != 0 {
			t.Errorf("expected allocations to cascade, %d remain", remaining)
		}
	})

	t.Run("blocked_by_minted_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projects := NewProjectService(db)
		svc := NewSubscriptionService(db, projects, NewInvestorService(db, projects))
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		investor := testutil.CreateTestInvestor(t, db, project.ID)
		sub := testutil.CreateTestSubscription(t, db, project.ID, investor.ID, 100000)
		alloc := testutil.CreateTestAllocation(t, db, sub, "Acme (ACM) - ERC-20", 500)
		markMinted(t, db, alloc.ID)

		err := svc.DeleteSubscription(user.ID, sub.ID)
		testutil.AssertAppError(t, err, "ALLOCATION_ALREADY_MINTED")
	})
}
