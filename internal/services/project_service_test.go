package services

import (
	"testing"

	"captable/internal/pagination"
	"captable/internal/testutil"
)

func TestCreateProject(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProjectService(db)
		user := testutil.CreateTestUser(t, db)

		project, err := svc.CreateProject(user.ID, "Series A", "Token round")
		testutil.AssertNoError(t, err)

		if project.ID == 0 {
			t.Fatal("expected non-zero project ID")
		}
		if project.OwnerID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, project.OwnerID)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProjectService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateProject(user.ID, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserProjects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProjectService(db)
	user1 := testutil.CreateTestUser(t, db)
	user2 := testutil.CreateTestUser(t, db)

	testutil.CreateTestProject(t, db, user1.ID)
	testutil.CreateTestProject(t, db, user1.ID)
	testutil.CreateTestProject(t, db, user2.ID)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetUserProjects(user1.ID, page)
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 projects, got %d", result.TotalItems)
	}
}

func TestGetProjectByID(t *testing.T) {
	t.Run("owner_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProjectService(db)
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)

		found, err := svc.GetProjectByID(user.ID, project.ID)
		testutil.AssertNoError(t, err)
		if found.ID != project.ID {
			t.Errorf("expected project %d, got %d", project.ID, found.ID)
		}
	})

	t.Run("other_user_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProjectService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user2.ID)

		_, err := svc.GetProjectByID(user1.ID, project.ID)
		testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
	})
}

func TestDeleteProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProjectService(db)
	user := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, user.ID)

	err := svc.DeleteProject(user.ID, project.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetProjectByID(user.ID, project.ID)
	testutil.AssertAppError(t, err, "PROJECT_NOT_FOUND")
}
