package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"captable/internal/listview"
	"captable/internal/models"
	"captable/internal/pagination"
	"captable/internal/services"
	"captable/internal/summary"
	"captable/internal/tokentype"
)

// --- mock investor service ---

type mockInvestorService struct {
	createInvestorFn func(userID, projectID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error)
	listInvestorsFn  func(userID, projectID uint) ([]models.Investor, error)
	getInvestorFn    func(userID, investorID uint) (*models.Investor, error)
	updateInvestorFn func(userID, investorID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error)
	deleteInvestorFn func(userID, investorID uint) error
}

func (m *mockInvestorService) CreateInvestor(userID, projectID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error) {
	if m.createInvestorFn != nil {
		return m.createInvestorFn(userID, projectID, name, email, walletAddress, kyc, payment)
	}
	return &models.Investor{}, nil
}

func (m *mockInvestorService) GetProjectInvestors(userID, projectID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error) {
	page.Defaults()
	resp := pagination.NewPageResponse([]models.Investor{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockInvestorService) ListProjectInvestors(userID, projectID uint) ([]models.Investor, error) {
	if m.listInvestorsFn != nil {
		return m.listInvestorsFn(userID, projectID)
	}
	return []models.Investor{}, nil
}

func (m *mockInvestorService) GetInvestorByID(userID, investorID uint) (*models.Investor, error) {
	if m.getInvestorFn != nil {
		return m.getInvestorFn(userID, investorID)
	}
	return &models.Investor{}, nil
}

func (m *mockInvestorService) UpdateInvestor(userID, investorID uint, name, email, walletAddress string, kyc models.KycStatus, payment models.PaymentStatus) (*models.Investor, error) {
	if m.updateInvestorFn != nil {
		return m.updateInvestorFn(userID, investorID, name, email, walletAddress, kyc, payment)
	}
	return &models.Investor{}, nil
}

func (m *mockInvestorService) DeleteInvestor(userID, investorID uint) error {
	if m.deleteInvestorFn != nil {
		return m.deleteInvestorFn(userID, investorID)
	}
	return nil
}

var _ services.InvestorServicer = (*mockInvestorService)(nil)

func setupExportRouter(handler *ExportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/projects/:id/export/allocations", handler.ExportAllocations)
	auth.GET("/projects/:id/export/investors", handler.ExportInvestors)
	return r
}

// --- tests ---

func TestExportHandler_ExportAllocations(t *testing.T) {
	t.Run("returns a CSV attachment", func(t *testing.T) {
		allocSvc := &mockAllocationService{
			listAllocationsFn: func(_, _ uint, _ listview.Query) ([]summary.Row, error) {
				return []summary.Row{
					{
						AllocationID:  1,
						InvestorName:  "Alice Chen",
						InvestorEmail: "alice@example.com",
						TokenType:     "Acme (ACM) - ERC-20",
						Token:         tokentype.Parse("Acme (ACM) - ERC-20"),
						Amount:        500,
					},
				}, nil
			},
		}
		handler := NewExportHandler(allocSvc, &mockInvestorService{}, &mockAuditService{})
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/projects/1/export/allocations", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		disposition := rec.Header().Get("Content-Disposition")
		if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, ".csv") {
			t.Errorf("unexpected Content-Disposition: %q", disposition)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Alice Chen") {
			t.Errorf("expected investor name in CSV body:\n%s", body)
		}
	})

	t.Run("forwards status filter to the service", func(t *testing.T) {
		var got listview.Query
		allocSvc := &mockAllocationService{
			listAllocationsFn: func(_, _ uint, q listview.Query) ([]summary.Row, error) {
				got = q
				return []summary.Row{}, nil
			},
		}
		handler := NewExportHandler(allocSvc, &mockInvestorService{}, &mockAuditService{})
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/projects/1/export/allocations?status=minted", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Status != "minted" {
			t.Errorf("status filter not forwarded: %+v", got)
		}
	})

	t.Run("returns 400 on unknown format", func(t *testing.T) {
		handler := NewExportHandler(&mockAllocationService{}, &mockInvestorService{}, &mockAuditService{})
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/projects/1/export/allocations?format=pdf", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestExportHandler_ExportInvestors(t *testing.T) {
	t.Run("returns investor rows", func(t *testing.T) {
		invSvc := &mockInvestorService{
			listInvestorsFn: func(_, _ uint) ([]models.Investor, error) {
				return []models.Investor{
					{
						Base:          models.Base{ID: 1},
						Name:          "Bob Diaz",
						Email:         "bob@example.com",
						WalletAddress: "0xabc",
						KycStatus:     models.KycStatusApproved,
						PaymentStatus: models.PaymentStatusPaid,
					},
				}, nil
			},
		}
		handler := NewExportHandler(&mockAllocationService{}, invSvc, &mockAuditService{})
		r := setupExportRouter(handler)

		rec := doRequest(r, "GET", "/projects/1/export/investors", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Bob Diaz") || !strings.Contains(body, "0xabc") {
			t.Errorf("expected investor fields in CSV body:\n%s", body)
		}
	})
}
