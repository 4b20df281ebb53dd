package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/export"
	"captable/internal/listview"
	"captable/internal/services"
)

// ExportHandler serves CSV and Excel downloads of the cap table.
type ExportHandler struct {
	allocationService services.AllocationServicer
	investorService   services.InvestorServicer
	auditService      services.AuditServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(allocationService services.AllocationServicer, investorService services.InvestorServicer, auditService services.AuditServicer) *ExportHandler {
	return &ExportHandler{
		allocationService: allocationService,
		investorService:   investorService,
		auditService:      auditService,
	}
}

// parseFormat validates the format query parameter, defaulting to CSV.
func parseFormat(c *gin.Context) (export.Format, error) {
	switch f := c.DefaultQuery("format", "csv"); f {
	case "csv":
		return export.FormatCSV, nil
	case "excel":
		return export.FormatExcel, nil
	default:
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "format must be 'csv' or 'excel'")
	}
}

// boolQuery reads a query flag that defaults to true unless set to "false".
func boolQuery(c *gin.Context, name string) bool {
	return c.DefaultQuery(name, "true") != "false"
}

// ExportAllocations handles downloading a project's allocation list.
// @Summary     Export allocations
// @Description Download the allocation list as CSV or Excel-flavored CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       id                   path  int    true  "Project ID"
// @Param       format               query string false "csv (default) or excel"
// @Param       status               query string false "Filter: confirmed, unconfirmed, pending, minted, distributed"
// @Param       token_type           query string false "Filter by normalized token-type label"
// @Param       investor_details     query bool   false "Include investor columns (default true)"
// @Param       subscription_details query bool   false "Include subscription columns (default true)"
// @Param       status_details       query bool   false "Include status columns (default true)"
// @Param       token_details        query bool   false "Include token descriptor columns (default true)"
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/export/allocations [get]
func (h *ExportHandler) ExportAllocations(c *gin.Context) {
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

	format, err := parseFormat(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	q := listview.Query{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		TokenType: c.Query("token_type"),
	}
	rows, err := h.allocationService.ListAllocations(userID, projectID, q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	opts := export.Options{
		InvestorDetails:     boolQuery(c, "investor_details"),
		SubscriptionDetails: boolQuery(c, "subscription_details"),
		Status:              boolQuery(c, "status_details"),
		TokenDetails:        boolQuery(c, "token_details"),
	}

	var buf bytes.Buffer
	if err := export.WriteAllocations(&buf, rows, opts); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(userID, "EXPORT_ALLOCATIONS", "project", projectID, c.ClientIP(),
		map[string]interface{}{"format": string(format), "rows": len(rows)})

	filename := export.Filename("allocations", format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

// ExportInvestors handles downloading a project's investor list.
// @Summary     Export investors
// @Description Download the investor list as CSV or Excel-flavored CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       id     path  int    true  "Project ID"
// @Param       format query string false "csv (default) or excel"
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id}/export/investors [get]
func (h *ExportHandler) ExportInvestors(c *gin.Context) {
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

	format, err := parseFormat(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investors, err := h.investorService.ListProjectInvestors(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows := make([]export.InvestorRow, 0, len(investors))
	for i := range investors {
		inv := &investors[i]
		rows = append(rows, export.InvestorRow{
			Name:          inv.Name,
			Email:         inv.Email,
			WalletAddress: inv.WalletAddress,
			KycStatus:     string(inv.KycStatus),
			PaymentStatus: string(inv.PaymentStatus),
		})
	}

	var buf bytes.Buffer
	if err := export.WriteInvestors(&buf, rows); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(userID, "EXPORT_INVESTORS", "project", projectID, c.ClientIP(),
		map[string]interface{}{"format": string(format), "rows": len(rows)})

	filename := export.Filename("investors", format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
