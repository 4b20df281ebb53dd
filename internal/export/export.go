// Package export renders allocation and investor lists as CSV downloads.
// The "excel" flavor is the same CSV payload served with an Excel MIME
// type and an .xlsx file name; it is not a real spreadsheet binary.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"captable/internal/summary"
	"captable/internal/tokentype"
)

// Format selects the download flavor.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// MIME types for the two flavors.
const (
	ContentTypeCSV   = "text/csv"
	ContentTypeExcel = "application/vnd.ms-excel"
)

// Options selects which column groups appear in an allocation export.
type Options struct {
	InvestorDetails     bool
	SubscriptionDetails bool
	Status              bool
	TokenDetails        bool
}

// Filename builds "<subject>_export_<YYYY-MM-DD>" with the extension for
// the given format.
func Filename(subject string, format Format, now time.Time) string {
	ext := "csv"
	if format == FormatExcel {
		ext = "xlsx"
	}
	return fmt.Sprintf("%s_export_%s.%s", subject, now.Format("2006-01-02"), ext)
}

// ContentType returns the MIME type for the given format.
func ContentType(format Format) string {
	if format == FormatExcel {
		return ContentTypeExcel
	}
	return ContentTypeCSV
}

// WriteAllocations writes an allocation export. The header row is derived
// from the option flags; fields containing commas are quoted per
// encoding/csv.
func WriteAllocations(w io.Writer, rows []summary.Row, opts Options) error {
	cw := csv.NewWriter(w)

	header := []string{"Token Type", "Amount"}
	if opts.TokenDetails {
		header = append(header, "Token Name", "Token Symbol", "Token Standard")
	}
	if opts.InvestorDetails {
		header = append(header, "Investor Name", "Investor Email", "Wallet Address")
	}
	if opts.SubscriptionDetails {
		header = append(header, "Subscription Currency", "Subscription Amount")
	}
	if opts.Status {
		header = append(header, "Confirmed", "Minted", "Distributed", "Allocation Date")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range rows {
		r := &rows[i]
		record := []string{r.Token.Label(), formatAmount(r.Amount)}
		if opts.TokenDetails {
			record = append(record, r.Token.Name, r.Token.Symbol, tokentype.Compact(r.Token.Standard))
		}
		if opts.InvestorDetails {
			record = append(record, r.InvestorName, r.InvestorEmail, r.WalletAddress)
		}
		if opts.SubscriptionDetails {
			record = append(record, r.Currency, strconv.FormatInt(r.SubscriptionAmount, 10))
		}
		if opts.Status {
			record = append(record,
				strconv.FormatBool(r.Confirmed),
				strconv.FormatBool(r.Minted),
				strconv.FormatBool(r.Distributed),
				formatDate(r.AllocationDate),
			)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// InvestorRow is one line of an investor export.
type InvestorRow struct {
	Name          string
	Email         string
	WalletAddress string
	KycStatus     string
	PaymentStatus string
}

// WriteInvestors writes an investor export with a fixed header.
func WriteInvestors(w io.Writer, rows []InvestorRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Email", "Wallet Address", "KYC Status", "Payment Status"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, r.Email, r.WalletAddress, r.KycStatus, r.PaymentStatus}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
