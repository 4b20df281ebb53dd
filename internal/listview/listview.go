// Package listview provides the view-scoped filtering, sorting, and
// selection bookkeeping applied to an aggregated allocation list. Filters
// narrow what a view shows; they never touch the underlying list or an
// existing selection.
package listview

import (
	"sort"
	"strconv"
	"strings"

	"captable/internal/summary"
)

// Status filter values.
const (
	StatusConfirmed   = "confirmed"
	StatusUnconfirmed = "unconfirmed"
	StatusPending     = "pending"
	StatusMinted      = "minted"
	StatusDistributed = "distributed"
)

// ValidStatus reports whether s is empty or one of the Status* constants.
func ValidStatus(s string) bool {
	switch s {
	case "", StatusConfirmed, StatusUnconfirmed, StatusPending, StatusMinted, StatusDistributed:
		return true
	}
	return false
}

// Query is a conjunction of filter predicates. Zero values mean "no
// constraint".
type Query struct {
	// Search matches case-insensitively against investor name, email,
	// token type, and wallet address.
	Search string
	// Status is one of the Status* constants.
	Status string
	// TokenType requires equality on the normalized token-type label.
	TokenType string
	// Columns maps a field name to a required substring of its
	// stringified value.
	Columns map[string]string
}

// Filter returns the rows satisfying every predicate in q, preserving
// input order.
func Filter(rows []summary.Row, q Query) []summary.Row {
	out := make([]summary.Row, 0, len(rows))
	for i := range rows {
		if matches(&rows[i], q) {
			out = append(out, rows[i])
		}
	}
	return out
}

func matches(r *summary.Row, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(r.InvestorName), needle) &&
			!strings.Contains(strings.ToLower(r.InvestorEmail), needle) &&
			!strings.Contains(strings.ToLower(r.TokenType), needle) &&
			!strings.Contains(strings.ToLower(r.WalletAddress), needle) {
			return false
		}
	}

	switch q.Status {
	case "":
	case StatusConfirmed:
		if !r.Confirmed {
			return false
		}
	case StatusUnconfirmed:
		if r.Confirmed {
			return false
		}
	case StatusPending:
		if r.Distributed {
			return false
		}
	case StatusMinted:
		if !r.Minted {
			return false
		}
	case StatusDistributed:
		if !r.Distributed {
			return false
		}
	default:
		return false
	}

	if q.TokenType != "" && r.Token.Label() != q.TokenType {
		return false
	}

	for column, needle := range q.Columns {
		if needle == "" {
			continue
		}
		value := fieldString(r, column)
		if !strings.Contains(strings.ToLower(value), strings.ToLower(needle)) {
			return false
		}
	}
	return true
}

// numericColumns are sorted by numeric value; dateColumns by timestamp,
// with missing dates ordering first (treated as zero).
var numericColumns = map[string]bool{
	"amount":              true,
	"subscription_amount": true,
	"version":             true,
}

var dateColumns = map[string]bool{
	"allocation_date":   true,
	"minting_date":      true,
	"distribution_date": true,
}

// Sort orders rows by the named column. The sort is stable, so ties keep
// their current relative order. Unknown columns fall back to
// case-insensitive string comparison of their stringified value.
func Sort(rows []summary.Row, column string, desc bool) {
	if column == "" {
		return
	}

	var less func(a, b *summary.Row) bool
	switch {
	case numericColumns[column]:
		less = func(a, b *summary.Row) bool {
			return numericValue(a, column) < numericValue(b, column)
		}
	case dateColumns[column]:
		less = func(a, b *summary.Row) bool {
			return dateValue(a, column) < dateValue(b, column)
		}
	default:
		less = func(a, b *summary.Row) bool {
			return strings.ToLower(fieldString(a, column)) < strings.ToLower(fieldString(b, column))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(&rows[j], &rows[i])
		}
		return less(&rows[i], &rows[j])
	})
}

func numericValue(r *summary.Row, column string) float64 {
	switch column {
	case "amount":
		return r.Amount
	case "subscription_amount":
		return float64(r.SubscriptionAmount)
	case "version":
		return float64(r.Version)
	}
	return 0
}

func dateValue(r *summary.Row, column string) int64 {
	switch column {
	case "allocation_date":
		if r.AllocationDate != nil {
			return r.AllocationDate.UnixMilli()
		}
	case "minting_date":
		if r.MintingDate != nil {
			return r.MintingDate.UnixMilli()
		}
	case "distribution_date":
		if r.DistributionDate != nil {
			return r.DistributionDate.UnixMilli()
		}
	}
	return 0
}

// fieldString stringifies the named field for generic column filters and
// string sorting. Unknown columns stringify to "".
func fieldString(r *summary.Row, column string) string {
	switch column {
	case "investor_name":
		return r.InvestorName
	case "investor_email":
		return r.InvestorEmail
	case "wallet_address":
		return r.WalletAddress
	case "token_type":
		return r.Token.Label()
	case "token_name":
		return r.Token.Name
	case "token_symbol":
		return r.Token.Symbol
	case "token_standard":
		return r.Token.Standard
	case "currency":
		return r.Currency
	case "amount":
		return strconv.FormatFloat(r.Amount, 'f', -1, 64)
	case "subscription_amount":
		return strconv.FormatInt(r.SubscriptionAmount, 10)
	case "status":
		switch {
		case r.Distributed:
			return StatusDistributed
		case r.Minted:
			return StatusMinted
		case r.Confirmed:
			return StatusConfirmed
		default:
			return StatusUnconfirmed
		}
	}
	return ""
}

// Selection tracks selected allocation ids. Filtering never prunes a
// selection: ids outside the current view stay selected.
type Selection map[uint]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Has reports whether id is selected.
func (s Selection) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips the selection state of id.
func (s Selection) Toggle(id uint) {
	if s.Has(id) {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// SelectAll adds every row in the given (typically filtered) list.
func (s Selection) SelectAll(rows []summary.Row) {
	for i := range rows {
		s[rows[i].AllocationID] = struct{}{}
	}
}

// Clear empties the selection.
func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []uint {
	out := make([]uint, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
