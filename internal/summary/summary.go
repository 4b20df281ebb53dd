// Package summary computes the derived state of a project's allocation
// list: per-record flags, per-token-type totals, and grand totals. Nothing
// here is persisted; summaries are recomputed from source rows on every
// call so they can never drift from the store.
package summary

import (
	"time"

	"captable/internal/tokentype"
)

// Status is the minting status of a token-type group. Derivation order
// matters: the first matching rule wins.
type Status string

const (
	StatusPending         Status = "pending"
	StatusReadyToMint     Status = "ready_to_mint"
	StatusPartiallyMinted Status = "partially_minted"
	StatusMinted          Status = "minted"
)

// Row is one allocation joined with its investor and subscription, plus
// the derived fields the views need.
type Row struct {
	AllocationID  uint                 `json:"allocation_id"`
	InvestorID    uint                 `json:"investor_id"`
	InvestorName  string               `json:"investor_name"`
	InvestorEmail string               `json:"investor_email"`
	WalletAddress string               `json:"wallet_address"`
	TokenType     string               `json:"token_type"`
	Token         tokentype.Descriptor `json:"token"`
	Amount        float64              `json:"amount"`

	// Confirmed mirrors allocation_date being set; SubscriptionConfirmed
	// is true when the parent subscription is both confirmed and allocated.
	Confirmed             bool `json:"confirmed"`
	SubscriptionConfirmed bool `json:"subscription_confirmed"`
	Minted                bool `json:"minted"`
	Distributed           bool `json:"distributed"`

	SubscriptionID     uint       `json:"subscription_id"`
	SubscriptionAmount int64      `json:"subscription_amount"`
	Currency           string     `json:"currency"`
	AllocationDate     *time.Time `json:"allocation_date"`
	MintingDate        *time.Time `json:"minting_date,omitempty"`
	DistributionDate   *time.Time `json:"distribution_date,omitempty"`
	Version            int64      `json:"version"`
}

// TokenTypeSummary aggregates one token-type group.
type TokenTypeSummary struct {
	TokenType         string               `json:"token_type"`
	Token             tokentype.Descriptor `json:"token"`
	Count             int                  `json:"count"`
	TotalAmount       float64              `json:"total_amount"`
	ConfirmedAmount   float64              `json:"confirmed_amount"`
	MintedAmount      float64              `json:"minted_amount"`
	DistributedAmount float64              `json:"distributed_amount"`
	RemainingToMint   float64              `json:"remaining_to_mint"`
	Status            Status               `json:"status"`
}

// GrandTotal aggregates across every row regardless of grouping.
type GrandTotal struct {
	Count       int     `json:"count"`
	Allocated   float64 `json:"allocated"`
	Confirmed   float64 `json:"confirmed"`
	Minted      float64 `json:"minted"`
	Distributed float64 `json:"distributed"`
}

// Summarize partitions rows by normalized token-type label and computes
// group and grand totals. Groups keep first-appearance order so repeated
// calls over the same list are stable.
func Summarize(rows []Row) ([]TokenTypeSummary, GrandTotal) {
	var keys []string
	groups := make(map[string]*TokenTypeSummary)
	var grand GrandTotal

	for i := range rows {
		r := &rows[i]
		key := r.Token.Label()

		g, ok := groups[key]
		if !ok {
			g = &TokenTypeSummary{TokenType: key, Token: r.Token}
			groups[key] = g
			keys = append(keys, key)
		}

		g.Count++
		g.TotalAmount += r.Amount
		if r.SubscriptionConfirmed {
			g.ConfirmedAmount += r.Amount
		}
		if r.Minted {
			g.MintedAmount += r.Amount
		}
		if r.Distributed {
			g.DistributedAmount += r.Amount
		}

		grand.Count++
		grand.Allocated += r.Amount
		if r.SubscriptionConfirmed {
			grand.Confirmed += r.Amount
		}
		if r.Minted {
			grand.Minted += r.Amount
		}
		if r.Distributed {
			grand.Distributed += r.Amount
		}
	}

	out := make([]TokenTypeSummary, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		g.RemainingToMint = g.ConfirmedAmount - g.MintedAmount
		g.Status = deriveStatus(g.ConfirmedAmount, g.MintedAmount, g.RemainingToMint)
		out = append(out, *g)
	}
	return out, grand
}

// deriveStatus applies the status rules in order; the first match wins.
func deriveStatus(confirmed, minted, remaining float64) Status {
	switch {
	case confirmed == 0:
		return StatusPending
	case minted > 0 && remaining > 0:
		return StatusPartiallyMinted
	case minted > 0 && remaining <= 0:
		return StatusMinted
	default:
		return StatusReadyToMint
	}
}
