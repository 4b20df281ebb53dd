package summary

import (
	"math/rand"
	"testing"

	"captable/internal/tokentype"
)

func row(token string, amount float64, subConfirmed, minted, distributed bool) Row {
	return Row{
		Token:                 tokentype.Parse(token),
		TokenType:             token,
		Amount:                amount,
		SubscriptionConfirmed: subConfirmed,
		Minted:                minted,
		Distributed:           distributed,
	}
}

func TestSummarize_Groups(t *testing.T) {
	rows := []Row{
		row("Acme (ACM) - ERC-20", 100, true, true, false),
		row("Acme (ACM) - ERC-20", 50, true, false, false),
		row("Beta (BET) - ERC-721", 30, false, false, false),
		// Compact spelling must land in the same group as the hyphenated one.
		row("Acme (ACM) - ERC20", 25, true, false, false),
	}

	groups, grand := Summarize(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	acme := groups[0]
	if acme.TokenType != "Acme (ACM) - ERC-20" {
		t.Fatalf("expected Acme group first, got %s", acme.TokenType)
	}
	if acme.Count != 3 {
		t.Errorf("expected count 3, got %d", acme.Count)
	}
	if acme.TotalAmount != 175 {
		t.Errorf("expected total 175, got %f", acme.TotalAmount)
	}
	if acme.ConfirmedAmount != 175 {
		t.Errorf("expected confirmed 175, got %f", acme.ConfirmedAmount)
	}
	if acme.MintedAmount != 100 {
		t.Errorf("expected minted 100, got %f", acme.MintedAmount)
	}
	if acme.RemainingToMint != 75 {
		t.Errorf("expected remaining 75, got %f", acme.RemainingToMint)
	}
	if acme.Status != StatusPartiallyMinted {
		t.Errorf("expected partially_minted, got %s", acme.Status)
	}

	beta := groups[1]
	if beta.ConfirmedAmount != 0 || beta.Status != StatusPending {
		t.Errorf("expected pending Beta group, got %+v", beta)
	}

	if grand.Allocated != 205 {
		t.Errorf("expected grand allocated 205, got %f", grand.Allocated)
	}
	if grand.Minted != 100 {
		t.Errorf("expected grand minted 100, got %f", grand.Minted)
	}
}

func TestSummarize_GrandTotalIndependentOfOrder(t *testing.T) {
	rows := []Row{
		row("A - ERC-20", 10, true, false, false),
		row("B - ERC-721", 20, true, true, false),
		row("A - ERC-20", 30, false, false, true),
		row("C", 40, true, false, false),
	}

	_, want := Summarize(rows)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]Row, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		_, got := Summarize(shuffled)
		if got != want {
			t.Fatalf("grand total depends on order: got %+v, want %+v", got, want)
		}
	}

	var sum float64
	for _, r := range rows {
		sum += r.Amount
	}
	if want.Allocated != sum {
		t.Errorf("grand allocated %f != sum of amounts %f", want.Allocated, sum)
	}
}

func TestSummarize_RemainingInvariant(t *testing.T) {
	rows := []Row{
		row("A - ERC-20", 100, true, true, false),
		row("A - ERC-20", 50, true, true, false),
		row("A - ERC-20", 25, true, false, false),
	}
	groups, _ := Summarize(rows)
	g := groups[0]
	if g.RemainingToMint != g.ConfirmedAmount-g.MintedAmount {
		t.Fatalf("remaining %f != confirmed %f - minted %f", g.RemainingToMint, g.ConfirmedAmount, g.MintedAmount)
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name                         string
		confirmed, minted, remaining float64
		want                         Status
	}{
		{"pending", 0, 0, 0, StatusPending},
		{"ready", 100, 0, 100, StatusReadyToMint},
		{"partial", 100, 40, 60, StatusPartiallyMinted},
		{"minted_exact", 100, 100, 0, StatusMinted},
		{"minted_over", 100, 120, -20, StatusMinted},
		// confirmed == 0 wins even when minted amounts exist upstream.
		{"pending_wins", 0, 10, -10, StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveStatus(tt.confirmed, tt.minted, tt.remaining); got != tt.want {
				t.Errorf("deriveStatus(%f, %f, %f) = %s, want %s", tt.confirmed, tt.minted, tt.remaining, got, tt.want)
			}
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	groups, grand := Summarize(nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
	if grand != (GrandTotal{}) {
		t.Errorf("expected zero grand total, got %+v", grand)
	}
}
