package models

import "time"

// Allocation assigns a token amount to an investor's subscription. Its
// lifecycle is unconfirmed -> confirmed -> minted -> distributed, tracked
// through AllocationDate and the minted/distributed flags. Minting and
// distribution are simulated: the tx hashes are generated placeholders,
// not real ledger transactions.
type Allocation struct {
	Base
	ProjectID      uint `gorm:"not null;index" json:"project_id"`
	SubscriptionID uint `gorm:"not null;index" json:"subscription_id"`
	InvestorID     uint `gorm:"not null;index" json:"investor_id"`

	// TokenType is the composite display label, e.g. "Acme (ACM) - ERC-20".
	// Standard is the explicit fallback column used when the label carries
	// no standard suffix.
	TokenType string  `gorm:"not null" json:"token_type"`
	Standard  string  `json:"standard"`
	Amount    float64 `gorm:"not null" json:"amount"`

	// AllocationDate is nil while the allocation is unconfirmed.
	AllocationDate *time.Time `json:"allocation_date"`

	Minted        bool       `gorm:"default:false" json:"minted"`
	MintingDate   *time.Time `json:"minting_date,omitempty"`
	MintingTxHash string     `json:"minting_tx_hash,omitempty"`

	Distributed        bool       `gorm:"default:false" json:"distributed"`
	DistributionDate   *time.Time `json:"distribution_date,omitempty"`
	DistributionTxHash string     `json:"distribution_tx_hash,omitempty"`

	// Version is bumped on every write; updates are scoped by it so that
	// concurrent edits surface as STALE_VERSION instead of lost updates.
	Version int64 `gorm:"not null;default:1" json:"version"`

	// Relationships
	Subscription Subscription `gorm:"foreignKey:SubscriptionID" json:"subscription"`
	Investor     Investor     `gorm:"foreignKey:InvestorID" json:"investor"`
}

// Confirmed reports whether the allocation has been confirmed.
func (a *Allocation) Confirmed() bool {
	return a.AllocationDate != nil
}
