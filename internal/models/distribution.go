package models

import "time"

// Distribution records a single allocation being marked as sent to an
// investor wallet. One row per distributed allocation.
type Distribution struct {
	Base
	ProjectID     uint      `gorm:"not null;index" json:"project_id"`
	AllocationID  uint      `gorm:"not null;index" json:"allocation_id"`
	InvestorID    uint      `gorm:"not null;index" json:"investor_id"`
	TokenType     string    `gorm:"not null" json:"token_type"`
	Amount        float64   `gorm:"not null" json:"amount"`
	WalletAddress string    `json:"wallet_address"`
	TxHash        string    `gorm:"not null" json:"tx_hash"`
	DistributedAt time.Time `gorm:"not null" json:"distributed_at"`
}
