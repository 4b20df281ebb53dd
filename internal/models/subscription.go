package models

// Subscription represents an investor's commitment to a project: a fiat
// amount (in minor units) that token allocations are carved out of. One
// investor may hold multiple subscriptions.
type Subscription struct {
	Base
	ProjectID  uint   `gorm:"not null;index" json:"project_id"`
	InvestorID uint   `gorm:"not null;index" json:"investor_id"`
	Currency   string `gorm:"not null;size:3" json:"currency"`
	Amount     int64  `gorm:"type:bigint;not null" json:"amount"`
	Confirmed  bool   `gorm:"default:false" json:"confirmed"`
	Allocated  bool   `gorm:"default:false" json:"allocated"`
	Notes      string `json:"notes"`

	// Relationships
	Investor    Investor     `gorm:"foreignKey:InvestorID" json:"investor"`
	Allocations []Allocation `gorm:"foreignKey:SubscriptionID" json:"allocations,omitempty"`
}
