package models

// Project is the cap-table container. Investors, subscriptions, tokens, and
// allocations all hang off a project, and every service call verifies the
// requesting user owns the project.
type Project struct {
	Base
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Relationships
	Investors []Investor `gorm:"foreignKey:ProjectID" json:"investors,omitempty"`
	Tokens    []Token    `gorm:"foreignKey:ProjectID" json:"tokens,omitempty"`
}
