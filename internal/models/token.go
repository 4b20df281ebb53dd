package models

// Token is a registry entry for a token a project may allocate. The
// authoritative token descriptor on an allocation is still its label
// string; this table feeds the token pickers and bulk-update choices.
type Token struct {
	Base
	ProjectID   uint    `gorm:"not null;index" json:"project_id"`
	Name        string  `gorm:"not null" json:"name"`
	Symbol      string  `gorm:"not null" json:"symbol"`
	Standard    string  `json:"standard"`
	Decimals    int     `gorm:"default:18" json:"decimals"`
	TotalSupply float64 `json:"total_supply"`
}
