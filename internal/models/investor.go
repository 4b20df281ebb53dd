package models

// KycStatus represents the KYC state of an investor.
type KycStatus string

const (
	KycStatusPending  KycStatus = "pending"
	KycStatusApproved KycStatus = "approved"
	KycStatusFailed   KycStatus = "failed"
)

// PaymentStatus represents whether an investor has settled their subscription.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Investor represents an investor record on a project's cap table.
type Investor struct {
	Base
	ProjectID     uint          `gorm:"not null;index" json:"project_id"`
	Name          string        `gorm:"not null" json:"name"`
	Email         string        `json:"email"`
	WalletAddress string        `json:"wallet_address"`
	KycStatus     KycStatus     `gorm:"default:pending" json:"kyc_status"`
	PaymentStatus PaymentStatus `gorm:"default:unpaid" json:"payment_status"`

	// Relationships
	Subscriptions []Subscription `gorm:"foreignKey:InvestorID" json:"subscriptions,omitempty"`
}
