package entities

import "time"

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionActive        SubscriptionStatus = "active"
	SubscriptionCanceled      SubscriptionStatus = "canceled"
	SubscriptionExpired       SubscriptionStatus = "expired"
	SubscriptionPaymentFailed SubscriptionStatus = "payment_failed"
)

// PayoutStatus represents the settlement state of a payout record
type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
	PayoutFailed  PayoutStatus = "failed"
)

// PayoutAccountStatus represents the state of a creator's connected payout account
type PayoutAccountStatus string

const (
	PayoutAccountPending       PayoutAccountStatus = "pending"
	PayoutAccountActive        PayoutAccountStatus = "active"
	PayoutAccountRestricted    PayoutAccountStatus = "restricted"
	PayoutAccountNotConfigured PayoutAccountStatus = "not_configured"
)

// User represents a platform user, referenced for existence checks only
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Community holds the membership and billing aspects of a community.
// PlatformFeePercentage + CreatorFeePercentage must always equal 100.
type Community struct {
	ID                    uint                `gorm:"primaryKey"`
	Name                  string              `gorm:"not null"`
	CreatorID             uint                `gorm:"not null;index"`
	Price                 int64               `gorm:"not null;default:0"` // minor units
	PlatformFeePercentage int64               `gorm:"not null;default:12"`
	CreatorFeePercentage  int64               `gorm:"not null;default:88"`
	StripePriceID         string              `gorm:"index"`
	PayoutAccountID       string              ``
	PayoutAccountStatus   PayoutAccountStatus `gorm:"type:varchar(20);default:not_configured"`
	CreatedAt             time.Time           `gorm:"autoCreateTime"`
	UpdatedAt             time.Time           `gorm:"autoUpdateTime"`
}

func (Community) TableName() string {
	return "communities"
}

// CommunityMember is a membership row; one per (community, user) pair.
// The community creator is a member whether or not a row exists.
type CommunityMember struct {
	ID          uint      `gorm:"primaryKey"`
	CommunityID uint      `gorm:"not null;index:idx_community_user,unique"`
	UserID      uint      `gorm:"not null;index:idx_community_user,unique;index:idx_member_user"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (CommunityMember) TableName() string {
	return "community_members"
}

// Subscription represents a paid membership of a user in a community.
// At most one active subscription may exist per (user, community) pair.
// Rows are never hard-deleted; cancellation is a status change plus EndDate.
type Subscription struct {
	ID                   uint               `gorm:"primaryKey"`
	UserID               uint               `gorm:"not null;index:idx_sub_user_community"`
	CommunityID          uint               `gorm:"not null;index:idx_sub_user_community"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null;default:active;index"`
	Amount               int64              `gorm:"not null"` // minor units
	PaymentMethod        string             `gorm:"type:varchar(30);default:stripe"`
	StartDate            time.Time          `gorm:"not null"`
	EndDate              *time.Time         ``
	LastPaymentAttempt   *time.Time         ``
	CurrentPeriodEnd     *time.Time         ``
	StripeStatus         string             `gorm:"type:varchar(30)"`
	StripeSubscriptionID string             `gorm:"index"`
	StripeCustomerID     string             `gorm:"index"`
	LastPaidInvoiceID    string             ``
	CreatedAt            time.Time          `gorm:"autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// PaymentDetails is the exact-cent split embedded in a payout record.
// PlatformFee + CreatorAmount == TotalAmount holds for every row.
type PaymentDetails struct {
	TotalAmount           int64 `gorm:"not null"`
	PlatformFee           int64 `gorm:"not null"`
	CreatorAmount         int64 `gorm:"not null"`
	PlatformFeePercentage int64 `gorm:"not null"`
	CreatorFeePercentage  int64 `gorm:"not null"`
}

// PayoutRecord is an append-only ledger entry owed to a creator for one
// successfully split payment. PaymentDetails are never rewritten once
// created; only Status moves.
type PayoutRecord struct {
	ID             uint           `gorm:"primaryKey"`
	CreatorID      uint           `gorm:"not null;index:idx_payout_creator"`
	CommunityID    uint           `gorm:"not null;index:idx_payout_creator"`
	SubscriptionID uint           `gorm:"not null;index"`
	PaymentDetails PaymentDetails `gorm:"embedded"`
	Status         PayoutStatus   `gorm:"type:varchar(20);not null;default:pending;index"`

	StripeInvoiceID      string `gorm:""`
	StripeSubscriptionID string `gorm:"index"`
	StripeCustomerID     string `gorm:""`
	Currency             string `gorm:"type:varchar(10);default:usd"`
	Description          string `gorm:""`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PayoutRecord) TableName() string {
	return "payout_records"
}

// AllyRelation is an undirected edge between two users who share at least
// one community. Stored normalized with UserA < UserB; the unique index is
// the storage-level backstop against duplicate edges.
type AllyRelation struct {
	ID        uint      `gorm:"primaryKey"`
	UserA     uint      `gorm:"not null;index:idx_ally_pair,unique"`
	UserB     uint      `gorm:"not null;index:idx_ally_pair,unique;index:idx_ally_b"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AllyRelation) TableName() string {
	return "ally_relations"
}
