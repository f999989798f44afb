package dto

import "time"

// Raw provider object shapes, decoded from the `data.object` of a verified
// webhook event. Only the fields the reconciler needs are declared; the
// remainder of the provider payload is ignored.

// CheckoutSessionObject is the provider checkout session payload
type CheckoutSessionObject struct {
	ID            string            `json:"id"`
	Subscription  string            `json:"subscription"`
	Customer      string            `json:"customer"`
	Invoice       string            `json:"invoice"`
	AmountTotal   int64             `json:"amount_total"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// SubscriptionObject is the provider subscription payload
type SubscriptionObject struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Customer         string `json:"customer"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
}

// InvoiceObject is the provider invoice payload
type InvoiceObject struct {
	ID           string `json:"id"`
	Subscription string `json:"subscription"`
	AmountDue    int64  `json:"amount_due"`
	AmountPaid   int64  `json:"amount_paid"`
}

// Typed events handed to the reconciler after validation at the
// deserialization boundary. Metadata parsing failures surface as
// ErrMalformedEvent before any of these are constructed.

// CheckoutCompleted signals a completed provider checkout session
type CheckoutCompleted struct {
	SessionID            string
	UserID               uint
	CommunityID          uint
	StripeSubscriptionID string
	StripeCustomerID     string
	StripeInvoiceID      string
	AmountTotal          int64
	PaymentStatus        string
}

// SubscriptionUpdated carries refreshed provider-side subscription state
type SubscriptionUpdated struct {
	StripeSubscriptionID string
	Status               string
	CurrentPeriodEnd     time.Time
}

// SubscriptionDeleted signals a provider-side cancellation
type SubscriptionDeleted struct {
	StripeSubscriptionID string
}

// PaymentFailed signals a failed recurring charge
type PaymentFailed struct {
	StripeSubscriptionID string
	StripeInvoiceID      string
	AmountDue            int64
}

// PaymentSucceeded signals a successful recurring charge
type PaymentSucceeded struct {
	StripeSubscriptionID string
	StripeInvoiceID      string
	AmountPaid           int64
}

// NotificationPayload is the optional context attached to a notification
type NotificationPayload struct {
	CommunityID    uint  `json:"community_id,omitempty"`
	SubscriptionID uint  `json:"subscription_id,omitempty"`
	Amount         int64 `json:"amount,omitempty"`
}

// NotificationEvent is the wire shape published to the notification topic
type NotificationEvent struct {
	Kind           string    `json:"kind"`
	UserID         uint      `json:"user_id"`
	CommunityID    uint      `json:"community_id,omitempty"`
	SubscriptionID uint      `json:"subscription_id,omitempty"`
	Amount         int64     `json:"amount,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// CheckoutSessionSpec is the provider-agnostic description of a checkout
// session request built by the checkout flow
type CheckoutSessionSpec struct {
	PriceID     string
	UserID      uint
	CommunityID uint
	Split       *SplitRouting
	SuccessURL  string
	CancelURL   string
}

// SplitRouting routes a share of each charge to the creator's connected
// payout account
type SplitRouting struct {
	DestinationAccountID  string
	PlatformFeePercentage int64
}
