package errors

import "errors"

var (
	// ErrVerificationFailed is returned when a webhook signature does not verify
	ErrVerificationFailed = errors.New("webhook signature verification failed")

	// ErrMalformedEvent is returned when a verified event is missing required metadata
	ErrMalformedEvent = errors.New("malformed event payload")

	// ErrSubscriptionNotFound is returned when no local subscription matches
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrCommunityNotFound is returned when the referenced community does not exist
	ErrCommunityNotFound = errors.New("community not found")

	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidAmount is returned when a split is requested for a negative
	// amount or an out-of-range fee percentage
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrNoValidPrice is returned when no provider price can be resolved or created
	ErrNoValidPrice = errors.New("no valid price reference")

	// ErrNoManageableSubscription is returned when a portal session is requested
	// but no subscription with a customer reference exists
	ErrNoManageableSubscription = errors.New("no manageable subscription")

	// ErrDatabaseOperation is returned when a storage operation fails
	ErrDatabaseOperation = errors.New("database operation failed")
)
