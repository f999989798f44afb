package consts

// Notification kinds emitted into the notification sink
const (
	NotificationSubscriptionSuccess  = "subscription_success"
	NotificationSubscriptionCanceled = "subscription_canceled"
	NotificationPaymentFailed        = "payment_failed"
	NotificationPaymentSucceeded     = "payment_succeeded"
)

// Provider webhook event types handled by the event router. Anything not in
// this set is acknowledged and dropped.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventPaymentFailed       = "invoice.payment_failed"
	EventPaymentSucceeded    = "invoice.payment_succeeded"
)
