package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/dto"
)

// NotificationAdapter publishes notification events to the notifications
// topic, implementing the domain's NotificationSink boundary
type NotificationAdapter struct {
	producer *Producer
	topic    string
}

func NewNotificationAdapter(producer *Producer, topic string) *NotificationAdapter {
	return &NotificationAdapter{
		producer: producer,
		topic:    topic,
	}
}

func (a *NotificationAdapter) Notify(ctx context.Context, kind string, userID uint, payload dto.NotificationPayload) error {
	event := &dto.NotificationEvent{
		Kind:           kind,
		UserID:         userID,
		CommunityID:    payload.CommunityID,
		SubscriptionID: payload.SubscriptionID,
		Amount:         payload.Amount,
		OccurredAt:     time.Now().UTC(),
	}

	key := strconv.FormatUint(uint64(userID), 10)

	return a.producer.SendToTopic(ctx, a.topic, key, event)
}

func (a *NotificationAdapter) Close() error {
	return a.producer.Close()
}
