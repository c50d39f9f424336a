package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByNotificationID(ctx context.Context, notificationID string) (*Notification, error)
	ListByRecipientID(ctx context.Context, recipientID string) ([]Notification, error)
	Save(ctx context.Context, n *Notification) error
}
