package notification

import (
	"context"
	"errors"

	"buscocredito-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type Usecase struct{ repo notification.Repository }

func NewUsecase(r notification.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) ListForRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	return u.repo.ListByRecipientID(ctx, recipientID)
}

// MarkRead flips the read flag; only the recipient may do so.
func (u *Usecase) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	n, err := u.repo.GetByNotificationID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification.ErrNotFound
		}
		return err
	}
	if n.RecipientID != recipientID {
		return notification.ErrNotFound
	}
	if n.Read {
		return nil
	}
	n.Read = true
	return u.repo.Save(ctx, n)
}
