package notifier

import (
	"context"

	"buscocredito-backend/internal/domain/notification"
	"buscocredito-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

// Mailer is the optional email escalation channel. A nil Mailer disables it.
type Mailer interface {
	Send(to, subject, body string) error
}

var _ notification.Dispatcher = (*Dispatcher)(nil)

type Dispatcher struct {
	repo   notification.Repository
	mailer Mailer
	log    *logrus.Logger
}

func NewDispatcher(repo notification.Repository, mailer Mailer, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, mailer: mailer, log: log}
}

// Dispatch persists the notification record and then escalates to email when
// a mailer is configured and the recipient has an address. The record is the
// source of truth; email failure only downgrades EmailStatus.
func (d *Dispatcher) Dispatch(ctx context.Context, in notification.DispatchInput) error {
	n := &notification.Notification{
		NotificationID: id.NewID32(),
		RecipientID:    in.RecipientID,
		Title:          in.Title,
		Message:        in.Message,
		EmailStatus:    notification.EmailSkipped,
	}
	if err := n.SetPayload(in.Payload); err != nil {
		return err
	}
	if err := d.repo.Create(ctx, n); err != nil {
		return err
	}

	if d.mailer == nil || in.RecipientEmail == "" {
		return nil
	}
	if err := d.mailer.Send(in.RecipientEmail, in.Title, in.Message); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"notification_id": n.NotificationID,
			"recipient_id":    n.RecipientID,
		}).Warn("email escalation failed")
		n.EmailStatus = notification.EmailFailed
	} else {
		n.EmailStatus = notification.EmailSent
	}
	if err := d.repo.Save(ctx, n); err != nil {
		d.log.WithError(err).Warn("could not record email status")
	}
	return nil
}
