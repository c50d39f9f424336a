package notificationmock

import (
	"context"
	"sync"

	domain "buscocredito-backend/internal/domain/notification"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, n *domain.Notification) error
	GetByNotificationIDFn func(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByRecipientIDFn   func(ctx context.Context, recipientID string) ([]domain.Notification, error)
	SaveFn                func(ctx context.Context, n *domain.Notification) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) GetByNotificationID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	if m.GetByNotificationIDFn != nil {
		return m.GetByNotificationIDFn(ctx, notificationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByRecipientID(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	if m.ListByRecipientIDFn != nil {
		return m.ListByRecipientIDFn(ctx, recipientID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, n *domain.Notification) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, n)
	}
	return nil
}

// Dispatcher is a recording mock for the notification dispatcher. Tests
// assert on the collected inputs; FailFor lets individual recipients fail to
// exercise per-recipient isolation.
type Dispatcher struct {
	mu      sync.Mutex
	Inputs  []domain.DispatchInput
	FailFor map[string]error // keyed by recipient id
}

var _ domain.Dispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) Dispatch(ctx context.Context, in domain.DispatchInput) error {
	m.mu.Lock()
	m.Inputs = append(m.Inputs, in)
	m.mu.Unlock()
	if m.FailFor != nil {
		if err, ok := m.FailFor[in.RecipientID]; ok {
			return err
		}
	}
	return nil
}
