package loanrequestmock

import (
	"context"

	domain "buscocredito-backend/internal/domain/loanrequest"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.LoanRequest) error
	GetByLoanIDFn            func(ctx context.Context, loanID string) (*domain.LoanRequest, error)
	GetByLoanIDForUpdateFn   func(ctx context.Context, loanID string) (*domain.LoanRequest, error)
	GetPendingByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.LoanRequest, error)
	ListByBorrowerIDFn       func(ctx context.Context, borrowerID string) ([]domain.LoanRequest, error)
	SaveFn                   func(ctx context.Context, l *domain.LoanRequest) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.LoanRequest, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.LoanRequest, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*domain.LoanRequest, error) {
	if m.GetPendingByBorrowerIDFn != nil {
		return m.GetPendingByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.LoanRequest, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.LoanRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
