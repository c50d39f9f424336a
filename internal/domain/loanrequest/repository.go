package loanrequest

import "context"

type Repository interface {
	Create(ctx context.Context, l *LoanRequest) error
	GetByLoanID(ctx context.Context, loanID string) (*LoanRequest, error)
	// GetByLoanIDForUpdate locks the row (SELECT ... FOR UPDATE); only valid
	// inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*LoanRequest, error)
	GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*LoanRequest, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]LoanRequest, error)
	Save(ctx context.Context, l *LoanRequest) error
}
