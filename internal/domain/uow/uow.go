package uow

import (
	"context"

	"buscocredito-backend/internal/domain/loanrequest"
	"buscocredito-backend/internal/domain/notification"
	"buscocredito-backend/internal/domain/proposal"
)

type Repos struct {
	LoanRequests  loanrequest.Repository
	Proposals     proposal.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan request row first, then pass it in
	WithinLoanRequestTx(ctx context.Context, loanID string, fn func(r Repos, l *loanrequest.LoanRequest) error) error
}
