package loanrequest

import (
	"context"
	"errors"
	"time"

	"buscocredito-backend/internal/domain/loanrequest"
	"buscocredito-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct{ repo loanrequest.Repository }

func NewUsecase(r loanrequest.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*LoanRequestDTO, error) {
	if in.BorrowerID == "" || len(in.BorrowerID) != 32 || in.Amount <= 0 || in.TermMonths <= 0 {
		return nil, ErrInvalidInput
	}
	freq := loanrequest.PaymentFrequency(in.PaymentFrequency)
	switch freq {
	case loanrequest.FrequencyWeekly, loanrequest.FrequencyBiweekly, loanrequest.FrequencyMonthly:
	case "":
		freq = loanrequest.FrequencyMonthly
	default:
		return nil, ErrInvalidInput
	}

	// Block if the borrower already has a pending request.
	_, err := u.repo.GetPendingByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, loanrequest.ErrPendingExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &loanrequest.LoanRequest{
		LoanID:           id.NewID32(),
		BorrowerID:       in.BorrowerID,
		Amount:           in.Amount,
		MonthlyIncome:    in.MonthlyIncome,
		TermMonths:       in.TermMonths,
		PaymentFrequency: freq,
		Purpose:          in.Purpose,
		LoanType:         in.LoanType,
		Status:           loanrequest.StatusPending,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanRequestDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanrequest.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanRequestDTO, error) {
	ls, err := u.repo.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanRequestDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

func toDTO(l *loanrequest.LoanRequest) *LoanRequestDTO {
	return &LoanRequestDTO{
		LoanID:             l.LoanID,
		BorrowerID:         l.BorrowerID,
		Amount:             l.Amount,
		MonthlyIncome:      l.MonthlyIncome,
		TermMonths:         l.TermMonths,
		PaymentFrequency:   string(l.PaymentFrequency),
		Purpose:            l.Purpose,
		LoanType:           l.LoanType,
		Status:             string(l.Status),
		AcceptedProposalID: l.AcceptedProposalID,
		CreatedAt:          l.CreatedAt,
	}
}
