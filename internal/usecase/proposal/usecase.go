package proposal

import (
	"context"
	"errors"
	"time"

	"buscocredito-backend/internal/domain/loanrequest"
	"buscocredito-backend/internal/domain/proposal"
	"buscocredito-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	loans loanrequest.Repository
	repo  proposal.Repository
}

func NewUsecase(loans loanrequest.Repository, repo proposal.Repository) *Usecase {
	return &Usecase{loans: loans, repo: repo}
}

// Create submits a lender's proposal against a pending loan request. Multiple
// lenders competing on one request is the product; only a second pending
// proposal from the same lender is blocked.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ProposalDTO, error) {
	if in.LoanID == "" || in.LenderID == "" || len(in.LenderID) != 32 ||
		in.Amount <= 0 || in.AnnualRate <= 0 || in.TermMonths <= 0 {
		return nil, ErrInvalidInput
	}

	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanrequest.ErrNotFound
		}
		return nil, err
	}
	if l.Status != loanrequest.StatusPending {
		return nil, loanrequest.ErrAlreadyResolved
	}

	_, err = u.repo.GetPendingByLoanRefAndLenderID(ctx, l.ID, in.LenderID)
	switch {
	case err == nil:
		return nil, proposal.ErrPendingExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	p := &proposal.Proposal{
		ProposalID:       id.NewID32(),
		LoanRef:          l.ID,
		LoanID:           l.LoanID,
		LenderID:         in.LenderID,
		LenderName:       in.LenderName,
		LenderEmail:      in.LenderEmail,
		Amount:           in.Amount,
		AnnualRate:       in.AnnualRate,
		TermMonths:       in.TermMonths,
		PaymentFrequency: in.PaymentFrequency,
		Commission:       in.Commission,
		InsuranceBalance: in.InsuranceBalance,
		Status:           proposal.StatusPending,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) ListForLoan(ctx context.Context, loanID string) ([]ProposalDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanrequest.ErrNotFound
		}
		return nil, err
	}
	ps, err := u.repo.ListByLoanRef(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ProposalDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out, nil
}

func toDTO(p *proposal.Proposal) *ProposalDTO {
	return &ProposalDTO{
		ProposalID:       p.ProposalID,
		LoanID:           p.LoanID,
		LenderID:         p.LenderID,
		LenderName:       p.LenderName,
		Amount:           p.Amount,
		AnnualRate:       p.AnnualRate,
		TermMonths:       p.TermMonths,
		PaymentFrequency: p.PaymentFrequency,
		Commission:       p.Commission,
		InsuranceBalance: p.InsuranceBalance,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
	}
}
