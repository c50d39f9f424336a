package proposalmock

import (
	"context"

	domain "buscocredito-backend/internal/domain/proposal"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                         func(ctx context.Context, p *domain.Proposal) error
	GetByProposalIDFn                func(ctx context.Context, proposalID string) (*domain.Proposal, error)
	GetAcceptedByLoanRefFn           func(ctx context.Context, loanRef uint64) (*domain.Proposal, error)
	ListByLoanRefFn                  func(ctx context.Context, loanRef uint64) ([]domain.Proposal, error)
	ListPendingByLoanRefFn           func(ctx context.Context, loanRef uint64) ([]domain.Proposal, error)
	GetPendingByLoanRefAndLenderIDFn func(ctx context.Context, loanRef uint64, lenderID string) (*domain.Proposal, error)
	SaveFn                           func(ctx context.Context, p *domain.Proposal) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Proposal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProposalID(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	if m.GetByProposalIDFn != nil {
		return m.GetByProposalIDFn(ctx, proposalID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetAcceptedByLoanRef(ctx context.Context, loanRef uint64) (*domain.Proposal, error) {
	if m.GetAcceptedByLoanRefFn != nil {
		return m.GetAcceptedByLoanRefFn(ctx, loanRef)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoanRef(ctx context.Context, loanRef uint64) ([]domain.Proposal, error) {
	if m.ListByLoanRefFn != nil {
		return m.ListByLoanRefFn(ctx, loanRef)
	}
	return nil, nil
}

func (m *Repo) ListPendingByLoanRef(ctx context.Context, loanRef uint64) ([]domain.Proposal, error) {
	if m.ListPendingByLoanRefFn != nil {
		return m.ListPendingByLoanRefFn(ctx, loanRef)
	}
	return nil, nil
}

func (m *Repo) GetPendingByLoanRefAndLenderID(ctx context.Context, loanRef uint64, lenderID string) (*domain.Proposal, error) {
	if m.GetPendingByLoanRefAndLenderIDFn != nil {
		return m.GetPendingByLoanRefAndLenderIDFn(ctx, loanRef, lenderID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, p *domain.Proposal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
