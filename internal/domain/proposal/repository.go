package proposal

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	GetByProposalID(ctx context.Context, proposalID string) (*Proposal, error)
	// GetAcceptedByLoanRef returns the accepted proposal for a loan request,
	// by construction at most one exists.
	GetAcceptedByLoanRef(ctx context.Context, loanRef uint64) (*Proposal, error)
	ListByLoanRef(ctx context.Context, loanRef uint64) ([]Proposal, error)
	ListPendingByLoanRef(ctx context.Context, loanRef uint64) ([]Proposal, error)
	GetPendingByLoanRefAndLenderID(ctx context.Context, loanRef uint64, lenderID string) (*Proposal, error)
	Save(ctx context.Context, p *Proposal) error
}
