package mysql

import (
	"context"

	propDomain "buscocredito-backend/internal/domain/proposal"

	"gorm.io/gorm"
)

type ProposalRepository struct{ db *gorm.DB }

func NewProposalRepository(db *gorm.DB) *ProposalRepository { return &ProposalRepository{db: db} }

func (r *ProposalRepository) Create(ctx context.Context, p *propDomain.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProposalRepository) Save(ctx context.Context, p *propDomain.Proposal) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProposalRepository) GetByProposalID(ctx context.Context, proposalID string) (*propDomain.Proposal, error) {
	var out propDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) GetAcceptedByLoanRef(ctx context.Context, loanRef uint64) (*propDomain.Proposal, error) {
	var out propDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("loan_ref = ? AND status = ?", loanRef, propDomain.StatusAccepted).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) ListByLoanRef(ctx context.Context, loanRef uint64) ([]propDomain.Proposal, error) {
	var out []propDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ProposalRepository) ListPendingByLoanRef(ctx context.Context, loanRef uint64) ([]propDomain.Proposal, error) {
	var out []propDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("loan_ref = ? AND status = ?", loanRef, propDomain.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ProposalRepository) GetPendingByLoanRefAndLenderID(ctx context.Context, loanRef uint64, lenderID string) (*propDomain.Proposal, error) {
	var out propDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("loan_ref = ? AND lender_id = ? AND status = ?", loanRef, lenderID, propDomain.StatusPending).
		First(&out)
	return &out, res.Error
}
