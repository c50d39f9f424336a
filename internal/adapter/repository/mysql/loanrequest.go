package mysql

import (
	"context"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRequestRepository struct{ db *gorm.DB }

func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *LoanRequestRepository) Tx(ctx context.Context, fn func(repo lrDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LoanRequestRepository{db: tx})
	})
}

func (r *LoanRequestRepository) Create(ctx context.Context, l *lrDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRequestRepository) Save(ctx context.Context, l *lrDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRequestRepository) GetByLoanID(ctx context.Context, loanID string) (*lrDomain.LoanRequest, error) {
	var out lrDomain.LoanRequest
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*lrDomain.LoanRequest, error) {
	q := r.db.WithContext(ctx)
	// sqlite has no FOR UPDATE; its transactions serialize writes anyway
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out lrDomain.LoanRequest
	res := q.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*lrDomain.LoanRequest, error) {
	var out lrDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status = ?", borrowerID, lrDomain.StatusPending).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]lrDomain.LoanRequest, error) {
	var out []lrDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
