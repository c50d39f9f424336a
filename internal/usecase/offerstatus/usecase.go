package offerstatus

import (
	"context"
	"errors"
	"time"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	propDomain "buscocredito-backend/internal/domain/proposal"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type OfferDTO struct {
	ProposalID       string    `json:"proposal_id"`
	LoanID           string    `json:"loan_id"`
	LenderID         string    `json:"lender_id"`
	LenderName       string    `json:"lender_name"`
	Amount           float64   `json:"amount"`
	AnnualRate       float64   `json:"annual_rate"`
	TermMonths       int       `json:"term_months"`
	PaymentFrequency string    `json:"payment_frequency"`
	Commission       float64   `json:"commission"`
	InsuranceBalance *float64  `json:"insurance_balance,omitempty"`
	AcceptedAt       time.Time `json:"accepted_at"`
}

type Resolution struct {
	AcceptedOfferID *string   `json:"accepted_offer_id"`
	AcceptedOffer   *OfferDTO `json:"accepted_offer"`
}

// Usecase answers "has this loan request already been resolved, and with
// which proposal?". The accepted-proposal query is authoritative; the loan
// request's cached status/pointer is a fast path repaired on drift.
type Usecase struct {
	loans     lrDomain.Repository
	proposals propDomain.Repository
	log       *logrus.Logger
}

func NewUsecase(loans lrDomain.Repository, proposals propDomain.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{loans: loans, proposals: proposals, log: log}
}

func (u *Usecase) Resolve(ctx context.Context, loanID string) (*Resolution, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		// a missing loan is "no accepted offer", not an error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Resolution{}, nil
		}
		return nil, err
	}

	// Fast path: cached pointer on the loan request. Treated as a hint, a
	// dangling pointer falls through to the authoritative query.
	if l.Status == lrDomain.StatusApproved && l.AcceptedProposalID != nil {
		p, err := u.proposals.GetByProposalID(ctx, *l.AcceptedProposalID)
		if err == nil {
			return resolution(p), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u.log.WithFields(logrus.Fields{
			"loan_id":     loanID,
			"proposal_id": *l.AcceptedProposalID,
		}).Warn("accepted-proposal pointer is dangling, falling back to query")
	}

	p, err := u.proposals.GetAcceptedByLoanRef(ctx, l.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Resolution{}, nil
		}
		return nil, err
	}

	// Opportunistic repair so future reads take the fast path. Best effort:
	// a failed write-back must not fail the read.
	if l.Status != lrDomain.StatusApproved || l.AcceptedProposalID == nil || *l.AcceptedProposalID != p.ProposalID {
		l.Status = lrDomain.StatusApproved
		l.AcceptedProposalID = &p.ProposalID
		l.StatusUpdatedAt = time.Now().UTC()
		if err := u.loans.Save(ctx, l); err != nil {
			u.log.WithError(err).WithField("loan_id", loanID).
				Warn("cache repair on loan request failed")
		}
	}
	return resolution(p), nil
}

func resolution(p *propDomain.Proposal) *Resolution {
	dto := &OfferDTO{
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
		AcceptedAt:       p.StatusUpdatedAt,
	}
	return &Resolution{AcceptedOfferID: &p.ProposalID, AcceptedOffer: dto}
}
