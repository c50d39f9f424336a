package acceptance

import (
	"context"
	"errors"
	"fmt"
	"time"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	notifDomain "buscocredito-backend/internal/domain/notification"
	propDomain "buscocredito-backend/internal/domain/proposal"
	"buscocredito-backend/internal/domain/uow"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Usecase is the only authorized path for moving a proposal into accepted.
type Usecase struct {
	uow       uow.UnitOfWork
	proposals propDomain.Repository
	notifier  notifDomain.Dispatcher
	log       *logrus.Logger
}

func NewUsecase(tx uow.UnitOfWork, proposals propDomain.Repository, d notifDomain.Dispatcher, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, proposals: proposals, notifier: d, log: log}
}

// Accept marks one proposal accepted, flips the loan request to approved,
// rejects every competing pending proposal in the same transaction, and then
// fans out notifications. The loan request row is locked for the duration of
// the transaction, so two competing accepts serialize and the loser gets
// ErrAlreadyResolved.
func (u *Usecase) Accept(ctx context.Context, in AcceptInput) (*AcceptResult, error) {
	if in.ProposalID == "" || in.LoanID == "" || in.Status == "" {
		return nil, ErrMissingField
	}
	if propDomain.Status(in.Status) != propDomain.StatusAccepted {
		return nil, ErrUnsupportedStatus
	}
	if u.uow == nil {
		return nil, lrDomain.ErrInvalidTransition
	}

	var (
		winner *propDomain.Proposal
		losers []propDomain.Proposal
	)
	now := time.Now().UTC()

	err := u.uow.WithinLoanRequestTx(ctx, in.LoanID, func(r uow.Repos, l *lrDomain.LoanRequest) error {
		// State guard inside the row lock: only pending → approved.
		if l.Status != lrDomain.StatusPending {
			if l.Status == lrDomain.StatusApproved {
				return lrDomain.ErrAlreadyResolved
			}
			return lrDomain.ErrInvalidTransition
		}

		p, err := r.Proposals.GetByProposalID(ctx, in.ProposalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return propDomain.ErrNotFound
			}
			return err
		}
		if p.LoanRef != l.ID {
			return propDomain.ErrLoanMismatch
		}
		if p.Status != propDomain.StatusPending {
			return propDomain.ErrAlreadyDecided
		}

		pending, err := r.Proposals.ListPendingByLoanRef(ctx, l.ID)
		if err != nil {
			return err
		}
		losers = losers[:0]
		for i := range pending {
			if pending[i].ProposalID == p.ProposalID {
				continue
			}
			s := pending[i]
			s.Status = propDomain.StatusRejected
			s.StatusUpdatedAt = now
			if err := r.Proposals.Save(ctx, &s); err != nil {
				return err
			}
			losers = append(losers, s)
		}

		p.Status = propDomain.StatusAccepted
		p.StatusUpdatedAt = now
		if err := r.Proposals.Save(ctx, p); err != nil {
			return err
		}

		l.Status = lrDomain.StatusApproved
		l.AcceptedProposalID = &p.ProposalID
		l.StatusUpdatedAt = now
		if err := r.LoanRequests.Save(ctx, l); err != nil {
			return err
		}

		winner = p
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lrDomain.ErrNotFound
		}
		return nil, err
	}

	// Notifications only after the transaction committed. Failures here are
	// logged, never surfaced: the state transition is the source of truth.
	u.fanOut(ctx, winner, losers)

	return &AcceptResult{ProposalID: winner.ProposalID, LoanID: in.LoanID}, nil
}

func (u *Usecase) fanOut(ctx context.Context, winner *propDomain.Proposal, losers []propDomain.Proposal) {
	// Re-read the winner post-commit so the payload reflects the stored row.
	fresh, err := u.proposals.GetByProposalID(ctx, winner.ProposalID)
	if err != nil {
		u.log.WithError(err).WithField("proposal_id", winner.ProposalID).
			Warn("post-commit re-read failed, using transaction snapshot")
		fresh = winner
	}
	terms := offerTerms(fresh)

	win := notifDomain.DispatchInput{
		RecipientID:    fresh.LenderID,
		RecipientEmail: fresh.LenderEmail,
		Title:          "¡Tu propuesta fue aceptada!",
		Message: fmt.Sprintf("El solicitante aceptó tu propuesta de $%.2f con tasa anual de %.2f%% para la solicitud %s.",
			fresh.Amount, fresh.AnnualRate*100, fresh.LoanID),
		Payload: notifDomain.LoanAcceptedPayload{LoanID: fresh.LoanID, Offer: terms},
	}
	if err := u.notifier.Dispatch(ctx, win); err != nil {
		u.log.WithError(err).WithField("lender_id", fresh.LenderID).
			Error("winner notification failed")
	}

	for i := range losers {
		lo := losers[i]
		in := notifDomain.DispatchInput{
			RecipientID:    lo.LenderID,
			RecipientEmail: lo.LenderEmail,
			Title:          "Solicitud asignada a otra propuesta",
			Message: fmt.Sprintf("La solicitud %s fue asignada a otra propuesta de $%.2f con tasa anual de %.2f%%.",
				lo.LoanID, terms.Amount, terms.AnnualRate*100),
			Payload: notifDomain.LoanAssignedOtherPayload{
				LoanID:       lo.LoanID,
				OwnProposal:  lo.ProposalID,
				WinningOffer: terms,
			},
		}
		// per-recipient isolation: one failed dispatch must not stop the rest
		if err := u.notifier.Dispatch(ctx, in); err != nil {
			u.log.WithError(err).WithField("lender_id", lo.LenderID).
				Error("competing-lender notification failed")
		}
	}
}

func offerTerms(p *propDomain.Proposal) notifDomain.OfferTerms {
	return notifDomain.OfferTerms{
		ProposalID:       p.ProposalID,
		LenderID:         p.LenderID,
		Amount:           p.Amount,
		AnnualRate:       p.AnnualRate,
		TermMonths:       p.TermMonths,
		PaymentFrequency: p.PaymentFrequency,
		Commission:       p.Commission,
		InsuranceBalance: p.InsuranceBalance,
	}
}
