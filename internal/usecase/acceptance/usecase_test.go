package acceptance

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	notifDomain "buscocredito-backend/internal/domain/notification"
	propDomain "buscocredito-backend/internal/domain/proposal"
	"buscocredito-backend/internal/domain/uow"
	"buscocredito-backend/internal/testutil/loanrequestmock"
	"buscocredito-backend/internal/testutil/notificationmock"
	"buscocredito-backend/internal/testutil/proposalmock"
	"buscocredito-backend/internal/testutil/uowmock"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fixture wires the mocks around an in-memory loan with its proposals so a
// test reads like: seed, accept, assert on stored state + dispatched inputs.
type fixture struct {
	loan      *lrDomain.LoanRequest
	proposals []*propDomain.Proposal
	props     *proposalmock.Repo
	disp      *notificationmock.Dispatcher
	tx        *uowmock.UoW
	txCalled  bool
}

func newFixture(loanStatus lrDomain.Status) *fixture {
	f := &fixture{
		loan: &lrDomain.LoanRequest{
			ID:     101,
			LoanID: "l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1",
			Status: loanStatus,
		},
		disp: &notificationmock.Dispatcher{},
	}

	f.props = &proposalmock.Repo{
		GetByProposalIDFn: func(ctx context.Context, proposalID string) (*propDomain.Proposal, error) {
			for _, p := range f.proposals {
				if p.ProposalID == proposalID {
					return p, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		ListPendingByLoanRefFn: func(ctx context.Context, loanRef uint64) ([]propDomain.Proposal, error) {
			var out []propDomain.Proposal
			for _, p := range f.proposals {
				if p.LoanRef == loanRef && p.Status == propDomain.StatusPending {
					out = append(out, *p)
				}
			}
			return out, nil
		},
		SaveFn: func(ctx context.Context, p *propDomain.Proposal) error {
			for _, stored := range f.proposals {
				if stored.ProposalID == p.ProposalID {
					*stored = *p
					return nil
				}
			}
			return gorm.ErrRecordNotFound
		},
	}

	f.tx = &uowmock.UoW{
		WithinLoanRequestTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *lrDomain.LoanRequest) error) error {
			f.txCalled = true
			if loanID != f.loan.LoanID {
				return gorm.ErrRecordNotFound
			}
			return fn(uow.Repos{LoanRequests: &loanrequestmock.Repo{}, Proposals: f.props}, f.loan)
		},
	}
	return f
}

func (f *fixture) addProposal(proposalID, lenderID string, amount, rate float64, status propDomain.Status) *propDomain.Proposal {
	p := &propDomain.Proposal{
		ID:               uint64(len(f.proposals) + 1),
		ProposalID:       proposalID,
		LoanRef:          f.loan.ID,
		LoanID:           f.loan.LoanID,
		LenderID:         lenderID,
		LenderEmail:      lenderID + "@prestamista.example",
		Amount:           amount,
		AnnualRate:       rate,
		TermMonths:       12,
		PaymentFrequency: "monthly",
		Status:           status,
		CreatedAt:        time.Now().UTC(),
	}
	f.proposals = append(f.proposals, p)
	return p
}

func (f *fixture) usecase() *Usecase {
	return NewUsecase(f.tx, f.props, f.disp, quietLogger())
}

func TestAccept_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   AcceptInput
	}{
		{"no proposal id", AcceptInput{LoanID: "l1", Status: "accepted"}},
		{"no loan id", AcceptInput{ProposalID: "p1", Status: "accepted"}},
		{"no status", AcceptInput{ProposalID: "p1", LoanID: "l1"}},
		{"all empty", AcceptInput{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(lrDomain.StatusPending)
			_, err := f.usecase().Accept(context.Background(), tt.in)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("want ErrMissingField, got %v", err)
			}
			if f.txCalled {
				t.Fatal("store transaction must not start on validation failure")
			}
			if len(f.disp.Inputs) != 0 {
				t.Fatal("no notifications on validation failure")
			}
		})
	}
}

func TestAccept_UnsupportedStatus(t *testing.T) {
	f := newFixture(lrDomain.StatusPending)
	_, err := f.usecase().Accept(context.Background(), AcceptInput{
		ProposalID: "p1", LoanID: f.loan.LoanID, Status: "rejected",
	})
	if !errors.Is(err, ErrUnsupportedStatus) {
		t.Fatalf("want ErrUnsupportedStatus, got %v", err)
	}
	if f.txCalled {
		t.Fatal("store transaction must not start for unsupported status")
	}
}

// Three competing pending proposals, the middle one wins: exactly one ends up
// accepted, both siblings rejected, the loan mirrors the winner, and the
// fan-out is one "accepted" plus two "assigned to other" carrying the
// winner's terms.
func TestAccept_SingleWinner(t *testing.T) {
	f := newFixture(lrDomain.StatusPending)
	f.addProposal("p1", "lender-a", 50_000, 0.12, propDomain.StatusPending)
	win := f.addProposal("p2", "lender-b", 48_000, 0.10, propDomain.StatusPending)
	f.addProposal("p3", "lender-c", 52_000, 0.15, propDomain.StatusPending)

	res, err := f.usecase().Accept(context.Background(), AcceptInput{
		ProposalID: "p2", LoanID: f.loan.LoanID, Status: "accepted",
	})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if res.ProposalID != "p2" || res.LoanID != f.loan.LoanID {
		t.Fatalf("unexpected result: %+v", res)
	}

	accepted := 0
	for _, p := range f.proposals {
		switch p.ProposalID {
		case "p2":
			if p.Status != propDomain.StatusAccepted {
				t.Fatalf("winner status = %s", p.Status)
			}
			accepted++
		default:
			if p.Status != propDomain.StatusRejected {
				t.Fatalf("sibling %s status = %s, want rejected", p.ProposalID, p.Status)
			}
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted count = %d, want 1", accepted)
	}

	if f.loan.Status != lrDomain.StatusApproved {
		t.Fatalf("loan status = %s, want approved", f.loan.Status)
	}
	if f.loan.AcceptedProposalID == nil || *f.loan.AcceptedProposalID != "p2" {
		t.Fatalf("loan accepted pointer = %v, want p2", f.loan.AcceptedProposalID)
	}

	if len(f.disp.Inputs) != 3 {
		t.Fatalf("dispatched %d notifications, want 3", len(f.disp.Inputs))
	}
	byRecipient := map[string]notifDomain.DispatchInput{}
	for _, in := range f.disp.Inputs {
		byRecipient[in.RecipientID] = in
	}
	winIn, ok := byRecipient["lender-b"]
	if !ok {
		t.Fatal("winner was not notified")
	}
	wp, ok := winIn.Payload.(notifDomain.LoanAcceptedPayload)
	if !ok {
		t.Fatalf("winner payload type %T", winIn.Payload)
	}
	if wp.Offer.Amount != win.Amount || wp.Offer.AnnualRate != win.AnnualRate {
		t.Fatalf("winner payload terms = %+v", wp.Offer)
	}
	for _, loserID := range []string{"lender-a", "lender-c"} {
		in, ok := byRecipient[loserID]
		if !ok {
			t.Fatalf("loser %s was not notified", loserID)
		}
		lp, ok := in.Payload.(notifDomain.LoanAssignedOtherPayload)
		if !ok {
			t.Fatalf("loser payload type %T", in.Payload)
		}
		// losers see the winning terms, not their own
		if lp.WinningOffer.ProposalID != "p2" || lp.WinningOffer.Amount != 48_000 || lp.WinningOffer.AnnualRate != 0.10 {
			t.Fatalf("loser %s winning-offer snapshot = %+v", loserID, lp.WinningOffer)
		}
	}
}

func TestAccept_StateGuards(t *testing.T) {
	tests := []struct {
		name    string
		setup   func() *fixture
		in      AcceptInput
		wantErr error
	}{
		{
			name: "loan not found",
			setup: func() *fixture {
				return newFixture(lrDomain.StatusPending)
			},
			in:      AcceptInput{ProposalID: "p1", LoanID: "otherotherotherotherotherotherot", Status: "accepted"},
			wantErr: lrDomain.ErrNotFound,
		},
		{
			name: "loan already approved",
			setup: func() *fixture {
				f := newFixture(lrDomain.StatusApproved)
				f.addProposal("p1", "lender-a", 50_000, 0.12, propDomain.StatusAccepted)
				return f
			},
			in:      AcceptInput{ProposalID: "p1", LoanID: "l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1", Status: "accepted"},
			wantErr: lrDomain.ErrAlreadyResolved,
		},
		{
			name: "loan rejected",
			setup: func() *fixture {
				return newFixture(lrDomain.StatusRejected)
			},
			in:      AcceptInput{ProposalID: "p1", LoanID: "l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1", Status: "accepted"},
			wantErr: lrDomain.ErrInvalidTransition,
		},
		{
			name: "proposal not found",
			setup: func() *fixture {
				return newFixture(lrDomain.StatusPending)
			},
			in:      AcceptInput{ProposalID: "ghost", LoanID: "l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1", Status: "accepted"},
			wantErr: propDomain.ErrNotFound,
		},
		{
			name: "proposal belongs to another loan",
			setup: func() *fixture {
				f := newFixture(lrDomain.StatusPending)
				p := f.addProposal("p1", "lender-a", 50_000, 0.12, propDomain.StatusPending)
				p.LoanRef = 999
				return f
			},
			in:      AcceptInput{ProposalID: "p1", LoanID: "l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1", Status: "accepted"},
			wantErr: propDomain.ErrLoanMismatch,
		},
		{
			name: "proposal already decided",
			setup: func() *fixture {
				f := newFixture(lrDomain.StatusPending)
				f.addProposal("p1", "lender-a", 50_000, 0.12, propDomain.StatusRejected)
				return f
			},
			in:      AcceptInput{ProposalID: "p1", LoanID: "l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1l1", Status: "accepted"},
			wantErr: propDomain.ErrAlreadyDecided,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := tt.setup()
			_, err := f.usecase().Accept(context.Background(), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if len(f.disp.Inputs) != 0 {
				t.Fatalf("no notifications on refused transition, got %d", len(f.disp.Inputs))
			}
		})
	}
}

func TestAccept_CommitFailure_NoNotifications(t *testing.T) {
	f := newFixture(lrDomain.StatusPending)
	f.addProposal("p1", "lender-a", 50_000, 0.12, propDomain.StatusPending)
	f.addProposal("p2", "lender-b", 48_000, 0.10, propDomain.StatusPending)

	boom := errors.New("tx commit failed")
	inner := f.tx.WithinLoanRequestTxFn
	f.tx.WithinLoanRequestTxFn = func(ctx context.Context, loanID string, fn func(r uow.Repos, l *lrDomain.LoanRequest) error) error {
		// run the body, then fail the commit itself
		if err := inner(ctx, loanID, fn); err != nil {
			return err
		}
		return boom
	}

	_, err := f.usecase().Accept(context.Background(), AcceptInput{
		ProposalID: "p2", LoanID: f.loan.LoanID, Status: "accepted",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want commit error, got %v", err)
	}
	if len(f.disp.Inputs) != 0 {
		t.Fatalf("notifications fired on failed commit: %d", len(f.disp.Inputs))
	}
}

func TestAccept_NotificationFailuresAreIsolated(t *testing.T) {
	f := newFixture(lrDomain.StatusPending)
	f.addProposal("p1", "lender-a", 50_000, 0.12, propDomain.StatusPending)
	f.addProposal("p2", "lender-b", 48_000, 0.10, propDomain.StatusPending)
	f.addProposal("p3", "lender-c", 52_000, 0.15, propDomain.StatusPending)
	f.disp.FailFor = map[string]error{
		"lender-b": errors.New("smtp down"),
		"lender-a": errors.New("smtp down"),
	}

	res, err := f.usecase().Accept(context.Background(), AcceptInput{
		ProposalID: "p2", LoanID: f.loan.LoanID, Status: "accepted",
	})
	if err != nil {
		t.Fatalf("Accept must succeed despite notification failures: %v", err)
	}
	if res.ProposalID != "p2" {
		t.Fatalf("unexpected result: %+v", res)
	}
	// every recipient is still attempted
	if len(f.disp.Inputs) != 3 {
		t.Fatalf("attempted %d dispatches, want 3", len(f.disp.Inputs))
	}
}

func TestAccept_NilUnitOfWork(t *testing.T) {
	uc := NewUsecase(nil, &proposalmock.Repo{}, &notificationmock.Dispatcher{}, quietLogger())
	_, err := uc.Accept(context.Background(), AcceptInput{ProposalID: "p", LoanID: "l", Status: "accepted"})
	if !errors.Is(err, lrDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}
