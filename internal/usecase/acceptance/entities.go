package acceptance

import "errors"

var (
	ErrMissingField      = errors.New("proposal_id, loan_id and status are required")
	ErrUnsupportedStatus = errors.New("status must be \"accepted\"")
)

type AcceptInput struct {
	ProposalID string `json:"proposal_id"`
	LoanID     string `json:"loan_id"`
	Status     string `json:"status"`
}

type AcceptResult struct {
	ProposalID string `json:"proposal_id"`
	LoanID     string `json:"loan_id"`
}
