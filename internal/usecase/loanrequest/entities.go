package loanrequest

import "time"

type CreateInput struct {
	BorrowerID       string  `json:"borrower_id"`
	Amount           float64 `json:"amount"`
	MonthlyIncome    float64 `json:"monthly_income"`
	TermMonths       int     `json:"term_months"`
	PaymentFrequency string  `json:"payment_frequency"`
	Purpose          string  `json:"purpose"`
	LoanType         string  `json:"loan_type"`
}

type LoanRequestDTO struct {
	LoanID             string    `json:"loan_id"`
	BorrowerID         string    `json:"borrower_id"`
	Amount             float64   `json:"amount"`
	MonthlyIncome      float64   `json:"monthly_income"`
	TermMonths         int       `json:"term_months"`
	PaymentFrequency   string    `json:"payment_frequency"`
	Purpose            string    `json:"purpose"`
	LoanType           string    `json:"loan_type"`
	Status             string    `json:"status"`
	AcceptedProposalID *string   `json:"accepted_proposal_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
