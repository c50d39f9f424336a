package proposal

import "time"

type CreateInput struct {
	LoanID           string   `json:"loan_id"`
	LenderID         string   `json:"lender_id"`
	LenderName       string   `json:"lender_name"`
	LenderEmail      string   `json:"lender_email"`
	Amount           float64  `json:"amount"`
	AnnualRate       float64  `json:"annual_rate"`
	TermMonths       int      `json:"term_months"`
	PaymentFrequency string   `json:"payment_frequency"`
	Commission       float64  `json:"commission"`
	InsuranceBalance *float64 `json:"insurance_balance,omitempty"`
}

type ProposalDTO struct {
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
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
