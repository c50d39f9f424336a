package loanrequest

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan request not found")
	ErrAlreadyResolved   = errors.New("loan request already has an accepted offer")
	ErrInvalidTransition = errors.New("invalid loan request state transition")
	ErrPendingExists     = errors.New("borrower already has a pending loan request")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type PaymentFrequency string

const (
	FrequencyWeekly   PaymentFrequency = "weekly"
	FrequencyBiweekly PaymentFrequency = "biweekly"
	FrequencyMonthly  PaymentFrequency = "monthly"
)

// LoanRequest is a borrower's solicitud. Status and AcceptedProposalID are a
// read-through cache over the proposals table: the accepted proposal query is
// authoritative, these fields exist for the fast path and get repaired on drift.
type LoanRequest struct {
	ID                 uint64           `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string           `gorm:"size:32;uniqueIndex:ux_loan_requests_loan_id_active" json:"loan_id"`
	BorrowerID         string           `gorm:"size:32;index:idx_loan_requests_borrower_active" json:"borrower_id"`
	Amount             float64          `gorm:"type:decimal(18,2)" json:"amount"`
	MonthlyIncome      float64          `gorm:"type:decimal(18,2)" json:"monthly_income"`
	TermMonths         int              `gorm:"column:term_months" json:"term_months"`
	PaymentFrequency   PaymentFrequency `gorm:"type:enum('weekly','biweekly','monthly');default:'monthly'" json:"payment_frequency"`
	Purpose            string           `gorm:"type:text" json:"purpose"`
	LoanType           string           `gorm:"size:64" json:"loan_type"`
	Status             Status           `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	AcceptedProposalID *string          `gorm:"size:32" json:"accepted_proposal_id,omitempty"`
	StatusUpdatedAt    time.Time        `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
	DeletedBy          string           `gorm:"size:32" json:"-"`
}

func (LoanRequest) TableName() string { return "loan_requests" }
