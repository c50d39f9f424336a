package proposal

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("proposal not found")
	ErrLoanMismatch   = errors.New("proposal does not belong to the given loan request")
	ErrAlreadyDecided = errors.New("proposal is no longer pending")
	ErrPendingExists  = errors.New("lender already has a pending proposal on this loan request")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Proposal is a lender's propuesta against one loan request. LoanRef is the
// numeric FK to loan_requests.id; LoanID mirrors the public loan id so lender
// listings avoid a join.
type Proposal struct {
	ID               uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProposalID       string         `gorm:"column:proposal_id;type:char(32);not null;uniqueIndex:ux_proposals_proposal_id_active" json:"proposal_id"`
	LoanRef          uint64         `gorm:"column:loan_ref;not null;index" json:"-"`
	LoanID           string         `gorm:"column:loan_id;type:char(32);not null;index" json:"loan_id"`
	LenderID         string         `gorm:"column:lender_id;type:char(32);not null;index" json:"lender_id"`
	LenderName       string         `gorm:"column:lender_name;size:128" json:"lender_name"`
	LenderEmail      string         `gorm:"column:lender_email;size:255" json:"-"`
	Amount           float64        `gorm:"type:decimal(18,2)" json:"amount"`
	AnnualRate       float64        `gorm:"type:decimal(6,4)" json:"annual_rate"`
	TermMonths       int            `gorm:"column:term_months" json:"term_months"`
	PaymentFrequency string         `gorm:"size:16" json:"payment_frequency"`
	Commission       float64        `gorm:"type:decimal(18,2)" json:"commission"`
	InsuranceBalance *float64       `gorm:"type:decimal(18,2)" json:"insurance_balance,omitempty"`
	Status           Status         `gorm:"type:enum('pending','accepted','rejected');default:'pending'" json:"status"`
	StatusUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Proposal) TableName() string { return "proposals" }
