package notification

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeLoanAccepted      Type = "loan_accepted"
	TypeLoanAssignedOther Type = "loan_assigned_other"
)

type EmailStatus string

const (
	EmailSkipped EmailStatus = "skipped"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// OfferTerms is the snapshot of a winning proposal embedded in notification
// payloads. Losing lenders receive the winner's terms, not their own.
type OfferTerms struct {
	ProposalID       string   `json:"proposal_id"`
	LenderID         string   `json:"lender_id"`
	Amount           float64  `json:"amount"`
	AnnualRate       float64  `json:"annual_rate"`
	TermMonths       int      `json:"term_months"`
	PaymentFrequency string   `json:"payment_frequency"`
	Commission       float64  `json:"commission"`
	InsuranceBalance *float64 `json:"insurance_balance,omitempty"`
}

// Payload is the tagged union of per-type notification payloads.
type Payload interface {
	NotificationType() Type
}

type LoanAcceptedPayload struct {
	LoanID string     `json:"loan_id"`
	Offer  OfferTerms `json:"offer"`
}

func (LoanAcceptedPayload) NotificationType() Type { return TypeLoanAccepted }

type LoanAssignedOtherPayload struct {
	LoanID       string     `json:"loan_id"`
	OwnProposal  string     `json:"own_proposal_id"`
	WinningOffer OfferTerms `json:"winning_offer"`
}

func (LoanAssignedOtherPayload) NotificationType() Type { return TypeLoanAssignedOther }

type Notification struct {
	ID             uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	NotificationID string         `gorm:"column:notification_id;type:char(32);not null;uniqueIndex" json:"notification_id"`
	RecipientID    string         `gorm:"column:recipient_id;type:char(32);not null;index" json:"recipient_id"`
	Type           Type           `gorm:"size:32;not null" json:"type"`
	Title          string         `gorm:"size:255" json:"title"`
	Message        string         `gorm:"type:text" json:"message"`
	Payload        []byte         `gorm:"type:json" json:"payload,omitempty"`
	Read           bool           `gorm:"default:false" json:"read"`
	EmailStatus    EmailStatus    `gorm:"size:16;default:'skipped'" json:"email_status"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

// SetPayload serializes a typed payload into the JSON column and keeps the
// record's Type in sync with it.
func (n *Notification) SetPayload(p Payload) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	n.Type = p.NotificationType()
	n.Payload = b
	return nil
}
