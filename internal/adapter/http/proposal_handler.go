package http

import (
	"errors"
	"net/http"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	propDomain "buscocredito-backend/internal/domain/proposal"
	"buscocredito-backend/internal/usecase/proposal"

	"github.com/labstack/echo/v4"
)

type ProposalHandler struct{ uc *proposal.Usecase }

func NewProposalHandler(uc *proposal.Usecase) *ProposalHandler { return &ProposalHandler{uc: uc} }

type createProposalReq struct {
	LenderID         string   `json:"lender_id"         validate:"required,hex32"`
	LenderName       string   `json:"lender_name"`
	LenderEmail      string   `json:"lender_email"      validate:"omitempty,email"`
	Amount           float64  `json:"amount"            validate:"required,gt=0,dec2"`
	AnnualRate       float64  `json:"annual_rate"       validate:"required,gt=0,lte=1"`
	TermMonths       int      `json:"term_months"       validate:"required,gt=0"`
	PaymentFrequency string   `json:"payment_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	Commission       float64  `json:"commission"        validate:"gte=0,dec2"`
	InsuranceBalance *float64 `json:"insurance_balance" validate:"omitempty,gte=0"`
}

func (h *ProposalHandler) CreateProposal(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req createProposalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), proposal.CreateInput{
		LoanID:           loanID,
		LenderID:         req.LenderID,
		LenderName:       req.LenderName,
		LenderEmail:      req.LenderEmail,
		Amount:           req.Amount,
		AnnualRate:       req.AnnualRate,
		TermMonths:       req.TermMonths,
		PaymentFrequency: req.PaymentFrequency,
		Commission:       req.Commission,
		InsuranceBalance: req.InsuranceBalance,
	})
	if err != nil {
		switch {
		case errors.Is(err, lrDomain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, lrDomain.ErrAlreadyResolved),
			errors.Is(err, propDomain.ErrPendingExists):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, proposal.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProposalHandler) ListProposals(c echo.Context) error {
	loanID := c.Param("loan_id")
	out, err := h.uc.ListForLoan(c.Request().Context(), loanID)
	if err != nil {
		if errors.Is(err, lrDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
