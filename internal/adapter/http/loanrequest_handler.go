package http

import (
	"errors"
	"net/http"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	"buscocredito-backend/internal/usecase/loanrequest"

	"github.com/labstack/echo/v4"
)

type LoanRequestHandler struct{ uc *loanrequest.Usecase }

func NewLoanRequestHandler(uc *loanrequest.Usecase) *LoanRequestHandler {
	return &LoanRequestHandler{uc: uc}
}

type createLoanRequestReq struct {
	BorrowerID       string  `json:"borrower_id"       validate:"required,hex32"`
	Amount           float64 `json:"amount"            validate:"required,gt=0,dec2"`
	MonthlyIncome    float64 `json:"monthly_income"    validate:"gte=0,dec2"`
	TermMonths       int     `json:"term_months"       validate:"required,gt=0"`
	PaymentFrequency string  `json:"payment_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	Purpose          string  `json:"purpose"`
	LoanType         string  `json:"loan_type"`
}

func (h *LoanRequestHandler) CreateLoanRequest(c echo.Context) error {
	var req createLoanRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loanrequest.CreateInput(req))
	if err != nil {
		if errors.Is(err, lrDomain.ErrPendingExists) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanRequestHandler) GetLoanRequest(c echo.Context) error {
	loanID := c.Param("loan_id")
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		if errors.Is(err, lrDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanRequestHandler) ListBorrowerLoanRequests(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if !reHex32.MatchString(borrowerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
	}
	out, err := h.uc.ListByBorrower(c.Request().Context(), borrowerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
