package http

import (
	"errors"
	"net/http"

	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	propDomain "buscocredito-backend/internal/domain/proposal"
	"buscocredito-backend/internal/usecase/acceptance"
	"buscocredito-backend/internal/usecase/offerstatus"

	"github.com/labstack/echo/v4"
)

// OfferHandler owns the offer lifecycle wire surface: accepting a proposal
// and checking whether a loan request is already resolved.
type OfferHandler struct {
	accept *acceptance.Usecase
	status *offerstatus.Usecase
}

func NewOfferHandler(accept *acceptance.Usecase, status *offerstatus.Usecase) *OfferHandler {
	return &OfferHandler{accept: accept, status: status}
}

type updateProposalStatusReq struct {
	ProposalID string `json:"proposal_id" validate:"required,hex32"`
	LoanID     string `json:"loan_id"     validate:"required,hex32"`
	Status     string `json:"status"      validate:"required"`
}

func (h *OfferHandler) UpdateProposalStatus(c echo.Context) error {
	var req updateProposalStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.accept.Accept(c.Request().Context(), acceptance.AcceptInput(req))
	if err != nil {
		switch {
		case errors.Is(err, acceptance.ErrMissingField),
			errors.Is(err, acceptance.ErrUnsupportedStatus):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, lrDomain.ErrNotFound),
			errors.Is(err, propDomain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, lrDomain.ErrAlreadyResolved),
			errors.Is(err, lrDomain.ErrInvalidTransition),
			errors.Is(err, propDomain.ErrAlreadyDecided),
			errors.Is(err, propDomain.ErrLoanMismatch):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
	}
	return c.JSON(http.StatusOK, res)
}

type checkOfferStatusReq struct {
	LoanID string `json:"loan_id" validate:"required,hex32"`
}

func (h *OfferHandler) CheckOfferStatus(c echo.Context) error {
	var req checkOfferStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.status.Resolve(c.Request().Context(), req.LoanID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
