package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/httperr"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

// ======================================================
// DTOs
// ======================================================

type CheckoutRequest struct {
	BorrowerName  string `json:"borrowerName"`
	BorrowerPhone string `json:"borrowerPhone"`
	Place         string `json:"place"`
	Purpose       string `json:"purpose"`
	LoanType      string `json:"loanType"`
	BorrowedFrom  string `json:"borrowedFrom"`  // YYYY-MM-DD or RFC 3339
	BorrowedUntil string `json:"borrowedUntil"` // YYYY-MM-DD or RFC 3339
}

type ReportRepairRequest struct {
	ReporterName string `json:"reporterName"`
	Problem      string `json:"problem"`
	UserRole     string `json:"userRole"`
}

type ReportRepairResponse struct {
	Equipment       any                 `json:"equipment"`
	Suggestions     *suggest.Suggestion `json:"suggestions,omitempty"`
	SuggestionError *httperr.HTTPError  `json:"suggestionError,omitempty"`
}

// ======================================================
// SHARED FLOWS
// ======================================================

// checkout binds the request and runs the checkout. It writes the error
// response itself and returns nil in that case.
func checkout(c *gin.Context, uc *UseCases) *models.Equipment {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return nil
	}

	fe := domain.FieldErrors{}
	from, err := parseDate(req.BorrowedFrom, uc.Location)
	if err != nil {
		fe.Add("borrowedFrom", "Start date is not a valid date")
	}
	until, err := parseDate(req.BorrowedUntil, uc.Location)
	if err != nil {
		fe.Add("borrowedUntil", "Return date is not a valid date")
	}
	if err := fe.Err(); err != nil {
		uc.writeError(c, err)
		return nil
	}

	eq, err := uc.Checkout.Execute(c.Request.Context(), ucEquipment.CheckoutInput{
		EquipmentID:  c.Param("id"),
		BorrowerName: req.BorrowerName,
		Phone:        req.BorrowerPhone,
		Place:        req.Place,
		Purpose:      req.Purpose,
		LoanType:     domain.LoanType(req.LoanType),
		From:         from,
		Until:        until,
	})
	if err != nil {
		uc.writeError(c, err)
		return nil
	}
	return eq
}

// reportRepair stores the repair report and, when a role is given, asks for
// replacements. A failed suggestion does not fail the report.
func reportRepair(c *gin.Context, uc *UseCases) (*models.Equipment, ReportRepairResponse, bool) {
	var req ReportRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return nil, ReportRepairResponse{}, false
	}

	ctx := c.Request.Context()
	eq, err := uc.ReportRepair.Execute(ctx, ucEquipment.ReportRepairInput{
		EquipmentID:  c.Param("id"),
		ReporterName: req.ReporterName,
		Problem:      req.Problem,
	})
	if err != nil {
		uc.writeError(c, err)
		return nil, ReportRepairResponse{}, false
	}

	var resp ReportRepairResponse
	if req.UserRole != "" {
		s, err := uc.Suggest.Execute(ctx, eq.ID, req.UserRole)
		if err != nil {
			uc.log().WarnContext(ctx, "replacement suggestion failed",
				"equipment_id", eq.ID,
				"error", err,
			)
			resp.SuggestionError = &httperr.HTTPError{
				Code:    "suggestion_unavailable",
				Message: "Replacement suggestions are unavailable right now.",
			}
		} else {
			resp.Suggestions = s
		}
	}
	return eq, resp, true
}
