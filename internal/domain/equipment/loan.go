package equipment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

type LoanType string

const (
	LoanStudio LoanType = "studio"
	LoanShort  LoanType = "short"
	LoanLong   LoanType = "long"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanStudio, LoanShort, LoanLong:
		return true
	}
	return false
}

const DefaultStudioPlace = "Studio"

// CheckoutRequest is the unvalidated borrower input for a checkout.
type CheckoutRequest struct {
	BorrowerName string
	Phone        string
	Place        string
	Purpose      string
	LoanType     LoanType
	From         *time.Time
	Until        *time.Time
}

// LoanPolicy turns a CheckoutRequest into a Loan.
type LoanPolicy struct {
	StudioPlace string
}

func (p LoanPolicy) studioPlace() string {
	if p.StudioPlace == "" {
		return DefaultStudioPlace
	}
	return p.StudioPlace
}

// Resolve validates req and computes the loan period relative to now.
// Validation failures are returned as FieldErrors.
func (p LoanPolicy) Resolve(req CheckoutRequest, now time.Time) (Loan, error) {
	fe := FieldErrors{}

	loan := Loan{
		BorrowerName: strings.TrimSpace(req.BorrowerName),
		Phone:        strings.TrimSpace(req.Phone),
		Place:        strings.TrimSpace(req.Place),
		Purpose:      strings.TrimSpace(req.Purpose),
		From:         now,
	}
	if req.From != nil {
		loan.From = *req.From
	}

	if loan.BorrowerName == "" {
		fe.Add("borrowerName", "Borrower name is required")
	}
	if loan.Purpose == "" {
		fe.Add("purpose", "Purpose is required")
	}

	today := timezone.StartOfDay(now)

	switch req.LoanType {
	case LoanStudio:
		loan.Place = p.studioPlace()
		loan.Until = timezone.EndOfDay(now)
	case LoanShort:
		loan.Until = timezone.AddDays(today, 1)
	case LoanLong:
		if req.Until == nil {
			fe.Add("borrowedUntil", "Return date is required for a long loan")
			break
		}
		loan.Until = *req.Until

		from := timezone.StartOfDay(loan.From.In(now.Location()))
		until := timezone.StartOfDay(loan.Until.In(now.Location()))
		if from.Before(today) {
			fe.Add("borrowedFrom", "Start date must not be in the past")
		}
		if until.Before(from) {
			fe.Add("borrowedUntil", "Return date must not be before the start date")
		}
		if until.Before(today) {
			fe.Add("borrowedUntil", "Return date must not be in the past")
		}
	default:
		fe.Add("loanType", "Loan type must be one of studio, short, long")
	}

	if req.LoanType != LoanStudio && loan.Place == "" {
		fe.Add("place", "Place is required")
	}

	if err := fe.Err(); err != nil {
		return Loan{}, err
	}
	return loan, nil
}
