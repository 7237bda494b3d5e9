package equipment

import (
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

// Loan is a resolved checkout request, ready to be applied to a record.
type Loan struct {
	BorrowerName string
	Phone        string
	Place        string
	Purpose      string
	From         time.Time
	Until        time.Time
}

// Notes is the log text recorded for the loan.
func (l Loan) Notes() string {
	return "Place: " + l.Place + ". Purpose: " + l.Purpose + "."
}

// ===============================
// Domain actions
// ===============================

func Checkout(eq *models.Equipment, loan Loan) error {
	if err := CanCheckout(Status(eq.Status)); err != nil {
		return err
	}

	from, until := loan.From, loan.Until
	sent := false

	eq.Status = string(StatusBorrowed)
	eq.BorrowedBy = &loan.BorrowerName
	eq.BorrowerPhone = nil
	if loan.Phone != "" {
		phone := loan.Phone
		eq.BorrowerPhone = &phone
	}
	eq.BorrowedFrom = &from
	eq.BorrowedUntil = &until
	eq.ReminderSent = &sent
	return nil
}

// Checkin returns the item to Available and reports who had it.
func Checkin(eq *models.Equipment) (string, error) {
	if err := CanCheckin(Status(eq.Status)); err != nil {
		return "", err
	}

	borrower := ""
	if eq.BorrowedBy != nil {
		borrower = *eq.BorrowedBy
	}

	eq.Status = string(StatusAvailable)
	ClearLoan(eq)
	return borrower, nil
}

// ReportRepair moves the item to Under Repair and ends any running loan.
// The returned name is the borrower whose loan was ended, if any.
func ReportRepair(eq *models.Equipment) (string, error) {
	if err := CanReportRepair(Status(eq.Status)); err != nil {
		return "", err
	}

	borrower := ""
	if eq.BorrowedBy != nil {
		borrower = *eq.BorrowedBy
	}

	eq.Status = string(StatusUnderRepair)
	ClearLoan(eq)
	return borrower, nil
}

func MarkRepaired(eq *models.Equipment) error {
	if err := CanMarkRepaired(Status(eq.Status)); err != nil {
		return err
	}
	eq.Status = string(StatusAvailable)
	return nil
}

// EscalateFollowUp flags a borrowed item whose due date is close.
// It reports false when the item is not a follow-up candidate.
func EscalateFollowUp(eq *models.Equipment) bool {
	if !IsFollowUpCandidate(eq) {
		return false
	}
	sent := true
	eq.Status = string(StatusFollowUp)
	eq.ReminderSent = &sent
	return true
}

func ApplyDetails(eq *models.Equipment, in DetailsInput) {
	eq.Name = in.Name
	eq.Brand = in.Brand
	eq.Model = in.Model
	eq.Category = in.Category
}

func ClearLoan(eq *models.Equipment) {
	eq.BorrowedBy = nil
	eq.BorrowerPhone = nil
	eq.BorrowedFrom = nil
	eq.BorrowedUntil = nil
	eq.ReminderSent = nil
}

// HasConsistentLoan checks that loan fields match the status family.
func HasConsistentLoan(eq *models.Equipment) bool {
	if Status(eq.Status).IsBorrowed() {
		return eq.BorrowedBy != nil && eq.BorrowedFrom != nil &&
			eq.BorrowedUntil != nil && eq.ReminderSent != nil
	}
	return eq.BorrowedBy == nil && eq.BorrowerPhone == nil &&
		eq.BorrowedFrom == nil && eq.BorrowedUntil == nil && eq.ReminderSent == nil
}
