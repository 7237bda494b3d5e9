package equipment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CheckoutInput struct {
	EquipmentID string

	BorrowerName string
	Phone        string
	Place        string
	Purpose      string

	LoanType domain.LoanType
	From     *time.Time
	Until    *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type Checkout struct {
	mutation
	clock  timezone.Clock
	policy domain.LoanPolicy
}

func NewCheckout(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Logger,
	clock timezone.Clock,
	policy domain.LoanPolicy,
) *Checkout {
	return &Checkout{
		mutation: mutation{repo: repo, locker: locker, audit: audit},
		clock:    clock,
		policy:   policy,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*models.Equipment, error) {

	loan, err := uc.policy.Resolve(domain.CheckoutRequest{
		BorrowerName: in.BorrowerName,
		Phone:        in.Phone,
		Place:        in.Place,
		Purpose:      in.Purpose,
		LoanType:     in.LoanType,
		From:         in.From,
		Until:        in.Until,
	}, uc.clock())
	if err != nil {
		return nil, err
	}

	return uc.apply(ctx, "checkout", in.EquipmentID, func(eq *models.Equipment) (logSpec, error) {
		if err := domain.Checkout(eq, loan); err != nil {
			return logSpec{}, err
		}
		return logSpec{
			action: domain.LogBorrowed,
			user:   loan.BorrowerName,
			notes:  loan.Notes(),
		}, nil
	})
}
