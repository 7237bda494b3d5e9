package equipment

import (
	"context"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

type Checkin struct {
	mutation
}

func NewCheckin(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Logger,
) *Checkin {
	return &Checkin{
		mutation: mutation{repo: repo, locker: locker, audit: audit},
	}
}

// Execute returns the item and logs who brought it back.
func (uc *Checkin) Execute(
	ctx context.Context,
	id string,
) (*models.Equipment, error) {

	return uc.apply(ctx, "checkin", id, func(eq *models.Equipment) (logSpec, error) {
		borrower, err := domain.Checkin(eq)
		if err != nil {
			return logSpec{}, err
		}
		return logSpec{action: domain.LogReturned, user: borrower}, nil
	})
}
