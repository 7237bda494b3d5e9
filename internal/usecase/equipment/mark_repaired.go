package equipment

import (
	"context"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

type MarkRepaired struct {
	mutation
}

func NewMarkRepaired(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Logger,
) *MarkRepaired {
	return &MarkRepaired{
		mutation: mutation{repo: repo, locker: locker, audit: audit},
	}
}

func (uc *MarkRepaired) Execute(
	ctx context.Context,
	id string,
	actor string,
) (*models.Equipment, error) {

	return uc.apply(ctx, "mark repaired", id, func(eq *models.Equipment) (logSpec, error) {
		if err := domain.MarkRepaired(eq); err != nil {
			return logSpec{}, err
		}
		return logSpec{action: domain.LogRepaired, user: actorOrDefault(actor)}, nil
	})
}
