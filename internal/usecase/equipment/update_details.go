package equipment

import (
	"context"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

const DetailsUpdatedNote = "Equipment details updated"

// UpdateDetails edits the descriptive fields; status and loan are kept.
type UpdateDetails struct {
	mutation
}

func NewUpdateDetails(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Logger,
) *UpdateDetails {
	return &UpdateDetails{
		mutation: mutation{repo: repo, locker: locker, audit: audit},
	}
}

func (uc *UpdateDetails) Execute(
	ctx context.Context,
	id string,
	in domain.DetailsInput,
	actor string,
) (*models.Equipment, error) {

	in, fe := domain.ValidateDetails(in)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	return uc.apply(ctx, "update details", id, func(eq *models.Equipment) (logSpec, error) {
		domain.ApplyDetails(eq, in)
		return logSpec{
			action: domain.LogUpdated,
			user:   actorOrDefault(actor),
			notes:  DetailsUpdatedNote,
		}, nil
	})
}
