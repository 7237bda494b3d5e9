package equipment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

type Register struct {
	repo  domain.Repository
	audit *audit.Logger
	clock timezone.Clock
}

func NewRegister(
	repo domain.Repository,
	audit *audit.Logger,
	clock timezone.Clock,
) *Register {
	return &Register{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in domain.DetailsInput,
) (*models.Equipment, error) {

	in, fe := domain.ValidateDetails(in)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	eq, entry, err := newEquipment(uc.audit, uc.clock(), in, "")
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, eq, entry); err != nil {
		return nil, storageErr("register", err)
	}

	uc.audit.Committed(ctx, entry)
	return eq, nil
}

// newEquipment builds an Available record and its Registered entry.
func newEquipment(
	a *audit.Logger,
	now time.Time,
	in domain.DetailsInput,
	notes string,
) (*models.Equipment, *models.EquipmentLog, error) {

	id, err := audit.NewID()
	if err != nil {
		return nil, nil, &domain.StorageError{Op: "register", Err: err}
	}

	eq := &models.Equipment{
		ID:        id,
		Status:    string(domain.InitialStatus()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	domain.ApplyDetails(eq, in)

	entry, err := a.Entry(id, domain.LogRegistered, "", notes)
	if err != nil {
		return nil, nil, &domain.StorageError{Op: "register", Err: err}
	}
	return eq, entry, nil
}
