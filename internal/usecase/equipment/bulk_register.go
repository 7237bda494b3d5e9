package equipment

import (
	"context"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

const BulkUploadNote = "Bulk upload"

// BulkRegister creates a batch of items as a unit: one invalid item rejects
// the whole batch and nothing is stored.
type BulkRegister struct {
	repo  domain.Repository
	audit *audit.Logger
	clock timezone.Clock
}

func NewBulkRegister(
	repo domain.Repository,
	audit *audit.Logger,
	clock timezone.Clock,
) *BulkRegister {
	return &BulkRegister{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *BulkRegister) Execute(
	ctx context.Context,
	items []domain.DetailsInput,
) (int, error) {

	items, fe := domain.ValidateBatch(items)
	if err := fe.Err(); err != nil {
		return 0, err
	}

	now := uc.clock()
	records := make([]models.Equipment, 0, len(items))
	entries := make([]models.EquipmentLog, 0, len(items))

	for _, in := range items {
		eq, entry, err := newEquipment(uc.audit, now, in, BulkUploadNote)
		if err != nil {
			return 0, err
		}
		records = append(records, *eq)
		entries = append(entries, *entry)
	}

	if err := uc.repo.CreateBatch(ctx, records, entries); err != nil {
		return 0, storageErr("bulk register", err)
	}

	for i := range entries {
		uc.audit.Committed(ctx, &entries[i])
	}
	return len(records), nil
}
