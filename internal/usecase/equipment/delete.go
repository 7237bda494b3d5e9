package equipment

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
)

// Delete removes an item and its whole history. No log entry is written
// since the log goes with the item.
type Delete struct {
	repo   domain.Repository
	locker lock.Locker
	log    *slog.Logger
}

func NewDelete(
	repo domain.Repository,
	locker lock.Locker,
	log *slog.Logger,
) *Delete {
	return &Delete{
		repo:   repo,
		locker: locker,
		log:    log,
	}
}

func (uc *Delete) Execute(
	ctx context.Context,
	id string,
) error {

	unlock, err := uc.locker.Lock(ctx, id)
	if err != nil {
		return &domain.StorageError{Op: "delete: lock", Err: err}
	}
	defer unlock()

	if err := uc.repo.Delete(ctx, id); err != nil {
		return storageErr("delete", err)
	}

	uc.log.InfoContext(ctx, "equipment deleted", "equipment_id", id)
	return nil
}
