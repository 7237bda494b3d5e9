package equipment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

// DefaultActor is recorded for admin actions without a named user.
const DefaultActor = "Admin"

// logSpec describes the log entry a state change produces.
type logSpec struct {
	action domain.LogAction
	user   string
	notes  string
}

// mutation runs a read-modify-write on one item under its lock and stores
// the change together with its log entry.
type mutation struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Logger
}

func (m mutation) apply(
	ctx context.Context,
	op string,
	id string,
	change func(eq *models.Equipment) (logSpec, error),
) (*models.Equipment, error) {

	unlock, err := m.locker.Lock(ctx, id)
	if err != nil {
		return nil, &domain.StorageError{Op: op + ": lock", Err: err}
	}
	defer unlock()

	eq, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr(op, err)
	}
	expected := domain.Status(eq.Status)

	ls, err := change(eq)
	if err != nil {
		return nil, err
	}

	entry, err := m.audit.Entry(eq.ID, ls.action, ls.user, ls.notes)
	if err != nil {
		return nil, &domain.StorageError{Op: op, Err: err}
	}
	eq.UpdatedAt = entry.Timestamp

	if err := m.repo.UpdateIfStatus(ctx, eq, expected, entry); err != nil {
		return nil, storageErr(op, err)
	}

	m.audit.Committed(ctx, entry)
	return eq, nil
}

// storageErr passes domain conditions through and wraps everything else.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrStatusConflict) ||
		errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}

func actorOrDefault(actor string) string {
	if actor == "" {
		return DefaultActor
	}
	return actor
}
