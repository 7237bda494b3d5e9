package equipment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

// HistoryFilter narrows the global log listing. Zero values mean "any".
type HistoryFilter struct {
	EquipmentID string
	Action      LogAction
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}

// Repository is the storage port for equipment and its lifecycle log.
// Implementations return ErrNotFound for unknown ids and ErrStatusConflict
// when a compare-and-swap loses. Writes that carry a log entry persist the
// record change and the entry together or not at all.
type Repository interface {
	// -------- Equipment (read) --------
	Get(
		ctx context.Context,
		id string,
	) (*models.Equipment, error)

	List(
		ctx context.Context,
	) ([]models.Equipment, error)

	// -------- Equipment (create) --------
	Create(
		ctx context.Context,
		eq *models.Equipment,
		entry *models.EquipmentLog,
	) error

	CreateBatch(
		ctx context.Context,
		items []models.Equipment,
		entries []models.EquipmentLog,
	) error

	// -------- Equipment (state change) --------

	// UpdateIfStatus writes eq only while the stored status still equals
	// expected. entry may be nil.
	UpdateIfStatus(
		ctx context.Context,
		eq *models.Equipment,
		expected Status,
		entry *models.EquipmentLog,
	) error

	// Delete removes the record and every log entry that references it.
	Delete(
		ctx context.Context,
		id string,
	) error

	// -------- Log --------

	// ListLogs returns the entries of one item, most recent first.
	ListLogs(
		ctx context.Context,
		equipmentID string,
	) ([]models.EquipmentLog, error)

	ListHistory(
		ctx context.Context,
		filter HistoryFilter,
	) ([]models.EquipmentLog, int64, error)
}
