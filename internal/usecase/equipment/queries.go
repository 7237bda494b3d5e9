package equipment

import (
	"context"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

// Queries is the read-only surface over equipment and its log.
type Queries struct {
	repo domain.Repository
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{repo: repo}
}

func (q *Queries) List(ctx context.Context) ([]models.Equipment, error) {
	items, err := q.repo.List(ctx)
	if err != nil {
		return nil, storageErr("list", err)
	}
	return items, nil
}

func (q *Queries) Get(ctx context.Context, id string) (*models.Equipment, error) {
	eq, err := q.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get", err)
	}
	return eq, nil
}

// Logs returns the history of one item, most recent first.
func (q *Queries) Logs(ctx context.Context, id string) ([]models.EquipmentLog, error) {
	if _, err := q.Get(ctx, id); err != nil {
		return nil, err
	}
	logs, err := q.repo.ListLogs(ctx, id)
	if err != nil {
		return nil, storageErr("list logs", err)
	}
	return logs, nil
}

type HistoryPage struct {
	Logs  []models.EquipmentLog
	Total int64
}

func (q *Queries) History(ctx context.Context, filter domain.HistoryFilter) (HistoryPage, error) {
	logs, total, err := q.repo.ListHistory(ctx, filter)
	if err != nil {
		return HistoryPage{}, storageErr("history", err)
	}
	return HistoryPage{Logs: logs, Total: total}, nil
}
