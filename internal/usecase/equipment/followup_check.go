package equipment

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/metrics"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

type FollowUpReport struct {
	Checked   int `json:"checked"`
	Escalated int `json:"escalated"`
	Failed    int `json:"failed"`
}

// FollowUpCheck flips borrowed items due within the horizon to Follow Up.
// It runs on demand before the dashboard is read; there is no scheduler.
type FollowUpCheck struct {
	repo    domain.Repository
	locker  lock.Locker
	clock   timezone.Clock
	days    int
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewFollowUpCheck(
	repo domain.Repository,
	locker lock.Locker,
	clock timezone.Clock,
	days int,
	m *metrics.Metrics,
	log *slog.Logger,
) *FollowUpCheck {
	if days <= 0 {
		days = domain.DefaultFollowUpDays
	}
	return &FollowUpCheck{
		repo:    repo,
		locker:  locker,
		clock:   clock,
		days:    days,
		metrics: m,
		log:     log,
	}
}

func (uc *FollowUpCheck) Execute(ctx context.Context) (FollowUpReport, error) {
	return uc.ExecuteAt(ctx, uc.clock())
}

// ExecuteAt sweeps relative to now. A failing item is logged and counted
// and does not stop the sweep; only a failed listing is returned.
func (uc *FollowUpCheck) ExecuteAt(ctx context.Context, now time.Time) (FollowUpReport, error) {
	var report FollowUpReport

	items, err := uc.repo.List(ctx)
	if err != nil {
		return report, &domain.StorageError{Op: "follow-up list", Err: err}
	}

	for i := range items {
		if !domain.IsFollowUpCandidate(&items[i]) {
			continue
		}
		report.Checked++

		if !domain.DueForFollowUp(&items[i], now, uc.days) {
			continue
		}

		escalated, err := uc.escalate(ctx, items[i].ID, now)
		if err != nil {
			report.Failed++
			uc.metrics.SweepFailed()
			uc.log.ErrorContext(ctx, "follow-up escalation failed",
				"equipment_id", items[i].ID,
				"error", err,
			)
			continue
		}
		if escalated {
			report.Escalated++
			uc.metrics.Escalated()
			uc.log.InfoContext(ctx, "follow-up triggered",
				"equipment_id", items[i].ID,
				"name", items[i].Name,
				"due", items[i].BorrowedUntil.Format(time.DateOnly),
			)
		}
	}

	return report, nil
}

// escalate re-reads the item under its lock; a concurrent check-in since the
// listing leaves nothing to do.
func (uc *FollowUpCheck) escalate(ctx context.Context, id string, now time.Time) (bool, error) {
	unlock, err := uc.locker.Lock(ctx, id)
	if err != nil {
		return false, err
	}
	defer unlock()

	eq, err := uc.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !domain.DueForFollowUp(eq, now, uc.days) {
		return false, nil
	}

	expected := domain.Status(eq.Status)
	if !domain.EscalateFollowUp(eq) {
		return false, nil
	}
	eq.UpdatedAt = now

	if err := uc.repo.UpdateIfStatus(ctx, eq, expected, nil); err != nil {
		return false, err
	}
	return true, nil
}
