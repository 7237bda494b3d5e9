package equipment

import (
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

const DefaultFollowUpDays = 2

// IsFollowUpCandidate selects borrowed items with a due date that have not
// been escalated yet.
func IsFollowUpCandidate(eq *models.Equipment) bool {
	if !Status(eq.Status).IsBorrowed() || eq.BorrowedUntil == nil {
		return false
	}
	return eq.ReminderSent == nil || !*eq.ReminderSent
}

// FollowUpHorizon is the last calendar day, relative to now, on which a due
// date triggers a follow-up.
func FollowUpHorizon(now time.Time, days int) time.Time {
	return timezone.AddDays(timezone.StartOfDay(now), days)
}

// DueForFollowUp compares whole days in now's location, so the hour the
// sweep runs at does not matter.
func DueForFollowUp(eq *models.Equipment, now time.Time, days int) bool {
	if !IsFollowUpCandidate(eq) {
		return false
	}
	due := timezone.StartOfDay(eq.BorrowedUntil.In(now.Location()))
	return !due.After(FollowUpHorizon(now, days))
}
