package equipment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
)

const historyPageSize = 200

// SuggestReplacement asks the suggestion backend for alternatives to a
// broken item, based on who borrowed what in the past.
type SuggestReplacement struct {
	repo      domain.Repository
	suggester suggest.Suggester
}

func NewSuggestReplacement(
	repo domain.Repository,
	suggester suggest.Suggester,
) *SuggestReplacement {
	return &SuggestReplacement{
		repo:      repo,
		suggester: suggester,
	}
}

func (uc *SuggestReplacement) Execute(
	ctx context.Context,
	id string,
	role string,
) (*suggest.Suggestion, error) {

	eq, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("suggest", err)
	}

	history, err := uc.borrowingHistory(ctx)
	if err != nil {
		return nil, err
	}

	return uc.suggester.Suggest(ctx, suggest.Request{
		BrokenEquipmentName: eq.Name,
		UserRole:            strings.TrimSpace(role),
		HistoricalBorrowing: history,
	})
}

// borrowingHistory renders one sentence per Borrowed entry. Entries whose
// item no longer exists are skipped.
func (uc *SuggestReplacement) borrowingHistory(ctx context.Context) (string, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return "", storageErr("suggest", err)
	}
	byID := make(map[string]models.Equipment, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var lines []string
	for page := 1; ; page++ {
		logs, total, err := uc.repo.ListHistory(ctx, domain.HistoryFilter{
			Action: domain.LogBorrowed,
			Page:   page,
			Limit:  historyPageSize,
		})
		if err != nil {
			return "", storageErr("suggest", err)
		}

		for _, l := range logs {
			eq, ok := byID[l.EquipmentID]
			if !ok {
				continue
			}
			lines = append(lines, BorrowingSentence(l, eq))
		}

		if len(logs) == 0 || int64(page*historyPageSize) >= total {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func BorrowingSentence(l models.EquipmentLog, eq models.Equipment) string {
	user := "Unknown"
	if l.User != nil {
		user = *l.User
	}
	return "User " + user + " borrowed a " + eq.Model + " (" + eq.Name + ") on " +
		l.Timestamp.Format("Mon Jan 2 2006") + "."
}
