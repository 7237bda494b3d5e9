package repository

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

// EquipmentMemoryRepository keeps everything in process memory. It backs
// tests and the demo mode without a database.
type EquipmentMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Equipment
	order []string
	logs  []models.EquipmentLog
}

func NewEquipmentMemoryRepository() *EquipmentMemoryRepository {
	return &EquipmentMemoryRepository{
		items: make(map[string]models.Equipment),
	}
}

// --------------------------------------------------
// Equipment (read)
// --------------------------------------------------

func (r *EquipmentMemoryRepository) Get(
	_ context.Context,
	id string,
) (*models.Equipment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	eq, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneEquipment(eq)
	return &out, nil
}

// List returns the most recently registered items first.
func (r *EquipmentMemoryRepository) List(
	_ context.Context,
) ([]models.Equipment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Equipment, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, cloneEquipment(r.items[r.order[i]]))
	}
	return out, nil
}

// --------------------------------------------------
// Equipment (create)
// --------------------------------------------------

func (r *EquipmentMemoryRepository) Create(
	_ context.Context,
	eq *models.Equipment,
	entry *models.EquipmentLog,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[eq.ID]; exists {
		return domain.ErrDuplicate
	}

	r.insert(*eq)
	if entry != nil {
		r.logs = append(r.logs, cloneLog(*entry))
	}
	return nil
}

func (r *EquipmentMemoryRepository) CreateBatch(
	_ context.Context,
	items []models.Equipment,
	entries []models.EquipmentLog,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(items))
	for _, eq := range items {
		if _, exists := r.items[eq.ID]; exists || seen[eq.ID] {
			return domain.ErrDuplicate
		}
		seen[eq.ID] = true
	}

	for _, eq := range items {
		r.insert(eq)
	}
	for _, entry := range entries {
		r.logs = append(r.logs, cloneLog(entry))
	}
	return nil
}

// --------------------------------------------------
// Equipment (state change)
// --------------------------------------------------

func (r *EquipmentMemoryRepository) UpdateIfStatus(
	_ context.Context,
	eq *models.Equipment,
	expected domain.Status,
	entry *models.EquipmentLog,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[eq.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status != string(expected) {
		return domain.ErrStatusConflict
	}

	updated := cloneEquipment(*eq)
	updated.CreatedAt = current.CreatedAt
	r.items[eq.ID] = updated

	if entry != nil {
		r.logs = append(r.logs, cloneLog(*entry))
	}
	return nil
}

func (r *EquipmentMemoryRepository) Delete(
	_ context.Context,
	id string,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)

	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.EquipmentID != id {
			kept = append(kept, l)
		}
	}
	r.logs = kept
	return nil
}

// --------------------------------------------------
// Log
// --------------------------------------------------

func (r *EquipmentMemoryRepository) ListLogs(
	_ context.Context,
	equipmentID string,
) ([]models.EquipmentLog, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.EquipmentLog
	for _, l := range r.logs {
		if l.EquipmentID == equipmentID {
			out = append(out, cloneLog(l))
		}
	}
	sortLogs(out)
	return out, nil
}

func (r *EquipmentMemoryRepository) ListHistory(
	_ context.Context,
	filter domain.HistoryFilter,
) ([]models.EquipmentLog, int64, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.EquipmentLog
	for _, l := range r.logs {
		if filter.EquipmentID != "" && l.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.Action != "" && l.Action != string(filter.Action) {
			continue
		}
		if filter.From != nil && l.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !l.Timestamp.Before(*filter.To) {
			continue
		}
		matched = append(matched, cloneLog(l))
	}
	sortLogs(matched)

	total := int64(len(matched))
	page, limit := pageBounds(filter.Page, filter.Limit)

	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.EquipmentLog{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *EquipmentMemoryRepository) insert(eq models.Equipment) {
	r.items[eq.ID] = cloneEquipment(eq)
	r.order = append(r.order, eq.ID)
}

// sortLogs orders most recent first; ids are time ordered and break ties.
func sortLogs(logs []models.EquipmentLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].Timestamp.After(logs[j].Timestamp)
		}
		return logs[i].ID > logs[j].ID
	})
}

func cloneEquipment(eq models.Equipment) models.Equipment {
	eq.BorrowedBy = clonePtr(eq.BorrowedBy)
	eq.BorrowerPhone = clonePtr(eq.BorrowerPhone)
	eq.BorrowedFrom = clonePtr(eq.BorrowedFrom)
	eq.BorrowedUntil = clonePtr(eq.BorrowedUntil)
	eq.ReminderSent = clonePtr(eq.ReminderSent)
	eq.Logs = nil
	return eq
}

func cloneLog(l models.EquipmentLog) models.EquipmentLog {
	l.User = clonePtr(l.User)
	l.Notes = clonePtr(l.Notes)
	return l
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

var _ domain.Repository = (*EquipmentMemoryRepository)(nil)
