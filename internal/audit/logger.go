// Package audit builds the lifecycle log entries written alongside every
// equipment transition.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/metrics"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

// Logger is synchronous: the repository persists each entry in the same
// transaction as the equipment change it describes.
type Logger struct {
	clock   timezone.Clock
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(clock timezone.Clock, m *metrics.Metrics, log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{clock: clock, metrics: m, log: log}
}

// Entry prepares a log row. Empty user or notes are stored as absent.
func (l *Logger) Entry(
	equipmentID string,
	action equipment.LogAction,
	user string,
	notes string,
) (*models.EquipmentLog, error) {

	id, err := NewID()
	if err != nil {
		return nil, err
	}

	return &models.EquipmentLog{
		ID:          id,
		EquipmentID: equipmentID,
		Action:      string(action),
		User:        optional(user),
		Notes:       optional(notes),
		Timestamp:   l.clock(),
	}, nil
}

// Committed is called once the entry is stored.
func (l *Logger) Committed(ctx context.Context, entry *models.EquipmentLog) {
	l.metrics.Transition(entry.Action)
	l.log.InfoContext(ctx, "equipment transition",
		"equipment_id", entry.EquipmentID,
		"action", entry.Action,
	)
}

// NewID returns a time ordered identifier for equipment and log rows.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
