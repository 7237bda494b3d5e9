package models

import "time"

// EquipmentLog is one entry of an item's lifecycle history. Entries are
// append-only and removed only together with their equipment.
type EquipmentLog struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	EquipmentID string  `gorm:"type:varchar(36);not null;index:idx_equipment_logs_equipment_ts,priority:1" json:"equipmentId"`
	Action      string  `gorm:"size:40;not null;index" json:"action"`
	User        *string `gorm:"column:actor;size:120" json:"user,omitempty"`
	Notes       *string `gorm:"type:text" json:"notes,omitempty"`

	Timestamp time.Time `gorm:"column:logged_at;not null;index:idx_equipment_logs_equipment_ts,priority:2" json:"timestamp"`
}
