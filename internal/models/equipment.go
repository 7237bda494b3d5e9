package models

import "time"

type Equipment struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name     string `gorm:"size:120;not null" json:"name"`
	Brand    string `gorm:"size:120;not null" json:"brand"`
	Model    string `gorm:"size:120;not null" json:"model"`
	Category string `gorm:"size:120;not null;index" json:"category"`
	Status   string `gorm:"size:20;not null;default:'Available';index" json:"status"`

	// Loan fields are set together on checkout and cleared together on
	// check-in or repair report.
	BorrowedBy    *string    `gorm:"size:120" json:"borrowedBy,omitempty"`
	BorrowerPhone *string    `gorm:"size:40" json:"borrowerPhone,omitempty"`
	BorrowedFrom  *time.Time `json:"borrowedFrom,omitempty"`
	BorrowedUntil *time.Time `gorm:"index" json:"borrowedUntil,omitempty"`
	ReminderSent  *bool      `json:"reminderSent,omitempty"`

	Logs []EquipmentLog `gorm:"foreignKey:EquipmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string {
	return "equipment"
}
