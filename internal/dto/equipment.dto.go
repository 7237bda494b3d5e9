package dto

import (
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

type EquipmentDTO struct {
	models.Equipment
	AllowedActions []domain.Action `json:"allowedActions"`
	ActionURL      string          `json:"actionUrl"`
}

func NewEquipmentDTO(eq models.Equipment, actionURL string) EquipmentDTO {
	return EquipmentDTO{
		Equipment:      eq,
		AllowedActions: domain.AllowedActions(domain.Status(eq.Status)),
		ActionURL:      actionURL,
	}
}

// PublicEquipmentDTO is what the QR action page may see: no borrower
// contact details, and only the self-service actions.
type PublicEquipmentDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Category       string          `json:"category"`
	Status         string          `json:"status"`
	AllowedActions []domain.Action `json:"allowedActions"`
}

func NewPublicEquipmentDTO(eq models.Equipment) PublicEquipmentDTO {
	var actions []domain.Action
	for _, a := range domain.AllowedActions(domain.Status(eq.Status)) {
		switch a {
		case domain.ActionCheckout, domain.ActionCheckin, domain.ActionReportRepair:
			actions = append(actions, a)
		}
	}
	if actions == nil {
		actions = []domain.Action{}
	}

	return PublicEquipmentDTO{
		ID:             eq.ID,
		Name:           eq.Name,
		Brand:          eq.Brand,
		Model:          eq.Model,
		Category:       eq.Category,
		Status:         eq.Status,
		AllowedActions: actions,
	}
}

type HistoryEntryDTO struct {
	models.EquipmentLog
	EquipmentName string `json:"equipmentName"`
}
