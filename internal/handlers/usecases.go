package handlers

import (
	"log/slog"
	"time"

	"github.com/BruksfildServices01/equipment-lending/internal/logger"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

// UseCases bundles the equipment use cases shared by the admin, public and
// reporting handlers.
type UseCases struct {
	Register     *ucEquipment.Register
	BulkRegister *ucEquipment.BulkRegister
	Checkout     *ucEquipment.Checkout
	Checkin      *ucEquipment.Checkin
	ReportRepair *ucEquipment.ReportRepair
	MarkRepaired *ucEquipment.MarkRepaired
	Update       *ucEquipment.UpdateDetails
	Delete       *ucEquipment.Delete
	FollowUp     *ucEquipment.FollowUpCheck
	Queries      *ucEquipment.Queries
	Suggest      *ucEquipment.SuggestReplacement
	Export       *ucEquipment.Export

	// Location is the business timezone used to read request dates.
	Location *time.Location
	// PublicBaseURL prefixes the QR action links.
	PublicBaseURL string

	Log *slog.Logger
}

func (uc *UseCases) log() *slog.Logger {
	if uc.Log == nil {
		return logger.New("handlers")
	}
	return uc.Log
}
