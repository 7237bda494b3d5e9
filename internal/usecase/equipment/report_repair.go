package equipment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

type ReportRepairInput struct {
	EquipmentID  string
	ReporterName string
	Problem      string
}

type ReportRepair struct {
	mutation
}

func NewReportRepair(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Logger,
) *ReportRepair {
	return &ReportRepair{
		mutation: mutation{repo: repo, locker: locker, audit: audit},
	}
}

func (uc *ReportRepair) Execute(
	ctx context.Context,
	in ReportRepairInput,
) (*models.Equipment, error) {

	reporter := strings.TrimSpace(in.ReporterName)
	problem := strings.TrimSpace(in.Problem)

	fe := domain.FieldErrors{}
	if reporter == "" {
		fe.Add("reporterName", "Reporter name is required")
	}
	if problem == "" {
		fe.Add("problem", "Problem description is required")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	return uc.apply(ctx, "report repair", in.EquipmentID, func(eq *models.Equipment) (logSpec, error) {
		borrower, err := domain.ReportRepair(eq)
		if err != nil {
			return logSpec{}, err
		}

		notes := problem
		if borrower != "" {
			notes += " (was on loan to " + borrower + ")"
		}
		return logSpec{
			action: domain.LogReportedForRepair,
			user:   reporter,
			notes:  notes,
		}, nil
	})
}
