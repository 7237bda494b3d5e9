package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/equipment-lending/internal/dto"
	"github.com/BruksfildServices01/equipment-lending/internal/httpresp"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

type DashboardHandler struct {
	uc *UseCases
}

func NewDashboardHandler(uc *UseCases) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

type DashboardResponse struct {
	httpresp.ListResponse[dto.EquipmentDTO]
	FollowUp ucEquipment.FollowUpReport `json:"followUp"`
}

// Get runs the follow-up check and then lists every item, so the table
// always reflects due dates as of this request.
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.uc.FollowUp.Execute(ctx)
	if err != nil {
		h.uc.log().WarnContext(ctx, "follow-up check failed", "error", err)
	}

	items, err := h.uc.Queries.List(ctx)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}

	out := make([]dto.EquipmentDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewEquipmentDTO(it, ucEquipment.ActionURL(h.uc.PublicBaseURL, it.ID)))
	}

	httpresp.OK(c, DashboardResponse{
		ListResponse: httpresp.ListResponse[dto.EquipmentDTO]{Data: out, Total: len(out)},
		FollowUp:     report,
	})
}
