package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/dto"
	"github.com/BruksfildServices01/equipment-lending/internal/httperr"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type HistoryHandler struct {
	uc *UseCases
}

func NewHistoryHandler(uc *UseCases) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

func (h *HistoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := pageParams(c)

	filter := domain.HistoryFilter{
		EquipmentID: c.Query("equipment_id"),
		Page:        page,
		Limit:       limit,
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		filter.Action = domain.LogAction(action)
		if !filter.Action.Valid() {
			httperr.BadRequest(c, "invalid_action", "Unknown log action.")
			return
		}
	}

	from, err := parseDate(c.Query("from"), h.uc.Location)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid from date.")
		return
	}
	filter.From = from

	to, err := parseDate(c.Query("to"), h.uc.Location)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid to date.")
		return
	}
	if to != nil {
		// the whole "to" day is included
		end := timezone.AddDays(timezone.StartOfDay(*to), 1)
		filter.To = &end
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	result, err := h.uc.Queries.History(ctx, filter)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}

	items, err := h.uc.Queries.List(ctx)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	logs := make([]dto.HistoryEntryDTO, 0, len(result.Logs))
	for _, l := range result.Logs {
		logs = append(logs, dto.HistoryEntryDTO{EquipmentLog: l, EquipmentName: names[l.EquipmentID]})
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": result.Total,
		"logs":  logs,
	})
}
