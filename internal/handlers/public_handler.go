package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/equipment-lending/internal/dto"
	"github.com/BruksfildServices01/equipment-lending/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the QR action page. It needs no login: whoever
// holds the item scans its code and acts on it.
type PublicHandler struct {
	uc *UseCases
}

func NewPublicHandler(uc *UseCases) *PublicHandler {
	return &PublicHandler{uc: uc}
}

func (h *PublicHandler) Get(c *gin.Context) {
	eq, err := h.uc.Queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.OK(c, dto.NewPublicEquipmentDTO(*eq))
}

func (h *PublicHandler) Checkout(c *gin.Context) {
	if eq := checkout(c, h.uc); eq != nil {
		httpresp.OK(c, dto.NewPublicEquipmentDTO(*eq))
	}
}

func (h *PublicHandler) Checkin(c *gin.Context) {
	eq, err := h.uc.Checkin.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.OK(c, dto.NewPublicEquipmentDTO(*eq))
}

func (h *PublicHandler) ReportRepair(c *gin.Context) {
	eq, resp, ok := reportRepair(c, h.uc)
	if !ok {
		return
	}
	resp.Equipment = dto.NewPublicEquipmentDTO(*eq)
	httpresp.OK(c, resp)
}
