package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/equipment-lending/internal/httperr"
	"github.com/BruksfildServices01/equipment-lending/internal/spreadsheet"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

type ExportHandler struct {
	uc *UseCases
}

func NewExportHandler(uc *UseCases) *ExportHandler {
	return &ExportHandler{uc: uc}
}

func (h *ExportHandler) History(c *gin.Context) {
	h.send(c, "history", h.uc.Export.History)
}

func (h *ExportHandler) QRCodes(c *gin.Context) {
	h.send(c, "qr-codes", h.uc.Export.QRCodes)
}

// send renders the table as a download, or stores it and returns its
// location when upload=true.
func (h *ExportHandler) send(
	c *gin.Context,
	name string,
	build func(ctx context.Context) (spreadsheet.Table, error),
) {
	format, err := spreadsheet.ParseFormat(c.Query("format"))
	if err != nil {
		httperr.BadRequest(c, "invalid_format", "Format must be csv or xlsx.")
		return
	}

	ctx := c.Request.Context()
	table, err := build(ctx)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}

	if c.Query("upload") == "true" {
		location, err := h.uc.Export.Upload(ctx, name, format, table)
		if errors.Is(err, ucEquipment.ErrUploadNotConfigured) {
			httperr.Unavailable(c, "upload_not_configured", "Export upload is not configured.")
			return
		}
		if err != nil {
			h.uc.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"location": location})
		return
	}

	body, err := spreadsheet.Bytes(format, table)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, name, format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), body)
}
