package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/dto"
	"github.com/BruksfildServices01/equipment-lending/internal/httperr"
	"github.com/BruksfildServices01/equipment-lending/internal/httpresp"
	"github.com/BruksfildServices01/equipment-lending/internal/middleware"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
	"github.com/BruksfildServices01/equipment-lending/internal/spreadsheet"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

const maxUploadSize = 5 << 20

// ======================================================
// HANDLER
// ======================================================

type EquipmentHandler struct {
	uc *UseCases
}

func NewEquipmentHandler(uc *UseCases) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

func (h *EquipmentHandler) toDTO(eq models.Equipment) dto.EquipmentDTO {
	return dto.NewEquipmentDTO(eq, ucEquipment.ActionURL(h.uc.PublicBaseURL, eq.ID))
}

// ======================================================
// READ
// ======================================================

func (h *EquipmentHandler) List(c *gin.Context) {
	items, err := h.uc.Queries.List(c.Request.Context())
	if err != nil {
		h.uc.writeError(c, err)
		return
	}

	out := make([]dto.EquipmentDTO, 0, len(items))
	for _, it := range items {
		out = append(out, h.toDTO(it))
	}
	httpresp.List(c, out)
}

func (h *EquipmentHandler) Get(c *gin.Context) {
	eq, err := h.uc.Queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.OK(c, h.toDTO(*eq))
}

func (h *EquipmentHandler) Logs(c *gin.Context) {
	logs, err := h.uc.Queries.Logs(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.List(c, logs)
}

// ======================================================
// CREATE
// ======================================================

func (h *EquipmentHandler) Create(c *gin.Context) {
	var req domain.DetailsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	eq, err := h.uc.Register.Execute(c.Request.Context(), req)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.Created(c, h.toDTO(*eq))
}

func (h *EquipmentHandler) BulkCreate(c *gin.Context) {
	var req []domain.DetailsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Expected a JSON array of equipment.")
		return
	}
	h.bulk(c, req)
}

// BulkUpload accepts an XLSX or CSV file in the "file" form field.
func (h *EquipmentHandler) BulkUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Upload a spreadsheet in the \"file\" field.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "unreadable_file", "Could not read the uploaded file.")
		return
	}
	defer f.Close()

	rows, err := spreadsheet.ParseEquipment(fh.Filename, f)
	if err != nil {
		var missing *spreadsheet.MissingColumnsError
		switch {
		case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
			httperr.BadRequest(c, "unsupported_format", "Only .xlsx and .csv files are supported.")
		case errors.Is(err, spreadsheet.ErrEmptyFile):
			httperr.BadRequest(c, "empty_file", "The file has no equipment rows.")
		case errors.As(err, &missing):
			httperr.BadRequest(c, "missing_columns", missing.Error())
		default:
			httperr.BadRequest(c, "unreadable_file", "Could not read the uploaded file.")
		}
		return
	}

	items := make([]domain.DetailsInput, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.DetailsInput{
			Name:     r.Name,
			Brand:    r.Brand,
			Model:    r.Model,
			Category: r.Category,
		})
	}
	h.bulk(c, items)
}

func (h *EquipmentHandler) bulk(c *gin.Context, items []domain.DetailsInput) {
	n, err := h.uc.BulkRegister.Execute(c.Request.Context(), items)
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.Created(c, gin.H{"created": n})
}

func (h *EquipmentHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="equipment-template.csv"`)
	c.Data(http.StatusOK, spreadsheet.FormatCSV.ContentType(), spreadsheet.Template())
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *EquipmentHandler) Update(c *gin.Context) {
	var req domain.DetailsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	eq, err := h.uc.Update.Execute(c.Request.Context(), c.Param("id"), req, middleware.UserName(c))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.OK(c, h.toDTO(*eq))
}

func (h *EquipmentHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		h.uc.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *EquipmentHandler) Checkout(c *gin.Context) {
	if eq := checkout(c, h.uc); eq != nil {
		httpresp.OK(c, h.toDTO(*eq))
	}
}

func (h *EquipmentHandler) Checkin(c *gin.Context) {
	eq, err := h.uc.Checkin.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.OK(c, h.toDTO(*eq))
}

func (h *EquipmentHandler) ReportRepair(c *gin.Context) {
	eq, resp, ok := reportRepair(c, h.uc)
	if !ok {
		return
	}
	resp.Equipment = h.toDTO(*eq)
	httpresp.OK(c, resp)
}

func (h *EquipmentHandler) MarkRepaired(c *gin.Context) {
	eq, err := h.uc.MarkRepaired.Execute(c.Request.Context(), c.Param("id"), middleware.UserName(c))
	if err != nil {
		h.uc.writeError(c, err)
		return
	}
	httpresp.OK(c, h.toDTO(*eq))
}
