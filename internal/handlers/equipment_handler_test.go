package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
)

func TestCreateAndGet(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodGet, "/api/equipment/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[map[string]any](t, w)
	assert.Equal(t, "Available", got["status"])
	assert.Equal(t, "https://lend.example.com/equipment/"+id+"/action", got["actionUrl"])
	assert.Equal(t, []any{"checkout", "report_repair", "update", "delete"}, got["allowedActions"])
}

func TestCreateValidationFailure(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	w := s.do(t, http.MethodPost, "/api/equipment", map[string]string{"name": "Tripod", "brand": "M"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "validation_failed", body["error_code"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "brand")
	assert.Contains(t, errs, "model")
	assert.Contains(t, errs, "category")
	assert.NotContains(t, errs, "name")
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/equipment", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownEquipment(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/equipment/nope"},
		{http.MethodGet, "/api/equipment/nope/logs"},
		{http.MethodPost, "/api/equipment/nope/checkin"},
		{http.MethodDelete, "/api/equipment/nope"},
		{http.MethodGet, "/api/public/equipment/nope"},
	} {
		w := s.do(t, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.Equal(t, "equipment_not_found", decode[map[string]any](t, w)["error_code"])
	}
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPost, "/api/equipment/"+id+"/checkout", map[string]string{
		"borrowerName":  "Alice",
		"borrowerPhone": "0812",
		"place":         "Hall B",
		"purpose":       "Wedding",
		"loanType":      "long",
		"borrowedUntil": "2026-10-20",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[map[string]any](t, w)
	assert.Equal(t, "Borrowed", got["status"])
	assert.Equal(t, "Alice", got["borrowedBy"])
	assert.Equal(t, "2026-10-20T00:00:00+07:00", got["borrowedUntil"])

	// a second checkout is an illegal transition
	w = s.do(t, http.MethodPost, "/api/equipment/"+id+"/checkout", map[string]string{
		"borrowerName": "Bob", "purpose": "Test", "loanType": "studio",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", decode[map[string]any](t, w)["error_code"])

	w = s.do(t, http.MethodPost, "/api/equipment/"+id+"/checkin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Available", decode[map[string]any](t, w)["status"])

	w = s.do(t, http.MethodGet, "/api/equipment/"+id+"/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[map[string]any](t, w)
	assert.EqualValues(t, 3, logs["total"])
}

func TestCheckoutRejectsBadDates(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPost, "/api/equipment/"+id+"/checkout", map[string]string{
		"borrowerName": "Alice", "place": "Hall", "purpose": "Shoot", "loanType": "long",
		"borrowedUntil": "next week",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode[map[string]any](t, w)["errors"], "borrowedUntil")

	w = s.do(t, http.MethodPost, "/api/equipment/"+id+"/checkout", map[string]string{
		"borrowerName": "Alice", "place": "Hall", "purpose": "Shoot", "loanType": "long",
		"borrowedUntil": "2026-10-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRepairCycleUsesAdminName(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPost, "/api/equipment/"+id+"/report-repair", map[string]string{
		"reporterName": "Bob", "problem": "Loose leg",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "Under Repair", resp["equipment"].(map[string]any)["status"])
	assert.NotContains(t, resp, "suggestions")
	assert.NotContains(t, resp, "suggestionError")

	w = s.do(t, http.MethodPost, "/api/equipment/"+id+"/mark-repaired", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/equipment/"+id+"/logs", nil)
	logs := decode[map[string]any](t, w)["data"].([]any)
	newest := logs[0].(map[string]any)
	assert.Equal(t, "Repaired", newest["action"])
	assert.Equal(t, "Dana", newest["user"])
}

func TestUpdateAndDelete(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPut, "/api/equipment/"+id, map[string]string{
		"name": "Tripod XL", "brand": "Manfrotto", "model": "MT190X", "category": "Photography",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tripod XL", decode[map[string]any](t, w)["name"])

	w = s.do(t, http.MethodDelete, "/api/equipment/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/equipment/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkCreate(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	w := s.do(t, http.MethodPost, "/api/equipment/bulk", []map[string]string{
		{"name": "Tripod", "brand": "Manfrotto", "model": "MT190", "category": "Photography"},
		{"name": "Light", "brand": "Godox", "model": "SL60", "category": "Lighting"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, w)["created"])

	w = s.do(t, http.MethodGet, "/api/equipment", nil)
	assert.EqualValues(t, 2, decode[map[string]any](t, w)["total"])
}

func TestBulkCreateIsAllOrNothing(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	w := s.do(t, http.MethodPost, "/api/equipment/bulk", []map[string]string{
		{"name": "Tripod", "brand": "Manfrotto", "model": "MT190", "category": "Photography"},
		{"name": "Light", "brand": "Godox", "model": "SL60", "category": ""},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode[map[string]any](t, w)["errors"], "items.1.category")

	w = s.do(t, http.MethodGet, "/api/equipment", nil)
	assert.EqualValues(t, 0, decode[map[string]any](t, w)["total"])
}

func TestBulkUploadCSV(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "stock.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("Nama,Merek,Model,Kategori\nTripod,Manfrotto,MT190,Photography\nLight,Godox,SL60,Lighting\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/equipment/bulk/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, w)["created"])
}

func TestBulkUploadRejectsUnknownFormat(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "stock.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/equipment/bulk/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unsupported_format", decode[map[string]any](t, w)["error_code"])
}

func TestTemplate(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)

	w := s.do(t, http.MethodGet, "/api/equipment/template", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "equipment-template.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "name,brand,model,category\n"))
}

func TestDashboardRunsFollowUpCheck(t *testing.T) {
	s := newTestServer(t, suggest.Disabled{}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPost, "/api/equipment/"+id+"/checkout", map[string]string{
		"borrowerName": "Alice", "place": "Hall", "purpose": "Shoot", "loanType": "short",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, map[string]any{"checked": 1.0, "escalated": 1.0, "failed": 0.0}, body["followUp"])
	item := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Follow Up", item["status"])
	assert.Equal(t, []any{"checkin", "report_repair", "update", "delete"}, item["allowedActions"])

	// the second read finds nothing new to escalate
	w = s.do(t, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, 0.0, decode[map[string]any](t, w)["followUp"].(map[string]any)["escalated"])
}

func TestReportRepairWithSuggestions(t *testing.T) {
	want := &suggest.Suggestion{SuggestedEquipment: []string{"Monopod"}, Reasoning: "Same use."}
	s := newTestServer(t, stubSuggester{suggestion: want}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPost, "/api/public/equipment/"+id+"/report-repair", map[string]string{
		"reporterName": "Bob", "problem": "Broken head", "userRole": "student",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[map[string]any](t, w)
	assert.Equal(t, map[string]any{
		"suggestedEquipment": []any{"Monopod"},
		"reasoning":          "Same use.",
	}, resp["suggestions"])
}

func TestReportRepairSuggestionFailureKeepsReport(t *testing.T) {
	s := newTestServer(t, stubSuggester{err: &suggest.ExternalServiceError{Err: errors.New("timeout")}}, nil)
	id := s.createTripod(t)

	w := s.do(t, http.MethodPost, "/api/public/equipment/"+id+"/report-repair", map[string]string{
		"reporterName": "Bob", "problem": "Broken head", "userRole": "student",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	assert.Equal(t, "Under Repair", resp["equipment"].(map[string]any)["status"])
	assert.Equal(t, "suggestion_unavailable", resp["suggestionError"].(map[string]any)["error_code"])
}
