package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/repository"
	"github.com/BruksfildServices01/equipment-lending/internal/logger"
	"github.com/BruksfildServices01/equipment-lending/internal/middleware"
	"github.com/BruksfildServices01/equipment-lending/internal/storage"
	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

var (
	wib     = time.FixedZone("WIB", 7*60*60)
	morning = time.Date(2026, 10, 15, 10, 0, 0, 0, wib)
)

type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type stubSuggester struct {
	suggestion *suggest.Suggestion
	err        error
}

func (s stubSuggester) Suggest(context.Context, suggest.Request) (*suggest.Suggestion, error) {
	return s.suggestion, s.err
}

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T, suggester suggest.Suggester, uploader storage.Uploader) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewEquipmentMemoryRepository()
	clk := &tickingClock{now: morning}
	clock := timezone.Clock(clk.Now)
	locker := lock.NewLocal(time.Second)
	log := logger.Discard()
	a := audit.New(clock, nil, log)

	uc := &UseCases{
		Register:     ucEquipment.NewRegister(repo, a, clock),
		BulkRegister: ucEquipment.NewBulkRegister(repo, a, clock),
		Checkout:     ucEquipment.NewCheckout(repo, locker, a, clock, domain.LoanPolicy{StudioPlace: "Studio"}),
		Checkin:      ucEquipment.NewCheckin(repo, locker, a),
		ReportRepair: ucEquipment.NewReportRepair(repo, locker, a),
		MarkRepaired: ucEquipment.NewMarkRepaired(repo, locker, a),
		Update:       ucEquipment.NewUpdateDetails(repo, locker, a),
		Delete:       ucEquipment.NewDelete(repo, locker, log),
		FollowUp:     ucEquipment.NewFollowUpCheck(repo, locker, clock, 2, nil, log),
		Queries:      ucEquipment.NewQueries(repo),
		Suggest:      ucEquipment.NewSuggestReplacement(repo, suggester),
		Export:       ucEquipment.NewExport(repo, uploader, clock, "https://lend.example.com"),

		Location:      wib,
		PublicBaseURL: "https://lend.example.com",
	}

	r := gin.New()
	pub := r.Group("/api/public/equipment")
	{
		h := NewPublicHandler(uc)
		pub.GET("/:id", h.Get)
		pub.POST("/:id/checkout", h.Checkout)
		pub.POST("/:id/checkin", h.Checkin)
		pub.POST("/:id/report-repair", h.ReportRepair)
	}

	admin := r.Group("/api")
	admin.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserName, "Dana")
		c.Next()
	})
	{
		eh := NewEquipmentHandler(uc)
		admin.GET("/dashboard", NewDashboardHandler(uc).Get)
		admin.GET("/equipment", eh.List)
		admin.POST("/equipment", eh.Create)
		admin.POST("/equipment/bulk", eh.BulkCreate)
		admin.POST("/equipment/bulk/upload", eh.BulkUpload)
		admin.GET("/equipment/template", eh.Template)
		admin.GET("/equipment/:id", eh.Get)
		admin.PUT("/equipment/:id", eh.Update)
		admin.DELETE("/equipment/:id", eh.Delete)
		admin.GET("/equipment/:id/logs", eh.Logs)
		admin.POST("/equipment/:id/checkout", eh.Checkout)
		admin.POST("/equipment/:id/checkin", eh.Checkin)
		admin.POST("/equipment/:id/report-repair", eh.ReportRepair)
		admin.POST("/equipment/:id/mark-repaired", eh.MarkRepaired)

		admin.GET("/history", NewHistoryHandler(uc).List)
		xh := NewExportHandler(uc)
		admin.GET("/history/export", xh.History)
		admin.GET("/qr-codes/export", xh.QRCodes)
	}

	return &testServer{router: r}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createTripod(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/equipment", map[string]string{
		"name": "Tripod", "brand": "Manfrotto", "model": "MT190", "category": "Photography",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)["id"].(string)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
