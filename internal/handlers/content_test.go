package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cardspark/cardstudio-backend/internal/content"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/repos"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

func contentRouter(t *testing.T) (*gin.Engine, *content.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.GeneratedContent{}, &types.HistoryEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log := logger.NewNop()
	manager := content.NewManager(
		repos.NewContentRepo(db, log),
		repos.NewHistoryRepo(db, log),
		content.NewSimulatedPublisher(0, log),
		log,
	)
	h := NewContentHandler(log, manager, content.NewExporter(nil, nil))

	router := gin.New()
	router.GET("/api/content/history", h.History)
	router.POST("/api/content", h.SaveDraft)
	router.GET("/api/content/:id", h.Get)
	router.POST("/api/content/:id/schedule", h.Schedule)
	router.POST("/api/content/:id/publish", h.Publish)
	router.GET("/api/content/:id/export", h.Export)
	router.DELETE("/api/content/:id", h.Delete)
	return router, manager
}

func seedDraft(t *testing.T, router *gin.Engine, id string) {
	t.Helper()
	body, _ := json.Marshal(types.GeneratedContent{
		ID:        id,
		Platforms: datatypes.NewJSONSlice([]string{"linkedin"}),
		ContentByPlatform: datatypes.NewJSONType(map[string]string{
			"linkedin": "draft text",
		}),
		PromptText: "seeded draft",
		CreatedAt:  time.Now(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/content", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("seed draft: status %d body %s", w.Code, w.Body.String())
	}
}

func TestContentEndpointsLifecycle(t *testing.T) {
	router, _ := contentRouter(t)
	seedDraft(t, router, "content-h1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/content-h1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}

	at, _ := json.Marshal(map[string]any{"scheduled_for": time.Now().Add(time.Hour).Format(time.RFC3339)})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/content/content-h1/schedule", bytes.NewReader(at))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule: status %d body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/content/content-h1/publish", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("publish: status %d body %s", w.Code, w.Body.String())
	}

	// published entries allow no further transitions
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/content/content-h1/schedule", bytes.NewReader(at))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("schedule after publish: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d", w.Code)
	}
	var entries []types.HistoryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != types.StatusPublished {
		t.Fatalf("unexpected history: %+v", entries)
	}
}

func TestContentEndpointsNotFound(t *testing.T) {
	router, _ := contentRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/content-nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/content/content-nope/publish", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("publish missing: status %d", w.Code)
	}
}

func TestContentExportEndpoint(t *testing.T) {
	router, _ := contentRouter(t)
	seedDraft(t, router, "content-h2")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/content-h2/export?format=text", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("GENERATED CONTENT")) {
		t.Fatalf("unexpected export body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/content-h2/export?format=pdfx", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown format: status %d", w.Code)
	}
}

func TestContentDeleteEndpoint(t *testing.T) {
	router, _ := contentRouter(t)
	seedDraft(t, router, "content-h3")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/content/content-h3", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/content/content-h3", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete again: status %d", w.Code)
	}
}
