package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.GeneratedContent{}, &types.HistoryEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestContentRepoCRUD(t *testing.T) {
	repo := NewContentRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	c := &types.GeneratedContent{
		ID:        "content-100",
		Platforms: datatypes.NewJSONSlice([]string{"linkedin"}),
		ContentByPlatform: datatypes.NewJSONType(map[string]string{
			"LinkedIn": "draft text",
		}),
		Status:    types.StatusDraft,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, nil, c); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ContentByPlatform.Data()["LinkedIn"] != "draft text" {
		t.Fatalf("content did not round-trip: %+v", got.ContentByPlatform.Data())
	}

	got.Status = types.StatusScheduled
	if err := repo.Update(ctx, nil, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := repo.GetByID(ctx, nil, c.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != types.StatusScheduled {
		t.Fatalf("status = %q", reloaded.Status)
	}

	if err := repo.Delete(ctx, nil, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, c.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestContentRepoListNewestFirst(t *testing.T) {
	repo := NewContentRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"content-a", "content-b", "content-c"} {
		c := &types.GeneratedContent{
			ID:        id,
			Status:    types.StatusDraft,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, nil, c); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "content-c" || list[2].ID != "content-a" {
		t.Fatalf("unexpected order: %v, %v, %v", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestContentRepoDeleteMissing(t *testing.T) {
	repo := NewContentRepo(testDB(t), logger.NewNop())
	if err := repo.Delete(context.Background(), nil, "content-missing"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHistoryRepoUpsertInsertsThenUpdates(t *testing.T) {
	repo := NewHistoryRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	entry := &types.HistoryEntry{
		ID:           "content-200",
		Title:        "first title",
		Platforms:    datatypes.NewJSONSlice([]string{"twitter"}),
		Status:       types.StatusDraft,
		CreatedAt:    time.Now(),
		LastModified: time.Now(),
	}
	if err := repo.Upsert(ctx, nil, entry); err != nil {
		t.Fatalf("insert: %v", err)
	}

	entry.Title = "second title"
	entry.Status = types.StatusPublished
	entry.LastModified = time.Now().Add(time.Minute)
	if err := repo.Upsert(ctx, nil, entry); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("upsert must not duplicate rows, got %d", len(list))
	}
	if list[0].Title != "second title" || list[0].Status != types.StatusPublished {
		t.Fatalf("row not updated in place: %+v", list[0])
	}
}

func TestHistoryRepoGetMissing(t *testing.T) {
	repo := NewHistoryRepo(testDB(t), logger.NewNop())
	if _, err := repo.GetByID(context.Background(), nil, "content-missing"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
