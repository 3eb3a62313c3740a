package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/config"
	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "submissions.db")
	backend, err := Open(context.Background(), config.Config{StoreDriver: config.DriverSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer backend.Close(context.Background())

	if backend.Driver != config.DriverSQLite {
		t.Fatalf("driver = %q", backend.Driver)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()
	if err := backend.Submissions.Create(ctx, &domain.Submission{
		ID: "s1", PlaceID: "A", RestaurantName: "Deli", Address: "1 Main St",
		GloveType: domain.GloveNone, SubmittedBy: domain.AnonymousSubmitter, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	found, err := backend.Submissions.Find(ctx, application.SubmissionFilter{PlaceID: "A"})
	if err != nil || len(found) != 1 {
		t.Fatalf("find: %v (%d results)", err, len(found))
	}
	if err := backend.Submissions.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.Config{StoreDriver: "dynamo"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestNilBackendClose(t *testing.T) {
	var backend *Backend
	if err := backend.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}
