package services_test

import (
	"context"
	"testing"

	"bdmenu/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithJob(ctx, "menu")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if job, ok := services.JobFromContext(ctx); !ok || job != "menu" {
		t.Fatalf("unexpected job: %v %v", job, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := services.WithJob(services.WithRunID(context.Background(), ""), "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.JobFromContext(ctx); ok {
		t.Fatal("expected no job value")
	}
}
