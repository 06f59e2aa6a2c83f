package storage

import (
	"context"
	"errors"
	"testing"
)

func TestPreferences_SetAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetPreference(ctx, "exploreTab", "trending"); err != nil {
		t.Fatalf("SetPreference() error: %v", err)
	}

	var got string
	if err := store.GetPreference(ctx, "exploreTab", &got); err != nil {
		t.Fatalf("GetPreference() error: %v", err)
	}
	if got != "trending" {
		t.Errorf("got %q, want %q", got, "trending")
	}
}

func TestPreferences_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetPreference(ctx, "exploreGenre", "Fiction"); err != nil {
		t.Fatalf("first SetPreference() error: %v", err)
	}
	if err := store.SetPreference(ctx, "exploreGenre", "Fantasy"); err != nil {
		t.Fatalf("second SetPreference() error: %v", err)
	}

	var got string
	if err := store.GetPreference(ctx, "exploreGenre", &got); err != nil {
		t.Fatalf("GetPreference() error: %v", err)
	}
	if got != "Fantasy" {
		t.Errorf("got %q, want %q", got, "Fantasy")
	}
}

func TestPreferences_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	var got string
	err := store.GetPreference(context.Background(), "nonexistent", &got)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestPreferences_KeysAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetPreference(ctx, "exploreTab", "top-rated"); err != nil {
		t.Fatalf("SetPreference(exploreTab) error: %v", err)
	}
	if err := store.SetPreference(ctx, "bookshelfTab", "finished"); err != nil {
		t.Fatalf("SetPreference(bookshelfTab) error: %v", err)
	}

	if err := store.DeletePreference(ctx, "exploreTab"); err != nil {
		t.Fatalf("DeletePreference() error: %v", err)
	}

	var got string
	if err := store.GetPreference(ctx, "exploreTab", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := store.GetPreference(ctx, "bookshelfTab", &got); err != nil {
		t.Fatalf("GetPreference(bookshelfTab) error: %v", err)
	}
	if got != "finished" {
		t.Errorf("got %q, want %q", got, "finished")
	}
}

func TestPreferences_DeleteMissingKeyIsNoOp(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeletePreference(context.Background(), "never-set"); err != nil {
		t.Errorf("DeletePreference() on missing key error: %v", err)
	}
}

func TestPreferences_GetAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	all, err := store.GetAllPreferences(ctx)
	if err != nil {
		t.Fatalf("GetAllPreferences() on empty store error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no preferences, got %d", len(all))
	}

	if err := store.SetPreference(ctx, "exploreTab", "trending"); err != nil {
		t.Fatalf("SetPreference() error: %v", err)
	}
	if err := store.SetPreference(ctx, "exploreGenre", "Fantasy"); err != nil {
		t.Fatalf("SetPreference() error: %v", err)
	}

	all, err = store.GetAllPreferences(ctx)
	if err != nil {
		t.Fatalf("GetAllPreferences() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d preferences, want 2", len(all))
	}
	if got := string(all["exploreGenre"]); got != `"Fantasy"` {
		t.Errorf("exploreGenre = %s, want %q", got, `"Fantasy"`)
	}
}
