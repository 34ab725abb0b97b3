package storage

import (
	"context"
	"testing"
)

func TestInMemoryMetadataStore_PutGetRoundTrip(t *testing.T) {
	store := NewInMemoryMetadataStore()
	ctx := context.Background()

	item := map[string]any{"name": "Alice", "projectIDs": []any{"p1", "p2"}}

	if err := store.Put(ctx, "researcher-1", MetaSortKey, item); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(ctx, "researcher-1", MetaSortKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if !ok {
		t.Fatalf("expected item to exist")
	}

	if got["name"] != "Alice" {
		t.Errorf("got name %v, want Alice", got["name"])
	}
}

func TestInMemoryMetadataStore_GetMissing(t *testing.T) {
	store := NewInMemoryMetadataStore()

	_, ok, err := store.Get(context.Background(), "nope", MetaSortKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if ok {
		t.Errorf("expected missing item to report false")
	}
}

func TestInMemoryMetadataStore_PutNilRejected(t *testing.T) {
	store := NewInMemoryMetadataStore()

	if err := store.Put(context.Background(), "pk", "sk", nil); err == nil {
		t.Errorf("expected error storing nil item")
	}
}

func TestInMemoryMetadataStore_GetDoesNotAliasStoredItem(t *testing.T) {
	store := NewInMemoryMetadataStore()
	ctx := context.Background()

	item := map[string]any{"name": "Bob"}
	if err := store.Put(ctx, "pk", "sk", item); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _, err := store.Get(ctx, "pk", "sk")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	got["name"] = "Mutated"

	again, _, err := store.Get(ctx, "pk", "sk")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if again["name"] != "Bob" {
		t.Errorf("mutating a returned item affected the store: got %v", again["name"])
	}
}

func TestInMemoryMetadataStore_Query(t *testing.T) {
	store := NewInMemoryMetadataStore()
	ctx := context.Background()

	if err := store.Put(ctx, "project-1", MetaSortKey, map[string]any{"name": "meta"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.Put(ctx, "project-1", "dataset-1", map[string]any{"name": "dataset"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	items, err := store.Query(ctx, "project-1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestInMemoryMetadataStore_Delete(t *testing.T) {
	store := NewInMemoryMetadataStore()
	ctx := context.Background()

	if err := store.Put(ctx, "pk", "sk", map[string]any{"x": 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.Delete(ctx, "pk", "sk"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, ok, err := store.Get(ctx, "pk", "sk")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if ok {
		t.Errorf("expected item to be gone after Delete")
	}
}

func TestInMemoryMetadataStore_HealthCheck(t *testing.T) {
	store := NewInMemoryMetadataStore()

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
}
