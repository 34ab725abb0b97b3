package storage

import (
	"context"
	"testing"

	"github.com/pharos-project/register/internal/register"
)

func samplePage() map[string]*register.Record {
	return map[string]*register.Record{
		"record-1": {
			SampleID: register.NewDatapoint("S1", "user1", 1, nil, register.ShapeDefaultPass),
		},
	}
}

func TestInMemoryRegisterStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewInMemoryRegisterStore()
	ctx := context.Background()

	if err := store.SavePage(ctx, "proj1", "ds1", "page1", samplePage()); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	loaded, err := store.LoadPage(ctx, "proj1", "ds1", "page1")
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	record, ok := loaded["record-1"]
	if !ok {
		t.Fatalf("expected record-1 to be present")
	}

	if record.SampleID == nil || record.SampleID.DataValue != "S1" {
		t.Errorf("expected SampleID S1, got %+v", record.SampleID)
	}
}

func TestInMemoryRegisterStore_LoadMissingPageReturnsEmpty(t *testing.T) {
	store := NewInMemoryRegisterStore()

	loaded, err := store.LoadPage(context.Background(), "proj1", "ds1", "absent")
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	if len(loaded) != 0 {
		t.Errorf("expected empty page, got %d records", len(loaded))
	}
}

func TestInMemoryRegisterStore_SaveNilRejected(t *testing.T) {
	store := NewInMemoryRegisterStore()

	if err := store.SavePage(context.Background(), "proj1", "ds1", "page1", nil); err == nil {
		t.Errorf("expected error saving nil page")
	}
}

func TestInMemoryRegisterStore_ListPages(t *testing.T) {
	store := NewInMemoryRegisterStore()
	ctx := context.Background()

	if err := store.SavePage(ctx, "proj1", "ds1", "page1", samplePage()); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	if err := store.SavePage(ctx, "proj1", "ds1", "page2", samplePage()); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	if err := store.SavePage(ctx, "proj1", "other-ds", "page1", samplePage()); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	pages, err := store.ListPages(ctx, "proj1", "ds1")
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
}

func TestInMemoryRegisterStore_LoadDoesNotAliasStoredPage(t *testing.T) {
	store := NewInMemoryRegisterStore()
	ctx := context.Background()

	if err := store.SavePage(ctx, "proj1", "ds1", "page1", samplePage()); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	loaded, err := store.LoadPage(ctx, "proj1", "ds1", "page1")
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	loaded["record-1"].SampleID.DataValue = "mutated"

	again, err := store.LoadPage(ctx, "proj1", "ds1", "page1")
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	if again["record-1"].SampleID.DataValue != "S1" {
		t.Errorf("mutating a loaded page affected the store: got %q", again["record-1"].SampleID.DataValue)
	}
}

func TestInMemoryRegisterStore_HealthCheck(t *testing.T) {
	store := NewInMemoryRegisterStore()

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
}
