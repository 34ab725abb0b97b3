package sync

import (
	"testing"
	"time"

	"github.com/pharos-project/register/internal/register"
)

func TestNewRegisterEvent_DeterministicKey(t *testing.T) {
	occurredAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	a := NewRegisterEvent(EventRegisterUpdated, "proj1", "ds1", "page1", occurredAt, register.ReleaseStatusUnreleased)
	b := NewRegisterEvent(EventRegisterUpdated, "proj1", "ds1", "page1", occurredAt, register.ReleaseStatusUnreleased)

	if a.IdempotencyKey != b.IdempotencyKey {
		t.Fatalf("expected identical idempotency keys for identical inputs, got %q and %q",
			a.IdempotencyKey, b.IdempotencyKey)
	}
}

func TestNewRegisterEvent_DifferentPageDifferentKey(t *testing.T) {
	occurredAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	a := NewRegisterEvent(EventRegisterUpdated, "proj1", "ds1", "page1", occurredAt, register.ReleaseStatusUnreleased)
	b := NewRegisterEvent(EventRegisterUpdated, "proj1", "ds1", "page2", occurredAt, register.ReleaseStatusUnreleased)

	if a.IdempotencyKey == b.IdempotencyKey {
		t.Fatalf("expected different idempotency keys for different pages, got %q for both", a.IdempotencyKey)
	}
}
