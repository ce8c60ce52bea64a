package database

import "testing"

func TestNormalizePageDefaults(t *testing.T) {
	page, pageSize := NormalizePage(0, 0)
	if page != 1 {
		t.Fatalf("expected page 1, got %d", page)
	}
	if pageSize != defaultNotificationPageSize {
		t.Fatalf("expected default page size, got %d", pageSize)
	}
}

func TestNormalizePageCapsAtCeiling(t *testing.T) {
	_, pageSize := NormalizePage(1, 10000)
	if pageSize != maxNotificationPageSize {
		t.Fatalf("page size must be capped at %d, got %d", maxNotificationPageSize, pageSize)
	}
}

func TestNormalizePageKeepsValidValues(t *testing.T) {
	page, pageSize := NormalizePage(3, 50)
	if page != 3 || pageSize != 50 {
		t.Fatalf("valid values must pass through, got page=%d size=%d", page, pageSize)
	}
}
