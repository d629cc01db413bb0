package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/thedomainai/pl-sanky-diagram/internal/model"
	"github.com/thedomainai/pl-sanky-diagram/internal/sankey"
)

func testEntry(id string) *Entry {
	return &Entry{
		ID:       id,
		FileName: id + ".pdf",
		Statement: &model.Statement{
			CompanyName:  "テスト株式会社",
			FiscalPeriod: "2024年3月期",
			CurrencyUnit: model.UnitMillionYen,
		},
		Rows: []sankey.Row{
			{Source: "事業A", Target: "売上高", AmountThisYear: 10, AmountLastYear: 9},
		},
	}
}

func TestNewMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if store == nil {
		t.Fatal("NewMemoryStore() returned nil")
	}
	if store.Count() != 0 {
		t.Errorf("new store should be empty, got %d entries", store.Count())
	}
}

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.Put(testEntry("doc-1"))

	if store.Count() != 1 {
		t.Errorf("store should have 1 entry, got %d", store.Count())
	}

	entry, err := store.Get("doc-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.Statement.CompanyName != "テスト株式会社" {
		t.Errorf("company name = %s", entry.Statement.CompanyName)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled on Put")
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.Get("non-existent"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.Put(testEntry("doc-1"))

	if err := store.Delete("doc-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("store should be empty after delete, got %d", store.Count())
	}
	if err := store.Delete("doc-1"); err != ErrNotFound {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	old := testEntry("doc-old")
	old.CreatedAt = time.Now().Add(-time.Hour)
	store.Put(old)
	store.Put(testEntry("doc-new"))

	entries := store.List()
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}
	if entries[0].ID != "doc-new" || entries[1].ID != "doc-old" {
		t.Fatalf("order = [%s, %s], want newest first", entries[0].ID, entries[1].ID)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", i)
			store.Put(testEntry(id))
			if _, err := store.Get(id); err != nil {
				t.Errorf("Get(%s) failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	if store.Count() != 50 {
		t.Fatalf("count = %d, want 50", store.Count())
	}
}
