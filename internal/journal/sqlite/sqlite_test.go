package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/habit/habit/pkg/types"
)

func setupTestDB(t *testing.T) *SQLiteJournal {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "habit-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := New(tmpFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return store
}

func newInvocation(id, cmd string, at time.Time) *types.Invocation {
	return &types.Invocation{
		ID:        id,
		Cmd:       cmd,
		Version:   "dev",
		Status:    types.StatusStub,
		CreatedAt: at,
	}
}

func TestRecordAndList(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 12, 30, 0, 123456789, time.UTC)
	inv := newInvocation("inv-1", "add", at)
	inv.Flags = map[string]string{"verbose": "true"}

	if err := store.Record(ctx, inv); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List: got %d invocations, want 1", len(got))
	}
	if got[0].ID != "inv-1" || got[0].Cmd != "add" {
		t.Errorf("got %+v, want id inv-1 cmd add", got[0])
	}
	if got[0].Flags["verbose"] != "true" {
		t.Errorf("Flags = %v, want verbose=true", got[0].Flags)
	}
	if got[0].Status != types.StatusStub {
		t.Errorf("Status = %q, want %q", got[0].Status, types.StatusStub)
	}
	if !got[0].CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, at)
	}
}

func TestRecordWithoutFlags(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.Record(ctx, newInvocation("inv-1", "list", time.Now())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got[0].Flags != nil {
		t.Errorf("Flags = %v, want nil", got[0].Flags)
	}
}

func TestRecordRejectsMissingID(t *testing.T) {
	store := setupTestDB(t)

	if err := store.Record(context.Background(), newInvocation("", "add", time.Now())); err == nil {
		t.Fatal("Record: expected error for empty id")
	}
}

func TestRecordDuplicateID(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.Record(ctx, newInvocation("dup", "add", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, newInvocation("dup", "add", time.Now())); err == nil {
		t.Fatal("Record: expected error for duplicate id")
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		inv := newInvocation(fmt.Sprintf("inv-%d", i), fmt.Sprintf("cmd%d", i), base.Add(time.Duration(i)*time.Second))
		if err := store.Record(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List: got %d, want 3", len(got))
	}
	for i, want := range []string{"inv-4", "inv-3", "inv-2"} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestListEmpty(t *testing.T) {
	store := setupTestDB(t)

	got, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List: got %d, want 0", len(got))
	}
}

func TestPrune(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, newInvocation(fmt.Sprintf("inv-%d", i), "add", time.Now())); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.Prune(ctx, 0)
	if err != nil {
		t.Fatalf("Prune(0): %v", err)
	}
	if n != 0 {
		t.Errorf("Prune(0) deleted %d, want 0", n)
	}

	n, err = store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune(2): %v", err)
	}
	if n != 3 {
		t.Errorf("Prune(2) deleted %d, want 3", n)
	}

	got, err := store.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "inv-4" || got[1].ID != "inv-3" {
		t.Errorf("after prune: got %v", ids(got))
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habit.db")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		store, err := New(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Init(ctx); err != nil {
			t.Fatalf("Init #%d: %v", i+1, err)
		}
		if i == 0 {
			if err := store.Record(ctx, newInvocation("keep", "add", time.Now())); err != nil {
				t.Fatal(err)
			}
		} else {
			got, err := store.List(ctx, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 {
				t.Errorf("reopened journal has %d rows, want 1", len(got))
			}
		}
		store.Close()
	}
}

func TestInitReportsDatabaseErrors(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "habit.db"))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	if err := store.Init(context.Background()); err == nil {
		t.Fatal("Init: expected error on a closed database")
	}
}

func TestInitRejectsNonDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habit.db")
	if err := os.WriteFile(path, []byte("this is not a sqlite database, just plain text padding it out"), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(context.Background()); err == nil {
		t.Fatal("Init: expected error for a corrupt database file")
	}
}

func ids(invs []*types.Invocation) []string {
	out := make([]string, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inv.ID)
	}
	return out
}
