package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func TestSnapshotRepository_UpsertSnapshot(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	day := testutil.Date(2024, time.March, 1)

	first := &model.Snapshot{ID: testutil.MakeID(), Date: day, Invested: 100, Current: 110, Profit: 10, Count: 1, CreatedAt: day}
	if err := repo.UpsertSnapshot(ctx, first); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second := &model.Snapshot{ID: testutil.MakeID(), Date: day, Invested: 200, Current: 250, Profit: 50, Count: 2, CreatedAt: day}
	if err := repo.UpsertSnapshot(ctx, second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	testutil.AssertRowCount(t, db, "portfolio_snapshot", 1)

	snapshots, err := repo.GetSnapshots(day, day)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
	}
	if snapshots[0].Invested != 200 || snapshots[0].Current != 250 || snapshots[0].Count != 2 {
		t.Errorf("Expected second capture to win, got %+v", snapshots[0])
	}
}

func TestSnapshotRepository_GetSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	testutil.NewSnapshot(testutil.Date(2024, time.January, 3)).Build(t, db)
	testutil.NewSnapshot(testutil.Date(2024, time.January, 1)).Build(t, db)
	testutil.NewSnapshot(testutil.Date(2024, time.February, 1)).Build(t, db)

	t.Run("returns range oldest first", func(t *testing.T) {
		snapshots, err := repo.GetSnapshots(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.January, 31))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
		}
		if snapshots[0].Date.Day() != 1 || snapshots[1].Date.Day() != 3 {
			t.Errorf("Expected Jan 1 then Jan 3, got %v and %v", snapshots[0].Date, snapshots[1].Date)
		}
	})

	t.Run("empty range returns empty slice", func(t *testing.T) {
		snapshots, err := repo.GetSnapshots(testutil.Date(2023, time.January, 1), testutil.Date(2023, time.December, 31))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if snapshots == nil || len(snapshots) != 0 {
			t.Errorf("Expected empty slice, got %v", snapshots)
		}
	})
}
