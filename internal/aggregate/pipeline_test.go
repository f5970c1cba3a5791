package aggregate

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/database"
	"github.com/kchen52/CardSpendTracker/internal/models"
)

func newTestPipeline(t *testing.T) (*Pipeline, *database.Repository, <-chan []models.CardSummary) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := database.NewRepository(db)
	pipeline := New(repo)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go pipeline.Run(ctx)

	return pipeline, repo, pipeline.Subscribe(ctx)
}

// waitForSnapshot reads replacement snapshots until one satisfies cond.
func waitForSnapshot(t *testing.T, ch <-chan []models.CardSummary, cond func([]models.CardSummary) bool) []models.CardSummary {
	t.Helper()
	deadline := time.After(3 * time.Second)
	var last []models.CardSummary
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed")
			}
			last = snap
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot; last: %+v", last)
		}
	}
}

func insertCard(t *testing.T, repo *database.Repository, name string, createdAt time.Time) models.Card {
	t.Helper()
	card := models.NewCard(name, 0)
	card.CreatedAt = createdAt
	id, err := repo.InsertCard(card)
	if err != nil {
		t.Fatalf("InsertCard(%s): %v", name, err)
	}
	card.ID = id
	return card
}

func TestStartupSnapshotReflectsSeededStore(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := database.NewRepository(db)

	// data exists before the pipeline ever runs
	card := insertCard(t, repo, "Visa", time.Now())
	if _, err := repo.InsertGoal(models.Goal{
		CardID:     card.ID,
		Title:      "groceries",
		SpendLimit: decimal.NewFromInt(100),
		CreatedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}
	if _, err := repo.InsertTransaction(models.NewTransaction(card.ID, decimal.NewFromInt(50), "", time.Now())); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	pipeline := New(repo)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sub := pipeline.Subscribe(ctx)
	go pipeline.Run(ctx)

	// Every non-empty snapshot must pair the card with its real spend
	// and goals; a placeholder zero-spend emission is a torn snapshot.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap, ok := <-sub:
			if !ok {
				t.Fatal("subscription closed")
			}
			if len(snap) == 0 {
				continue
			}
			if !snap[0].TotalSpend.Equal(decimal.NewFromInt(50)) {
				t.Fatalf("snapshot spend = %s, want 50", snap[0].TotalSpend)
			}
			if len(snap[0].Goals) != 1 {
				t.Fatalf("snapshot goals = %d, want 1", len(snap[0].Goals))
			}
			if got := snap[0].Goals[0].Progress; got != 0.5 {
				t.Fatalf("snapshot progress = %v, want 0.5", got)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for a non-empty snapshot")
		}
	}
}

func TestEmptyStorePublishesEmptyList(t *testing.T) {
	_, _, sub := newTestPipeline(t)
	snap := waitForSnapshot(t, sub, func(s []models.CardSummary) bool { return len(s) == 0 })
	if snap == nil {
		t.Fatal("empty snapshot is nil, want empty list")
	}
}

func TestClampedGoalAndGoallessCard(t *testing.T) {
	_, repo, sub := newTestPipeline(t)

	now := time.Now()
	overspent := insertCard(t, repo, "overspent", now.Add(-time.Hour))
	insertCard(t, repo, "empty", now)

	if _, err := repo.InsertGoal(models.Goal{
		CardID:     overspent.ID,
		Title:      "groceries",
		SpendLimit: decimal.NewFromInt(100),
		CreatedAt:  now,
	}); err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}
	if _, err := repo.InsertTransaction(models.NewTransaction(overspent.ID, decimal.NewFromInt(150), "", now)); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	snap := waitForSnapshot(t, sub, func(s []models.CardSummary) bool {
		if len(s) != 2 {
			return false
		}
		// cards are newest first, so "empty" leads
		return s[1].Card.Name == "overspent" &&
			len(s[1].Goals) == 1 &&
			s[1].TotalSpend.Equal(decimal.NewFromInt(150))
	})

	if snap[0].Card.Name != "empty" {
		t.Fatalf("first summary = %q, want newest card first", snap[0].Card.Name)
	}
	if len(snap[0].Goals) != 0 {
		t.Fatalf("goalless card has %d goals", len(snap[0].Goals))
	}

	gp := snap[1].Goals[0]
	if gp.Progress != 1.0 {
		t.Fatalf("progress = %v, want 1.0 (clamped)", gp.Progress)
	}
	if !gp.Remaining.IsZero() {
		t.Fatalf("remaining = %s, want 0", gp.Remaining)
	}
}

func TestTransactionReflectedInNextSnapshot(t *testing.T) {
	_, repo, sub := newTestPipeline(t)

	card := insertCard(t, repo, "Visa", time.Now())
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool { return len(s) == 1 })

	if _, err := repo.InsertTransaction(models.NewTransaction(card.ID, decimal.NewFromInt(50), "coffee", time.Now())); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	waitForSnapshot(t, sub, func(s []models.CardSummary) bool {
		return len(s) == 1 && s[0].TotalSpend.Equal(decimal.NewFromInt(50))
	})
}

func TestCardRemovalDropsSummaryAndSubscription(t *testing.T) {
	_, repo, sub := newTestPipeline(t)

	keep := insertCard(t, repo, "keep", time.Now().Add(-time.Minute))
	drop := insertCard(t, repo, "drop", time.Now())

	waitForSnapshot(t, sub, func(s []models.CardSummary) bool { return len(s) == 2 })

	if err := repo.DeleteCard(drop.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool {
		return len(s) == 1 && s[0].Card.ID == keep.ID
	})

	// the surviving card's watcher must still be live
	if _, err := repo.InsertTransaction(models.NewTransaction(keep.ID, decimal.NewFromInt(5), "", time.Now())); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool {
		return len(s) == 1 && s[0].TotalSpend.Equal(decimal.NewFromInt(5))
	})
}

func TestGoalChangeTriggersRepublish(t *testing.T) {
	_, repo, sub := newTestPipeline(t)

	card := insertCard(t, repo, "Visa", time.Now())
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool { return len(s) == 1 })

	goal := models.Goal{
		CardID:     card.ID,
		Title:      "travel",
		SpendLimit: decimal.NewFromInt(1000),
		CreatedAt:  time.Now(),
	}
	id, err := repo.InsertGoal(goal)
	if err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool {
		return len(s) == 1 && len(s[0].Goals) == 1 && s[0].Goals[0].Goal.Title == "travel"
	})

	if err := repo.DeleteGoal(id); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool {
		return len(s) == 1 && len(s[0].Goals) == 0
	})
}

func TestLatestMatchesSubscription(t *testing.T) {
	pipeline, repo, sub := newTestPipeline(t)

	insertCard(t, repo, "Visa", time.Now())
	waitForSnapshot(t, sub, func(s []models.CardSummary) bool { return len(s) == 1 })

	latest := pipeline.Latest()
	if len(latest) != 1 || latest[0].Card.Name != "Visa" {
		t.Fatalf("Latest = %+v", latest)
	}
}
