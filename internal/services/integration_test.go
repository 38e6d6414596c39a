package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/internal/services"
)

// ============================================================================
// Integration Test: Full Draw Workflow
// ============================================================================

// TestIntegration_FullDrawWorkflow tests the complete deck lifecycle: loading
// cards, drawing, marking picks done, and draining the deck
func TestIntegration_FullDrawWorkflow(t *testing.T) {
	drawSvc, cardSvc, rec, _ := setupDrawService(t)
	ctx := context.Background()

	// Step 1: Load the deck
	result, err := cardSvc.AddCards(ctx, []string{"Alpha", "Bravo", "Charlie", "Delta"})
	if err != nil {
		t.Fatalf("AddCards failed: %v", err)
	}
	if len(result.Added) != 4 {
		t.Fatalf("expected 4 cards added, got %d", len(result.Added))
	}

	stats, err := cardSvc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalCards != 4 || stats.EligibleCards != 4 {
		t.Fatalf("expected 4/4 cards, got %d/%d", stats.TotalCards, stats.EligibleCards)
	}

	// Step 2: Draw until the deck is spent, marking each pick done
	for remaining := 4; remaining > 0; remaining-- {
		if err := drawSvc.StartDraw(ctx); err != nil {
			t.Fatalf("StartDraw with %d eligible failed: %v", remaining, err)
		}
		pick := rec.waitFinished(t)

		last, err := drawSvc.LastPick(ctx)
		if err != nil {
			t.Fatalf("LastPick failed: %v", err)
		}
		if last == nil || last.ID != pick.ID {
			t.Fatalf("persisted pick does not match draw: got %v, want %v", last, pick)
		}
		if pick.Done {
			t.Errorf("drew card %q which was already done", pick.Name)
		}

		if err := cardSvc.SetDone(ctx, pick.ID, true); err != nil {
			t.Fatalf("SetDone failed: %v", err)
		}

		stats, err = cardSvc.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}
		if stats.EligibleCards != remaining-1 {
			t.Errorf("expected %d eligible after pick, got %d", remaining-1, stats.EligibleCards)
		}
	}

	// Step 3: A spent deck rejects further draws
	if err := drawSvc.StartDraw(ctx); err != services.ErrNoEligibleCards {
		t.Errorf("expected ErrNoEligibleCards on spent deck, got %v", err)
	}
}

// ============================================================================
// Integration Test: Concurrent Draw Requests
// ============================================================================

// TestIntegration_ConcurrentStartDraw tests that simultaneous draw requests
// produce exactly one roll
func TestIntegration_ConcurrentStartDraw(t *testing.T) {
	drawSvc, cardSvc, rec, _ := setupDrawService(t)
	ctx := context.Background()

	_, _ = cardSvc.AddCards(ctx, []string{"Echo", "Foxtrot", "Golf"})

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var accepted, rejected int
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := drawSvc.StartDraw(ctx)
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				accepted++
			case services.ErrAlreadyRolling:
				rejected++
			default:
				t.Errorf("unexpected error from StartDraw: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if accepted != 1 {
		t.Errorf("expected exactly 1 accepted draw, got %d", accepted)
	}
	if rejected != workers-1 {
		t.Errorf("expected %d rejected draws, got %d", workers-1, rejected)
	}

	rec.waitFinished(t)

	rec.mu.Lock()
	finished := len(rec.finished)
	rec.mu.Unlock()
	if finished != 1 {
		t.Errorf("expected exactly 1 finished roll, got %d", finished)
	}
}

// ============================================================================
// Integration Test: Reset Cascade
// ============================================================================

// TestIntegration_ResetClearsDrawHistory tests that resetting the cards table
// also clears the persisted last pick
func TestIntegration_ResetClearsDrawHistory(t *testing.T) {
	drawSvc, cardSvc, rec, repo := setupDrawService(t)
	settingsSvc := services.NewSettingsService(logger.New(), repo)
	ctx := context.Background()

	_, _ = cardSvc.AddCards(ctx, []string{"Hotel", "India"})

	if err := drawSvc.StartDraw(ctx); err != nil {
		t.Fatalf("StartDraw failed: %v", err)
	}
	rec.waitFinished(t)

	last, err := drawSvc.LastPick(ctx)
	if err != nil {
		t.Fatalf("LastPick failed: %v", err)
	}
	if last == nil {
		t.Fatal("expected a persisted pick before reset")
	}

	if _, err := settingsSvc.ResetTables(ctx, []string{"cards"}); err != nil {
		t.Fatalf("ResetTables failed: %v", err)
	}

	last, err = drawSvc.LastPick(ctx)
	if err != nil {
		t.Fatalf("LastPick after reset failed: %v", err)
	}
	if last != nil {
		t.Errorf("expected no pick after reset, got %v", last)
	}

	stats, err := cardSvc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalCards != 0 {
		t.Errorf("expected empty deck after reset, got %d cards", stats.TotalCards)
	}

	// The deck is usable again after a reset
	if _, err := cardSvc.AddCards(ctx, []string{"Juliett"}); err != nil {
		t.Fatalf("AddCards after reset failed: %v", err)
	}
	if err := drawSvc.StartDraw(ctx); err != nil {
		t.Fatalf("StartDraw after reset failed: %v", err)
	}
	rec.waitFinished(t)
}

// ============================================================================
// Integration Test: Done Cards Excluded Under Load
// ============================================================================

// TestIntegration_DoneCardsNeverDrawn tests that done cards are excluded
// across repeated draws
func TestIntegration_DoneCardsNeverDrawn(t *testing.T) {
	drawSvc, cardSvc, rec, _ := setupDrawService(t)
	ctx := context.Background()

	result, err := cardSvc.AddCards(ctx, []string{"Kilo", "Lima", "Mike", "November"})
	if err != nil {
		t.Fatalf("AddCards failed: %v", err)
	}

	// Spend all but one card
	eligible := result.Added[len(result.Added)-1]
	for _, card := range result.Added[:len(result.Added)-1] {
		if err := cardSvc.SetDone(ctx, card.ID, true); err != nil {
			t.Fatalf("SetDone failed: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		if err := drawSvc.StartDraw(ctx); err != nil {
			t.Fatalf("StartDraw %d failed: %v", i, err)
		}
		pick := rec.waitFinished(t)
		if pick.ID != eligible.ID {
			t.Errorf("draw %d: expected %q, got %q", i, eligible.Name, pick.Name)
		}
	}
}
