package pipeline

import (
	"math"
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestAllocateNormalizes(t *testing.T) {
	usage := []models.PlayerUsage{
		{PlayerID: "p1", PlayerName: "Player One", RZUsageShare: 0.4, TDShare: 0.5},
		{PlayerID: "p2", PlayerName: "Player Two", RZUsageShare: 0.3, TDShare: 0.2},
		{PlayerID: "p3", PlayerName: "Player Three", RZUsageShare: 0.1, TDShare: 0.1},
	}

	alloc := NewOddsAllocator(DefaultParams())
	entries := alloc.Allocate(2.5, usage)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	var sum float64
	for _, e := range entries {
		sum += e.Allocation
		if e.Allocation <= 0 {
			t.Errorf("allocation for %s must be positive", e.PlayerID)
		}
	}
	if math.Abs(sum-1.0) > 0.001 {
		t.Fatalf("allocations must normalize to 1, got %v", sum)
	}
}

func TestAllocateFloor(t *testing.T) {
	usage := []models.PlayerUsage{
		{PlayerID: "star", PlayerName: "Star Back", RZUsageShare: 0.5, TDShare: 0.5},
		{PlayerID: "fringe", PlayerName: "Fringe Back", RZUsageShare: 0.002, TDShare: 0},
	}

	params := DefaultParams()
	alloc := NewOddsAllocator(params)
	entries := alloc.Allocate(2.0, usage)

	var fringe models.PlayerOddsEntry
	for _, e := range entries {
		if e.PlayerID == "fringe" {
			fringe = e
		}
	}
	// raw = 0.85*0.002 = 0.0017, floored to 0.01 against star's 0.5.
	want := round4(params.AllocationFloor / (0.5 + params.AllocationFloor))
	if !almostEqual(fringe.Allocation, want) {
		t.Fatalf("expected floored allocation %v, got %v", want, fringe.Allocation)
	}
	if fringe.Probability <= 0 {
		t.Fatalf("floored player must keep a nonzero probability")
	}
	if fringe.Degenerate {
		t.Fatalf("floored player is priceable, not degenerate")
	}
}

func TestAllocateOddsSigns(t *testing.T) {
	alloc := NewOddsAllocator(DefaultParams())

	favorite := alloc.Allocate(1.0, []models.PlayerUsage{
		{PlayerID: "p1", PlayerName: "Workhorse", RZUsageShare: 1.0, TDShare: 1.0},
	})
	// lambda 1.0: p = 1 - 1/e, odds = -round(100*(e-1)) = -172.
	if favorite[0].AmericanOdds != -172 {
		t.Fatalf("expected -172, got %d", favorite[0].AmericanOdds)
	}

	underdog := alloc.Allocate(0.2, []models.PlayerUsage{
		{PlayerID: "p2", PlayerName: "Committee Back", RZUsageShare: 1.0, TDShare: 1.0},
	})
	// lambda 0.2: p ~ 0.1813, odds = +round(100/(e^0.2-1)) = +452.
	if underdog[0].AmericanOdds != 452 {
		t.Fatalf("expected +452, got %d", underdog[0].AmericanOdds)
	}
}

func TestAllocateZeroProjection(t *testing.T) {
	alloc := NewOddsAllocator(DefaultParams())
	entries := alloc.Allocate(0, []models.PlayerUsage{
		{PlayerID: "p1", PlayerName: "Player One", RZUsageShare: 0.5, TDShare: 0.5},
	})

	e := entries[0]
	if e.Probability != 0 {
		t.Fatalf("zero projection must yield probability exactly 0, got %v", e.Probability)
	}
	if !e.Degenerate {
		t.Fatalf("zero probability must be flagged degenerate")
	}
	if e.AmericanOdds <= 0 {
		t.Fatalf("degenerate longshot must price as an extreme underdog, got %d", e.AmericanOdds)
	}
}

func TestAllocateEmpty(t *testing.T) {
	alloc := NewOddsAllocator(DefaultParams())
	if entries := alloc.Allocate(2.5, nil); entries != nil {
		t.Fatalf("expected nil for empty usage, got %v", entries)
	}
}

func TestAmericanOddsBounds(t *testing.T) {
	odds, degenerate := americanOdds(0.5)
	if odds != -100 || degenerate {
		t.Fatalf("even money must price -100, got %d", odds)
	}
	odds, degenerate = americanOdds(1.0)
	if !degenerate {
		t.Fatalf("certainty must be degenerate")
	}
	if odds >= 0 {
		t.Fatalf("clamped certainty must price as a heavy favorite, got %d", odds)
	}
}
