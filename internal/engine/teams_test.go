package engine

import (
	"errors"
	"testing"
)

// wonAuction drives a fresh game to the power-suit stage with a known winner.
func wonAuction(t *testing.T, n int, seed int64) *GameState {
	t.Helper()
	g := startAuction(t, n, seed)
	res := mustBid(t, g, 250)
	if !res.AuctionWon {
		t.Fatalf("max bid did not win auction")
	}
	return g
}

func TestPartnerCount(t *testing.T) {
	cases := map[int]int{4: 1, 5: 2, 6: 2, 7: 3, 8: 3}
	for players, want := range cases {
		if got := PartnerCount(players); got != want {
			t.Fatalf("partner count for %d players: got %d want %d", players, got, want)
		}
	}
}

func TestSelectPowerSuit(t *testing.T) {
	g := wonAuction(t, 4, 1)
	res, err := SelectPowerSuit(g, g.HighestBidder, SuitHearts)
	if err != nil {
		t.Fatalf("select power suit: %v", err)
	}
	if g.PowerSuit == nil || *g.PowerSuit != SuitHearts {
		t.Fatalf("power suit not recorded")
	}
	if g.Stage != StagePartnerSelection {
		t.Fatalf("stage: got %v", g.Stage)
	}
	if res.PartnerCount != 1 {
		t.Fatalf("partner count: got %d want 1", res.PartnerCount)
	}
}

func TestSelectPowerSuitWrongStage(t *testing.T) {
	g := startAuction(t, 4, 2)
	if _, err := SelectPowerSuit(g, g.Players[0], SuitClubs); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}
}

func TestSelectPartnersTooMany(t *testing.T) {
	g := wonAuction(t, 4, 3)
	if _, err := SelectPowerSuit(g, g.HighestBidder, SuitSpades); err != nil {
		t.Fatalf("select power suit: %v", err)
	}
	two := []Card{NewCard(SuitSpades, RankAce), NewCard(SuitSpades, RankKing)}
	_, err := SelectPartners(g, g.HighestBidder, two)
	if !errors.Is(err, ErrTooManyPartners) {
		t.Fatalf("expected ErrTooManyPartners, got %v", err)
	}
	if g.Stage != StagePartnerSelection || len(g.Partners) != 0 || len(g.Alpha) != 0 {
		t.Fatalf("state changed on rejected partner selection")
	}
}

func TestSelectPartnersBuildsHiddenPartition(t *testing.T) {
	g := wonAuction(t, 4, 4)
	winner := g.HighestBidder
	if _, err := SelectPowerSuit(g, winner, SuitDiamonds); err != nil {
		t.Fatalf("select power suit: %v", err)
	}

	// Name a partner card held by a specific other player.
	var holder string
	var partner Card
	for _, name := range g.Players {
		if name != winner {
			holder = name
			partner = g.Hands[name][0]
			break
		}
	}
	if _, err := SelectPartners(g, winner, []Card{partner}); err != nil {
		t.Fatalf("select partners: %v", err)
	}

	if !g.Alpha[winner] || !g.Alpha[holder] {
		t.Fatalf("alpha must contain winner and holder")
	}
	for _, name := range g.Players {
		if g.Alpha[name] && g.Beta[name] {
			t.Fatalf("player %s in both teams", name)
		}
		if !g.Alpha[name] && !g.Beta[name] {
			t.Fatalf("player %s in neither team", name)
		}
	}
	if g.Stage != StagePlaying {
		t.Fatalf("stage: got %v", g.Stage)
	}
	if g.Players[g.TurnIndex] != winner {
		t.Fatalf("selector must lead the first trick, turn is %s", g.Players[g.TurnIndex])
	}
}

func TestSelectPartnersUnheldCardLeavesSelectorAlone(t *testing.T) {
	g := wonAuction(t, 4, 5)
	winner := g.HighestBidder
	if _, err := SelectPowerSuit(g, winner, SuitClubs); err != nil {
		t.Fatalf("select power suit: %v", err)
	}

	// The winner's own card: partner cards name hypothetical holders, and
	// only other players' hands are inspected, so nobody joins Alpha.
	own := g.Hands[winner][0]

	if _, err := SelectPartners(g, winner, []Card{own}); err != nil {
		t.Fatalf("select partners: %v", err)
	}
	if len(g.Alpha) != 1 || !g.Alpha[winner] {
		t.Fatalf("alpha should be just the selector, got %v", g.Alpha)
	}
	if len(g.Beta) != 3 {
		t.Fatalf("beta should hold the rest, got %v", g.Beta)
	}
}

func TestSelectPartnersZeroCardsStillPartitions(t *testing.T) {
	g := wonAuction(t, 5, 6)
	winner := g.HighestBidder
	if _, err := SelectPowerSuit(g, winner, SuitHearts); err != nil {
		t.Fatalf("select power suit: %v", err)
	}
	if _, err := SelectPartners(g, winner, nil); err != nil {
		t.Fatalf("select partners: %v", err)
	}
	if len(g.Alpha) != 1 || len(g.Beta) != 4 {
		t.Fatalf("partition sizes: alpha %d beta %d", len(g.Alpha), len(g.Beta))
	}
}
