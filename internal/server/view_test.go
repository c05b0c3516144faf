package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"
)

func newTestGame(t *testing.T) *engine.GameState {
	t.Helper()
	g, err := engine.NewGame([]string{"alice", "bob", "carol", "dave"}, 7)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func TestStateViewOnlyShowsViewerHand(t *testing.T) {
	g := newTestGame(t)

	view := BuildStateView(g, "alice")
	if len(view.Hand) != len(g.Hands["alice"]) {
		t.Fatalf("viewer hand has %d cards, want %d", len(view.Hand), len(g.Hands["alice"]))
	}

	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	// The serialized view carries exactly one hand, and every card in it
	// belongs to the viewer.
	if n := strings.Count(string(raw), `"hand"`); n != 1 {
		t.Fatalf("payload contains %d hand fields, want 1", n)
	}
	for _, dto := range view.Hand {
		found := false
		for _, c := range g.Hands["alice"] {
			if cardToDTO(c) == dto {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("card %v in view is not in alice's hand", dto)
		}
	}
}

func TestPublicViewNeverContainsTeams(t *testing.T) {
	g := newTestGame(t)
	if err := engine.BeginAuction(g); err != nil {
		t.Fatalf("begin auction: %v", err)
	}

	raw, err := json.Marshal(BuildPublicView(g))
	if err != nil {
		t.Fatalf("marshal public view: %v", err)
	}
	for _, forbidden := range []string{"alpha", "beta", "hands"} {
		if strings.Contains(strings.ToLower(string(raw)), forbidden) {
			t.Fatalf("public view leaks %q: %s", forbidden, raw)
		}
	}
}

func TestPublicViewMirrorsGame(t *testing.T) {
	g := newTestGame(t)
	pub := BuildPublicView(g)

	if pub.Stage != "dealing" {
		t.Fatalf("stage = %q, want dealing", pub.Stage)
	}
	if len(pub.Players) != 4 || len(pub.Bidders) != 4 {
		t.Fatalf("players/bidders = %d/%d, want 4/4", len(pub.Players), len(pub.Bidders))
	}
	if len(pub.DefaultDeck) != len(g.DefaultDeck) {
		t.Fatalf("deck = %d cards, want %d", len(pub.DefaultDeck), len(g.DefaultDeck))
	}
	if pub.PowerSuit != "" {
		t.Fatalf("power suit = %q before selection", pub.PowerSuit)
	}
	if pub.TurnIndex != -1 {
		t.Fatalf("turn index = %d before play, want -1", pub.TurnIndex)
	}
}
