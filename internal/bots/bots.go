// Package bots provides seat-filling AI players. Bots only ever act through
// the engine's public operations, so they can never make a move a human
// could not.
package bots

import (
	"math/rand"
	"sort"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"
)

type Bot interface {
	// ChooseBid returns the amount to bid; anything not above the highest
	// bid (0 included) is a pass.
	ChooseBid(g *engine.GameState, player string) int
	ChoosePowerSuit(g *engine.GameState, player string) engine.Suit
	ChoosePartners(g *engine.GameState, player string, limit int) []engine.Card
	ChooseCard(g *engine.GameState, player string) engine.Card
}

type EasyBot struct {
	RNG *rand.Rand
}

func NewEasy(seed int64) *EasyBot {
	return &EasyBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *EasyBot) ChooseBid(g *engine.GameState, player string) int {
	if b.RNG.Intn(2) == 0 {
		return 0
	}
	amount := g.HighestBid + 5*(1+b.RNG.Intn(5))
	if amount > engine.MaxBid {
		amount = engine.MaxBid
	}
	return amount
}

func (b *EasyBot) ChoosePowerSuit(g *engine.GameState, player string) engine.Suit {
	return engine.Suit(b.RNG.Intn(4))
}

func (b *EasyBot) ChoosePartners(g *engine.GameState, player string, limit int) []engine.Card {
	out := []engine.Card{}
	for _, i := range b.RNG.Perm(len(g.DefaultDeck)) {
		if len(out) == limit {
			break
		}
		c := g.DefaultDeck[i]
		if !handHas(g.Hands[player], c) {
			out = append(out, c)
		}
	}
	return out
}

func (b *EasyBot) ChooseCard(g *engine.GameState, player string) engine.Card {
	legal := engine.LegalPlays(g, player)
	if len(legal) == 0 {
		return engine.Card{}
	}
	return legal[b.RNG.Intn(len(legal))]
}

type NormalBot struct {
	RNG *rand.Rand
}

func NewNormal(seed int64) *NormalBot {
	return &NormalBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *NormalBot) ChooseBid(g *engine.GameState, player string) int {
	hand := g.Hands[player]
	points := 0
	suitCounts := map[engine.Suit]int{}
	for _, c := range hand {
		points += c.Value
		suitCounts[c.Suit]++
	}
	bonus := 0
	for _, n := range suitCounts {
		if n >= 4 {
			bonus += (n - 3) * 5
		}
	}
	estimate := 2*points + bonus
	estimate -= estimate % 5
	if estimate > engine.MaxBid {
		estimate = engine.MaxBid
	}
	if estimate <= g.HighestBid {
		return 0
	}
	amount := g.HighestBid + 5
	if amount > estimate {
		return 0
	}
	return amount
}

func (b *NormalBot) ChoosePowerSuit(g *engine.GameState, player string) engine.Suit {
	counts := map[engine.Suit]int{}
	for _, c := range g.Hands[player] {
		counts[c.Suit]++
	}
	best := engine.SuitSpades
	for s := engine.SuitSpades; s <= engine.SuitClubs; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// ChoosePartners names the strongest power-suit cards the bot does not hold
// itself: whoever holds them is likeliest to win tricks for the team.
func (b *NormalBot) ChoosePartners(g *engine.GameState, player string, limit int) []engine.Card {
	if g.PowerSuit == nil {
		return nil
	}
	candidates := []engine.Card{}
	for _, c := range g.DefaultDeck {
		if c.Suit == *g.PowerSuit && !handHas(g.Hands[player], c) {
			candidates = append(candidates, c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Power > candidates[j].Power
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func (b *NormalBot) ChooseCard(g *engine.GameState, player string) engine.Card {
	legal := engine.LegalPlays(g, player)
	if len(legal) == 0 {
		return engine.Card{}
	}

	if len(g.Round) == 0 {
		// Lead with the highest point card.
		best := legal[0]
		bestScore := -1
		for _, c := range legal {
			score := c.Value*10 + c.Power
			if score > bestScore {
				bestScore = score
				best = c
			}
		}
		return best
	}

	// Take the trick with the weakest winning card if possible.
	var winning *engine.Card
	for i := range legal {
		c := legal[i]
		if winsTrick(g, c) {
			if winning == nil || c.Power < winning.Power {
				winning = &legal[i]
			}
		}
	}
	if winning != nil {
		return *winning
	}

	// Otherwise shed the cheapest card.
	lowest := legal[0]
	lowestScore := 1<<31 - 1
	for _, c := range legal {
		score := c.Value*10 + c.Power
		if score < lowestScore {
			lowestScore = score
			lowest = c
		}
	}
	return lowest
}

// winsTrick applies the engine's boost rule to a candidate without mutating
// state.
func winsTrick(g *engine.GameState, c engine.Card) bool {
	lead := g.Round[0].Card.Suit
	power := c.Power
	if g.PowerSuit != nil && c.Suit == *g.PowerSuit {
		power += 1000
	} else if c.Suit == lead {
		power += 100
	}
	for _, e := range g.Round {
		if e.Power >= power {
			return false
		}
	}
	return true
}

func handHas(hand []engine.Card, card engine.Card) bool {
	for _, c := range hand {
		if c.Same(card) {
			return true
		}
	}
	return false
}
