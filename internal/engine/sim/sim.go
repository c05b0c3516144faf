// Package sim drives seeded self-play games against the engine and checks
// the structural invariants after every operation. It exists for tests and
// fuzzing; nothing here is reachable from the server.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"
)

var names = []string{"alice", "bob", "carol", "dave", "erin", "frank"}

type stepRecord struct {
	Game   int
	Step   int
	Stage  engine.Stage
	Player string
	Detail string
}

// RunSelfPlay plays `games` full games with rosters of 4..6 players, making
// seeded random choices at every decision point. It returns an error with a
// trailing action log as soon as any operation fails unexpectedly or any
// invariant breaks.
func RunSelfPlay(seed int64, games int, maxSteps int) error {
	for gi := 0; gi < games; gi++ {
		n := 4 + int((uint64(seed)+uint64(gi))%3)
		g, err := engine.NewGame(names[:n], seed+int64(gi))
		if err != nil {
			return fmt.Errorf("seed=%d game=%d: new game: %v", seed, gi, err)
		}
		if err := engine.BeginAuction(g); err != nil {
			return fmt.Errorf("seed=%d game=%d: begin auction: %v", seed, gi, err)
		}

		rng := rand.New(rand.NewSource(seed*31 + int64(gi)))
		records := []stepRecord{}
		collected := 0
		lastHighest := 0

		for step := 0; ; step++ {
			if step >= maxSteps {
				return failure(seed, gi, step, g, records, "game did not terminate")
			}
			if g.Stage == engine.StageGameOver {
				break
			}

			var detail string
			var player string
			switch g.Stage {
			case engine.StageAuction:
				bidder, ok := engine.CurrentBidder(g)
				if !ok {
					return failure(seed, gi, step, g, records, "no current bidder")
				}
				player = bidder
				amount := 0
				if rng.Intn(4) != 0 {
					amount = g.HighestBid + 5*(1+rng.Intn(5))
					if amount > engine.MaxBid {
						amount = engine.MaxBid
					}
				}
				detail = fmt.Sprintf("bid %d", amount)
				if _, err := engine.PlaceBid(g, bidder, amount); err != nil {
					return failure(seed, gi, step, g, records, fmt.Sprintf("place bid: %v", err))
				}

			case engine.StagePowerSuitSelection:
				player = g.HighestBidder
				suit := engine.Suit(rng.Intn(4))
				detail = fmt.Sprintf("power suit %v", suit)
				if _, err := engine.SelectPowerSuit(g, player, suit); err != nil {
					return failure(seed, gi, step, g, records, fmt.Sprintf("select power suit: %v", err))
				}

			case engine.StagePartnerSelection:
				player = g.HighestBidder
				limit := engine.PartnerCount(len(g.Players))
				partners := make([]engine.Card, 0, limit)
				for i := rng.Intn(limit + 1); i > 0; i-- {
					partners = append(partners, g.DefaultDeck[rng.Intn(len(g.DefaultDeck))])
				}
				detail = fmt.Sprintf("%d partners", len(partners))
				if _, err := engine.SelectPartners(g, player, partners); err != nil {
					return failure(seed, gi, step, g, records, fmt.Sprintf("select partners: %v", err))
				}
				if err := checkPartition(g); err != nil {
					return failure(seed, gi, step, g, records, err.Error())
				}

			case engine.StagePlaying:
				if g.RoundWinner != "" {
					detail = "finalize trick"
					if err := engine.FinalizeTrick(g); err != nil {
						return failure(seed, gi, step, g, records, fmt.Sprintf("finalize: %v", err))
					}
					collected += len(g.Players)
					break
				}
				player = g.Players[g.TurnIndex]
				legal := engine.LegalPlays(g, player)
				if len(legal) == 0 {
					if handsDrained(g) {
						// Trimmed decks can run out of cards without either
						// threshold being crossed.
						detail = "drained"
						break
					}
					return failure(seed, gi, step, g, records, "no legal plays")
				}
				card := legal[rng.Intn(len(legal))]
				detail = fmt.Sprintf("play %v", card)
				if _, err := engine.PlayCard(g, player, card); err != nil {
					return failure(seed, gi, step, g, records, fmt.Sprintf("play card: %v", err))
				}

			default:
				return failure(seed, gi, step, g, records, fmt.Sprintf("unexpected stage %v", g.Stage))
			}

			records = append(records, stepRecord{Game: gi, Step: step, Stage: g.Stage, Player: player, Detail: detail})
			if detail == "drained" {
				break
			}
			if err := checkInvariants(g, collected, &lastHighest); err != nil {
				return failure(seed, gi, step, g, records, err.Error())
			}
		}
	}
	return nil
}

func checkInvariants(g *engine.GameState, collected int, lastHighest *int) error {
	if g.HighestBid < *lastHighest {
		return fmt.Errorf("highest bid decreased: %d -> %d", *lastHighest, g.HighestBid)
	}
	*lastHighest = g.HighestBid

	if len(g.Bidders) > 0 && g.CurrentBidIndex%len(g.Bidders) >= len(g.Bidders) {
		return fmt.Errorf("bid index out of range: %d of %d", g.CurrentBidIndex, len(g.Bidders))
	}
	if len(g.Round) > len(g.Players) {
		return fmt.Errorf("trick too large: %d", len(g.Round))
	}

	total := len(g.Round)
	seen := map[string]bool{}
	add := func(c engine.Card) error {
		key := c.String()
		if seen[key] {
			return fmt.Errorf("duplicate card: %v", c)
		}
		seen[key] = true
		return nil
	}
	for _, e := range g.Round {
		if err := add(e.Card); err != nil {
			return err
		}
	}
	for _, hand := range g.Hands {
		total += len(hand)
		for _, c := range hand {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	if total+collected != len(g.DefaultDeck) {
		return fmt.Errorf("card conservation broken: %d in play, %d collected, deck %d",
			total, collected, len(g.DefaultDeck))
	}

	teamTotal := g.AlphaScore + g.BetaScore
	playerTotal := 0
	for _, s := range g.PlayerScores {
		playerTotal += s
	}
	if teamTotal != playerTotal {
		return fmt.Errorf("team scores %d != player scores %d", teamTotal, playerTotal)
	}
	return nil
}

func checkPartition(g *engine.GameState) error {
	for _, name := range g.Players {
		inAlpha := g.Alpha[name]
		inBeta := g.Beta[name]
		if inAlpha && inBeta {
			return fmt.Errorf("player %s in both teams", name)
		}
		if !inAlpha && !inBeta {
			return fmt.Errorf("player %s in neither team", name)
		}
	}
	if !g.Alpha[g.HighestBidder] {
		return fmt.Errorf("auction winner %s not in alpha", g.HighestBidder)
	}
	return nil
}

func handsDrained(g *engine.GameState) bool {
	for _, hand := range g.Hands {
		if len(hand) > 0 {
			return false
		}
	}
	return true
}

func failure(seed int64, game int, step int, g *engine.GameState, records []stepRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[g%d s%d %v %s] %s\n", r.Game, r.Step, r.Stage, r.Player, r.Detail)
	}
	return fmt.Errorf("seed=%d game=%d step=%d stage=%v reason=%s\nlast actions:\n%s",
		seed, game, step, g.Stage, reason, log)
}
