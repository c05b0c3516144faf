package bots

import (
	"fmt"
	"testing"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"
)

type actionRecord struct {
	step   int
	stage  engine.Stage
	player string
	detail string
}

func TestBotSelfPlayManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		if err := runBotSelfPlay(seed, 2000); err != nil {
			t.Fatalf("bot self-play failed: %v", err)
		}
	}
}

func FuzzBotSelfPlay(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20260829))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := runBotSelfPlay(seed, 2000); err != nil {
			t.Fatalf("bot self-play failed: %v", err)
		}
	})
}

func runBotSelfPlay(seed int64, maxSteps int) error {
	players := []string{"alice", "bob", "carol", "dave"}
	g, err := engine.NewGame(players, seed)
	if err != nil {
		return err
	}
	if err := engine.BeginAuction(g); err != nil {
		return err
	}

	seats := map[string]Bot{
		"alice": NewNormal(seed + 10),
		"bob":   NewEasy(seed + 20),
		"carol": NewNormal(seed + 30),
		"dave":  NewEasy(seed + 40),
	}

	records := []actionRecord{}
	for step := 0; ; step++ {
		if step >= maxSteps {
			return failure(seed, step, g, records, "game did not terminate")
		}
		if g.Stage == engine.StageGameOver {
			return nil
		}

		switch g.Stage {
		case engine.StageAuction:
			bidder, ok := engine.CurrentBidder(g)
			if !ok {
				return failure(seed, step, g, records, "no current bidder")
			}
			amount := seats[bidder].ChooseBid(g, bidder)
			records = append(records, actionRecord{step, g.Stage, bidder, fmt.Sprintf("bid %d", amount)})
			if _, err := engine.PlaceBid(g, bidder, amount); err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("place bid: %v", err))
			}

		case engine.StagePowerSuitSelection:
			winner := g.HighestBidder
			suit := seats[winner].ChoosePowerSuit(g, winner)
			records = append(records, actionRecord{step, g.Stage, winner, fmt.Sprintf("suit %v", suit)})
			if _, err := engine.SelectPowerSuit(g, winner, suit); err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("select power suit: %v", err))
			}

		case engine.StagePartnerSelection:
			winner := g.HighestBidder
			limit := engine.PartnerCount(len(g.Players))
			partners := seats[winner].ChoosePartners(g, winner, limit)
			if len(partners) > limit {
				return failure(seed, step, g, records, fmt.Sprintf("bot chose %d partners, limit %d", len(partners), limit))
			}
			records = append(records, actionRecord{step, g.Stage, winner, fmt.Sprintf("%d partners", len(partners))})
			if _, err := engine.SelectPartners(g, winner, partners); err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("select partners: %v", err))
			}

		case engine.StagePlaying:
			if g.RoundWinner != "" {
				records = append(records, actionRecord{step, g.Stage, g.RoundWinner, "finalize"})
				if err := engine.FinalizeTrick(g); err != nil {
					return failure(seed, step, g, records, fmt.Sprintf("finalize: %v", err))
				}
				break
			}
			player := g.Players[g.TurnIndex]
			if len(engine.LegalPlays(g, player)) == 0 {
				// Deck exhausted without either threshold crossed.
				return nil
			}
			card := seats[player].ChooseCard(g, player)
			records = append(records, actionRecord{step, g.Stage, player, fmt.Sprintf("play %v", card)})
			if _, err := engine.PlayCard(g, player, card); err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("play card: %v", err))
			}

		default:
			return failure(seed, step, g, records, fmt.Sprintf("unexpected stage %v", g.Stage))
		}
	}
}

func failure(seed int64, step int, g *engine.GameState, records []actionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[s%d %v %s] %s\n", r.step, r.stage, r.player, r.detail)
	}
	return fmt.Errorf("seed=%d step=%d stage=%v reason=%s\nlast actions:\n%s",
		seed, step, g.Stage, reason, log)
}
