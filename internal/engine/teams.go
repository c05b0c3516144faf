package engine

import "fmt"

// PartnerCount is how many partner cards the auction winner may name:
// ceil(n/2) - 1, so teams stay hidden but Alpha can never outnumber the
// table by construction.
func PartnerCount(players int) int {
	return (players+1)/2 - 1
}

// SelectPowerSuit records the auction winner's trump choice and moves the
// game to partner selection. The caller must already have checked that the
// actor is the recorded auction winner.
func SelectPowerSuit(g *GameState, player string, suit Suit) (*Result, error) {
	if g.Stage != StagePowerSuitSelection {
		return nil, fmt.Errorf("%w: power suit cannot be chosen now", ErrWrongStage)
	}
	s := suit
	g.PowerSuit = &s
	g.Stage = StagePartnerSelection

	res := &Result{PartnerCount: PartnerCount(len(g.Players))}
	res.Messages = append(res.Messages, fmt.Sprintf("%s selected %s as the power suit", player, suit))
	return res, nil
}

// SelectPartners derives the hidden team partition. The selector joins
// Alpha, everyone else starts in Beta, and whoever actually holds a named
// partner card is moved into Alpha. Partner cards name hypothetical holders:
// they need not be in anyone's hand, and holders are discovered by hand
// inspection, never announced. The selector leads the first trick.
func SelectPartners(g *GameState, player string, partners []Card) (*Result, error) {
	if g.Stage != StagePartnerSelection {
		return nil, fmt.Errorf("%w: partners cannot be chosen now", ErrWrongStage)
	}
	limit := PartnerCount(len(g.Players))
	if len(partners) > limit {
		return nil, fmt.Errorf("%w: at most %d partner cards allowed", ErrTooManyPartners, limit)
	}

	g.Partners = append([]Card(nil), partners...)
	g.Alpha[player] = true
	for _, name := range g.Players {
		if name != player {
			g.Beta[name] = true
		}
	}

	res := &Result{}
	for _, card := range partners {
		res.Messages = append(res.Messages, fmt.Sprintf("%s selected %s as a partner", player, card))
		for _, name := range g.Players {
			if name == player {
				continue
			}
			if handContains(g.Hands[name], card) {
				g.Alpha[name] = true
				delete(g.Beta, name)
			}
		}
	}

	g.Stage = StagePlaying
	g.TurnIndex = indexOf(g.Players, player)
	return res, nil
}

func handContains(hand []Card, card Card) bool {
	for _, c := range hand {
		if c.Same(card) {
			return true
		}
	}
	return false
}
