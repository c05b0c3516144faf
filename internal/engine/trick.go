package engine

import "fmt"

const (
	powerSuitBoost = 1000
	leadSuitBoost  = 100
)

// LegalPlays lists the cards the player could have accepted right now. Used
// by bots and clients; PlayCard revalidates independently.
func LegalPlays(g *GameState, player string) []Card {
	if g.Stage != StagePlaying || g.RoundWinner != "" {
		return nil
	}
	if g.TurnIndex < 0 || g.Players[g.TurnIndex] != player {
		return nil
	}
	hand := g.Hands[player]
	if len(g.Round) > 0 {
		lead := g.Round[0].Card.Suit
		if hasSuit(hand, lead) {
			return filterBySuit(hand, lead)
		}
	}
	return append([]Card(nil), hand...)
}

// PlayCard validates and applies one play. The trick's first card fixes the
// lead suit (and itself counts as lead suit for the boost); the power suit
// boost strictly dominates the lead boost, which strictly dominates base
// rank power. When the trick fills up it is resolved and scored in place but
// left visible until FinalizeTrick.
func PlayCard(g *GameState, player string, card Card) (*Result, error) {
	if g.Stage != StagePlaying {
		return nil, fmt.Errorf("%w: no trick in progress", ErrWrongStage)
	}
	// A resolved trick stays on the table until FinalizeTrick; nobody may
	// play into it even though TurnIndex has wrapped back to the leader.
	if g.RoundWinner != "" {
		return nil, fmt.Errorf("%w: trick not yet cleared", ErrWrongTurn)
	}
	if g.TurnIndex < 0 || g.Players[g.TurnIndex] != player {
		return nil, fmt.Errorf("%w: not your turn to play", ErrWrongTurn)
	}
	idx := handIndex(g.Hands[player], card)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrCardNotInHand, card)
	}
	played := g.Hands[player][idx]

	if len(g.Round) > 0 {
		lead := g.Round[0].Card.Suit
		if played.Suit != lead && hasSuit(g.Hands[player], lead) {
			return nil, fmt.Errorf("%w: %s must follow suit %s", ErrMustFollowSuit, player, lead)
		}
	}

	g.Hands[player] = append(g.Hands[player][:idx], g.Hands[player][idx+1:]...)
	g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)

	lead := played.Suit
	if len(g.Round) > 0 {
		lead = g.Round[0].Card.Suit
	}
	power := played.Power
	switch {
	case g.PowerSuit != nil && played.Suit == *g.PowerSuit:
		power += powerSuitBoost
	case played.Suit == lead:
		power += leadSuitBoost
	}
	g.Round = append(g.Round, TrickEntry{Player: player, Card: played, Power: power})

	res := &Result{}
	res.Messages = append(res.Messages, fmt.Sprintf("%s played %s", player, played))

	if len(g.Round) == len(g.Players) {
		resolveTrick(g, res)
		res.TrickComplete = true
	}
	return res, nil
}

// resolveTrick credits the trick to the entry with the highest effective
// power. The resolved trick stays on the table for presentation; the caller
// clears it with FinalizeTrick.
func resolveTrick(g *GameState, res *Result) {
	score := 0
	best := 0
	for i, e := range g.Round {
		score += e.Card.Value
		if e.Power > g.Round[best].Power {
			best = i
		}
	}
	winner := g.Round[best].Player

	g.PlayerScores[winner] += score
	if g.Alpha[winner] {
		g.AlphaScore += score
	} else {
		g.BetaScore += score
	}
	g.RoundWinner = winner
	g.ScoreToCollect = score
	res.Messages = append(res.Messages, fmt.Sprintf("%s won %d points", winner, score))

	res.Messages = append(res.Messages, evaluateWin(g)...)
}

// FinalizeTrick clears a resolved trick and seats the winner to lead the
// next one. Calling it without a resolved trick pending is a caller error
// and changes nothing, so a double finalize can never credit a score twice.
func FinalizeTrick(g *GameState) error {
	if g.RoundWinner == "" || len(g.Round) != len(g.Players) {
		return ErrNoTrickPending
	}
	g.TurnIndex = indexOf(g.Players, g.RoundWinner)
	g.Round = nil
	g.RoundWinner = ""
	g.ScoreToCollect = 0
	return nil
}

func handIndex(hand []Card, card Card) int {
	for i, c := range hand {
		if c.Same(card) {
			return i
		}
	}
	return -1
}

func hasSuit(cards []Card, suit Suit) bool {
	for _, c := range cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func filterBySuit(cards []Card, suit Suit) []Card {
	out := []Card{}
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}
