package engine

import (
	"fmt"
	"strings"
)

// evaluateWin runs after every trick's score update. Alpha wins on reaching
// the contract; otherwise Beta wins on making the contract impossible. The
// outcome latches on the first satisfied condition and game over is
// terminal.
func evaluateWin(g *GameState) []string {
	if g.Stage == StageGameOver {
		return nil
	}
	if g.AlphaScore >= g.HighestBid {
		return declareWinners(g, g.Alpha)
	}
	if g.BetaScore > MaxBid-g.HighestBid {
		return declareWinners(g, g.Beta)
	}
	return nil
}

func declareWinners(g *GameState, team map[string]bool) []string {
	winners := teamMembers(g, team)
	g.GameWinners = winners
	g.Stage = StageGameOver
	return []string{fmt.Sprintf("%s win!", strings.Join(winners, ", "))}
}

// teamMembers returns the team in seat order so winner lists are
// deterministic.
func teamMembers(g *GameState, team map[string]bool) []string {
	out := make([]string, 0, len(team))
	for _, name := range g.Players {
		if team[name] {
			out = append(out, name)
		}
	}
	return out
}
