package engine

import "fmt"

const (
	// MaxBid wins the auction outright; it is also the total points in play,
	// so the defending team's threshold is MaxBid minus the contract.
	MaxBid = 250

	// fallbackBid is the contract imposed on the random winner when every
	// player passes without bidding.
	fallbackBid = 125
)

// CurrentBidder returns the player expected to bid next.
func CurrentBidder(g *GameState) (string, bool) {
	if len(g.Bidders) == 0 {
		return "", false
	}
	return g.Bidders[g.CurrentBidIndex%len(g.Bidders)], true
}

// PlaceBid applies one auction turn. Any amount not above the highest bid is
// a pass and removes the player from the bidder list. Raising to MaxBid wins
// immediately; so does being the last bidder standing once someone has bid.
// If everyone passes, a random player from the full roster is handed the
// fallback contract.
func PlaceBid(g *GameState, player string, amount int) (*Result, error) {
	if g.Stage != StageAuction {
		return nil, fmt.Errorf("%w: bidding is closed", ErrWrongStage)
	}
	if len(g.Bidders) == 0 {
		return nil, ErrNoBidders
	}
	current := g.Bidders[g.CurrentBidIndex%len(g.Bidders)]
	if current != player {
		return nil, fmt.Errorf("%w: it is %s's turn to bid", ErrWrongTurn, current)
	}
	if amount > MaxBid {
		return nil, fmt.Errorf("%w: %d is above the maximum of %d", ErrInvalidBid, amount, MaxBid)
	}

	res := &Result{}

	if amount > g.HighestBid {
		g.HighestBid = amount
		g.HighestBidder = player
		res.Messages = append(res.Messages, fmt.Sprintf("%s placed a bid of %d", player, amount))

		if amount == MaxBid {
			return winAuction(g, player, res), nil
		}
		g.CurrentBidIndex = (g.CurrentBidIndex + 1) % len(g.Bidders)
		if len(g.Bidders) == 1 {
			return winAuction(g, player, res), nil
		}
		return res, nil
	}

	res.Messages = append(res.Messages, fmt.Sprintf("%s passes", player))
	g.Bidders = removeName(g.Bidders, player)

	if len(g.Bidders) == 0 {
		g.HighestBid = fallbackBid
		g.HighestBidder = g.Players[g.rng.Intn(len(g.Players))]
		res.Messages = append(res.Messages, "All players passed, selecting winner at random")
		return winAuction(g, g.HighestBidder, res), nil
	}

	g.CurrentBidIndex %= len(g.Bidders)
	if len(g.Bidders) == 1 && g.HighestBidder != "" {
		return winAuction(g, g.HighestBidder, res), nil
	}
	return res, nil
}

func winAuction(g *GameState, winner string, res *Result) *Result {
	g.Stage = StagePowerSuitSelection
	g.HighestBidder = winner
	res.Messages = append(res.Messages, fmt.Sprintf("%s wins the auction", winner))
	res.AuctionWon = true
	return res
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
