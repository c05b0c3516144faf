package server

import "github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"

// PublicView is the portion of game state broadcast to every observer. It
// never contains hands or the team partition; teams only surface through
// gameWinners once the game ends.
type PublicView struct {
	Stage           string          `json:"stage"`
	Players         []string        `json:"players"`
	Bidders         []string        `json:"bidders"`
	CurrentBidIndex int             `json:"currentBidIndex"`
	HighestBid      int             `json:"highestBid"`
	HighestBidder   string          `json:"highestBidder,omitempty"`
	PowerSuit       string          `json:"powerSuit,omitempty"`
	Partners        []CardDTO       `json:"partners"`
	Round           []TrickEntryDTO `json:"round"`
	PlayerScores    map[string]int  `json:"playerScores"`
	TurnIndex       int             `json:"turnIndex"`
	GameWinners     []string        `json:"gameWinners,omitempty"`
	RoundWinner     string          `json:"roundWinner,omitempty"`
	ScoreToCollect  int             `json:"scoreToCollect,omitempty"`
	DefaultDeck     []CardDTO       `json:"defaultDeck"`
}

// StateView is what one connection receives: the public state plus that
// player's own hand and nothing else.
type StateView struct {
	Public PublicView `json:"public"`
	Hand   []CardDTO  `json:"hand,omitempty"`
}

func BuildPublicView(g *engine.GameState) PublicView {
	partners := make([]CardDTO, 0, len(g.Partners))
	for _, c := range g.Partners {
		partners = append(partners, cardToDTO(c))
	}
	round := make([]TrickEntryDTO, 0, len(g.Round))
	for _, e := range g.Round {
		round = append(round, TrickEntryDTO{Player: e.Player, Card: cardToDTO(e.Card), Power: e.Power})
	}
	deck := make([]CardDTO, 0, len(g.DefaultDeck))
	for _, c := range g.DefaultDeck {
		deck = append(deck, cardToDTO(c))
	}
	powerSuit := ""
	if g.PowerSuit != nil {
		powerSuit = g.PowerSuit.String()
	}
	scores := make(map[string]int, len(g.PlayerScores))
	for name, s := range g.PlayerScores {
		scores[name] = s
	}
	return PublicView{
		Stage:           g.Stage.String(),
		Players:         append([]string(nil), g.Players...),
		Bidders:         append([]string(nil), g.Bidders...),
		CurrentBidIndex: g.CurrentBidIndex,
		HighestBid:      g.HighestBid,
		HighestBidder:   g.HighestBidder,
		PowerSuit:       powerSuit,
		Partners:        partners,
		Round:           round,
		PlayerScores:    scores,
		TurnIndex:       g.TurnIndex,
		GameWinners:     append([]string(nil), g.GameWinners...),
		RoundWinner:     g.RoundWinner,
		ScoreToCollect:  g.ScoreToCollect,
		DefaultDeck:     deck,
	}
}

func BuildStateView(g *engine.GameState, viewer string) StateView {
	view := StateView{Public: BuildPublicView(g)}
	for _, c := range g.Hands[viewer] {
		view.Hand = append(view.Hand, cardToDTO(c))
	}
	return view
}
