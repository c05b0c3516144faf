package engine

import (
	"fmt"
	"math/rand"
)

var suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

var ranks = []Rank{
	RankAce, RankKing, RankQueen, RankJack, Rank10,
	Rank9, Rank8, Rank7, Rank6, Rank5, Rank4, Rank3, Rank2,
}

func rankPower(r Rank) int {
	switch r {
	case RankAce:
		return 14
	case RankKing:
		return 13
	case RankQueen:
		return 12
	case RankJack:
		return 11
	case Rank10:
		return 10
	case Rank9:
		return 9
	case Rank8:
		return 8
	case Rank7:
		return 7
	case Rank6:
		return 6
	case Rank5:
		return 5
	case Rank4:
		return 4
	case Rank3:
		return 3
	case Rank2:
		return 2
	default:
		return 0
	}
}

// cardValue applies the scoring rules in priority order: the 3 of Spades is
// worth 30 regardless of the power suit, any 5 is worth 5, honours are worth
// 10, everything else 0.
func cardValue(s Suit, r Rank) int {
	if r == Rank3 && s == SuitSpades {
		return 30
	}
	if r == Rank5 {
		return 5
	}
	switch r {
	case RankAce, RankKing, RankQueen, RankJack, Rank10:
		return 10
	default:
		return 0
	}
}

func NewCard(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r, Power: rankPower(r), Value: cardValue(s, r)}
}

// DefaultDeck returns all 52 cards in suit-major, rank-descending order.
func DefaultDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, NewCard(s, r))
		}
	}
	return deck
}

func trimDeck(deck []Card, players int) []Card {
	return deck[:len(deck)-len(deck)%players]
}

func shuffleDeck(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// NewGame trims the deck to a multiple of the roster size, shuffles it with
// the given seed and deals hands round-robin. The auction starts at a random
// seat; the caller opens it with BeginAuction once dealing has been shown.
func NewGame(players []string, seed int64) (*GameState, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidRoster)
	}
	seen := map[string]bool{}
	for _, name := range players {
		if name == "" {
			return nil, fmt.Errorf("%w: empty player name", ErrInvalidRoster)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate player %s", ErrInvalidRoster, name)
		}
		seen[name] = true
	}

	rng := rand.New(rand.NewSource(seed))
	deck := trimDeck(DefaultDeck(), len(players))
	shuffled := shuffleDeck(deck, rng)

	hands := make(map[string][]Card, len(players))
	for i, c := range shuffled {
		name := players[i%len(players)]
		hands[name] = append(hands[name], c)
	}

	scores := make(map[string]int, len(players))
	for _, name := range players {
		scores[name] = 0
	}

	return &GameState{
		Stage:           StageDealing,
		Players:         append([]string(nil), players...),
		Bidders:         append([]string(nil), players...),
		CurrentBidIndex: rng.Intn(len(players)),
		PlayerScores:    scores,
		TurnIndex:       -1,
		DefaultDeck:     deck,
		Hands:           hands,
		Alpha:           map[string]bool{},
		Beta:            map[string]bool{},
		Seed:            seed,
		rng:             rng,
	}, nil
}

// BeginAuction opens bidding once the caller has finished presenting the
// deal. Pacing between the two stages is entirely the caller's concern.
func BeginAuction(g *GameState) error {
	if g.Stage != StageDealing {
		return fmt.Errorf("%w: auction already opened", ErrWrongStage)
	}
	g.Stage = StageAuction
	return nil
}
