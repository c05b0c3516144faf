package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

type Suit int

type Rank int

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitDiamonds
	SuitClubs
)

const (
	RankAce Rank = iota
	RankKing
	RankQueen
	RankJack
	Rank10
	Rank9
	Rank8
	Rank7
	Rank6
	Rank5
	Rank4
	Rank3
	Rank2
)

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "Spades"
	case SuitHearts:
		return "Hearts"
	case SuitDiamonds:
		return "Diamonds"
	case SuitClubs:
		return "Clubs"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case RankAce:
		return "Ace"
	case RankKing:
		return "King"
	case RankQueen:
		return "Queen"
	case RankJack:
		return "Jack"
	case Rank10:
		return "10"
	case Rank9:
		return "9"
	case Rank8:
		return "8"
	case Rank7:
		return "7"
	case Rank6:
		return "6"
	case Rank5:
		return "5"
	case Rank4:
		return "4"
	case Rank3:
		return "3"
	case Rank2:
		return "2"
	default:
		return "?"
	}
}

// Card is identified by (Suit, Rank); Power and Value are derived from the
// identity at construction and never change.
type Card struct {
	Suit  Suit
	Rank  Rank
	Power int
	Value int
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank.String(), c.Suit.String())
}

// Same reports whether two cards share an identity, ignoring derived fields.
func (c Card) Same(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

type Stage int

const (
	StageDealing Stage = iota
	StageAuction
	StagePowerSuitSelection
	StagePartnerSelection
	StagePlaying
	StageGameOver
)

func (s Stage) String() string {
	switch s {
	case StageDealing:
		return "dealing"
	case StageAuction:
		return "auction"
	case StagePowerSuitSelection:
		return "powerSuitSelection"
	case StagePartnerSelection:
		return "partnerSelection"
	case StagePlaying:
		return "playing"
	case StageGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidRoster   = errors.New("invalid roster")
	ErrNoBidders       = errors.New("no bidders")
	ErrWrongTurn       = errors.New("wrong turn")
	ErrWrongStage      = errors.New("wrong stage")
	ErrInvalidBid      = errors.New("invalid bid")
	ErrCardNotInHand   = errors.New("card not in hand")
	ErrMustFollowSuit  = errors.New("must follow suit")
	ErrTooManyPartners = errors.New("too many partners")
	ErrNoTrickPending  = errors.New("no trick pending")
)

// TrickEntry is one play inside the current trick. Power is the card's base
// power plus the power-suit or lead-suit boost applied at play time.
type TrickEntry struct {
	Player string
	Card   Card
	Power  int
}

// GameState is the aggregate root for one game. The owner serializes every
// operation on it; the engine performs no locking. Hands, Alpha and Beta are
// server-side knowledge: views built for broadcast must not include them
// (hands go only to their owner, teams only surface through GameWinners).
type GameState struct {
	Stage           Stage
	Players         []string
	Bidders         []string
	CurrentBidIndex int
	HighestBid      int
	HighestBidder   string
	PowerSuit       *Suit
	Partners        []Card
	Round           []TrickEntry
	PlayerScores    map[string]int
	TurnIndex       int
	GameWinners     []string
	RoundWinner     string
	ScoreToCollect  int

	// DefaultDeck is the trimmed reference deck, kept for card lookups by
	// clients; never mutated after dealing.
	DefaultDeck []Card

	Hands map[string][]Card

	Alpha      map[string]bool
	Beta       map[string]bool
	AlphaScore int
	BetaScore  int

	Seed int64
	rng  *rand.Rand
}

// Result is returned by every engine operation: broadcastable messages plus
// the operation-specific flags the caller needs for sequencing.
type Result struct {
	Messages      []string
	AuctionWon    bool
	PartnerCount  int
	TrickComplete bool
}
