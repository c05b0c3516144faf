package server

import (
	"errors"
	"fmt"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"
)

type CardDTO struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type TrickEntryDTO struct {
	Player string  `json:"player"`
	Card   CardDTO `json:"card"`
	Power  int     `json:"power"`
}

// ClientMessage is the single frame type clients send; Type selects which
// fields matter.
type ClientMessage struct {
	Type  string    `json:"type"`
	Room  string    `json:"room,omitempty"`
	Name  string    `json:"name,omitempty"`
	Text  string    `json:"text,omitempty"`
	Bid   int       `json:"bid,omitempty"`
	Suit  string    `json:"suit,omitempty"`
	Card  *CardDTO  `json:"card,omitempty"`
	Cards []CardDTO `json:"cards,omitempty"`
}

type ServerMessage struct {
	Type  string     `json:"type"`
	Text  string     `json:"text,omitempty"`
	Texts []string   `json:"texts,omitempty"`
	State *StateView `json:"state,omitempty"`
	Error *ErrorView `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c CardDTO) ToEngine() (engine.Card, error) {
	s, err := parseSuit(c.Suit)
	if err != nil {
		return engine.Card{}, err
	}
	r, err := parseRank(c.Rank)
	if err != nil {
		return engine.Card{}, err
	}
	return engine.NewCard(s, r), nil
}

func cardToDTO(c engine.Card) CardDTO {
	return CardDTO{Suit: c.Suit.String(), Rank: c.Rank.String()}
}

func parseSuit(s string) (engine.Suit, error) {
	switch s {
	case "Spades":
		return engine.SuitSpades, nil
	case "Hearts":
		return engine.SuitHearts, nil
	case "Diamonds":
		return engine.SuitDiamonds, nil
	case "Clubs":
		return engine.SuitClubs, nil
	default:
		return engine.SuitSpades, fmt.Errorf("invalid suit %q", s)
	}
}

func parseRank(r string) (engine.Rank, error) {
	switch r {
	case "Ace":
		return engine.RankAce, nil
	case "King":
		return engine.RankKing, nil
	case "Queen":
		return engine.RankQueen, nil
	case "Jack":
		return engine.RankJack, nil
	case "10":
		return engine.Rank10, nil
	case "9":
		return engine.Rank9, nil
	case "8":
		return engine.Rank8, nil
	case "7":
		return engine.Rank7, nil
	case "6":
		return engine.Rank6, nil
	case "5":
		return engine.Rank5, nil
	case "4":
		return engine.Rank4, nil
	case "3":
		return engine.Rank3, nil
	case "2":
		return engine.Rank2, nil
	default:
		return engine.RankAce, fmt.Errorf("invalid rank %q", r)
	}
}

// errorCode maps engine rejections to stable wire codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrWrongTurn):
		return "wrong_turn"
	case errors.Is(err, engine.ErrWrongStage):
		return "wrong_stage"
	case errors.Is(err, engine.ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, engine.ErrMustFollowSuit):
		return "must_follow_suit"
	case errors.Is(err, engine.ErrTooManyPartners):
		return "too_many_partners"
	case errors.Is(err, engine.ErrInvalidBid):
		return "invalid_bid"
	case errors.Is(err, engine.ErrNoBidders):
		return "no_bidders"
	case errors.Is(err, engine.ErrInvalidRoster):
		return "invalid_roster"
	case errors.Is(err, engine.ErrNoTrickPending):
		return "no_trick_pending"
	default:
		return "rejected"
	}
}
