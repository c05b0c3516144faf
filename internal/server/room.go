package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/bots"
	"github.com/darksidegamer16/3ofspades-multiplayer/internal/engine"
)

type client struct {
	name string
	conn *websocket.Conn
}

// Room owns one game and serializes every operation on it under a single
// mutex; the engine itself never locks. Timers (deal pacing, trick clearing)
// re-acquire the mutex in their callbacks.
type Room struct {
	mu      sync.Mutex
	id      string
	key     string
	cfg     Config
	log     *logrus.Entry
	history []string
	order   []string
	clients map[string]*client
	seats   map[string]bots.Bot
	game    *engine.GameState
}

func newRoom(key string, cfg Config, log *logrus.Logger) *Room {
	id := uuid.NewString()
	return &Room{
		id:      id,
		key:     key,
		cfg:     cfg,
		log:     log.WithFields(logrus.Fields{"room": key, "roomId": id}),
		clients: map[string]*client{},
		seats:   map[string]bots.Bot{},
	}
}

func (r *Room) Join(name string, conn *websocket.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("player name required")
	}
	if c, ok := r.clients[name]; ok {
		if c.conn != nil {
			return fmt.Errorf("name %q already taken", name)
		}
		c.conn = conn
	} else {
		r.clients[name] = &client{name: name, conn: conn}
		r.order = append(r.order, name)
	}
	r.log.WithField("player", name).Info("player joined")

	_ = conn.WriteJSON(ServerMessage{Type: "bulk_message", Texts: append([]string(nil), r.history...)})
	r.broadcast(fmt.Sprintf("User %s joined the room", name))

	if r.game != nil {
		if _, playing := r.game.Hands[name]; playing {
			view := BuildStateView(r.game, name)
			_ = conn.WriteJSON(ServerMessage{Type: "state", State: &view})
		} else {
			_ = conn.WriteJSON(ServerMessage{Type: "message", Text: "Game already in progress in this room. You can watch chat."})
		}
	}
	return nil
}

func (r *Room) Leave(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[name]
	if !ok {
		return
	}
	c.conn = nil
	r.log.WithField("player", name).Info("player disconnected")
	r.broadcast(fmt.Sprintf("User %s disconnected", name))
}

// Empty reports whether no live connection remains.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.conn != nil {
			return false
		}
	}
	return true
}

func (r *Room) Chat(name, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast(fmt.Sprintf("%s: %s", name, text))
}

func (r *Room) StartGame(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game != nil && r.game.Stage != engine.StageGameOver {
		r.sendErrorText(name, "game_in_progress", "a game is already in progress")
		return
	}

	roster := append([]string(nil), r.order...)
	r.seats = map[string]bots.Bot{}
	if len(roster) < r.cfg.MinPlayers {
		if !r.cfg.FillWithBots {
			r.sendErrorText(name, "not_enough_players",
				fmt.Sprintf("need at least %d players to start", r.cfg.MinPlayers))
			return
		}
		seed := time.Now().UnixNano()
		for i := 1; len(roster) < r.cfg.MinPlayers; i++ {
			botName := fmt.Sprintf("bot-%d", i)
			if _, taken := r.clients[botName]; taken {
				continue
			}
			r.seats[botName] = bots.NewNormal(seed + int64(i))
			roster = append(roster, botName)
		}
	}

	g, err := engine.NewGame(roster, time.Now().UnixNano())
	if err != nil {
		r.sendError(name, err)
		return
	}
	r.game = g
	r.log.WithFields(logrus.Fields{"starter": name, "players": len(roster)}).Info("game started")

	r.broadcast(fmt.Sprintf("Game started by %s. Dealing cards...", name))
	r.syncState()

	time.AfterFunc(r.cfg.DealDelay, func() { r.openAuction(g) })
}

// openAuction runs after the dealing presentation window.
func (r *Room) openAuction(g *engine.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game != g {
		return
	}
	if err := engine.BeginAuction(g); err != nil {
		r.log.WithError(err).Warn("open auction")
		return
	}
	r.syncState()
	r.announceTurn()
	r.driveBots()
}

func (r *Room) PlaceBid(name string, amount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		r.sendErrorText(name, "no_game", "no ongoing game in this room")
		return
	}
	res, err := engine.PlaceBid(r.game, name, amount)
	if err != nil {
		r.sendError(name, err)
		return
	}
	r.broadcastBulk(res.Messages)
	r.syncState()
	if !res.AuctionWon {
		r.announceTurn()
	}
	r.driveBots()
}

func (r *Room) SelectPowerSuit(name, suit string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		r.sendErrorText(name, "no_game", "no ongoing game in this room")
		return
	}
	if name != r.game.HighestBidder {
		r.sendError(name, fmt.Errorf("%w: only the auction winner chooses the power suit", engine.ErrWrongTurn))
		return
	}
	s, err := parseSuit(suit)
	if err != nil {
		r.sendErrorText(name, "bad_request", err.Error())
		return
	}
	res, err := engine.SelectPowerSuit(r.game, name, s)
	if err != nil {
		r.sendError(name, err)
		return
	}
	r.broadcastBulk(res.Messages)
	r.syncState()
	r.driveBots()
}

func (r *Room) SelectPartners(name string, cards []CardDTO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		r.sendErrorText(name, "no_game", "no ongoing game in this room")
		return
	}
	if name != r.game.HighestBidder {
		r.sendError(name, fmt.Errorf("%w: only the auction winner names partners", engine.ErrWrongTurn))
		return
	}
	partners := make([]engine.Card, 0, len(cards))
	for _, dto := range cards {
		c, err := dto.ToEngine()
		if err != nil {
			r.sendErrorText(name, "bad_request", err.Error())
			return
		}
		partners = append(partners, c)
	}
	res, err := engine.SelectPartners(r.game, name, partners)
	if err != nil {
		r.sendError(name, err)
		return
	}
	r.broadcastBulk(res.Messages)
	r.syncState()
	r.announceTurn()
	r.driveBots()
}

func (r *Room) PlayCard(name string, card *CardDTO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		r.sendErrorText(name, "no_game", "no ongoing game in this room")
		return
	}
	if card == nil {
		r.sendErrorText(name, "bad_request", "card required")
		return
	}
	c, err := card.ToEngine()
	if err != nil {
		r.sendErrorText(name, "bad_request", err.Error())
		return
	}
	res, err := engine.PlayCard(r.game, name, c)
	if err != nil {
		r.sendError(name, err)
		return
	}
	r.broadcastBulk(res.Messages)
	r.syncState()
	if res.TrickComplete {
		r.scheduleFinalize(r.game)
	} else {
		r.announceTurn()
	}
	r.driveBots()
}

// scheduleFinalize clears the resolved trick after the presentation window.
// Pacing lives here, legality in the engine.
func (r *Room) scheduleFinalize(g *engine.GameState) {
	time.AfterFunc(r.cfg.TrickClearDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.game != g {
			return
		}
		if g.Stage == engine.StageGameOver {
			r.syncState()
			return
		}
		if err := engine.FinalizeTrick(g); err != nil {
			r.log.WithError(err).Warn("finalize trick")
			return
		}
		r.syncState()
		if r.drained() {
			r.broadcast("No cards left to play. The game ends in a stalemate.")
			return
		}
		r.announceTurn()
		r.driveBots()
	})
}

// driveBots advances the game while the expected actor is a bot. Stops as
// soon as a human is up, a resolved trick awaits finalization, or the game
// ends.
func (r *Room) driveBots() {
	for {
		actor, ok := r.expectedActor()
		if !ok {
			return
		}
		bot, isBot := r.seats[actor]
		if !isBot {
			return
		}
		g := r.game

		var res *engine.Result
		var err error
		switch g.Stage {
		case engine.StageAuction:
			res, err = engine.PlaceBid(g, actor, bot.ChooseBid(g, actor))
		case engine.StagePowerSuitSelection:
			res, err = engine.SelectPowerSuit(g, actor, bot.ChoosePowerSuit(g, actor))
		case engine.StagePartnerSelection:
			limit := engine.PartnerCount(len(g.Players))
			res, err = engine.SelectPartners(g, actor, bot.ChoosePartners(g, actor, limit))
		case engine.StagePlaying:
			if len(engine.LegalPlays(g, actor)) == 0 {
				return
			}
			res, err = engine.PlayCard(g, actor, bot.ChooseCard(g, actor))
		default:
			return
		}
		if err != nil {
			r.log.WithError(err).WithField("bot", actor).Error("bot action rejected")
			return
		}
		r.broadcastBulk(res.Messages)
		r.syncState()
		if res.TrickComplete {
			r.scheduleFinalize(g)
			return
		}
		if g.Stage == engine.StagePlaying || g.Stage == engine.StageAuction {
			r.announceTurn()
		}
	}
}

// drained reports a playing stage with no pending trick and every hand
// empty: trimmed decks carry fewer than 250 points, so a game can run out
// of cards without either threshold crossed.
func (r *Room) drained() bool {
	g := r.game
	if g == nil || g.Stage != engine.StagePlaying || g.RoundWinner != "" {
		return false
	}
	for _, h := range g.Hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}

// expectedActor is who the game is waiting on, if anyone.
func (r *Room) expectedActor() (string, bool) {
	g := r.game
	if g == nil {
		return "", false
	}
	switch g.Stage {
	case engine.StageAuction:
		return engine.CurrentBidder(g)
	case engine.StagePowerSuitSelection, engine.StagePartnerSelection:
		return g.HighestBidder, g.HighestBidder != ""
	case engine.StagePlaying:
		if g.RoundWinner != "" || g.TurnIndex < 0 {
			return "", false
		}
		return g.Players[g.TurnIndex], true
	default:
		return "", false
	}
}

func (r *Room) announceTurn() {
	g := r.game
	if g == nil {
		return
	}
	switch g.Stage {
	case engine.StageAuction:
		if bidder, ok := engine.CurrentBidder(g); ok {
			r.broadcast(fmt.Sprintf("%s's turn to bid", bidder))
		}
	case engine.StagePlaying:
		if g.RoundWinner == "" && g.TurnIndex >= 0 {
			r.broadcast(fmt.Sprintf("It's %s's turn!", g.Players[g.TurnIndex]))
		}
	}
}

func (r *Room) broadcast(text string) {
	r.history = append(r.history, text)
	for _, c := range r.clients {
		if c.conn != nil {
			_ = c.conn.WriteJSON(ServerMessage{Type: "message", Text: text})
		}
	}
}

func (r *Room) broadcastBulk(texts []string) {
	if len(texts) == 0 {
		return
	}
	r.history = append(r.history, texts...)
	for _, c := range r.clients {
		if c.conn != nil {
			_ = c.conn.WriteJSON(ServerMessage{Type: "bulk_message", Texts: texts})
		}
	}
}

// syncState sends each connected player the public state plus their own
// hand; hands are never broadcast.
func (r *Room) syncState() {
	if r.game == nil {
		return
	}
	pub := BuildPublicView(r.game)
	for _, c := range r.clients {
		if c.conn == nil {
			continue
		}
		view := StateView{Public: pub}
		for _, card := range r.game.Hands[c.name] {
			view.Hand = append(view.Hand, cardToDTO(card))
		}
		_ = c.conn.WriteJSON(ServerMessage{Type: "state", State: &view})
	}
}

// sendError surfaces a rejection to the offending player only.
func (r *Room) sendError(name string, err error) {
	r.sendErrorText(name, errorCode(err), err.Error())
}

func (r *Room) sendErrorText(name, code, message string) {
	c, ok := r.clients[name]
	if !ok || c.conn == nil {
		return
	}
	_ = c.conn.WriteJSON(ServerMessage{Type: "error", Error: &ErrorView{Code: code, Message: message}})
}
