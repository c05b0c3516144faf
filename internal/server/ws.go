package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// HandleWS upgrades the connection and runs its read loop. The first frame
// must be a join_room; everything after is dispatched to the joined room.
func (h *Hub) HandleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	var (
		joined  *Room
		roomKey string
		name    string
	)
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		if joined == nil {
			if msg.Type != "join_room" || msg.Room == "" || msg.Name == "" {
				_ = conn.WriteJSON(ServerMessage{Type: "error", Error: &ErrorView{
					Code: "join_required", Message: "join a room before anything else",
				}})
				continue
			}
			room := h.room(msg.Room)
			if err := room.Join(msg.Name, conn); err != nil {
				_ = conn.WriteJSON(ServerMessage{Type: "error", Error: &ErrorView{
					Code: "join_rejected", Message: err.Error(),
				}})
				h.removeIfEmpty(msg.Room)
				continue
			}
			joined, roomKey, name = room, msg.Room, msg.Name
			continue
		}

		switch msg.Type {
		case "chat":
			joined.Chat(name, msg.Text)
		case "start_game":
			joined.StartGame(name)
		case "place_bid":
			joined.PlaceBid(name, msg.Bid)
		case "select_power_suit":
			joined.SelectPowerSuit(name, msg.Suit)
		case "select_partners":
			joined.SelectPartners(name, msg.Cards)
		case "play_card":
			joined.PlayCard(name, msg.Card)
		default:
			_ = conn.WriteJSON(ServerMessage{Type: "error", Error: &ErrorView{
				Code: "unknown_type", Message: "unknown message type " + msg.Type,
			}})
		}
	}

	if joined != nil {
		joined.Leave(name)
		h.removeIfEmpty(roomKey)
	}
}
