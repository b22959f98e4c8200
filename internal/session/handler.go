package session

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Handler upgrades a request to a websocket and binds it to a fresh session.
func (h *Hub) Handler(originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		ctx := r.Context()
		s := h.Open(ctx)
		defer h.Close(s.ID)

		client := NewClient(s, conn, uuid.New().String())
		client.Welcome()

		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}
