package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bitmark-inc/mutual-aid-api/relay"
)

const (
	streamWriteWait   = 10 * time.Second
	streamPingPeriod  = 30 * time.Second
	streamReadTimeout = 60 * time.Second
	streamReadLimit   = 4096
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamFrame is written to the client for every batch of the subscription
type streamFrame struct {
	Type string `json:"type"`
	relay.Batch
}

// inboundFrame is sent by the client. A `read` frame marks the session read.
type inboundFrame struct {
	Type string `json:"type"`
}

// streamMessages upgrades to a websocket and pushes the messages of a session
// as they are stored
func (s *Server) streamMessages(c *gin.Context) {
	requester := c.GetString("requester")
	sessionID := c.Param("sessionID")

	if s.relay == nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorStreamUnavailable)
		return
	}

	var params struct {
		Since time.Time `form:"since"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	session, err := s.coordinator.Session(c.Request.Context(), sessionID, requester)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already replied
		log.WithError(err).Warn("upgrade websocket")
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := s.relay.Subscribe(ctx, relay.Query{
		SessionID: sessionID,
		ViewerID:  requester,
		Since:     params.Since,
		Unread:    session.UnreadFor(requester),
	})
	defer sub.Close()

	go s.readStream(ctx, cancel, ws, sub, sessionID, requester)

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case batch, ok := <-sub.C():
			if !ok {
				writeClose(ws, websocket.CloseNormalClosure, "stream ended")
				return
			}

			_ = ws.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := ws.WriteJSON(streamFrame{Type: "batch", Batch: batch}); err != nil {
				log.WithError(err).WithField("session_id", sessionID).Debug("write stream")
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			writeClose(ws, websocket.CloseGoingAway, "stream closed")
			return
		}
	}
}

// readStream consumes client frames until the connection fails, then cancels
// the stream
func (s *Server) readStream(ctx context.Context, cancel context.CancelFunc, ws *websocket.Conn, sub *relay.Subscription, sessionID, requester string) {
	defer cancel()

	ws.SetReadLimit(streamReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(streamReadTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(streamReadTimeout))
	})

	for {
		var frame inboundFrame
		if err := ws.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				log.WithError(err).WithField("session_id", sessionID).Debug("read stream")
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(streamReadTimeout))

		if frame.Type != "read" {
			continue
		}

		if err := s.coordinator.MarkRead(ctx, sessionID, requester); err != nil {
			log.WithError(err).WithField("session_id", sessionID).Warn("mark session read")
			continue
		}
		sub.MarkRead()
	}
}

func writeClose(ws *websocket.Conn, code int, reason string) {
	_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(streamWriteWait))
}
