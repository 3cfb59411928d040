// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-bookmarks/internal/app"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

const (
	// Maximum message size allowed from peer. Clients only send control frames.
	maxMessageSize = 1024

	// Rate limiting of inbound frames: 5 per second with a burst of 10.
	messagesPerSecond = 5
	burstLimit        = 10
)

type streamSettings struct {
	// Time allowed to write a message to the peer.
	writeWait time.Duration

	// Time allowed to read the next pong message from the peer.
	pongWait time.Duration

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod time.Duration

	// Events buffered per stream before it is considered stalled.
	sendBuffer int
}

var defaultStreamSettings = streamSettings{
	writeWait:  10 * time.Second,
	pongWait:   60 * time.Second,
	pingPeriod: (60 * time.Second * 9) / 10,
	sendBuffer: 128,
}

// changes upgrades the request to a websocket and forwards every change of
// the caller's bookmarks as a JSON [models.ChangeEvent] text frame.
func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered with an HTTP error
		log.Err(err).Str("func", "*Handler.changes").Msg("websocket upgrade failed")
		return
	}

	stream := newChangeStream(h.streams, conn, userID, h.stream, log)
	defer stream.cancel()

	unsubscribe, err := h.broker.Subscribe(stream.ctx, userID, stream.enqueue)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("subscribing change stream failed")
		stream.closeWith(websocket.CloseInternalServerErr, "subscription failed")
		return
	}
	defer unsubscribe()

	log.Debug().Int64("user_id", userID).Msg("change stream opened")

	go stream.readPump()
	stream.writePump(h.streams)

	log.Debug().Int64("user_id", userID).Msg("change stream closed")
}

// changeStream is a middleman between the broker and one websocket connection.
type changeStream struct {
	conn     *websocket.Conn
	ownerID  int64
	settings streamSettings

	send    chan []byte // buffered channel of outbound messages
	stalled atomic.Bool

	ctx     context.Context
	cancel  context.CancelFunc
	limiter *rate.Limiter

	logger *logger.Logger
}

func newChangeStream(parent context.Context, conn *websocket.Conn, ownerID int64, settings streamSettings, log *logger.Logger) *changeStream {
	ctx, cancel := context.WithCancel(parent)
	return &changeStream{
		conn:     conn,
		ownerID:  ownerID,
		settings: settings,
		send:     make(chan []byte, settings.sendBuffer),
		ctx:      ctx,
		cancel:   cancel,
		limiter:  rate.NewLimiter(rate.Limit(messagesPerSecond), burstLimit),
		logger:   log,
	}
}

// enqueue is the broker handler. It never blocks: a stream whose buffer is
// full is closed and the client resynchronizes on reconnect.
func (s *changeStream) enqueue(event models.ChangeEvent) {
	if event.Record.OwnerID != s.ownerID {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		s.logger.Err(err).Str("func", "*changeStream.enqueue").Msg("failed to marshal change event")
		return
	}

	select {
	case s.send <- message:
	default:
		if !s.stalled.Swap(true) {
			s.logger.Warn().Int64("user_id", s.ownerID).Msg("change stream fell behind, closing")
		}
		s.cancel()
	}
}

// readPump discards inbound frames; it exists to process control frames and
// to notice when the peer goes away.
func (s *changeStream) readPump() {
	defer s.cancel()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.settings.pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(s.settings.pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn().Err(err).Msg("websocket close error")
			}
			return
		}

		if !s.limiter.Allow() {
			s.logger.Warn().Int64("user_id", s.ownerID).Msg("closing change stream: message rate limit exceeded")
			return
		}
	}
}

func (s *changeStream) writePump(shutdown context.Context) {
	ticker := time.NewTicker(s.settings.pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.settings.writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn().Err(err).Msg("websocket send error")
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.settings.writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			switch {
			case shutdown.Err() != nil:
				s.closeWith(websocket.CloseGoingAway, "server shutting down")
			case s.stalled.Load():
				s.closeWith(websocket.CloseTryAgainLater, "stream fell behind")
			}
			return
		}
	}
}

func (s *changeStream) closeWith(code int, text string) {
	s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(s.settings.writeWait),
	)
	s.conn.Close()
}
