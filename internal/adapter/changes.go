// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a control frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next message or ping from the peer.
	pongWait = 60 * time.Second

	// Maximum change event size accepted from the peer.
	maxMessageSize = 64 * 1024
)

// SubscribeChanges opens the change stream of identity in the background
// and calls handler for every event until unsubscribe is called. A dropped
// connection is redialed at most once per redial interval; a rejected token
// ends the subscription.
func (b *BookmarkAdapter) SubscribeChanges(ctx context.Context, identity models.Identity, handler func(models.ChangeEvent)) (func(), error) {
	if identity.Token == "" {
		return nil, ErrNotSignedIn
	}

	streamCtx, cancel := context.WithCancel(ctx)
	stream := &changeStream{
		adapter:  b,
		token:    identity.Token,
		userID:   identity.UserID,
		handler:  handler,
		limiter:  rate.NewLimiter(rate.Every(b.redialInterval), 1),
		finished: make(chan struct{}),
	}
	go stream.run(streamCtx)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			stream.closeConn()
		})
	}, nil
}

type changeStream struct {
	adapter *BookmarkAdapter
	token   string
	userID  int64
	handler func(models.ChangeEvent)
	limiter *rate.Limiter

	mu       sync.Mutex
	conn     *websocket.Conn
	finished chan struct{}
}

func (s *changeStream) run(ctx context.Context) {
	defer close(s.finished)
	log := s.adapter.logger.With().Int64("user_id", s.userID).Logger()

	connected := false
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}

		header := http.Header{}
		header.Set("Authorization", "Bearer "+s.token)
		conn, resp, err := s.adapter.dialer.DialContext(ctx, s.adapter.changesURL, header)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if resp != nil && resp.StatusCode == http.StatusUnauthorized {
				log.Warn().Msg("change stream rejected the token")
				return
			}
			log.Warn().Err(err).Msg("dial change stream")
			continue
		}

		if !s.setConn(ctx, conn) {
			conn.Close()
			return
		}
		if connected {
			log.Info().Msg("change stream reconnected")
			if hook := s.adapter.reconnectHook(); hook != nil {
				hook()
			}
		}
		connected = true

		err = s.read(ctx, conn)
		s.closeConn()
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Msg("change stream dropped")
	}
}

func (s *changeStream) read(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var event models.ChangeEvent
		if err = json.Unmarshal(data, &event); err != nil {
			s.adapter.logger.Warn().Err(err).Msg("undecodable change event")
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.handler(event)
	}
}

// setConn publishes conn for closeConn. It reports false if the stream was
// cancelled meanwhile.
func (s *changeStream) setConn(ctx context.Context, conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	s.conn = conn
	return true
}

func (s *changeStream) closeConn() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		conn.Close()
	}
}
