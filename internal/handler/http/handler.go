package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-bookmarks/internal/broker"
	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
)

type Handler struct {
	services *service.Services
	broker   broker.Broker

	hasher         *utils.Hasher
	requestTimeout time.Duration

	upgrader websocket.Upgrader
	stream   streamSettings

	// streams is cancelled on shutdown; hijacked connections are not
	// tracked by http.Server.
	streams      context.Context
	closeStreams context.CancelFunc

	logger *logger.Logger
}

func NewHandler(services *service.Services, b broker.Broker, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	streams, closeStreams := context.WithCancel(context.Background())
	return &Handler{
		services:       services,
		broker:         b,
		hasher:         utils.NewHasher(cfg.App.HashKey),
		requestTimeout: cfg.Server.RequestTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// terminal clients send no Origin header
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		stream:       defaultStreamSettings,
		streams:      streams,
		closeStreams: closeStreams,
		logger:       logger,
	}
}

// Shutdown closes every open change stream with a going-away frame.
func (h *Handler) Shutdown() {
	h.closeStreams()
}
