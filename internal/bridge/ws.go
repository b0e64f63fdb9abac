package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"welfare-ledger/internal/config"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

// wsConn serializes writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) Send(_ context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Server upgrades native shell connections and runs one Host per connection.
type Server struct {
	hub      *Hub
	deps     Deps
	cfg      config.BridgeConfig
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewServer(hub *Hub, deps Deps, cfg config.BridgeConfig, logger *slog.Logger) *Server {
	s := &Server{
		hub:    hub,
		deps:   deps,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "bridgeServer")),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin accepts native shells (no Origin header) and any configured web origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ServeHTTP handles GET /bridge/ws?deviceId=...&pushToken=...&platform=...
// A reconnecting shell presents its device secret in the X-Device-Secret header.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	deviceID := strings.TrimSpace(q.Get("deviceId"))
	if deviceID == "" {
		http.Error(w, "deviceId is required", http.StatusBadRequest)
		return
	}

	secret := r.Header.Get(DeviceSecretHeader)
	if secret != "" && len(secret) < minDeviceSecretLen {
		http.Error(w, "device secret is too short", http.StatusBadRequest)
		return
	}
	secretHash := ""
	if secret != "" {
		secretHash = hashDeviceSecret(secret)
	}
	if !s.hub.Admits(deviceID, secretHash) {
		http.Error(w, "device is connected elsewhere", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Bridge upgrade failed", slog.Any("error", err))
		return
	}
	conn.SetReadLimit(maxMessageSize)

	sender := &wsConn{conn: conn}
	host := NewHost(sender, s.deps, Options{
		DeviceID:          deviceID,
		AckTimeout:        s.cfg.DeepLinkAckTimeout,
		InactivityTimeout: s.cfg.InactivityTimeout,
		SessionTTL:        s.cfg.SessionTTL,
		PublicBaseURL:     s.cfg.PublicBaseURL,
		PushToken:         q.Get("pushToken"),
		Platform:          q.Get("platform"),
		DeviceSecret:      secret,
		OnClose:           func() { _ = conn.Close() },
	}, s.logger)

	if err := s.hub.Register(host); err != nil {
		s.logger.WarnContext(r.Context(), "Bridge connection refused", slog.String("deviceID", deviceID), slog.Any("error", err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "device is connected elsewhere"), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	defer func() {
		s.hub.Unregister(host)
		_ = conn.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := host.Start(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Bridge bootstrap failed", slog.String("deviceID", deviceID), slog.Any("error", err))
		return
	}
	s.logger.InfoContext(ctx, "Bridge connected", slog.String("deviceID", deviceID))

	go s.keepAlive(ctx, sender)
	s.readLoop(ctx, conn, host)
	s.logger.InfoContext(ctx, "Bridge disconnected", slog.String("deviceID", deviceID))
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, host *Host) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WarnContext(ctx, "Bridge read failed", slog.Any("error", err))
			}
			return
		}
		// Malformed frames are logged by the host and do not end the connection.
		if err := host.Dispatch(ctx, raw); err != nil && !errors.Is(err, ErrMalformedMessage) {
			s.logger.DebugContext(ctx, "Bridge message not handled", slog.Any("error", err))
		}
	}
}

func (s *Server) keepAlive(ctx context.Context, sender *wsConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sender.ping(); err != nil {
				return
			}
		}
	}
}
