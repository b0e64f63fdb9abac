package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/infrastructure/monitoring"
	"welfare-ledger/internal/pkg/apperrors"
)

// Sender delivers an outbound message to the page. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type TokenVerifier interface {
	Parse(token string) (*account.Claims, error)
}

// FileLinker builds the download URL for an export the page asked for.
type FileLinker interface {
	DownloadURL(dataset, format string) (string, error)
}

type HandlerFunc func(ctx context.Context, msg Message) error

type Deps struct {
	Sessions   SessionStore
	PushTokens account.PushTokenRepository
	Tokens     TokenVerifier
	Files      FileLinker
}

type Options struct {
	DeviceID          string
	AckTimeout        time.Duration
	InactivityTimeout time.Duration
	SessionTTL        time.Duration
	PublicBaseURL     string
	// PushToken and Platform come from the connect query when the shell already holds a token.
	PushToken string
	Platform  string
	// DeviceSecret is the secret the shell presented on connect; only it unlocks the stored session.
	DeviceSecret string
	// OnClose releases the transport once the host is closed, including when a newer connection replaces it.
	OnClose func()
}

const loginPath = "/login"

type pendingLink struct {
	requestID string
	rawURL    string
	path      string
	fullURL   string
	timer     *time.Timer
}

// Host is the server side of one bridge connection.
type Host struct {
	send   Sender
	deps   Deps
	opts   Options
	logger *slog.Logger

	handlers map[MessageType]HandlerFunc

	mu         sync.Mutex
	ready      bool
	closed     bool
	accountID  int64
	secretHash string
	pushToken  *PushTokenPayload
	queued     []*pendingLink
	pending    map[string]*pendingLink
	inactivity *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHost(send Sender, deps Deps, opts Options, logger *slog.Logger) *Host {
	if send == nil {
		panic("bridge sender cannot be nil")
	}
	if deps.Sessions == nil {
		deps.Sessions = NewMemorySessionStore()
	}
	if opts.AckTimeout <= 0 {
		opts.AckTimeout = 3 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Host{
		send:     send,
		deps:     deps,
		opts:     opts,
		logger:   logger.With(slog.String("component", "bridgeHost"), slog.String("deviceID", opts.DeviceID)),
		handlers: make(map[MessageType]HandlerFunc),
		pending:  make(map[string]*pendingLink),
		ctx:      ctx,
		cancel:   cancel,
	}
	if opts.DeviceSecret != "" {
		h.secretHash = hashDeviceSecret(opts.DeviceSecret)
	}

	h.Handle(TypeAuthSessionUpdate, h.handleSessionUpdate)
	h.Handle(TypeAuthLogout, h.handleLogout)
	h.Handle(TypeRequestFileDownload, h.handleFileDownload)
	h.Handle(TypeHapticFeedback, h.handleDeviceFeature)
	h.Handle(TypeShareContent, h.handleDeviceFeature)
	h.Handle(TypeNavigationReady, h.handleNavigationReady)
	h.Handle(TypePageLoaded, h.handlePageLoaded)
	h.Handle(TypeDeepLinkAck, h.handleDeepLinkAck)
	h.Handle(TypePushToken, h.handlePushToken)
	h.Handle(TypePushTokenRequest, h.handlePushTokenRequest)
	h.Handle(TypeUserActivity, func(context.Context, Message) error { return nil })
	return h
}

// Handle registers fn for t, replacing any earlier handler.
func (h *Host) Handle(t MessageType, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[t] = fn
}

func (h *Host) DeviceID() string {
	return h.opts.DeviceID
}

// Start performs the bootstrap handshake: BRIDGE_READY, then the session replay when one is stored
// for a connection that presented the device secret.
func (h *Host) Start(ctx context.Context) error {
	session, err := h.storedSession(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to load stored session", slog.Any("error", err))
		session = nil
	}
	if session != nil {
		h.adoptSession(ctx, session)
	}

	if err := h.bootstrap(ctx, session); err != nil {
		return err
	}

	if h.opts.PushToken != "" {
		if err := h.storePushToken(ctx, PushTokenPayload{Token: h.opts.PushToken, Platform: h.opts.Platform}); err != nil {
			h.logger.WarnContext(ctx, "Failed to store push token from connect", slog.Any("error", err))
		}
	}

	h.touch()
	return nil
}

func (h *Host) bootstrap(ctx context.Context, session *Session) error {
	ready := BridgeReadyPayload{Version: BootstrapVersion, DeviceID: h.opts.DeviceID}
	if session != nil {
		ready.Session = session.forPage()
	}
	if err := h.Send(ctx, TypeBridgeReady, "", ready); err != nil {
		return fmt.Errorf("failed to send bridge bootstrap: %w", err)
	}
	if session != nil {
		if err := h.Send(ctx, TypeAuthSessionRestore, "", session.forPage()); err != nil {
			return fmt.Errorf("failed to replay session: %w", err)
		}
	}
	return nil
}

// Send encodes and delivers one outbound message.
func (h *Host) Send(ctx context.Context, t MessageType, requestID string, payload any) error {
	msg, err := NewMessage(t, requestID, payload)
	if err != nil {
		return err
	}
	if err := h.send.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", t, err)
	}
	monitoring.RecordBridgeMessage("outbound", string(t))
	return nil
}

// Dispatch decodes one inbound frame and routes it to its handler. Unknown types are ignored.
func (h *Host) Dispatch(ctx context.Context, raw []byte) error {
	msg, err := Decode(raw)
	if err != nil {
		h.logger.WarnContext(ctx, "Dropping malformed bridge message", slog.Any("error", err))
		return err
	}

	h.mu.Lock()
	closed := h.closed
	fn, ok := h.handlers[msg.Type]
	h.mu.Unlock()
	if closed {
		return fmt.Errorf("%w: bridge connection closed", apperrors.ErrConflict)
	}
	monitoring.RecordBridgeMessage("inbound", string(msg.Type))
	h.touch()

	if !ok {
		h.logger.WarnContext(ctx, "Ignoring unknown bridge message", slog.String("type", string(msg.Type)))
		return nil
	}

	if err := fn(ctx, msg); err != nil {
		h.logger.WarnContext(ctx, "Bridge handler failed", slog.String("type", string(msg.Type)), slog.Any("error", err))
		return err
	}
	return nil
}

// DeliverDeepLink sends DEEP_LINK and falls back to FORCE_NAVIGATE if the page does not acknowledge it in time.
// Links arriving before NAVIGATION_READY are queued. It returns the correlation request id.
func (h *Host) DeliverDeepLink(ctx context.Context, rawURL string) (string, error) {
	path, fullURL, err := ResolveDeepLink(rawURL, h.opts.PublicBaseURL)
	if err != nil {
		return "", err
	}

	link := &pendingLink{requestID: newRequestID(), rawURL: rawURL, path: path, fullURL: fullURL}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return "", fmt.Errorf("%w: bridge connection closed", apperrors.ErrConflict)
	}
	if !h.ready {
		h.queued = append(h.queued, link)
		h.mu.Unlock()
		monitoring.RecordDeepLinkOutcome("queued")
		h.logger.InfoContext(ctx, "Deep link queued until navigation is ready", slog.String("requestID", link.requestID), slog.String("path", path))
		return link.requestID, nil
	}
	h.armLocked(link)
	h.mu.Unlock()

	if err := h.Send(ctx, TypeDeepLink, link.requestID, DeepLinkPayload{URL: link.rawURL, Path: link.path}); err != nil {
		h.disarm(link.requestID)
		return "", err
	}
	return link.requestID, nil
}

// Navigate asks the page for an in-app route change without a reload.
func (h *Host) Navigate(ctx context.Context, path string) error {
	return h.Send(ctx, TypeNavigate, newRequestID(), NavigatePayload{Path: path})
}

func (h *Host) armLocked(link *pendingLink) {
	h.pending[link.requestID] = link
	link.timer = time.AfterFunc(h.opts.AckTimeout, func() { h.ackTimedOut(link.requestID) })
}

func (h *Host) disarm(requestID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if link, ok := h.pending[requestID]; ok {
		link.timer.Stop()
		delete(h.pending, requestID)
	}
}

func (h *Host) ackTimedOut(requestID string) {
	h.mu.Lock()
	link, ok := h.pending[requestID]
	if ok {
		delete(h.pending, requestID)
	}
	closed := h.closed
	h.mu.Unlock()
	if !ok || closed {
		return
	}

	monitoring.RecordDeepLinkOutcome("forced")
	h.logger.WarnContext(h.ctx, "Deep link not acknowledged, forcing navigation",
		slog.String("requestID", requestID), slog.String("url", link.fullURL))
	if err := h.Send(h.ctx, TypeForceNavigate, requestID, NavigatePayload{URL: link.fullURL}); err != nil {
		h.logger.ErrorContext(h.ctx, "Failed to force navigation", slog.Any("error", err))
	}
}

func (h *Host) handleDeepLinkAck(ctx context.Context, msg Message) error {
	h.mu.Lock()
	link, ok := h.pending[msg.RequestID]
	if ok {
		link.timer.Stop()
		delete(h.pending, msg.RequestID)
	}
	h.mu.Unlock()

	if !ok {
		monitoring.RecordDeepLinkOutcome("ignored")
		h.logger.DebugContext(ctx, "Ignoring late or unknown deep link ack", slog.String("requestID", msg.RequestID))
		return nil
	}
	monitoring.RecordDeepLinkOutcome("acked")
	return nil
}

func (h *Host) handleNavigationReady(ctx context.Context, _ Message) error {
	h.mu.Lock()
	h.ready = true
	queued := h.queued
	h.queued = nil
	for _, link := range queued {
		h.armLocked(link)
	}
	h.mu.Unlock()

	for _, link := range queued {
		if err := h.Send(ctx, TypeDeepLink, link.requestID, DeepLinkPayload{URL: link.rawURL, Path: link.path}); err != nil {
			h.disarm(link.requestID)
			return err
		}
	}
	return nil
}

// handlePageLoaded treats a full page load as a fresh bootstrap; the page must signal NAVIGATION_READY again.
func (h *Host) handlePageLoaded(ctx context.Context, _ Message) error {
	h.mu.Lock()
	h.ready = false
	h.mu.Unlock()

	session, err := h.storedSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	return h.bootstrap(ctx, session)
}

func (h *Host) secret() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.secretHash
}

// storedSession returns the device's session only when this connection proved the secret it is bound to.
func (h *Host) storedSession(ctx context.Context) (*Session, error) {
	session, err := h.deps.Sessions.Load(ctx, h.opts.DeviceID)
	if err != nil || session == nil {
		return nil, err
	}
	if !secretMatches(session.SecretHash, h.secret()) {
		h.logger.WarnContext(ctx, "Stored session withheld from a connection without the device secret")
		return nil, nil
	}
	return session, nil
}

func (h *Host) handleSessionUpdate(ctx context.Context, msg Message) error {
	var session Session
	if err := msg.DecodePayload(&session); err != nil {
		return err
	}
	if session.AccessToken == "" {
		return apperrors.NewValidationError("accessToken", "session update requires an access token")
	}

	hash := h.secret()
	stored, err := h.deps.Sessions.Load(ctx, h.opts.DeviceID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if stored != nil && !secretMatches(stored.SecretHash, hash) && !h.tokenValid(session.AccessToken) {
		return fmt.Errorf("%w: session for device %s is bound to another secret", apperrors.ErrUnauthorized, h.opts.DeviceID)
	}

	// A connection that never proved a secret gets a fresh one, so the session it stores is bound to it.
	issued := ""
	if hash == "" {
		secret, err := newDeviceSecret()
		if err != nil {
			return err
		}
		issued, hash = secret, hashDeviceSecret(secret)
		h.mu.Lock()
		h.secretHash = hash
		h.mu.Unlock()
	}
	session.SecretHash = hash

	h.adoptSession(ctx, &session)
	if err := h.deps.Sessions.Save(ctx, h.opts.DeviceID, session, h.opts.SessionTTL); err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "Session stored", slog.Int64("accountID", session.AccountID))
	if issued != "" {
		if err := h.Send(ctx, TypeDeviceSecret, "", DeviceSecretPayload{Secret: issued}); err != nil {
			return err
		}
	}
	return h.flushPushToken(ctx)
}

// tokenValid reports whether token verifies; without a verifier every token is accepted.
func (h *Host) tokenValid(token string) bool {
	if h.deps.Tokens == nil {
		return true
	}
	_, err := h.deps.Tokens.Parse(token)
	return err == nil
}

// adoptSession binds the connection to the account named by a valid access token.
func (h *Host) adoptSession(ctx context.Context, session *Session) {
	if h.deps.Tokens == nil {
		return
	}
	claims, err := h.deps.Tokens.Parse(session.AccessToken)
	if err != nil {
		h.logger.DebugContext(ctx, "Session token not usable for account binding", slog.Any("error", err))
		return
	}
	id, err := claims.AccountID()
	if err != nil {
		return
	}
	session.AccountID = id
	h.mu.Lock()
	h.accountID = id
	h.mu.Unlock()
}

func (h *Host) handleLogout(ctx context.Context, _ Message) error {
	h.mu.Lock()
	h.accountID = 0
	h.mu.Unlock()

	session, err := h.storedSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	if err := h.deps.Sessions.Delete(ctx, h.opts.DeviceID); err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "Session cleared on logout")
	return nil
}

func (h *Host) handlePushToken(ctx context.Context, msg Message) error {
	var payload PushTokenPayload
	if err := msg.DecodePayload(&payload); err != nil {
		return err
	}
	return h.storePushToken(ctx, payload)
}

func (h *Host) storePushToken(ctx context.Context, payload PushTokenPayload) error {
	if payload.Token == "" {
		return apperrors.NewValidationError("token", "push token cannot be empty")
	}
	h.mu.Lock()
	h.pushToken = &payload
	h.mu.Unlock()
	return h.flushPushToken(ctx)
}

// flushPushToken persists the held token once the connection is bound to an account.
func (h *Host) flushPushToken(ctx context.Context) error {
	h.mu.Lock()
	accountID, held := h.accountID, h.pushToken
	h.mu.Unlock()
	if held == nil || accountID == 0 || h.deps.PushTokens == nil {
		return nil
	}

	token, err := account.NewPushToken(accountID, held.Token, held.Platform)
	if err != nil {
		return err
	}
	if err := h.deps.PushTokens.Upsert(ctx, token); err != nil {
		return fmt.Errorf("failed to persist push token: %w", err)
	}
	h.logger.InfoContext(ctx, "Push token stored", slog.Int64("accountID", accountID))
	return nil
}

func (h *Host) handlePushTokenRequest(ctx context.Context, msg Message) error {
	h.mu.Lock()
	accountID, held := h.accountID, h.pushToken
	h.mu.Unlock()

	payload := PushTokenPayload{}
	switch {
	case held != nil:
		payload = *held
	case accountID != 0 && h.deps.PushTokens != nil:
		stored, err := h.deps.PushTokens.LatestForAccount(ctx, accountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load push token: %w", err)
		}
		if stored != nil {
			payload = PushTokenPayload{Token: stored.Token, Platform: stored.Platform}
		}
	}
	return h.Send(ctx, TypePushToken, msg.RequestID, payload)
}

func (h *Host) handleFileDownload(ctx context.Context, msg Message) error {
	var req FileDownloadPayload
	if err := msg.DecodePayload(&req); err != nil {
		return err
	}

	reply := FileReadyPayload{Dataset: req.Dataset, Format: req.Format}
	if h.deps.Files == nil {
		reply.Error = "file downloads are not available"
	} else if link, err := h.deps.Files.DownloadURL(req.Dataset, req.Format); err != nil {
		reply.Error = apperrors.UserMessage(err)
	} else {
		reply.URL = link
	}
	return h.Send(ctx, TypeFileReady, msg.RequestID, reply)
}

func (h *Host) handleDeviceFeature(ctx context.Context, msg Message) error {
	h.logger.DebugContext(ctx, "Device feature requested", slog.String("type", string(msg.Type)))
	return nil
}

// touch restarts the inactivity timer.
func (h *Host) touch() {
	if h.opts.InactivityTimeout <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.inactivity != nil {
		h.inactivity.Stop()
	}
	h.inactivity = time.AfterFunc(h.opts.InactivityTimeout, h.expireSession)
}

func (h *Host) expireSession() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.accountID = 0
	h.mu.Unlock()

	session, err := h.storedSession(h.ctx)
	if err != nil || session == nil {
		return
	}
	if err := h.deps.Sessions.Delete(h.ctx, h.opts.DeviceID); err != nil {
		h.logger.ErrorContext(h.ctx, "Failed to clear expired session", slog.Any("error", err))
	}

	monitoring.RecordSessionExpired()
	h.logger.InfoContext(h.ctx, "Session expired after inactivity")
	if err := h.Send(h.ctx, TypeSessionExpired, "", SessionExpiredPayload{Reason: "inactivity"}); err != nil {
		h.logger.WarnContext(h.ctx, "Failed to notify session expiry", slog.Any("error", err))
		return
	}
	if err := h.Navigate(h.ctx, loginPath); err != nil {
		h.logger.WarnContext(h.ctx, "Failed to route expired session to login", slog.Any("error", err))
	}
}

// Close stops every timer and releases the transport; pending deep links are dropped.
func (h *Host) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for id, link := range h.pending {
		link.timer.Stop()
		delete(h.pending, id)
	}
	h.queued = nil
	if h.inactivity != nil {
		h.inactivity.Stop()
	}
	h.cancel()
	h.mu.Unlock()

	if h.opts.OnClose != nil {
		h.opts.OnClose()
	}
}
