package bridge

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"

	"github.com/oklog/ulid/v2"
)

// BootstrapVersion is announced in BRIDGE_READY so the page can detect an outdated shell.
const BootstrapVersion = "1.2"

type MessageType string

// Web → Native.
const (
	TypeAuthSessionUpdate   MessageType = "AUTH_SESSION_UPDATE"
	TypeAuthLogout          MessageType = "AUTH_LOGOUT"
	TypeRequestFileDownload MessageType = "REQUEST_FILE_DOWNLOAD"
	TypeHapticFeedback      MessageType = "HAPTIC_FEEDBACK"
	TypeShareContent        MessageType = "SHARE_CONTENT"
	TypeNavigationReady     MessageType = "NAVIGATION_READY"
	TypePageLoaded          MessageType = "PAGE_LOADED"
	TypeDeepLinkAck         MessageType = "DEEP_LINK_ACK"
	TypePushTokenRequest    MessageType = "PUSH_TOKEN_REQUEST"
	TypeUserActivity        MessageType = "USER_ACTIVITY"
)

// Native → Web. PUSH_TOKEN also flows inbound when the shell hands over a fresh token.
const (
	TypeBridgeReady        MessageType = "BRIDGE_READY"
	TypeAuthSessionRestore MessageType = "AUTH_SESSION_RESTORE"
	TypeDeepLink           MessageType = "DEEP_LINK"
	TypeNavigate           MessageType = "NAVIGATE"
	TypeForceNavigate      MessageType = "FORCE_NAVIGATE"
	TypePushToken          MessageType = "PUSH_TOKEN"
	TypeFileReady          MessageType = "FILE_READY"
	TypeSessionExpired     MessageType = "SESSION_EXPIRED"
	TypeDeviceSecret       MessageType = "DEVICE_SECRET"
)

var ErrMalformedMessage = errors.New("malformed bridge message")

// Message is the JSON envelope exchanged in both directions.
type Message struct {
	Type      MessageType     `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(t MessageType, requestID string, payload any) (Message, error) {
	msg := Message{Type: t, RequestID: requestID}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Message{}, fmt.Errorf("failed to encode %s payload: %w", t, err)
		}
		msg.Payload = raw
	}
	return msg, nil
}

func Decode(raw []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	if strings.TrimSpace(string(msg.Type)) == "" {
		return Message{}, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}
	return msg, nil
}

// DecodePayload unmarshals the payload into v; an absent payload leaves v untouched.
func (m Message) DecodePayload(v any) error {
	if len(m.Payload) == 0 || string(m.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("%w: %s payload: %w", ErrMalformedMessage, m.Type, err)
	}
	return nil
}

type Session struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	AccountID    int64      `json:"accountId,omitempty"`
	// SecretHash binds a stored session to the device secret; it is never sent to the page.
	SecretHash   string     `json:"secretHash,omitempty"`
}

// forPage returns the copy of s the page may see.
func (s Session) forPage() *Session {
	s.SecretHash = ""
	return &s
}

type BridgeReadyPayload struct {
	Version  string   `json:"version"`
	DeviceID string   `json:"deviceId"`
	Session  *Session `json:"session,omitempty"`
}

type DeepLinkPayload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type NavigatePayload struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

type PushTokenPayload struct {
	Token    string `json:"token"`
	Platform string `json:"platform,omitempty"`
}

type FileDownloadPayload struct {
	Dataset string `json:"dataset"`
	Format  string `json:"format"`
}

type FileReadyPayload struct {
	Dataset string `json:"dataset"`
	Format  string `json:"format"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DeviceSecretPayload hands the shell the secret it must present on reconnect to get its session back.
type DeviceSecretPayload struct {
	Secret string `json:"secret"`
}

type SessionExpiredPayload struct {
	Reason string `json:"reason"`
}

func newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String()
}

// ResolveDeepLink turns an incoming link into the SPA path and the absolute URL used for a forced reload.
// Custom-scheme links (welfare-ledger://loans/12) map their host onto the first path segment.
// http(s) links must point at baseURL's host.
func ResolveDeepLink(raw, baseURL string) (path, fullURL string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", apperrors.NewValidationError("url", "deep link url cannot be empty")
	}
	link, err := url.Parse(raw)
	if err != nil {
		return "", "", apperrors.NewValidationError("url", fmt.Sprintf("invalid deep link %q", raw))
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return "", "", fmt.Errorf("%w: invalid public base url %q", apperrors.ErrInternalServer, baseURL)
	}

	switch {
	case link.Scheme == "" && link.Host == "":
		path = link.Path
	case link.Scheme == "http" || link.Scheme == "https":
		if !strings.EqualFold(link.Host, base.Host) {
			return "", "", apperrors.NewValidationError("url", fmt.Sprintf("deep link host %q is not allowed", link.Host))
		}
		path = link.Path
	default:
		path = "/" + link.Host + link.Path
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if link.RawQuery != "" {
		path += "?" + link.RawQuery
	}
	return path, strings.TrimSuffix(base.String(), "/") + path, nil
}
