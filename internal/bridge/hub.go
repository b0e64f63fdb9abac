package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"welfare-ledger/internal/infrastructure/monitoring"
	"welfare-ledger/internal/pkg/apperrors"
)

// Hub tracks the live host for each connected device.
type Hub struct {
	mu     sync.RWMutex
	hosts  map[string]*Host
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		hosts:  make(map[string]*Host),
		logger: logger.With(slog.String("component", "bridgeHub")),
	}
}

// Register makes h the host for its device. A previous connection for the same device is closed,
// unless it proved a device secret that h does not hold.
func (hub *Hub) Register(h *Host) error {
	hub.mu.Lock()
	old, replaced := hub.hosts[h.DeviceID()]
	if replaced && old != h && !admits(old, h.secret()) {
		hub.mu.Unlock()
		return fmt.Errorf("%w: device %s is connected with a different secret", apperrors.ErrConflict, h.DeviceID())
	}
	hub.hosts[h.DeviceID()] = h
	count := len(hub.hosts)
	hub.mu.Unlock()

	if replaced && old != h {
		old.Close()
		hub.logger.Info("Replaced existing bridge connection", slog.String("deviceID", h.DeviceID()))
	}
	monitoring.Bridge.ConnectedDevices.Set(float64(count))
	return nil
}

// Admits reports whether a connection presenting secretHash may take over deviceID.
func (hub *Hub) Admits(deviceID, secretHash string) bool {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	current, ok := hub.hosts[deviceID]
	return !ok || admits(current, secretHash)
}

func admits(current *Host, secretHash string) bool {
	held := current.secret()
	return held == "" || secretMatches(held, secretHash)
}

// Unregister removes h only if it is still the registered host for its device.
func (hub *Hub) Unregister(h *Host) {
	hub.mu.Lock()
	if current, ok := hub.hosts[h.DeviceID()]; ok && current == h {
		delete(hub.hosts, h.DeviceID())
	}
	count := len(hub.hosts)
	hub.mu.Unlock()

	h.Close()
	monitoring.Bridge.ConnectedDevices.Set(float64(count))
}

func (hub *Hub) Get(deviceID string) (*Host, bool) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	h, ok := hub.hosts[deviceID]
	return h, ok
}

func (hub *Hub) Count() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.hosts)
}

// DeliverDeepLink pushes a deep link to a connected device and returns its request id.
func (hub *Hub) DeliverDeepLink(ctx context.Context, deviceID, rawURL string) (string, error) {
	h, ok := hub.Get(deviceID)
	if !ok {
		return "", fmt.Errorf("%w: device %s is not connected", apperrors.ErrNotFound, deviceID)
	}
	return h.DeliverDeepLink(ctx, rawURL)
}

// CloseAll drops every connection, used on shutdown.
func (hub *Hub) CloseAll() {
	hub.mu.Lock()
	hosts := hub.hosts
	hub.hosts = make(map[string]*Host)
	hub.mu.Unlock()

	for _, h := range hosts {
		h.Close()
	}
	monitoring.Bridge.ConnectedDevices.Set(0)
}
