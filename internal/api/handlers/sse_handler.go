package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mediqueue/backend/internal/adapters/providers/geolocation"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
)

const defaultHeartbeatInterval = 30 * time.Second

// SSEHandler handles Server-Sent Events for real-time facility updates
type SSEHandler struct {
	eventBus  providers.EventBus
	heartbeat time.Duration
	clients   map[chan *entities.FacilityEvent]struct{}
	mu        sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return NewSSEHandlerWithHeartbeat(eventBus, defaultHeartbeatInterval)
}

// NewSSEHandlerWithHeartbeat creates an SSE handler with a custom heartbeat
// interval
func NewSSEHandlerWithHeartbeat(eventBus providers.EventBus, heartbeat time.Duration) *SSEHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}
	return &SSEHandler{
		eventBus:  eventBus,
		heartbeat: heartbeat,
		clients:   make(map[chan *entities.FacilityEvent]struct{}),
	}
}

// streamFilter narrows the stream by event type and, optionally, by region
type streamFilter struct {
	eventType entities.FacilityEventType
	regional  bool
	center    providers.Coordinates
	radiusKm  float64
}

func (f streamFilter) matches(event *entities.FacilityEvent) bool {
	if f.eventType != "" && event.EventType != f.eventType {
		return false
	}
	if !f.regional {
		return true
	}
	// ward events carry no location
	if event.Location.Latitude == 0 && event.Location.Longitude == 0 {
		return true
	}
	to := providers.Coordinates{Latitude: event.Location.Latitude, Longitude: event.Location.Longitude}
	return geolocation.Haversine(f.center, to) <= f.radiusKm
}

func parseStreamFilter(r *http.Request) (streamFilter, error) {
	var f streamFilter
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		t := entities.FacilityEventType(raw)
		if !t.Valid() {
			return f, fmt.Errorf("unknown event type %q", raw)
		}
		f.eventType = t
	}

	lat, hasLat, latErr := parseFloatParam(r, "lat")
	lon, hasLon, lonErr := parseFloatParam(r, "lon")
	if latErr != nil || lonErr != nil {
		return f, fmt.Errorf("invalid lat or lon parameter")
	}
	if hasLat && hasLon {
		f.regional = true
		f.center = providers.Coordinates{Latitude: lat, Longitude: lon}
		f.radiusKm = 50
		if radius, ok, err := parseFloatParam(r, "radius"); err != nil || (ok && radius <= 0) {
			return f, fmt.Errorf("invalid radius parameter")
		} else if ok {
			f.radiusKm = radius
		}
	}
	return f, nil
}

// StreamFacilityUpdates handles GET /api/stream/facilities?type=&lat=&lon=&radius=
func (h *SSEHandler) StreamFacilityUpdates(w http.ResponseWriter, r *http.Request) {
	f, err := parseStreamFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	logger := observability.LoggerFromContext(r.Context())

	eventChan, err := h.eventBus.Subscribe(r.Context(), providers.EventChannelFacilityUpdates)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to subscribe to facility updates")
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan *entities.FacilityEvent, 50)
	h.registerClient(clientChan)
	defer h.unregisterClient(clientChan)

	h.sendEvent(w, "connected", map[string]interface{}{
		"channel":   providers.EventChannelFacilityUpdates,
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan, f)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug().Msg("Client disconnected from facility stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents copies matching bus events to the client, dropping events
// when the client falls behind
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.FacilityEvent, clientChan chan<- *entities.FacilityEvent, f streamFilter) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || !f.matches(event) {
				continue
			}
			select {
			case clientChan <- event:
			default:
			}
		}
	}
}

func (h *SSEHandler) registerClient(clientChan chan *entities.FacilityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientChan] = struct{}{}
}

func (h *SSEHandler) unregisterClient(clientChan chan *entities.FacilityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientChan)
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
