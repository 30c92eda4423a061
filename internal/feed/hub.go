package feed

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

const broadcastBufferSize = 64

// Hub fans review events out to connected feed clients. It holds connection
// state only; all client bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	stopped    chan struct{}
	stopOnce   sync.Once
	count      atomic.Int64
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case <-h.done:
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			total := h.count.Add(1)
			metrics.FeedConnectionsActive.Inc()
			h.log.WithFields(ctx, logger.Fields{
				"remote": client.remote,
				"total":  total,
				"action": "feed_register",
			}).Debug("feed client registered")

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.remove(client)
					metrics.FeedClientsDropped.Inc()
					h.log.WithFields(ctx, logger.Fields{
						"remote": client.remote,
						"action": "feed_client_dropped",
					}).Warn("feed client too slow, dropped")
				}
			}
		}
	}
}

// Stop ends Run and disconnects every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Stopped is closed once Run has disconnected every client.
func (h *Hub) Stopped() <-chan struct{} {
	return h.stopped
}

func (h *Hub) Register(client *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues event for every client. It never blocks; when the hub is
// backed up the event is dropped.
func (h *Hub) Publish(ctx context.Context, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.WithFields(ctx, logger.Fields{
			"type":   string(event.Type),
			"action": "feed_marshal_failed",
		}).Errorf("feed marshal failed: %v", err)
		return
	}

	select {
	case h.broadcast <- message:
		metrics.FeedEventsPublished.WithLabelValues(string(event.Type)).Inc()
	default:
		h.log.WithFields(ctx, logger.Fields{
			"type":   string(event.Type),
			"action": "feed_publish_dropped",
		}).Warn("feed broadcast queue full, event dropped")
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.count.Add(-1)
	metrics.FeedConnectionsActive.Dec()
}

func (h *Hub) shutdown() {
	h.Stop()
	n := len(h.clients)
	for client := range h.clients {
		h.remove(client)
	}
	h.log.WithFields(context.Background(), logger.Fields{
		"clients": n,
		"action":  "feed_hub_shutdown",
	}).Info("feed hub shutdown completed")
	close(h.stopped)
}
