package ws

import (
	"encoding/json"
	"sync"
)

// Client is a single websocket subscriber to the pool funding feed.
type Client struct {
	UserID uint
	Send   chan []byte
	hub    *PoolHub
	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// trySend delivers one frame unless the client is closed or its buffer is
// full. Holding c.mu keeps the send ordered against Close.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// PoolFundingEvent is broadcast after every committed investment and on
// status transitions.
type PoolFundingEvent struct {
	Type             string `json:"type"` // pool_funding
	PoolID           uint   `json:"pool_id"`
	CurrentRaisedNgn int64  `json:"current_raised_ngn"`
	TargetAmountNgn  int64  `json:"target_amount_ngn"`
	InvestorCount    int    `json:"investor_count"`
	Status           string `json:"status"`
}

// PoolHub maintains the set of live funding-feed subscribers.
type PoolHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewPoolHub() *PoolHub {
	return &PoolHub{clients: make(map[*Client]struct{})}
}

func (h *PoolHub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *PoolHub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Broadcast sends the event to every subscriber, dropping it for clients
// whose send buffer is full.
func (h *PoolHub) Broadcast(ev PoolFundingEvent) {
	ev.Type = "pool_funding"
	data, _ := json.Marshal(ev)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

func (h *PoolHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
