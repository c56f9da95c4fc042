package ws

import (
	"encoding/json"
	"testing"
)

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewPoolHub()
	a := &Client{UserID: 1, Send: make(chan []byte, 4)}
	b := &Client{UserID: 2, Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)
	if hub.ClientCount() != 2 {
		t.Fatalf("client count = %d", hub.ClientCount())
	}

	hub.Broadcast(PoolFundingEvent{
		PoolID:           9,
		CurrentRaisedNgn: 60_000,
		TargetAmountNgn:  100_000,
		InvestorCount:    1,
		Status:           "OPEN",
	})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var ev PoolFundingEvent
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("bad json: %v", err)
			}
			if ev.Type != "pool_funding" || ev.PoolID != 9 || ev.CurrentRaisedNgn != 60_000 {
				t.Errorf("event = %+v", ev)
			}
		default:
			t.Errorf("client %d got no message", c.UserID)
		}
	}
}

func TestHubDropsWhenClientBufferFull(t *testing.T) {
	hub := NewPoolHub()
	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(c)

	hub.Broadcast(PoolFundingEvent{PoolID: 1})
	hub.Broadcast(PoolFundingEvent{PoolID: 2}) // buffer full, dropped

	if len(c.Send) != 1 {
		t.Errorf("buffered = %d, want 1", len(c.Send))
	}
}

func TestBroadcastAfterCloseDoesNotPanic(t *testing.T) {
	hub := NewPoolHub()
	open := &Client{UserID: 1, Send: make(chan []byte, 4)}
	closed := &Client{UserID: 2, Send: make(chan []byte, 4)}
	hub.Register(open)
	hub.Register(closed)
	closed.Close()

	hub.Broadcast(PoolFundingEvent{PoolID: 3})

	if len(open.Send) != 1 {
		t.Errorf("open client buffered = %d, want 1", len(open.Send))
	}

	// Close racing the snapshot taken inside Broadcast must never panic on
	// a send to the closed channel.
	racer := &Client{UserID: 3, Send: make(chan []byte, 1)}
	hub.Register(racer)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast(PoolFundingEvent{PoolID: uint(i)})
		}
		close(done)
	}()
	racer.Close()
	<-done
}

func TestClientCloseUnregisters(t *testing.T) {
	hub := NewPoolHub()
	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(c)
	c.Close()
	c.Close() // second close is a no-op
	if hub.ClientCount() != 0 {
		t.Errorf("client count after close = %d", hub.ClientCount())
	}
}
