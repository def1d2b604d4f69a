package delivery

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type capture struct {
	mu      sync.Mutex
	invites []string
	codes   []string
	joined  []string
	done    chan struct{}
}

func newCapture(expected int) *capture {
	return &capture{done: make(chan struct{}, expected)}
}

func (c *capture) SendInvite(_ context.Context, to, _, rawToken string) error {
	c.mu.Lock()
	c.invites = append(c.invites, to+":"+rawToken)
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func (c *capture) SendResetCode(_ context.Context, to, _, code string) error {
	c.mu.Lock()
	c.codes = append(c.codes, to+":"+code)
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func (c *capture) StaffJoined(_ context.Context, _ *int64, name string) error {
	c.mu.Lock()
	c.joined = append(c.joined, name)
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func (c *capture) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-c.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversAllKinds(t *testing.T) {
	sink := newCapture(3)
	d := NewDispatcher(2, sink, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	if err := d.SendInvite(ctx, "kim@example.com", "Kim", "raw-1"); err != nil {
		t.Fatalf("SendInvite: %v", err)
	}
	if err := d.SendResetCode(ctx, "ivy@example.com", "Ivy", "123456"); err != nil {
		t.Fatalf("SendResetCode: %v", err)
	}
	if err := d.StaffJoined(ctx, nil, "Kim"); err != nil {
		t.Fatalf("StaffJoined: %v", err)
	}

	sink.wait(t, 3)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.invites) != 1 || sink.invites[0] != "kim@example.com:raw-1" {
		t.Fatalf("invite not delivered: %v", sink.invites)
	}
	if len(sink.codes) != 1 || sink.codes[0] != "ivy@example.com:123456" {
		t.Fatalf("reset code not delivered: %v", sink.codes)
	}
	if len(sink.joined) != 1 || sink.joined[0] != "Kim" {
		t.Fatalf("chat notification not delivered: %v", sink.joined)
	}
}

func TestDispatcher_PerRecipientOrdering(t *testing.T) {
	const sends = 20
	sink := newCapture(sends)
	d := NewDispatcher(4, sink, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Same recipient always hashes to the same worker, so per-recipient
	// order is enqueue order.
	for i := 0; i < sends; i++ {
		payload := string(rune('a' + i))
		if err := d.SendInvite(ctx, "same@example.com", "Same", payload); err != nil {
			t.Fatalf("SendInvite: %v", err)
		}
	}
	sink.wait(t, sends)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for i := 0; i < sends; i++ {
		want := "same@example.com:" + string(rune('a'+i))
		if sink.invites[i] != want {
			t.Fatalf("delivery %d out of order: got %q, want %q", i, sink.invites[i], want)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, nil, nil, zerolog.Nop())
	a := d.shardIndex("kim@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("kim@example.com") != a {
			t.Fatalf("shard index must be deterministic")
		}
	}
	if a < 0 || a >= 4 {
		t.Fatalf("shard index out of range: %d", a)
	}
}
