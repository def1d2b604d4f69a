// Package delivery decouples out-of-band delivery (invite mail, reset codes,
// chat notifications) from the request path. A redemption or issuance never
// waits on a mail server; it enqueues and moves on.
package delivery

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/barcrafted/bar-system/internal/api/metrics"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

type kind string

const (
	kindInviteMail kind = "invite_mail"
	kindResetMail  kind = "reset_mail"
	kindChat       kind = "chat"
)

type item struct {
	kind    kind
	to      string
	name    string
	payload string
	barID   *int64
}

// Dispatcher routes deliveries to a fixed set of workers using consistent
// hashing on the recipient, keeping per-recipient ordering. It satisfies
// ports.Mailer and ports.Notifier; enqueueing is non-blocking up to the
// channel buffer.
type Dispatcher struct {
	workers  []chan item
	mailer   ports.Mailer
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher wraps the real mailer and notifier with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan item, numWorkers),
		mailer:   mailer,
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan item, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) SendInvite(_ context.Context, to, name, rawToken string) error {
	d.enqueue(item{kind: kindInviteMail, to: to, name: name, payload: rawToken})
	return nil
}

func (d *Dispatcher) SendResetCode(_ context.Context, to, name, code string) error {
	d.enqueue(item{kind: kindResetMail, to: to, name: name, payload: code})
	return nil
}

func (d *Dispatcher) StaffJoined(_ context.Context, barID *int64, name string) error {
	d.enqueue(item{kind: kindChat, name: name, barID: barID})
	return nil
}

func (d *Dispatcher) enqueue(it item) {
	idx := d.shardIndex(it.to)
	select {
	case d.workers[idx] <- it:
		metrics.DeliveryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		// A full queue drops the delivery rather than blocking the request
		// path; the secret is already stored and can be reissued.
		d.log.Error().Str("kind", string(it.kind)).Msg("delivery queue full, dropping")
		metrics.DeliveriesTotal.WithLabelValues(string(it.kind), "error").Inc()
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan item) {
	for {
		select {
		case <-ctx.Done():
			return
		case it, ok := <-ch:
			if !ok {
				return
			}
			metrics.DeliveryQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.deliver(ctx, it); err != nil {
				d.log.Error().Err(err).
					Str("kind", string(it.kind)).
					Int("worker_id", id).
					Msg("delivery failed")
				metrics.DeliveriesTotal.WithLabelValues(string(it.kind), "error").Inc()
				continue
			}
			metrics.DeliveriesTotal.WithLabelValues(string(it.kind), "ok").Inc()
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, it item) error {
	switch it.kind {
	case kindInviteMail:
		return d.mailer.SendInvite(ctx, it.to, it.name, it.payload)
	case kindResetMail:
		return d.mailer.SendResetCode(ctx, it.to, it.name, it.payload)
	case kindChat:
		return d.notifier.StaffJoined(ctx, it.barID, it.name)
	default:
		return fmt.Errorf("unknown delivery kind %q", it.kind)
	}
}

var (
	_ ports.Mailer   = (*Dispatcher)(nil)
	_ ports.Notifier = (*Dispatcher)(nil)
)
