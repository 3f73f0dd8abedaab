package app

import (
	"log"
	"sync"
	"time"

	"github.com/relabs-tech/imu_dashboard/internal/imu"
	"github.com/relabs-tech/imu_dashboard/internal/series"
	"github.com/relabs-tech/imu_dashboard/internal/status"
)

type eventKind int

const (
	evMessage eventKind = iota
	evLifecycle
)

// event is one unit of work for the state-update loop. Exactly one of
// payload/lifecycle is meaningful, discriminated by kind.
type event struct {
	kind      eventKind
	payload   []byte
	lifecycle status.Event
	at        time.Time
}

// Dashboard owns the connection status and both sample windows. All
// mutations happen on the single goroutine running Run, in the order the
// events were enqueued, so buffer contents always reflect arrival order.
// mu covers only snapshot reads from the web layer.
type Dashboard struct {
	broker string
	topic  string

	events    chan event
	done      chan struct{}
	closeOnce sync.Once

	notify func(Snapshot)

	mu      sync.RWMutex
	status  status.Status
	accel   *series.Buffer[imu.AccelSample]
	gyro    *series.Buffer[imu.GyroSample]
	dropped uint64
}

// Snapshot is the full dashboard state handed to the web layer. Charts
// redraw from the complete window on every update.
type Snapshot struct {
	Status      status.Status     `json:"status"`
	StatusColor string            `json:"statusColor"`
	Broker      string            `json:"broker"`
	Topic       string            `json:"topic"`
	Dropped     uint64            `json:"dropped"`
	Accel       []imu.AccelSample `json:"accel"`
	Gyro        []imu.GyroSample  `json:"gyro"`
}

func NewDashboard(broker, topic string, maxPoints, queueSize int) *Dashboard {
	return &Dashboard{
		broker: broker,
		topic:  topic,
		events: make(chan event, queueSize),
		done:   make(chan struct{}),
		status: status.Connecting,
		accel:  series.New[imu.AccelSample](maxPoints),
		gyro:   series.New[imu.GyroSample](maxPoints),
	}
}

// SetNotify registers a callback invoked with a fresh snapshot after each
// applied event. Must be set before Run starts.
func (d *Dashboard) SetNotify(fn func(Snapshot)) {
	d.notify = fn
}

// Run consumes the event queue until Close. Call it on its own goroutine.
func (d *Dashboard) Run() {
	for {
		// done wins over pending events so nothing is applied after Close
		select {
		case <-d.done:
			return
		default:
		}
		select {
		case <-d.done:
			return
		case ev := <-d.events:
			d.apply(ev)
		}
	}
}

// Close stops the loop. Idempotent. Events enqueued afterwards are never
// applied, so no transport callback can mutate state once teardown has
// begun.
func (d *Dashboard) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
}

// HandleMessage enqueues one raw payload. Non-blocking: when the queue is
// full the message is counted as dropped instead of stalling the
// transport's delivery goroutine.
func (d *Dashboard) HandleMessage(payload []byte) {
	// copy: the transport may reuse the slice after the callback returns
	buf := make([]byte, len(payload))
	copy(buf, payload)
	d.enqueue(event{kind: evMessage, payload: buf, at: time.Now()})
}

// HandleLifecycle enqueues a transport lifecycle event.
func (d *Dashboard) HandleLifecycle(ev status.Event) {
	d.enqueue(event{kind: evLifecycle, lifecycle: ev, at: time.Now()})
}

func (d *Dashboard) enqueue(ev event) {
	// after Close every enqueue is a no-op
	select {
	case <-d.done:
		return
	default:
	}
	select {
	case d.events <- ev:
	default:
		d.countDropped("event queue full")
	}
}

func (d *Dashboard) apply(ev event) {
	d.mu.Lock()
	switch ev.kind {
	case evLifecycle:
		next := d.status.Next(ev.lifecycle)
		if next != d.status {
			log.Printf("dashboard: status %s -> %s (on %s)", d.status, next, ev.lifecycle)
			d.status = next
		}
	case evMessage:
		accel, gyro, err := imu.Decode(ev.payload, ev.at)
		if err != nil {
			d.dropped++
			log.Printf("dashboard: dropping message: %v", err)
		} else {
			if accel != nil {
				d.accel.Append(*accel)
			}
			if gyro != nil {
				d.gyro.Append(*gyro)
			}
		}
	}
	d.mu.Unlock()

	if d.notify != nil {
		d.notify(d.Snapshot())
	}
}

func (d *Dashboard) countDropped(reason string) {
	d.mu.Lock()
	d.dropped++
	d.mu.Unlock()
	log.Printf("dashboard: dropping message: %s", reason)
}

// Snapshot returns a copy of the current state, safe to serialize while
// the loop keeps running.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		Status:      d.status,
		StatusColor: d.status.Color(),
		Broker:      d.broker,
		Topic:       d.topic,
		Dropped:     d.dropped,
		Accel:       d.accel.Points(),
		Gyro:        d.gyro.Points(),
	}
}
