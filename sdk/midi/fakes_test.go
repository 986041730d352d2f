package midi

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/chordie/internal/bus"
	"github.com/leandrodaf/chordie/sdk/contracts"
)

type fakePort struct {
	name string
	err  error
}

func (p fakePort) Name() (string, error) { return p.name, p.err }

type fakeConn struct {
	handler contracts.MessageHandler
	closes  atomic.Int32
}

func (c *fakeConn) Close() error {
	c.closes.Add(1)
	return nil
}

func (c *fakeConn) send(raw ...byte) {
	c.handler(raw)
}

type fakeTransport struct {
	midi   *fakeMIDI
	closes atomic.Int32
}

func (t *fakeTransport) Ports() ([]contracts.Port, error) {
	t.midi.mu.Lock()
	defer t.midi.mu.Unlock()
	if t.midi.portsErr != nil {
		return nil, t.midi.portsErr
	}
	return t.midi.ports, nil
}

func (t *fakeTransport) Connect(port contracts.Port, handler contracts.MessageHandler) (contracts.Connection, error) {
	t.midi.mu.Lock()
	defer t.midi.mu.Unlock()
	if t.midi.connectErr != nil {
		return nil, t.midi.connectErr
	}
	conn := &fakeConn{handler: handler}
	t.midi.conns = append(t.midi.conns, conn)
	return conn, nil
}

func (t *fakeTransport) Close() error {
	t.closes.Add(1)
	return nil
}

// fakeMIDI plays the platform MIDI library. Every factory call returns a new
// fakeTransport sharing the same port list.
type fakeMIDI struct {
	mu         sync.Mutex
	initErr    error
	portsErr   error
	connectErr error
	ports      []contracts.Port
	transports []*fakeTransport
	conns      []*fakeConn
}

func newFakeMIDI(names ...string) *fakeMIDI {
	f := &fakeMIDI{}
	for _, n := range names {
		f.ports = append(f.ports, fakePort{name: n})
	}
	return f
}

func (f *fakeMIDI) factory(*contracts.ClientOptions) (contracts.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initErr != nil {
		return nil, f.initErr
	}
	t := &fakeTransport{midi: f}
	f.transports = append(f.transports, t)
	return t, nil
}

func (f *fakeMIDI) conn(i int) *fakeConn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conns[i]
}

func (f *fakeMIDI) connCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

// openTransports counts transports that were created but never closed.
func (f *fakeMIDI) openTransports() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.transports {
		if t.closes.Load() == 0 {
			n++
		}
	}
	return n
}

type recordingEmitter struct {
	mu     sync.Mutex
	err    error
	events []bus.Event
}

func (e *recordingEmitter) Emit(event string, notes contracts.HeldNotes) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, bus.Event{Name: event, Notes: notes})
	return nil
}

func (e *recordingEmitter) snapshots() []contracts.HeldNotes {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]contracts.HeldNotes, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Notes
	}
	return out
}

type countingObserver struct {
	mu           sync.Mutex
	kinds        map[string]int
	emitFailures int
	lastHeld     int
}

func (o *countingObserver) ObserveMessage(kind string, held int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.kinds == nil {
		o.kinds = make(map[string]int)
	}
	o.kinds[kind]++
	o.lastHeld = held
}

func (o *countingObserver) ObserveEmitFailure() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.emitFailures++
}

var errDeviceBusy = errors.New("device busy")

// fieldCountingLogger counts how many log fields the client builds.
type fieldCountingLogger struct {
	contracts.Logger
	fields atomic.Int32
}

func (l *fieldCountingLogger) Field() contracts.Field {
	l.fields.Add(1)
	return l.Logger.Field()
}

func (l *fieldCountingLogger) reset() { l.fields.Store(0) }

func (l *fieldCountingLogger) count() int { return int(l.fields.Load()) }
