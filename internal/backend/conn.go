// Package backend is the transport to the intermediary server: a
// websocket carrying one binary frame per message, redialled after a fixed
// delay whenever it drops.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atomicstack/gametools-console/internal/logging/events"
)

// DefaultReconnectDelay is the pause between a dropped connection and the
// next dial.
const DefaultReconnectDelay = 5 * time.Second

const writeTimeout = 10 * time.Second

// ErrNotConnected is returned by Send while no connection is open.
var ErrNotConnected = errors.New("websocket not ready")

// Kind represents the type of event emitted by a Conn.
type Kind int

const (
	KindConnecting Kind = iota
	KindOpen
	KindFrame
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindConnecting:
		return "connecting"
	case KindOpen:
		return "open"
	case KindFrame:
		return "frame"
	case KindClosed:
		return "closed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event conveys a state change or an inbound frame.
type Event struct {
	Kind  Kind
	URL   string
	Frame []byte
	Err   error
	// Delay is the wait before the next dial, set on KindClosed.
	Delay time.Duration
}

// Conn keeps a websocket to the intermediary server open, redialling after
// a fixed delay. Inbound frames and state changes arrive on Events.
type Conn struct {
	url    string
	delay  time.Duration
	dialer *websocket.Dialer

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	mu sync.Mutex
	ws *websocket.Conn
}

// Dial starts connecting to url in the background. A non-positive delay
// selects DefaultReconnectDelay.
func Dial(url string, delay time.Duration) *Conn {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		url:    url,
		delay:  delay,
		dialer: &websocket.Dialer{HandshakeTimeout: delay},
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 64),
	}

	c.wg.Add(1)
	go c.run()

	go func() {
		c.wg.Wait()
		close(c.events)
	}()

	return c
}

// URL returns the address being dialled.
func (c *Conn) URL() string {
	return c.url
}

// Events returns the channel of transport events.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// Connected reports whether a websocket is currently open.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws != nil
}

// Send writes one frame. Frames sent while disconnected are dropped with
// ErrNotConnected, never queued.
func (c *Conn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		events.Transport.Drop(len(frame))
		return ErrNotConnected
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Stop cancels the connection loop and closes any open websocket.
func (c *Conn) Stop() {
	c.cancel()
	c.mu.Lock()
	if c.ws != nil {
		_ = c.ws.Close()
	}
	c.mu.Unlock()
}

// Wait blocks until the connection loop has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (c *Conn) Wait() {
	c.wg.Wait()
}

func (c *Conn) emit(evt Event) bool {
	evt.URL = c.url
	select {
	case <-c.ctx.Done():
		return false
	case c.events <- evt:
		return true
	}
}

func (c *Conn) run() {
	defer c.wg.Done()

	throttle := newThrottle(c.delay)
	for throttle.wait(c.ctx) {
		if !c.emit(Event{Kind: KindConnecting}) {
			return
		}
		events.Transport.Dial(c.url)
		ws, _, err := c.dialer.DialContext(c.ctx, c.url, nil)
		if err != nil {
			throttle.touch()
			events.Transport.Close(c.url, err)
			if !c.emit(Event{Kind: KindClosed, Err: err, Delay: c.delay}) {
				return
			}
			continue
		}

		c.mu.Lock()
		c.ws = ws
		c.mu.Unlock()
		events.Transport.Open(c.url)
		if !c.emit(Event{Kind: KindOpen}) {
			c.drop(ws)
			return
		}

		err = c.read(ws)
		c.drop(ws)
		throttle.touch()
		events.Transport.Close(c.url, err)
		if !c.emit(Event{Kind: KindClosed, Err: err, Delay: c.delay}) {
			return
		}
	}
}

func (c *Conn) read(ws *websocket.Conn) error {
	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if mt != websocket.BinaryMessage && mt != websocket.TextMessage {
			continue
		}
		events.Transport.Frame(len(data))
		if !c.emit(Event{Kind: KindFrame, Frame: data}) {
			return c.ctx.Err()
		}
	}
}

func (c *Conn) drop(ws *websocket.Conn) {
	c.mu.Lock()
	if c.ws == ws {
		c.ws = nil
	}
	c.mu.Unlock()
	_ = ws.Close()
}
