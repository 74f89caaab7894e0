// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stream broadcasts rasterized frames to websocket clients, so a
// browser or a second machine can act as the display. Each redraw pass is
// sent as one binary message (see Decode). The server is announced over
// mDNS with the catalog id in its TXT record.
//
// Slow clients never stall the player: a client whose queue is full misses
// frames until it catches up.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/sink"
)

// ServiceType is the mDNS service the stream is announced under.
const ServiceType = "_xydoodle._tcp"

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8273"

// queueLen is the number of frames buffered per client.
const queueLen = 8

// maxFrame caps the samples buffered for one message; longer passes are
// split.
const maxFrame = 1 << 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is a Sink that fans frames out to connected clients. Accept,
// Disable and BeginFrame must be called from one goroutine; ServeHTTP may
// be called concurrently.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	dropped atomic.Uint64
	sent    atomic.Uint64

	buf          []byte
	doodle, pass int
	x, y         uint8

	srv  *http.Server
	mdns *mdns.Server
}

// NewHub returns a hub with no clients and no listener.
func NewHub() *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	h.buf = appendHeader(make([]byte, 0, 4096), 0, 0)
	return h
}

// Listen serves the hub on addr and announces it over mDNS. A failed
// announcement is logged; the stream stays reachable by address.
func Listen(addr, catalogID string) (*Hub, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("stream: listen: %w", err)
	}
	h := NewHub()
	h.srv = &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xydoodle.Logger().Warn("stream: serve", "err", err)
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	if h.mdns, err = advertise(port, catalogID); err != nil {
		xydoodle.Logger().Warn("stream: mdns disabled", "err", err)
	}
	xydoodle.Logger().Info("stream: listening", "addr", ln.Addr().String())
	return h, nil
}

func advertise(port int, catalogID string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	info := []string{"xydoodle"}
	if catalogID != "" {
		info = append(info, "catalog="+catalogID)
	}
	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return mdns.NewServer(&mdns.Config{Zone: service})
}

// ServeHTTP upgrades the request to a websocket and subscribes it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, queueLen)}
	if !h.add(c) {
		conn.Close()
		return
	}
	xydoodle.Logger().Debug("stream: client connected", "remote", conn.RemoteAddr().String())
	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			h.remove(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump discards client input and notices disconnects.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Sent returns the number of frames queued to clients.
func (h *Hub) Sent() uint64 { return h.sent.Load() }

// Dropped returns the number of frames skipped for slow clients.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Accept implements sink.Sink.
func (h *Hub) Accept(x, y, z uint8) {
	h.buf = append(h.buf, x, y, z)
	h.x, h.y = x, y
	if len(h.buf) >= headerSize+3*maxFrame {
		h.flush()
	}
}

// Disable implements sink.Sink by recording a blank sample at the current
// position.
func (h *Hub) Disable() {
	h.buf = append(h.buf, h.x, h.y, 0)
}

// BeginFrame implements sink.Framer. The previous pass is sent.
func (h *Hub) BeginFrame(doodle, pass int) {
	h.flush()
	h.doodle, h.pass = doodle, pass
	h.buf = appendHeader(h.buf[:0], doodle, pass)
}

func (h *Hub) flush() {
	if len(h.buf) > headerSize {
		h.broadcast(append([]byte(nil), h.buf...))
	}
	h.buf = appendHeader(h.buf[:0], h.doodle, h.pass)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
			h.sent.Add(1)
		default:
			h.dropped.Add(1)
		}
	}
}

// Close sends the pending pass, disconnects every client and stops the
// listener and the mDNS announcement.
func (h *Hub) Close() error {
	h.flush()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	var errs []error
	if h.mdns != nil {
		errs = append(errs, h.mdns.Shutdown())
	}
	if h.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		errs = append(errs, h.srv.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

var (
	_ sink.Sink    = (*Hub)(nil)
	_ sink.Framer  = (*Hub)(nil)
	_ http.Handler = (*Hub)(nil)
)

func init() {
	sink.Register("stream", func(o sink.Options) (sink.Sink, error) {
		return Listen(o.Addr, o.CatalogID)
	})
}
