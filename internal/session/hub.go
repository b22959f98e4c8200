package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/inamate/flowdraw/internal/engine"
	"github.com/inamate/flowdraw/internal/store"
	"github.com/inamate/flowdraw/internal/typeid"
)

type entry struct {
	session *Session
	cancel  context.CancelFunc
}

// Hub tracks live sessions so shutdown can flush them.
type Hub struct {
	mu        sync.RWMutex
	sessions  map[string]entry // sessionID -> session
	newEngine func() *engine.Engine
	store     store.Store
	wg        sync.WaitGroup
}

func NewHub(newEngine func() *engine.Engine, st store.Store) *Hub {
	return &Hub{
		sessions:  make(map[string]entry),
		newEngine: newEngine,
		store:     st,
	}
}

// Open starts a session goroutine. The session stops when ctx is cancelled,
// Close is called, or the hub is stopped.
func (h *Hub) Open(ctx context.Context) *Session {
	s := New(typeid.NewSessionID(), h.newEngine(), h.store)
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.sessions[s.ID] = entry{session: s, cancel: cancel}
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		s.Run(ctx)
		h.remove(s.ID)
	}()

	slog.Info("session opened", "session", s.ID)
	return s
}

func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.sessions[id]
	return e.session, ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close stops one session and waits for it to flush.
func (h *Hub) Close(id string) {
	h.mu.RLock()
	e, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	e.cancel()
	<-e.session.Done()
}

// Stop cancels every session and waits until all of them have saved.
func (h *Hub) Stop() {
	h.mu.RLock()
	for _, e := range h.sessions {
		e.cancel()
	}
	h.mu.RUnlock()
	h.wg.Wait()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	e, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		e.cancel()
		slog.Info("session closed", "session", id)
	}
}
