// Package session hosts one editing engine per connection. The engine is
// confined to the session goroutine; everything else talks to it through
// messages.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inamate/flowdraw/internal/engine"
	"github.com/inamate/flowdraw/internal/store"
	"github.com/inamate/flowdraw/internal/typeid"
)

const saveTimeout = 10 * time.Second

var ErrClosed = errors.New("session closed")

type request struct {
	msg   *Message
	reply chan *Message
}

type Session struct {
	ID string

	engine *engine.Engine
	store  store.Store
	docID  string
	dirty  bool

	inbox chan request
	done  chan struct{}
}

func New(id string, eng *engine.Engine, st store.Store) *Session {
	return &Session{
		ID:     id,
		engine: eng,
		store:  st,
		inbox:  make(chan request),
		done:   make(chan struct{}),
	}
}

// Run owns the engine until ctx is cancelled. Unsaved changes to a stored
// document are flushed on the way out.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case req := <-s.inbox:
			req.reply <- s.handle(ctx, req.msg)
		case <-ctx.Done():
			s.flush()
			return
		}
	}
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Do hands msg to the session goroutine and waits for its reply.
func (s *Session) Do(ctx context.Context, msg *Message) (*Message, error) {
	req := request{msg: msg, reply: make(chan *Message, 1)}
	select {
	case s.inbox <- req:
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case reply := <-req.reply:
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Session) flush() {
	if !s.dirty || s.docID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if _, err := s.save(ctx, s.docID); err != nil {
		slog.Error("flush session document", "error", err, "session", s.ID, "document", s.docID)
	}
}

func (s *Session) handle(ctx context.Context, msg *Message) *Message {
	reply, err := s.dispatch(ctx, msg)
	if err != nil {
		slog.Warn("session message failed", "error", err, "type", msg.Type, "session", s.ID)
		reply = errorMessage(err)
	}
	reply.SessionID = s.ID
	reply.ClientID = msg.ClientID
	reply.Seq = msg.Seq
	return reply
}

func (s *Session) dispatch(ctx context.Context, msg *Message) (*Message, error) {
	switch msg.Type {
	case TypeRender:
		return s.state(nil, nil, true)

	case TypeGesture:
		var g engine.Gesture
		if err := decode(msg, &g); err != nil {
			return nil, err
		}
		if err := s.engine.ApplyGesture(g); err != nil {
			return nil, err
		}
		if g.Phase != engine.PhasePress {
			s.dirty = true
		}
		return s.state(nil, nil, true)

	case TypeKey:
		var k engine.Key
		if err := decode(msg, &k); err != nil {
			return nil, err
		}
		handled := s.engine.KeyPress(k)
		s.dirty = s.dirty || handled
		return s.state(nil, &handled, true)

	case TypeCreate, TypeDrop:
		var p CreatePayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		var id string
		var err error
		switch {
		case msg.Type == TypeDrop:
			id, err = s.engine.DropShape(p.Kind, p.X, p.Y)
		case p.Center:
			id, err = s.engine.AddShapeAtCenter(p.Kind)
		default:
			id, err = s.engine.CreateShape(p.Kind, p.X, p.Y)
		}
		if err != nil {
			return nil, err
		}
		return s.created(id)

	case TypeCreateImage:
		var p CreateImagePayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		var id string
		var err error
		if p.Center {
			id, err = s.engine.AddImageAtCenter(p.Path)
		} else {
			id, err = s.engine.CreateImageElement(p.Path, p.X, p.Y)
		}
		if err != nil {
			return nil, err
		}
		return s.created(id)

	case TypeEdit:
		var p EditPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		return s.edit(p.Op)

	case TypeText:
		var p TextPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if err := s.engine.SetText(p.EntityID, p.Text); err != nil {
			return nil, err
		}
		s.dirty = true
		return s.state(nil, nil, true)

	case TypeFont:
		var p FontPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if err := s.engine.SetTextFont(p.Family, p.Size); err != nil {
			return nil, err
		}
		s.dirty = true
		return s.state(nil, nil, true)

	case TypeZoom:
		var p ZoomPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if err := s.zoom(p); err != nil {
			return nil, err
		}
		return s.state(nil, nil, true)

	case TypeViewport:
		var p ViewportPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("viewport must be positive, got %vx%v", p.Width, p.Height)
		}
		s.engine.SetViewport(p.Width, p.Height)
		return s.state(nil, nil, false)

	case TypeLoad:
		var p LoadPayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		if err := s.load(ctx, p); err != nil {
			return nil, err
		}
		return s.state(nil, nil, true)

	case TypeSave:
		var p SavePayload
		if err := decode(msg, &p); err != nil {
			return nil, err
		}
		docID := p.DocumentID
		if docID == "" {
			docID = s.docID
		}
		if docID == "" {
			docID = typeid.NewDocumentID()
		}
		meta, err := s.save(ctx, docID)
		if err != nil {
			return nil, err
		}
		s.docID = docID
		return newMessage(TypeSaved, SavedPayload{Document: meta})

	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func (s *Session) edit(op string) (*Message, error) {
	var created []string
	switch op {
	case EditCopy:
		s.engine.Copy()
		return s.state(nil, nil, false)
	case EditCut:
		s.engine.Cut()
	case EditPaste:
		created = s.engine.Paste()
	case EditDelete:
		s.engine.Delete()
	case EditLock:
		s.engine.Lock()
	case EditUnlock:
		s.engine.Unlock()
	default:
		return nil, fmt.Errorf("unknown edit op %q", op)
	}
	s.dirty = true
	return s.state(created, nil, true)
}

func (s *Session) zoom(p ZoomPayload) error {
	switch p.Op {
	case "in":
		s.engine.ZoomIn()
	case "out":
		s.engine.ZoomOut()
	case "set":
		s.engine.SetZoom(p.Value)
	case "gesture":
		s.engine.ZoomGesture(p.Value)
	case "scroll":
		s.engine.ScrollZoom(p.Value)
	default:
		return fmt.Errorf("unknown zoom op %q", p.Op)
	}
	return nil
}

func (s *Session) load(ctx context.Context, p LoadPayload) error {
	if p.Sample {
		if err := s.engine.LoadSample(); err != nil {
			return err
		}
		s.docID = p.DocumentID
		s.dirty = s.docID != ""
		return nil
	}
	if p.DocumentID == "" {
		return errors.New("load needs a document id or sample")
	}
	snap, err := s.store.Load(ctx, p.DocumentID)
	if err != nil {
		return fmt.Errorf("load document %s: %w", p.DocumentID, err)
	}
	if err := s.engine.Load(snap); err != nil {
		return err
	}
	s.docID = p.DocumentID
	s.dirty = false
	return nil
}

func (s *Session) save(ctx context.Context, docID string) (store.Meta, error) {
	snap, err := s.engine.Snapshot()
	if err != nil {
		return store.Meta{}, err
	}
	meta, err := s.store.Save(ctx, docID, snap)
	if err != nil {
		return store.Meta{}, fmt.Errorf("save document %s: %w", docID, err)
	}
	s.dirty = false
	slog.Info("document saved", "document", docID, "version", meta.Version, "session", s.ID)
	return meta, nil
}

// created reports a new entity. An empty id is a toolbox no-op (an image
// drop or a cancelled file dialog).
func (s *Session) created(id string) (*Message, error) {
	if id == "" {
		return s.state(nil, nil, false)
	}
	s.dirty = true
	return s.state([]string{id}, nil, true)
}

func (s *Session) state(created []string, handled *bool, withCommands bool) (*Message, error) {
	p := StatePayload{
		DocumentID: s.docID,
		Mode:       s.engine.Mode().String(),
		Zoom:       s.engine.Zoom(),
		Selection:  s.engine.Selection(),
		Created:    created,
		Handled:    handled,
	}
	if withCommands {
		p.Commands = s.engine.DrawCommands()
	}
	return newMessage(TypeState, p)
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return nil
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", typ, err)
	}
	return &Message{Type: typ, Payload: data}, nil
}

func errorMessage(err error) *Message {
	data, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	return &Message{Type: TypeError, Payload: data}
}
