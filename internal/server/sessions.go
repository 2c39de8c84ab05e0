package server

import (
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/types"
)

// subscriberBuffer is how many state snapshots a slow event stream may lag
const subscriberBuffer = 8

// Session holds the editor for one open document. Calls are serialized by
// the session mutex, so a document has a single logical owner at a time.
type Session struct {
	mu         sync.Mutex
	documentID string
	editor     *editor.Editor
	lastAccess time.Time
	subs       map[chan editor.State]struct{}
	closed     bool
	dirty      bool
}

// DocumentID returns the id of the document being edited
func (s *Session) DocumentID() string {
	return s.documentID
}

// View runs fn with the editor without publishing a state change
func (s *Session) View(fn func(e *editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return fn(s.editor)
}

// Update runs fn with the editor and, when it succeeds, marks the session
// changed and publishes the new state to every subscriber
func (s *Session) Update(fn func(e *editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	if err := fn(s.editor); err != nil {
		return err
	}
	s.dirty = true
	s.publishLocked()
	return nil
}

// Save runs fn, which persists the document, and clears the changed mark
// when it succeeds
func (s *Session) Save(fn func(e *editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	if err := fn(s.editor); err != nil {
		return err
	}
	s.dirty = false
	s.publishLocked()
	return nil
}

// Dirty reports whether the session has changes made since it was opened or
// last saved
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Subscribe returns a channel receiving the state after every update, starting
// with the current state. The channel is closed when the session closes or
// cancel is called.
func (s *Session) Subscribe() (<-chan editor.State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan editor.State, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- s.editor.State()
	s.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (s *Session) publishLocked() {
	state := s.editor.State()
	for ch := range s.subs {
		select {
		case ch <- state:
		default:
			// Subscriber is behind; it will catch up on the next update
		}
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for ch := range s.subs {
		close(ch)
	}
	s.subs = map[chan editor.State]struct{}{}
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess.Before(cutoff) && len(s.subs) == 0
}

// Sessions is the registry of open editing sessions keyed by document id
type Sessions struct {
	mu            sync.RWMutex
	byID          map[string]*Session
	opts          []editor.Option
	idleTimeout   time.Duration
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
	saveOnEvict   func(*Session) error
}

// NewSessions creates a registry. Sessions idle longer than idleTimeout are
// closed by a background sweep; zero disables the sweep. The sweep hands
// sessions with unsaved changes to the SaveOnEvict hook first. Without a
// hook, or when it fails, those changes are discarded.
func NewSessions(idleTimeout time.Duration, opts ...editor.Option) *Sessions {
	r := &Sessions{
		byID:        make(map[string]*Session),
		opts:        opts,
		idleTimeout: idleTimeout,
	}

	if idleTimeout > 0 {
		r.cleanupTicker = time.NewTicker(idleTimeout / 2)
		r.cleanupStop = make(chan struct{})
		go r.cleanup(r.cleanupStop)
	}

	return r
}

// SaveOnEvict sets the hook that persists a changed session before the idle
// sweep closes it
func (r *Sessions) SaveOnEvict(fn func(*Session) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveOnEvict = fn
}

// Open starts a session for doc, replacing any session already open for its id
func (r *Sessions) Open(doc *types.Document) *Session {
	sess := &Session{
		documentID: doc.ID,
		editor:     editor.Load(doc, r.opts...),
		lastAccess: time.Now(),
		subs:       make(map[chan editor.State]struct{}),
	}

	r.mu.Lock()
	old := r.byID[doc.ID]
	r.byID[doc.ID] = sess
	r.mu.Unlock()

	if old != nil {
		old.close()
	}
	return sess
}

// Get returns the open session for a document
func (r *Sessions) Get(documentID string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.byID[documentID]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{DocumentID: documentID}
	}
	return sess, nil
}

// Close ends the session for a document. It reports whether one was open.
func (r *Sessions) Close(documentID string) bool {
	r.mu.Lock()
	sess, ok := r.byID[documentID]
	delete(r.byID, documentID)
	r.mu.Unlock()

	if ok {
		sess.close()
	}
	return ok
}

// closeSession closes sess if it is still the open session for documentID
func (r *Sessions) closeSession(documentID string, sess *Session) {
	r.mu.Lock()
	current, ok := r.byID[documentID]
	if ok && current == sess {
		delete(r.byID, documentID)
	}
	r.mu.Unlock()

	if ok && current == sess {
		sess.close()
	}
}

// Len returns the number of open sessions
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// cleanup closes idle sessions until Stop is called.
func (r *Sessions) cleanup(stop <-chan struct{}) {
	for {
		select {
		case <-r.cleanupTicker.C:
			r.evictIdle(time.Now().Add(-r.idleTimeout))
		case <-stop:
			return
		}
	}
}

// evictIdle closes sessions not touched since cutoff and without live streams
func (r *Sessions) evictIdle(cutoff time.Time) int {
	r.mu.RLock()
	save := r.saveOnEvict
	idle := make(map[string]*Session)
	for id, sess := range r.byID {
		if sess.idleSince(cutoff) {
			idle[id] = sess
		}
	}
	r.mu.RUnlock()

	for id, sess := range idle {
		if sess.Dirty() {
			if save == nil {
				log.Printf("Discarding unsaved changes to idle document %s", id)
			} else if err := save(sess); err != nil {
				log.Printf("Discarding unsaved changes to idle document %s: %v", id, err)
			}
		}
		r.closeSession(id, sess)
	}
	return len(idle)
}

// Stop stops the cleanup goroutine and closes every session. It is safe to
// call more than once.
func (r *Sessions) Stop() {
	r.stopOnce.Do(func() {
		if r.cleanupTicker != nil {
			r.cleanupTicker.Stop()
			close(r.cleanupStop)
		}
	})

	r.mu.Lock()
	open := r.byID
	r.byID = make(map[string]*Session)
	r.mu.Unlock()

	for _, sess := range open {
		sess.close()
	}
}
